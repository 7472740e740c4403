// Package overlay composites foreground content over a background view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceCenter renders fg centered over bg within a width x height viewport.
func PlaceCenter(width, height int, fg, bg string) string {
	fgWidth := lipgloss.Width(fg)
	fgHeight := lipgloss.Height(fg)
	x := max((width-fgWidth)/2, 0)
	y := max((height-fgHeight)/2, 0)
	return compose(x, y, width, height, fg, bg)
}

// PlaceBottom renders fg bottom-centered over bg, padY rows above the
// viewport's last line.
func PlaceBottom(width, height, padY int, fg, bg string) string {
	fgWidth := lipgloss.Width(fg)
	fgHeight := lipgloss.Height(fg)
	x := max((width-fgWidth)/2, 0)
	y := max(height-fgHeight-padY, 0)
	return compose(x, y, width, height, fg, bg)
}

// compose splices each foreground line into the background at (x, y).
// ANSI-aware truncation preserves styling on both sides of the splice.
func compose(x, y, width, height int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Pad background to full height
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	for i, fgLine := range fgLines {
		bgY := y + i
		if bgY >= len(bgLines) {
			break
		}

		bgLine := bgLines[bgY]
		fgLineWidth := ansi.StringWidth(fgLine)

		// Left portion of the background, padded out to x when shorter
		leftPart := ansi.Truncate(bgLine, x, "")
		leftWidth := ansi.StringWidth(leftPart)
		if leftWidth < x {
			leftPart += strings.Repeat(" ", x-leftWidth)
		}

		// Right portion of the background after the overlay
		endX := x + fgLineWidth
		var rightPart string
		if endX < ansi.StringWidth(bgLine) {
			rightPart = ansi.TruncateLeft(bgLine, endX, "")
		}

		bgLines[bgY] = leftPart + fgLine + rightPart
	}

	return strings.Join(bgLines, "\n")
}
