package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceCenter(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX\nXX"

	result := PlaceCenter(5, 3, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	// Middle line should have XX centered (position 1-2 in 0-4)
	assert.Contains(t, lines[1], "XX")
}

func TestPlaceCenter_LargeForeground(t *testing.T) {
	bg := "AAA\nAAA\nAAA"
	fg := "XXXXX\nXXXXX"

	result := PlaceCenter(3, 3, fg, bg)

	// Should not panic, fg is placed starting at x=0, y=0
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "XXXXX") || strings.HasPrefix(lines[1], "XXXXX"))
}

func TestPlaceBottom(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA\nAAAAA"
	fg := "XX"

	result := PlaceBottom(5, 5, 0, fg, bg)

	lines := strings.Split(result, "\n")
	// Last line should contain XX
	assert.Contains(t, lines[4], "XX")
	// First line should still be background
	assert.Equal(t, "AAAAA", lines[0])
}

func TestPlaceBottom_WithPadding(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA\nAAAAA"
	fg := "XX"

	result := PlaceBottom(5, 5, 1, fg, bg)

	lines := strings.Split(result, "\n")
	// Last line should be untouched background
	assert.Equal(t, "AAAAA", lines[4])
	// Second to last should contain XX
	assert.Contains(t, lines[3], "XX")
}

func TestPlaceCenter_EmptyBackground(t *testing.T) {
	fg := "XX\nXX"

	result := PlaceCenter(5, 3, fg, "")

	// Should pad background and place foreground
	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
}

func TestPlaceCenter_PreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"
	fg := "X"

	result := PlaceCenter(5, 3, fg, bg)

	lines := strings.Split(result, "\n")
	// X lands at position 2 of the middle line, FG and IJ survive
	assert.Equal(t, "FGXIJ", lines[1])
}

func TestPlaceCenter_PreservesANSI(t *testing.T) {
	// Red colored background
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"
	fg := "X"

	result := PlaceCenter(3, 3, fg, bg)

	assert.Contains(t, result, "\x1b[31m")
}

func TestPlaceCenter_MultilineForeground(t *testing.T) {
	bg := ".....\n.....\n.....\n.....\n....."
	fg := "XXX\nXXX\nXXX"

	result := PlaceCenter(5, 5, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 5)
	// Lines 1, 2, 3 should contain XXX (centered at position 1)
	assert.Contains(t, lines[1], "XXX")
	assert.Contains(t, lines[2], "XXX")
	assert.Contains(t, lines[3], "XXX")
}

func TestPlaceCenter_ClampsOversizedForeground(t *testing.T) {
	// Foreground larger than viewport starts at the origin instead of
	// a negative offset.
	bg := "...\n..."
	fg := "XXXXXXXX"

	result := PlaceCenter(3, 2, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "XXXXXXXX", lines[0])
}
