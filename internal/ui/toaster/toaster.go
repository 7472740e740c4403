// Package toaster provides a notification toast overlay component.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nothingTVatYT/Seed/internal/ui/overlay"
	"github.com/nothingTVatYT/Seed/internal/ui/styles"
)

// DefaultTTL is how long a toast stays visible before auto-dismissing.
const DefaultTTL = 4 * time.Second

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with red border.
	StyleError
	// StyleInfo shows ℹ️ with blue border for informational messages.
	StyleInfo
	// StyleWarn shows ⚠️ with yellow border for warnings.
	StyleWarn
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	width   int
	height  int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style. Any toast
// already showing is replaced. The appropriate emoji is automatically
// prepended based on style: ✅ success, ❌ error, ℹ️ info, ⚠️ warn.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates the viewport dimensions for overlay positioning.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// decor returns the icon and border color for the current style.
func (m Model) decor() (string, lipgloss.TerminalColor) {
	switch m.style {
	case StyleError:
		return "❌", styles.ToastBorderErrorColor
	case StyleInfo:
		return "ℹ️", styles.ToastBorderInfoColor
	case StyleWarn:
		return "⚠️", styles.ToastBorderWarnColor
	default: // StyleSuccess
		return "✅", styles.ToastBorderSuccessColor
	}
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	icon, border := m.decor()

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(icon + " " + m.message)
}

// Overlay renders the toast on top of a background view, bottom-centered
// one row above the bottom edge.
func (m Model) Overlay(bg string) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.PlaceBottom(m.width, m.height, 1, m.View(), bg)
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct{}

// ScheduleDismiss returns a command that dismisses the toast after a duration.
func ScheduleDismiss(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{}
	})
}
