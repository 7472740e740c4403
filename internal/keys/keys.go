// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the project manager.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Lifecycle actions
	Run        key.Binding
	ClearCache key.Binding
	OpenFolder key.Binding

	// Registry edits
	ChangeEngine   key.Binding
	EditArgs       key.Binding
	ToggleTemplate key.Binding
	Remove         key.Binding
	Import         key.Binding

	// General
	Refresh      key.Binding
	ToggleStatus key.Binding
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Lifecycle actions
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run project"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear build cache"),
		),
		OpenFolder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open folder"),
		),

		// Registry edits
		ChangeEngine: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "change engine"),
		),
		EditArgs: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "edit arguments"),
		),
		ToggleTemplate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle template"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove project"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import project"),
		),

		// General
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh engines"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                                                // Navigation
		{k.Run, k.ClearCache, k.OpenFolder},                           // Lifecycle
		{k.ChangeEngine, k.EditArgs, k.ToggleTemplate, k.Remove, k.Import}, // Registry
		{k.Refresh, k.ToggleStatus, k.Help, k.Escape, k.Quit},         // General
	}
}
