package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the ticket screen. List bindings
// are only consulted while no form or prompt is open, so single-letter
// keys never steal input from a text field.
type KeyMap struct {
	// List.
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Quit   key.Binding

	// Forms.
	NextField  key.Binding
	PrevField  key.Binding
	StatusPrev key.Binding
	StatusNext key.Binding
	Save       key.Binding
	Cancel     key.Binding

	// Delete prompt.
	Confirm key.Binding
	Deny    key.Binding

	// ForceQuit works everywhere.
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	StatusPrev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous status"),
	),
	StatusNext: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next status"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "delete"),
	),
	Deny: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}
