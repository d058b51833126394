package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the vendor board shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Vendors
	Add    key.Binding
	Update key.Binding
	Reset  key.Binding
	Delete key.Binding
	Filter key.Binding

	// Characters
	NextCharacter key.Binding
	NewCharacter  key.Binding

	// Confirmation
	Yes key.Binding
	No  key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "page down"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add vendor"),
		),
		Update: key.NewBinding(
			key.WithKeys("u", "enter"),
			key.WithHelp("u/Enter", "update vendor"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark reset"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete vendor"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),

		NextCharacter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next character"),
		),
		NewCharacter: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new character"),
		),

		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/Esc", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Update, k.Reset, k.Filter, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Add, k.Update, k.Reset, k.Delete},
		{k.Filter, k.NextCharacter, k.NewCharacter},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// FormKeyMap defines the shortcuts inside the vendor form and the other
// single-line prompts.
type FormKeyMap struct {
	Submit         key.Binding
	Cancel         key.Binding
	NextField      key.Binding
	PrevField      key.Binding
	ToggleOverride key.Binding
}

// DefaultFormKeyMap returns the default form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("Shift+Tab", "previous field"),
		),
		ToggleOverride: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", "allow long timers"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NextField, k.ToggleOverride}
}

// FullHelp returns all key bindings for the full help view.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel},
		{k.NextField, k.PrevField, k.ToggleOverride},
	}
}
