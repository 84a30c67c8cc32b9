package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the application-level bindings. Grid and workspace
// bindings live with their components.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Export     key.Binding
	Scope      key.Binding
	Columns    key.Binding
	Logs       key.Binding
	Reload     key.Binding

	// Modal navigation
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Close   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export rows"),
		),
		Scope: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Export all/filtered"),
		),
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Choose columns"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Show log"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "Reload rows"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Export, k.Columns, k.Logs, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Export, k.Scope, k.Columns, k.Reload},
		{k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
