package grid

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the grid's keyboard bindings.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	ScrollLeft   key.Binding
	ScrollRight  key.Binding
	Select       key.Binding
	Filter       key.Binding
	ClearFilter  key.Binding
	Facet        key.Binding
	Align        key.Binding
	Wider        key.Binding
	Narrower     key.Binding
	Taller       key.Binding
	Shorter      key.Binding
	Yank         key.Binding
	ApplyFilter  key.Binding
	CancelFilter key.Binding
}

// DefaultKeyMap returns the default grid bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next column"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		ScrollLeft: key.NewBinding(
			key.WithKeys("h", "shift+left"),
			key.WithHelp("h", "Scroll columns left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("l", "shift+right"),
			key.WithHelp("l", "Scroll columns right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Select cell"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter rows"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear filter"),
		),
		Facet: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle facet"),
		),
		Align: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle alignment"),
		),
		Wider: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "Widen column"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "Narrow column"),
		),
		Taller: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Taller row"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Shorter row"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy cell"),
		),
		ApplyFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply filter"),
		),
		CancelFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel filter"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Facet, k.Select}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Left, k.Right, k.ScrollLeft, k.ScrollRight},
		{k.Select, k.Yank, k.Filter, k.ClearFilter, k.Facet},
		{k.Align, k.Wider, k.Narrower, k.Taller, k.Shorter},
	}
}
