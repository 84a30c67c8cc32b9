package grid

import "github.com/charmbracelet/lipgloss"

// Styles controls how a grid is drawn.
type Styles struct {
	Toolbar     lipgloss.Style
	Muted       lipgloss.Style
	Header      lipgloss.Style
	Divider     lipgloss.Style
	Cell        lipgloss.Style
	Stripe      lipgloss.Style
	Cursor      lipgloss.Style
	SelectedRow lipgloss.Style
	Selected    lipgloss.Style
	Gutter      lipgloss.Style
	Empty       lipgloss.Style
	Disclosure  lipgloss.Style
}

// DefaultStyles returns a palette that works on dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Toolbar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bd93f9")),
		Divider:     lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")),
		Cell:        lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")),
		Stripe:      lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")).Background(lipgloss.Color("#21222c")),
		Cursor:      lipgloss.NewStyle().Underline(true),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")).Background(lipgloss.Color("#44475a")),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#282a36")).Background(lipgloss.Color("#50fa7b")),
		Gutter:      lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")),
		Empty:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6272a4")),
		Disclosure:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")),
	}
}
