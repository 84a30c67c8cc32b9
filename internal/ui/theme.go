package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sitelens/internal/grid"
	"github.com/five82/sitelens/internal/workspace"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Striped rows
	FocusBg    string // Focus/active states

	// Selection colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(1, 2),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Modal    lipgloss.Style
}

// WithBackground returns a copy of Styles whose text styles carry bgColor,
// so segments joined on a bar keep an unbroken background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// GridStyles maps the theme onto grid styles.
func (t Theme) GridStyles() grid.Styles {
	return grid.Styles{
		Toolbar:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent)),
		Divider:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		Cell:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Stripe:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.SurfaceAlt)),
		Cursor:      lipgloss.NewStyle().Underline(true),
		SelectedRow: lipgloss.NewStyle().Foreground(lipgloss.Color(t.SelectionText)).Background(lipgloss.Color(t.SelectionBg)),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Background)).Background(lipgloss.Color(t.Accent)),
		Gutter:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Empty:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(t.Muted)),
		Disclosure:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
	}
}

// WorkspaceStyles maps the theme onto the pane divider and tab bar.
func (t Theme) WorkspaceStyles() workspace.Styles {
	return workspace.Styles{
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Border)),
		DividerActive: lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocus)),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Background)).Background(lipgloss.Color(t.Accent)),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
	}
}

// StatusClassStyle colors an HTTP status by class.
func (t Theme) StatusClassStyle(status int) lipgloss.Style {
	color := t.Muted
	switch {
	case status >= 500:
		color = t.Danger
	case status >= 400:
		color = t.Warning
	case status >= 300:
		color = t.Info
	case status >= 200:
		color = t.Success
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderMuted: "#212e3f", // bg2
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4
		FocusBg:    "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderMuted: "#2A2A37", // sumiInk4
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
