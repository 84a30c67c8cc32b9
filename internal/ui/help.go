package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sitelens/internal/grid"
	"github.com/five82/sitelens/internal/workspace"
)

type helpSection struct {
	title string
	items []key.Binding
}

// helpOverlay lists every binding. Any key closes it.
type helpOverlay struct {
	sections []helpSection
}

func newHelpOverlay(keys keyMap, gridKeys grid.KeyMap, wsKeys workspace.KeyMap) helpOverlay {
	gh := gridKeys.FullHelp()
	return helpOverlay{sections: []helpSection{
		{title: "Navigation", items: append(gh[0], gh[1]...)},
		{title: "Cells", items: append(gh[2], gh[3]...)},
		{title: "Panes", items: []key.Binding{
			wsKeys.SwitchPane, wsKeys.PrevTab, wsKeys.NextTab,
			wsKeys.TabRecord, wsKeys.TabLinks, wsKeys.TabImages, wsKeys.TabRes,
			wsKeys.GrowPane, wsKeys.ShrinkPane,
		}},
		{title: "General", items: append(keys.FullHelp()[0], keys.FullHelp()[1]...)},
	}}
}

// Update implements Modal.
func (h helpOverlay) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return h, nil, true
	}
	return h, nil, false
}

// View implements Modal.
func (h helpOverlay) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)).Width(10)

	columns := make([]string, 0, 2)
	var col strings.Builder
	for i, section := range h.sections {
		col.WriteString(styles.AccentText.Bold(true).Render(section.title))
		col.WriteString("\n")
		for _, b := range section.items {
			hk := b.Help()
			col.WriteString(keyStyle.Render(hk.Key))
			col.WriteString(styles.Text.Render(hk.Desc))
			col.WriteString("\n")
		}
		// Two sections per column.
		if i%2 == 1 || i == len(h.sections)-1 {
			columns = append(columns, lipgloss.NewStyle().Width(34).Render(strings.TrimRight(col.String(), "\n")))
			col.Reset()
		} else {
			col.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	return placeModal(theme, width, height, 76, b.String())
}
