package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sitelens/internal/grid"
)

// toggleColumnMsg asks the root model to flip a master column's visibility.
type toggleColumnMsg struct {
	index int
}

// columnPicker lists the master columns with their visibility.
type columnPicker struct {
	layout *grid.Layout
	cursor int
}

func newColumnPicker(layout *grid.Layout) columnPicker {
	return columnPicker{layout: layout}
}

// Update implements Modal.
func (p columnPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	n := p.layout.Len()
	switch {
	case key.Matches(keyMsg, keys.Close), key.Matches(keyMsg, keys.Columns), key.Matches(keyMsg, keys.Quit):
		return p, nil, true
	case key.Matches(keyMsg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if p.cursor < n-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, keys.Toggle), key.Matches(keyMsg, keys.Confirm):
		if n == 0 {
			return p, nil, false
		}
		i := p.cursor
		return p, func() tea.Msg { return toggleColumnMsg{index: i} }, false
	}
	return p, nil, false
}

// View implements Modal.
func (p columnPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Columns"))
	b.WriteString("\n\n")
	for i := 0; i < p.layout.Len(); i++ {
		def := p.layout.Def(i)
		mark := "[ ]"
		if p.layout.Visible(i) {
			mark = "[x]"
		}
		line := mark + " " + def.Title
		if i == p.cursor {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("space toggle · esc close"))
	return placeModal(theme, width, height, 40, b.String())
}
