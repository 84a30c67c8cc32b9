package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sitelens/internal/export"
)

// saveChosenMsg is sent when the save prompt is confirmed.
type saveChosenMsg struct {
	job  *export.Job
	path string
}

// savePrompt asks where to write an export. It owns the job until it
// closes: confirming hands the job on, anything else cancels it.
type savePrompt struct {
	job   *export.Job
	input textinput.Model
}

func newSavePrompt(job *export.Job, dir string) savePrompt {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 1024
	input.SetValue(filepath.Join(dir, job.SuggestedName()))
	input.CursorEnd()
	input.Focus()
	return savePrompt{job: job, input: input}
}

// Update implements Modal.
func (p savePrompt) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd, false
	}
	switch {
	case keyMsg.Type == tea.KeyCtrlC, keyMsg.Type == tea.KeyEsc:
		p.job.Cancel()
		return p, nil, true
	case keyMsg.Type == tea.KeyEnter:
		path := strings.TrimSpace(p.input.Value())
		if path == "" {
			p.job.Cancel()
			return p, nil, true
		}
		job := p.job
		return p, func() tea.Msg { return saveChosenMsg{job: job, path: path} }, true
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(keyMsg)
	return p, cmd, false
}

// View implements Modal.
func (p savePrompt) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Export " + strings.ToUpper(string(p.job.Format()))))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s %s", groupDigits(p.job.Rows()), plural(p.job.Rows(), "row"))))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter save · esc cancel"))
	return placeModal(theme, width, height, 72, b.String())
}
