package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sitelens/internal/logtail"
)

// logLinesMsg carries the tail of the log file.
type logLinesMsg struct {
	lines []string
	err   error
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogPanelLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// logPanel shows the sitelens log, newest line at the bottom.
type logPanel struct {
	path    string
	theme   Theme
	entries []logtail.Entry
	err     error
	loaded  bool
	vp      viewport.Model
	width   int
}

func newLogPanel(path string, theme Theme, width, height int) logPanel {
	p := logPanel{path: path, theme: theme, vp: viewport.New(0, 0)}
	p.resize(width, height)
	return p
}

func (p *logPanel) resize(width, height int) {
	p.width = max(20, width-8)
	p.vp.Width = p.width - 6
	p.vp.Height = max(3, height-12)
	p.refresh()
}

func (p *logPanel) refresh() {
	styles := p.theme.Styles()
	var body strings.Builder
	switch {
	case p.err != nil:
		body.WriteString(styles.DangerText.Render(p.err.Error()))
	case !p.loaded:
		body.WriteString(styles.MutedText.Render("Loading…"))
	case len(p.entries) == 0:
		body.WriteString(styles.MutedText.Render("Log is empty"))
	default:
		for i, e := range p.entries {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(renderLogEntry(styles, e, p.vp.Width))
		}
	}
	p.vp.SetContent(body.String())
	p.vp.GotoBottom()
}

// Update implements Modal.
func (p logPanel) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case logLinesMsg:
		p.err = msg.err
		p.entries = make([]logtail.Entry, 0, len(msg.lines))
		for _, line := range msg.lines {
			p.entries = append(p.entries, logtail.Parse(line))
		}
		p.loaded = true
		p.refresh()
	case tea.WindowSizeMsg:
		p.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Close), key.Matches(msg, keys.Logs), key.Matches(msg, keys.Quit):
			return p, nil, true
		case key.Matches(msg, keys.Reload):
			return p, readLogCmd(p.path), false
		case key.Matches(msg, keys.Up):
			p.vp.LineUp(1)
		case key.Matches(msg, keys.Down):
			p.vp.LineDown(1)
		case msg.String() == "g":
			p.vp.GotoTop()
		case msg.String() == "G":
			p.vp.GotoBottom()
		}
	}
	return p, nil, false
}

// View implements Modal.
func (p logPanel) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Log"))
	b.WriteString(styles.MutedText.Render("  " + truncateMiddle(p.path, max(10, p.vp.Width-6))))
	b.WriteString("\n\n")
	b.WriteString(p.vp.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("j/k scroll · r reload · esc close"))
	return placeModal(theme, width, height, p.width, b.String())
}

func renderLogEntry(styles Styles, e logtail.Entry, width int) string {
	var level string
	switch e.Level {
	case logtail.LevelDebug:
		level = styles.FaintText.Render("DEBU")
	case logtail.LevelInfo:
		level = styles.InfoText.Render("INFO")
	case logtail.LevelWarn:
		level = styles.WarningText.Render("WARN")
	case logtail.LevelError:
		level = styles.DangerText.Render("ERRO")
	default:
		return styles.MutedText.Render(truncate(e.Raw, width))
	}
	prefix := ""
	if e.Time != "" {
		prefix = styles.FaintText.Render(e.Time) + " "
	}
	return prefix + level + " " + styles.Text.Render(truncate(e.Message, max(1, width-len(e.Time)-6)))
}
