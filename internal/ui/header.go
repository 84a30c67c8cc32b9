package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/sitelens/internal/backend"
)

// renderHeader renders the status bar: source, row counts, the active
// filter and the crawl or connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	master := m.ws.Master()
	total := len(master.Rows())
	shown := len(master.FilteredRows())

	rows := groupDigits(total) + " " + plural(total, "row")
	if shown != total {
		rows = groupDigits(shown) + "/" + rows
	}

	parts := []string{
		bg.Render("sitelens", styles.Logo),
		bg.Render(rows, styles.Text.Bold(true)),
	}
	if f := master.Facet(); f != nil {
		parts = append(parts, bg.Render("facet", styles.FaintText)+bg.Space()+bg.Render(f.Label, styles.AccentText))
	}
	if term := master.Term(); term != "" {
		parts = append(parts, bg.Render("filter", styles.FaintText)+bg.Space()+bg.Render(truncate(term, 24), styles.AccentText))
	}
	if status := m.crawlStatus(styles, bg); status != "" {
		parts = append(parts, status)
	}
	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render("export", styles.FaintText)+bg.Space()+bg.Render(string(m.scope), styles.MutedText))
		if src := m.snapshot.Source; src != "" {
			parts = append(parts, bg.Render(truncateMiddle(src, 40), styles.MutedText))
		}
	}
	if m.exporting {
		parts = append(parts, bg.Render("Exporting…", styles.WarningText))
	}
	if m.snapshot.LastError != nil {
		label := classifyLoadError(m.snapshot.LastError)
		style := styles.WarningText
		if m.snapshot.IsOffline() {
			style = styles.DangerText
		}
		parts = append(parts, bg.Render(label, style))
		if !m.snapshot.LastUpdated.IsZero() {
			parts = append(parts, bg.Render("last "+m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
		}
	}

	return styles.Header.Width(m.width).MaxWidth(m.width).Render(bg.Join(parts, sep))
}

// crawlStatus summarizes the backend crawl, if the backend reported one.
func (m Model) crawlStatus(styles Styles, bg BgStyle) string {
	if !m.snapshot.HasStatus {
		return ""
	}
	st := m.snapshot.Status
	state := bg.Render("IDLE", styles.MutedText)
	if st.Running {
		state = bg.Render("CRAWLING", styles.SuccessText)
	}
	counts := fmt.Sprintf("%s crawled", groupDigits(st.Crawled))
	if st.Queued > 0 {
		counts += fmt.Sprintf(" · %s queued", groupDigits(st.Queued))
	}
	out := state + bg.Space() + bg.Render(counts, styles.Text)
	if st.Errors > 0 {
		out += bg.Space() + bg.Render(fmt.Sprintf("%d %s", st.Errors, plural(st.Errors, "error")), styles.DangerText)
	}
	return out
}

// classifyLoadError turns a row source failure into a short header label.
func classifyLoadError(err error) string {
	if err == nil {
		return ""
	}
	var se *backend.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("HTTP %d", se.Code)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "no such file"):
		return "FILE MISSING"
	case strings.Contains(msg, "decode"), strings.Contains(msg, "parse"):
		return "BAD DATA"
	default:
		return "ERROR"
	}
}
