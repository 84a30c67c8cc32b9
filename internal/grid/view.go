package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the grid: toolbar, header, windowed body and footer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	frame := m.frame()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.toolbarView())
	lines = append(lines, m.headerView(frame))
	lines = append(lines, m.bodyView(frame)...)
	lines = append(lines, m.footerView())
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) toolbarView() string {
	var left string
	switch {
	case m.filtering:
		left = m.input.View()
	case m.debounce.Raw() != "":
		left = m.styles.Toolbar.Render("/ " + m.debounce.Raw())
		if m.debounce.Raw() != m.debounce.Committed() {
			left += m.styles.Muted.Render(" …")
		}
	default:
		left = m.styles.Muted.Render("/ filter")
	}

	right := fmt.Sprintf("%d of %d", len(m.filtered), len(m.rows))
	if f := m.Facet(); f != nil {
		right = f.Label + " · " + right
	}
	right = m.styles.Muted.Render(right)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return fitStyled(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) headerView(frame Frame) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for _, c := range frame.Header {
		b.WriteString(m.styles.Header.Render(fit(c.Title, c.Width, c.Align)))
		b.WriteString(m.styles.Divider.Render("│"))
	}
	return fitStyled(b.String(), m.width)
}

func (m Model) bodyView(frame Frame) []string {
	h := m.bodyHeight()
	lines := make([]string, h)
	if h == 0 {
		return lines
	}

	if frame.Empty {
		lines[0] = m.styles.Empty.Render(fit(m.emptyText(), max(0, m.width), AlignLeft))
		return lines
	}

	for _, rr := range frame.Rows {
		rowLines := m.rowLines(rr)
		for li, text := range rowLines {
			y := rr.Offset + li - m.scroll
			if y < 0 || y >= h {
				continue
			}
			lines[y] = text
		}
	}
	return lines
}

func (m Model) emptyText() string {
	switch {
	case len(m.rows) == 0:
		return m.opts.EmptyText
	case m.debounce.Committed() != "":
		return fmt.Sprintf("No rows match %q", m.debounce.Committed())
	case m.Facet() != nil:
		return "No rows in " + m.Facet().Label
	default:
		return m.opts.EmptyText
	}
}

func (m Model) rowLines(rr RenderedRow) []string {
	base := m.styles.Cell
	if rr.Odd {
		base = m.styles.Stripe
	}
	if rr.Selected {
		base = m.styles.SelectedRow
	}
	cursorRow := m.focused && rr.Index == m.cursorRow

	wrapped := make([][]string, len(rr.Cells))
	for i, c := range rr.Cells {
		wrapped[i] = wrapCell(c.Text, c.Width, rr.Height)
	}

	out := make([]string, rr.Height)
	for li := 0; li < rr.Height; li++ {
		var b strings.Builder
		gutter := " "
		if cursorRow && li == 0 {
			gutter = "▌"
		}
		b.WriteString(m.styles.Gutter.Render(gutter))
		for i, c := range rr.Cells {
			style := base
			if c.Selected {
				style = m.styles.Selected
			}
			if cursorRow && c.Column == m.cursorCol {
				style = style.Inherit(m.styles.Cursor)
			}
			b.WriteString(style.Render(fit(wrapped[i][li], c.Width, c.Align)))
			b.WriteString(m.styles.Divider.Render("│"))
		}
		out[li] = b.String()
	}
	return out
}

// footerView shows the cursor position and the full value of the focused
// cell, which is the only way to read a truncated value.
func (m Model) footerView() string {
	pos := "-"
	if len(m.filtered) > 0 {
		pos = fmt.Sprintf("%d/%d", m.cursorRow+1, len(m.filtered))
	}
	left := m.styles.Muted.Render(pos + " │ ")

	value := ""
	if m.cursorRow >= 0 && m.cursorRow < len(m.filtered) && m.cursorCol >= 0 && m.cursorCol < m.layout.Len() {
		def := m.layout.Def(m.cursorCol)
		title := def.Title
		if title == "" {
			title = def.ID
		}
		value = title + ": " + Stringify(cellValue(def, m.filtered[m.cursorRow]))
	}
	avail := m.width - lipgloss.Width(left)
	if avail <= 0 {
		return fitStyled(left, m.width)
	}
	return left + m.styles.Disclosure.Render(runewidth.Truncate(sanitize(value), avail, ellipsis))
}

// fit pads or cuts s to exactly width cells with the given alignment.
func fit(s string, width int, align Alignment) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(sanitize(s), width, ellipsis)
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// wrapCell breaks s into exactly lines rows of at most width cells. The last
// line ends with an ellipsis when text remains.
func wrapCell(s string, width, lines int) []string {
	out := make([]string, lines)
	if lines <= 0 {
		return out
	}
	s = sanitize(s)
	if lines == 1 || width <= 0 {
		out[0] = s
		return out
	}

	var cur strings.Builder
	curW, li := 0, 0
	runes := []rune(s)
	for i, r := range runes {
		rw := runewidth.RuneWidth(r)
		if curW+rw > width {
			out[li] = cur.String()
			li++
			cur.Reset()
			curW = 0
			if li == lines-1 {
				out[li] = runewidth.Truncate(string(runes[i:]), width, ellipsis)
				return out
			}
		}
		cur.WriteRune(r)
		curW += rw
	}
	out[li] = cur.String()
	return out
}

func sanitize(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}

func fitStyled(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(s)
	}
	return s + strings.Repeat(" ", width-w)
}
