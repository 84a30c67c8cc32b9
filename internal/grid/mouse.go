package grid

import tea "github.com/charmbracelet/bubbletea"

const wheelStep = 3

// handleMouse takes absolute screen coordinates. While a drag is running
// every motion and release is consumed regardless of position.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.resize.Dragging() {
		switch msg.Action {
		case tea.MouseActionRelease:
			m.resize.End()
		case tea.MouseActionMotion:
			m.resize.MovePointer(msg.X, msg.Y)
			m.clampScroll()
		}
		return m, nil
	}

	x, y := msg.X-m.originX, msg.Y-m.originY
	if !m.Contains(msg.X, msg.Y) {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	header := headerCells(m.columns(), gutterWidth)
	bodyTop := toolbarLines + headerLines

	switch {
	case y == toolbarLines:
		kind, col := hitHeader(header, x)
		switch kind {
		case HitDivider:
			layout := m.layout
			m.resize.Begin(ResizeColumn, col, msg.X, layout.Width(col), func(delta int) {
				layout.ResizeColumn(col, delta)
			})
		case HitLabel:
			m.layout.ToggleAlignment(col)
		}
		return m, nil

	case y >= bodyTop && y < bodyTop+m.bodyHeight():
		offset := m.scroll + y - bodyTop
		if m.heights == nil || offset >= m.heights.Total() {
			return m, nil
		}
		idx := m.heights.FirstAtOrBelow(offset)
		if x < gutterWidth {
			if m.variable != nil {
				m.resize.Begin(ResizeRow, idx, msg.Y, m.variable.Height(idx), m.rowHeightApplier(idx))
			}
			return m, nil
		}
		col := ColumnAt(header, x)
		if col < 0 {
			return m, nil
		}
		m.cursorRow, m.cursorCol = idx, col
		cmd := m.SelectCell(idx, col)
		return m, cmd
	}
	return m, nil
}

// Contains reports whether an absolute screen position falls on the grid.
func (m Model) Contains(x, y int) bool {
	x, y = x-m.originX, y-m.originY
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}
