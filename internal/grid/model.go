package grid

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	toolbarLines = 1
	headerLines  = 1
	footerLines  = 1
	gutterWidth  = 1

	// DefaultOverscan is the number of extra rows materialized past each edge.
	DefaultOverscan = 18
)

// Options configure a grid instance.
type Options struct {
	Columns []ColumnDef
	// RowHeight is the uniform (and default) row height in lines.
	RowHeight int
	// VariableHeights enables per-row height adjustment.
	VariableHeights bool
	Overscan        int
	Debounce        time.Duration
	Truncate        int
	Facets          []Facet
	// ActivateColumn restricts OnActivate to selections in one column ID.
	// Empty means any column.
	ActivateColumn string
	// OnActivate is called when a cell is selected, and with a nil row when
	// the selection is toggled off.
	OnActivate func(row Row, col int) tea.Cmd
	// Resize is the drag session manager. Grids sharing a screen should share
	// one so only a single drag can ever be active.
	Resize    *ResizeManager
	Styles    *Styles
	KeyMap    *KeyMap
	EmptyText string
}

// YankMsg reports the result of copying a cell to the clipboard.
type YankMsg struct {
	Value string
	Err   error
}

// Model is a windowed data grid component.
type Model struct {
	opts   Options
	styles Styles
	keys   KeyMap

	layout   *Layout
	pipeline *Pipeline
	debounce *Debouncer
	resize   *ResizeManager

	input     textinput.Model
	filtering bool

	rows       []Row
	generation uint64
	filtered   []Row
	facetIdx   int

	heights    HeightModel
	variable   *VariableHeights
	live       *liveHeights
	rowHeights map[string]int

	selection Selection

	cursorRow int
	cursorCol int
	scroll    int
	colOffset int

	originX, originY int
	width, height    int
	focused          bool

	copy func(string) error
}

// New builds a grid.
func New(opts Options) Model {
	if opts.RowHeight < 1 {
		opts.RowHeight = 1
	}
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	if opts.Truncate <= 0 {
		opts.Truncate = DefaultTruncate
	}
	if opts.Resize == nil {
		opts.Resize = &ResizeManager{}
	}
	if opts.EmptyText == "" {
		opts.EmptyText = "No rows"
	}

	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "filter rows"
	input.CharLimit = 256

	m := Model{
		opts:       opts,
		styles:     styles,
		keys:       keys,
		layout:     NewLayout(opts.Columns),
		pipeline:   NewPipeline(),
		debounce:   NewDebouncer(opts.Debounce),
		resize:     opts.Resize,
		input:      input,
		facetIdx:   -1,
		live:       &liveHeights{},
		rowHeights: make(map[string]int),
		copy:       clipboard.WriteAll,
	}
	m.refilter()
	return m
}

// SetRows replaces the backing rows. Any fresh slice triggers a full
// re-filter and re-window; the selection follows its row key when the row
// survives.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	m.generation++
	m.pipeline.Purge()
	m.refilter()
}

// SetSize sets the grid's outer size in cells.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	m.clampScroll()
	m.revealCursorColumn()
}

// SetOrigin records the grid's top-left corner on screen so mouse events
// can be read in absolute coordinates.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// SetStyles swaps the drawing styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// Focus gives the grid keyboard input.
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard input and stops any filter editing.
func (m *Model) Blur() {
	m.focused = false
	if m.filtering {
		m.stopFiltering()
	}
}

// Focused reports whether the grid has keyboard input.
func (m Model) Focused() bool { return m.focused }

// Filtering reports whether the filter input is capturing keys.
func (m Model) Filtering() bool { return m.filtering }

// Close cancels pending debounce windows. Call it when discarding the grid.
func (m *Model) Close() {
	m.debounce.Cancel()
	m.resize.End()
}

// Layout exposes the column model.
func (m Model) Layout() *Layout { return m.layout }

// Rows returns the backing rows.
func (m Model) Rows() []Row { return m.rows }

// FilteredRows returns the rows after the text filter and facet.
func (m Model) FilteredRows() []Row { return m.filtered }

// Pipeline exposes the filter memo, mainly for inspection.
func (m Model) Pipeline() *Pipeline { return m.pipeline }

// Term returns the committed filter term.
func (m Model) Term() string { return m.debounce.Committed() }

// RawTerm returns the term as typed.
func (m Model) RawTerm() string { return m.debounce.Raw() }

// Selection returns the selection state.
func (m Model) Selection() Selection { return m.selection }

// SelectedRow returns the row holding the selected cell.
func (m Model) SelectedRow() (Row, bool) {
	row, _, ok := m.selection.Cell()
	if !ok || row < 0 || row >= len(m.filtered) {
		return nil, false
	}
	return m.filtered[row], true
}

// SelectedValue returns the full text of the selected cell.
func (m Model) SelectedValue() (string, bool) {
	row, col, ok := m.selection.Cell()
	if !ok || row < 0 || row >= len(m.filtered) || col < 0 || col >= m.layout.Len() {
		return "", false
	}
	return Stringify(cellValue(m.layout.Def(col), m.filtered[row])), true
}

// Cursor returns the focused filtered row and layout column.
func (m Model) Cursor() (row, col int) { return m.cursorRow, m.cursorCol }

// Facet returns the active facet, or nil.
func (m Model) Facet() *Facet {
	if m.facetIdx < 0 || m.facetIdx >= len(m.opts.Facets) {
		return nil
	}
	return &m.opts.Facets[m.facetIdx]
}

// Heights returns the current height model.
func (m Model) Heights() HeightModel { return m.heights }

// Scroll returns the vertical scroll offset in lines.
func (m Model) Scroll() int { return m.scroll }

// Window returns the rows the next render will materialize.
func (m Model) Window() Window {
	return ComputeWindowFor(m.heights, m.scroll, m.bodyHeight(), m.opts.Overscan)
}

// SetFilter sets and immediately commits a filter term.
func (m *Model) SetFilter(term string) {
	m.debounce.Input(term)
	if m.debounce.Flush() {
		m.refilter()
	}
	m.input.SetValue(term)
}

// CycleFacet moves to the next facet; after the last one the facet is off.
func (m *Model) CycleFacet() {
	if len(m.opts.Facets) == 0 {
		return
	}
	m.facetIdx++
	if m.facetIdx >= len(m.opts.Facets) {
		m.facetIdx = -1
	}
	m.refilter()
}

// SetFacetByLabel activates a facet by label; an unknown label turns it off.
func (m *Model) SetFacetByLabel(label string) {
	m.facetIdx = -1
	for i, f := range m.opts.Facets {
		if f.Label == label {
			m.facetIdx = i
			break
		}
	}
	m.refilter()
}

// SelectCell applies toggle-off selection and fires OnActivate.
func (m *Model) SelectCell(row, col int) tea.Cmd {
	if row < 0 || row >= len(m.filtered) || col < 0 || col >= m.layout.Len() {
		return nil
	}
	selected := m.selection.Select(row, col)
	if !selected {
		return m.activate(nil, col)
	}
	return m.activate(m.filtered[row], col)
}

func (m *Model) activate(row Row, col int) tea.Cmd {
	if m.opts.OnActivate == nil {
		return nil
	}
	if id := m.opts.ActivateColumn; id != "" && m.layout.Def(col).ID != id {
		return nil
	}
	return m.opts.OnActivate(row, col)
}

// ToggleColumn flips a column's visibility.
func (m *Model) ToggleColumn(i int) {
	m.layout.SetVisibility(i, !m.layout.Visible(i))
	if !m.layout.Visible(m.cursorCol) {
		m.moveCursorCol(0)
	}
}

// RestoreRowHeights seeds per-row heights by key (variable mode only).
func (m *Model) RestoreRowHeights(h map[string]int) {
	for k, v := range h {
		m.rowHeights[k] = v
	}
	m.rebuildHeights()
}

// Update handles keys, mouse events and debounce ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DebounceMsg:
		if m.debounce.Update(msg) {
			m.refilter()
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.filtering {
			return m.updateFilterInput(msg)
		}
		return m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	page := max(1, m.bodyHeight()/max(1, m.opts.RowHeight)-1)

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursorRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursorRow(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursorRow(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursorRow(page)
	case key.Matches(msg, m.keys.Top):
		m.moveCursorRow(-len(m.filtered))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursorRow(len(m.filtered))
	case key.Matches(msg, m.keys.Left):
		m.moveCursorCol(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursorCol(1)
	case key.Matches(msg, m.keys.ScrollLeft):
		m.scrollColumns(-1)
	case key.Matches(msg, m.keys.ScrollRight):
		m.scrollColumns(1)
	case key.Matches(msg, m.keys.Select):
		cmd := m.SelectCell(m.cursorRow, m.cursorCol)
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		cmd := m.startFiltering()
		return m, cmd
	case key.Matches(msg, m.keys.ClearFilter):
		if m.debounce.Raw() != "" || m.debounce.Committed() != "" {
			m.debounce.Reset()
			m.input.SetValue("")
			m.refilter()
		}
	case key.Matches(msg, m.keys.Facet):
		m.CycleFacet()
	case key.Matches(msg, m.keys.Align):
		m.layout.ToggleAlignment(m.cursorCol)
	case key.Matches(msg, m.keys.Wider):
		m.layout.ResizeColumn(m.cursorCol, 2)
	case key.Matches(msg, m.keys.Narrower):
		m.layout.ResizeColumn(m.cursorCol, -2)
	case key.Matches(msg, m.keys.Taller):
		m.adjustRowHeight(m.cursorRow, 1)
	case key.Matches(msg, m.keys.Shorter):
		m.adjustRowHeight(m.cursorRow, -1)
	case key.Matches(msg, m.keys.Yank):
		cmd := m.yank()
		return m, cmd
	}
	return m, nil
}

func (m *Model) startFiltering() tea.Cmd {
	m.filtering = true
	m.input.SetValue(m.debounce.Raw())
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopFiltering() {
	m.filtering = false
	m.input.Blur()
}

func (m Model) updateFilterInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ApplyFilter):
		m.stopFiltering()
		if m.debounce.Flush() {
			m.refilter()
		}
		return m, nil
	case key.Matches(msg, m.keys.CancelFilter):
		m.stopFiltering()
		m.debounce.Reset()
		m.input.SetValue("")
		m.refilter()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return m, tea.Batch(cmd, m.debounce.Input(after))
	}
	return m, cmd
}

func (m *Model) yank() tea.Cmd {
	value, ok := m.SelectedValue()
	if !ok {
		if m.cursorRow < 0 || m.cursorRow >= len(m.filtered) || m.cursorCol < 0 || m.cursorCol >= m.layout.Len() {
			return nil
		}
		value = Stringify(cellValue(m.layout.Def(m.cursorCol), m.filtered[m.cursorRow]))
	}
	write := m.copy
	return func() tea.Msg {
		return YankMsg{Value: value, Err: write(value)}
	}
}

func (m *Model) refilter() {
	selKey := m.keyAt(m.selectedIndex())
	cursorKey := m.keyAt(m.cursorRow)

	m.filtered = m.pipeline.Run(m.rows, m.generation, m.debounce.Committed(), m.opts.Facets, m.facetIdx)
	m.rebuildHeights()

	if selKey != "" {
		if idx := m.indexOfKey(selKey); idx >= 0 {
			_, col, _ := m.selection.Cell()
			m.selection = Selection{row: idx, col: col, set: true}
		} else {
			m.selection.Clear()
		}
	}
	if idx := m.indexOfKey(cursorKey); cursorKey != "" && idx >= 0 {
		m.cursorRow = idx
	}
	m.cursorRow = clampInt(m.cursorRow, 0, max(0, len(m.filtered)-1))
	m.clampScroll()
}

func (m Model) selectedIndex() int {
	row, _, ok := m.selection.Cell()
	if !ok {
		return -1
	}
	return row
}

func (m Model) keyAt(i int) string {
	if i < 0 || i >= len(m.filtered) || m.filtered[i] == nil {
		return ""
	}
	return m.filtered[i].Key()
}

func (m Model) indexOfKey(k string) int {
	if k == "" {
		return -1
	}
	for i, row := range m.filtered {
		if row != nil && row.Key() == k {
			return i
		}
	}
	return -1
}

func (m *Model) rebuildHeights() {
	n := len(m.filtered)
	if !m.opts.VariableHeights {
		m.variable = nil
		m.live.v, m.live.rows = nil, nil
		m.heights = UniformHeights{N: n, RowHeight: m.opts.RowHeight}
		return
	}
	v := NewVariableHeights(n, m.opts.RowHeight)
	if len(m.rowHeights) > 0 {
		for i, row := range m.filtered {
			if row == nil {
				continue
			}
			if h, ok := m.rowHeights[row.Key()]; ok {
				v.SetHeight(i, h)
			}
		}
	}
	m.variable = v
	m.live.v, m.live.rows = v, m.filtered
	m.heights = v
}

func (m *Model) adjustRowHeight(i, delta int) {
	if m.variable == nil || i < 0 || i >= len(m.filtered) {
		return
	}
	m.rowHeightApplier(i)(delta)
	m.clampScroll()
}

// liveHeights is the height model of the latest refilter, shared by every
// copy of a Model so a drag outlives a rebuild.
type liveHeights struct {
	v    *VariableHeights
	rows []Row
}

func (l *liveHeights) indexOf(k string) int {
	for i, row := range l.rows {
		if row != nil && row.Key() == k {
			return i
		}
	}
	return -1
}

// rowHeightApplier returns a delta func for the row at i. The row is looked
// up by key in the live height model on every call.
func (m *Model) rowHeightApplier(i int) func(int) {
	live, heights := m.live, m.rowHeights
	k := m.keyAt(i)
	return func(delta int) {
		v := live.v
		if v == nil {
			return
		}
		idx := i
		if k != "" {
			if idx = live.indexOf(k); idx < 0 {
				return
			}
		}
		h := v.SetHeight(idx, v.Height(idx)+delta)
		if k != "" {
			heights[k] = h
		}
	}
}

func (m *Model) moveCursorRow(delta int) {
	if len(m.filtered) == 0 {
		m.cursorRow = 0
		return
	}
	m.cursorRow = clampInt(m.cursorRow+delta, 0, len(m.filtered)-1)
	m.scroll = ScrollToReveal(m.heights, m.cursorRow, m.scroll, m.bodyHeight())
	m.clampScroll()
}

func (m *Model) moveCursorCol(delta int) {
	vis := m.layout.VisibleIndexes()
	if len(vis) == 0 {
		return
	}
	pos := 0
	for i, idx := range vis {
		if idx <= m.cursorCol {
			pos = i
		}
	}
	pos = clampInt(pos+delta, 0, len(vis)-1)
	m.cursorCol = vis[pos]
	m.revealCursorColumn()
}

func (m *Model) scrollColumns(delta int) {
	n := len(m.layout.VisibleIndexes())
	m.colOffset = clampInt(m.colOffset+delta, 0, max(0, n-1))
}

// revealCursorColumn adjusts the column offset so the cursor column is drawn.
func (m *Model) revealCursorColumn() {
	vis := m.layout.VisibleIndexes()
	pos := -1
	for i, idx := range vis {
		if idx == m.cursorCol {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}
	if pos < m.colOffset {
		m.colOffset = pos
		return
	}
	for m.colOffset < pos {
		shown := false
		for _, c := range m.columns() {
			if c.Index == m.cursorCol {
				shown = true
				break
			}
		}
		if shown {
			return
		}
		m.colOffset++
	}
}

func (m *Model) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.heights == nil {
		m.scroll = 0
		return
	}
	m.scroll = clampInt(m.scroll, 0, MaxScroll(m.heights, m.bodyHeight()))
}

func (m Model) bodyHeight() int {
	return max(0, m.height-toolbarLines-headerLines-footerLines)
}

// columns returns the visible columns after horizontal scroll, cropped to
// the grid width.
func (m Model) columns() []ResolvedColumn {
	avail := m.width - gutterWidth
	all := m.layout.Resolve(avail)
	off := clampInt(m.colOffset, 0, max(0, len(all)-1))
	if off < len(all) {
		all = all[off:]
	}
	out := make([]ResolvedColumn, 0, len(all))
	x := 0
	for _, c := range all {
		if x >= avail {
			break
		}
		if x+c.Width > avail {
			c.Width = avail - x
		}
		out = append(out, c)
		x += c.Width + 1
	}
	return out
}

func (m Model) frame() Frame {
	return Render(RenderInput{
		Rows:      m.filtered,
		Columns:   m.columns(),
		Heights:   m.heights,
		Scroll:    m.scroll,
		Viewport:  m.bodyHeight(),
		Overscan:  m.opts.Overscan,
		Truncate:  m.opts.Truncate,
		Selection: m.selection,
		Gutter:    gutterWidth,
	})
}
