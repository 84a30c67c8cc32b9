// Package workspace pairs the master crawl grid with tabbed detail grids in a
// resizable vertical split.
package workspace

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sitelens/internal/grid"
)

// Pane identifies which grid has keyboard focus.
type Pane int

const (
	PaneMaster Pane = iota
	PaneDetail
)

// Options configure a workspace.
type Options struct {
	// Master is the master grid template. Its Resize and OnActivate fields
	// are replaced.
	Master grid.Options
	// Detail carries shared settings for detail grids; Columns, Facets and
	// OnActivate are ignored.
	Detail  grid.Options
	MinPane int
	// Bottom is the initial detail pane height; zero picks a third.
	Bottom int
	Styles *Styles
	Keys   *KeyMap
}

// Styles draws the divider and tab bar.
type Styles struct {
	Divider       lipgloss.Style
	DividerActive lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	Muted         lipgloss.Style
}

// DefaultStyles returns plain styles for dark terminals.
func DefaultStyles() Styles {
	return Styles{
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("#44475a")),
		DividerActive: lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")),
		Tab:           lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#282a36")).Background(lipgloss.Color("#bd93f9")),
		Muted:         lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
	}
}

// KeyMap holds workspace-level bindings.
type KeyMap struct {
	SwitchPane key.Binding
	PrevTab    key.Binding
	NextTab    key.Binding
	TabRecord  key.Binding
	TabLinks   key.Binding
	TabImages  key.Binding
	TabRes     key.Binding
	GrowPane   key.Binding
	ShrinkPane key.Binding
}

// DefaultKeyMap returns the default workspace bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch pane"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next tab"),
		),
		TabRecord: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Record tab")),
		TabLinks:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Links tab")),
		TabImages: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Images tab")),
		TabRes:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "Resources tab")),
		GrowPane: key.NewBinding(
			key.WithKeys("K", "ctrl+up"),
			key.WithHelp("K", "Grow detail pane"),
		),
		ShrinkPane: key.NewBinding(
			key.WithKeys("J", "ctrl+down"),
			key.WithHelp("J", "Shrink detail pane"),
		),
	}
}

// activatedMsg carries a master selection change to the detail tabs. A nil
// row means the selection was cleared.
type activatedMsg struct {
	row grid.Row
}

// Model is the master/detail workspace.
type Model struct {
	resize  *grid.ResizeManager
	master  grid.Model
	details []grid.Model
	split   *grid.Split

	tab      Tab
	focus    Pane
	selected grid.Row

	styles Styles
	keys   KeyMap

	wantBottom       int
	sized            bool
	width, height    int
	originX, originY int
}

// New builds a workspace.
func New(opts Options) Model {
	rm := &grid.ResizeManager{}

	master := opts.Master
	master.Resize = rm
	master.OnActivate = func(row grid.Row, _ int) tea.Cmd {
		return func() tea.Msg { return activatedMsg{row: row} }
	}

	details := make([]grid.Model, len(tabSpecs))
	for i, spec := range tabSpecs {
		d := opts.Detail
		d.Columns = spec.columns
		d.Facets = nil
		d.OnActivate = nil
		d.ActivateColumn = ""
		d.Resize = rm
		d.EmptyText = spec.empty
		details[i] = grid.New(d)
	}

	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}

	m := Model{
		resize:     rm,
		master:     grid.New(master),
		details:    details,
		split:      grid.NewSplit(0, 0, opts.MinPane),
		styles:     styles,
		keys:       keys,
		wantBottom: opts.Bottom,
	}
	m.master.Focus()
	return m
}

// SetRows hands a fresh row slice to the master grid. The detail tabs follow
// the selected row's new data, or clear when it disappeared.
func (m *Model) SetRows(rows []grid.Row) {
	m.master.SetRows(rows)
	if row, ok := m.master.SelectedRow(); ok {
		m.selected = row
	} else {
		m.selected = nil
	}
	m.rebuildDetails()
}

// SetSize sets the workspace size in cells.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	container := max(0, m.height-1)
	m.split.SetContainer(container)
	if !m.sized {
		want := m.wantBottom
		if want <= 0 {
			want = container / 3
		}
		m.split.SetBottom(want)
		m.sized = true
	}
	m.relayout()
}

// SetOrigin records the workspace's top-left corner on screen.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
	m.relayout()
}

// SetStyles updates workspace and grid styles.
func (m *Model) SetStyles(s Styles, g grid.Styles) {
	m.styles = s
	m.master.SetStyles(g)
	for i := range m.details {
		m.details[i].SetStyles(g)
	}
}

// Close cancels pending filter windows and any drag.
func (m *Model) Close() {
	m.master.Close()
	for i := range m.details {
		m.details[i].Close()
	}
	m.resize.End()
}

// Master returns the master grid.
func (m Model) Master() grid.Model { return m.master }

// Detail returns the grid of the active tab.
func (m Model) Detail() grid.Model { return m.details[m.tab] }

// Selected returns the master row the detail tabs describe.
func (m Model) Selected() grid.Row { return m.selected }

// Tab returns the active detail tab.
func (m Model) Tab() Tab { return m.tab }

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Split exposes the pane split.
func (m Model) Split() *grid.Split { return m.split }

// Resize exposes the shared drag manager.
func (m Model) Resize() *grid.ResizeManager { return m.resize }

// Filtering reports whether the focused grid is editing its filter.
func (m Model) Filtering() bool {
	return m.focusedGrid().Filtering()
}

// SetTab switches the detail tab. The master selection is untouched.
func (m *Model) SetTab(t Tab) {
	if t < 0 || int(t) >= len(m.details) {
		return
	}
	m.tab = t
	m.applyFocus()
}

// SetFocus moves keyboard focus.
func (m *Model) SetFocus(p Pane) {
	m.focus = p
	m.applyFocus()
}

// CycleFacet advances the master grid facet.
func (m *Model) CycleFacet() {
	m.master.CycleFacet()
	m.syncSelected()
}

// SetFacet activates a master facet by label; an unknown label turns the
// facet off.
func (m *Model) SetFacet(label string) {
	m.master.SetFacetByLabel(label)
	m.syncSelected()
}

// ToggleColumn flips a master column's visibility.
func (m *Model) ToggleColumn(i int) { m.master.ToggleColumn(i) }

// Update routes keys to the focused grid and mouse events by position.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activatedMsg:
		m.selected = msg.row
		m.rebuildDetails()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case grid.DebounceMsg:
		var cmd tea.Cmd
		m.master, cmd = m.master.Update(msg)
		m.syncSelected()
		for i := range m.details {
			m.details[i], _ = m.details[i].Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		if !m.Filtering() {
			if handled := m.handleKey(msg); handled {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == PaneDetail {
		m.details[m.tab], cmd = m.details[m.tab].Update(msg)
	} else {
		m.master, cmd = m.master.Update(msg)
		m.syncSelected()
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == PaneMaster {
			m.SetFocus(PaneDetail)
		} else {
			m.SetFocus(PaneMaster)
		}
	case key.Matches(msg, m.keys.PrevTab):
		m.SetTab((m.tab + Tab(len(m.details)) - 1) % Tab(len(m.details)))
	case key.Matches(msg, m.keys.NextTab):
		m.SetTab((m.tab + 1) % Tab(len(m.details)))
	case key.Matches(msg, m.keys.TabRecord):
		m.SetTab(TabRecord)
	case key.Matches(msg, m.keys.TabLinks):
		m.SetTab(TabLinks)
	case key.Matches(msg, m.keys.TabImages):
		m.SetTab(TabImages)
	case key.Matches(msg, m.keys.TabRes):
		m.SetTab(TabResources)
	case key.Matches(msg, m.keys.GrowPane):
		m.split.Drag(-1)
		m.relayout()
	case key.Matches(msg, m.keys.ShrinkPane):
		m.split.Drag(1)
		m.relayout()
	default:
		return false
	}
	return true
}

// handleMouse takes absolute coordinates. A running drag owns every motion
// and release wherever the pointer is.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.resize.Dragging() {
		switch msg.Action {
		case tea.MouseActionRelease:
			m.resize.End()
		case tea.MouseActionMotion:
			m.resize.MovePointer(msg.X, msg.Y)
		}
		m.relayout()
		return m, nil
	}

	x, y := msg.X-m.originX, msg.Y-m.originY
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && x >= 0 && x < m.width {
		switch y {
		case m.dividerRow():
			split := m.split
			m.resize.Begin(grid.ResizePane, 0, msg.Y, split.Bottom(), func(delta int) {
				split.Drag(delta)
			})
			return m, nil
		case m.tabRow():
			if t, ok := m.tabAt(x); ok {
				m.SetTab(t)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case m.master.Contains(msg.X, msg.Y):
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.SetFocus(PaneMaster)
		}
		m.master, cmd = m.master.Update(msg)
	case m.details[m.tab].Contains(msg.X, msg.Y):
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.SetFocus(PaneDetail)
		}
		m.details[m.tab], cmd = m.details[m.tab].Update(msg)
	}
	return m, cmd
}

// View renders master, divider, tab bar and the active detail grid.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	parts := []string{}
	if m.split.Top() > 0 {
		parts = append(parts, m.master.View())
	}
	parts = append(parts, m.dividerView())
	if m.split.Bottom() > 0 {
		parts = append(parts, m.tabBarView())
	}
	if m.split.Bottom() > 1 {
		parts = append(parts, m.details[m.tab].View())
	}
	return strings.Join(parts, "\n")
}

func (m Model) dividerView() string {
	style := m.styles.Divider
	if m.resize.DraggingKind(grid.ResizePane) {
		style = m.styles.DividerActive
	}
	line := strings.Repeat("─", m.width)
	if m.width >= 7 {
		mid := m.width/2 - 3
		line = strings.Repeat("─", mid) + " ═══ " + strings.Repeat("─", m.width-mid-5)
	}
	return style.Render(line)
}

func (m Model) tabBarView() string {
	var b strings.Builder
	for i, spec := range tabSpecs {
		label := " " + spec.name + " "
		if Tab(i) == m.tab {
			b.WriteString(m.styles.TabActive.Render(label))
		} else {
			b.WriteString(m.styles.Tab.Render(label))
		}
		b.WriteString(" ")
	}
	if m.selected != nil {
		b.WriteString(m.styles.Muted.Render(m.selected.Key()))
	}
	line := b.String()
	if w := lipgloss.Width(line); w > m.width {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}

// tabAt maps an x offset on the tab bar to a tab.
func (m Model) tabAt(x int) (Tab, bool) {
	start := 0
	for i, spec := range tabSpecs {
		end := start + len(spec.name) + 2
		if x >= start && x < end {
			return Tab(i), true
		}
		start = end + 1
	}
	return 0, false
}

func (m Model) dividerRow() int { return m.split.Top() }

func (m Model) tabRow() int { return m.split.Top() + 1 }

func (m *Model) relayout() {
	top, bottom := m.split.Top(), m.split.Bottom()
	m.master.SetSize(m.width, top)
	m.master.SetOrigin(m.originX, m.originY)

	detailY := m.originY + top + 2
	for i := range m.details {
		m.details[i].SetSize(m.width, max(0, bottom-1))
		m.details[i].SetOrigin(m.originX, detailY)
	}
}

// syncSelected points the detail tabs at the master selection after a
// refilter may have dropped it.
func (m *Model) syncSelected() {
	row, ok := m.master.SelectedRow()
	if !ok {
		row = nil
	}
	switch {
	case row == nil && m.selected == nil:
		return
	case row != nil && m.selected != nil && row.Key() == m.selected.Key():
		return
	}
	m.selected = row
	m.rebuildDetails()
}

func (m *Model) rebuildDetails() {
	for i, spec := range tabSpecs {
		m.details[i].SetRows(spec.rows(m.selected))
	}
}

func (m *Model) applyFocus() {
	if m.focus == PaneMaster {
		m.master.Focus()
	} else {
		m.master.Blur()
	}
	for i := range m.details {
		if m.focus == PaneDetail && Tab(i) == m.tab {
			m.details[i].Focus()
		} else {
			m.details[i].Blur()
		}
	}
}

func (m Model) focusedGrid() grid.Model {
	if m.focus == PaneDetail {
		return m.details[m.tab]
	}
	return m.master
}
