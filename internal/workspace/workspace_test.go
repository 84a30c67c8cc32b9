package workspace

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sitelens/internal/grid"
)

func crawlColumns() []grid.ColumnDef {
	return []grid.ColumnDef{
		{ID: "status", Title: "Status", MinWidth: 4, DefaultWidth: 6, DefaultAlign: grid.AlignRight},
		{ID: "url", Title: "URL", MinWidth: 10, DefaultWidth: 30, Flex: true},
		{ID: "title", Title: "Title", MinWidth: 5, DefaultWidth: 20},
	}
}

func crawlRows() []grid.Row {
	return grid.RowsFromMaps([]map[string]any{
		{
			"url":    "https://example.com/",
			"status": float64(200),
			"title":  "Home",
			"links": []any{
				map[string]any{"url": "https://example.com/about", "anchor": "About"},
				"https://example.com/contact",
			},
			"images":  []any{map[string]any{"src": "/logo.png", "alt": "Logo"}},
			"scripts": []any{"/app.js"},
		},
		{"url": "https://example.com/about", "status": float64(200), "title": "About"},
		{"url": "https://example.com/gone", "status": float64(404)},
	}, "url")
}

func newWorkspace(t *testing.T) Model {
	t.Helper()
	m := New(Options{
		Master:  grid.Options{Columns: crawlColumns(), Facets: DefaultFacets()},
		MinPane: 5,
	})
	m.SetSize(80, 41)
	m.SetRows(crawlRows())
	t.Cleanup(m.Close)
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and feeds the produced message back, one level deep.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	m, _ = m.Update(cmd())
	return m
}

func TestWorkspace_InitialSplit(t *testing.T) {
	m := newWorkspace(t)
	if m.Split().Container() != 40 || m.Split().Bottom() != 13 || m.Split().Top() != 27 {
		t.Fatalf("split = %d/%d of %d, want 27/13 of 40", m.Split().Top(), m.Split().Bottom(), m.Split().Container())
	}
	if got := strings.Count(m.View(), "\n") + 1; got != 41 {
		t.Fatalf("view lines = %d, want 41", got)
	}
}

func TestWorkspace_PaneDragClampsAndReleasesAnywhere(t *testing.T) {
	m := newWorkspace(t)

	m, _ = m.Update(press(10, 27))
	if !m.Resize().DraggingKind(grid.ResizePane) {
		t.Fatalf("press on divider did not start a pane drag")
	}
	m, _ = m.Update(motion(10, 0))
	if m.Split().Bottom() != 35 || m.Split().Top() != 5 {
		t.Fatalf("split after drag up = %d/%d, want 5/35", m.Split().Top(), m.Split().Bottom())
	}
	m, _ = m.Update(motion(10, 500))
	if m.Split().Bottom() != 5 {
		t.Fatalf("bottom after drag down = %d, want 5", m.Split().Bottom())
	}

	m, _ = m.Update(release(-30, -30))
	if m.Resize().Dragging() {
		t.Fatalf("release outside the workspace did not end the drag")
	}
	before := m.Split().Bottom()
	m, _ = m.Update(motion(10, 20))
	if m.Split().Bottom() != before {
		t.Fatalf("motion after release moved the divider")
	}

	if got := m.Master().Heights().Len(); got != 3 {
		t.Fatalf("master rows = %d, want 3", got)
	}
}

func TestWorkspace_SelectionDrivesDetailTabs(t *testing.T) {
	m := newWorkspace(t)

	var cmd tea.Cmd
	m, cmd = m.Update(press(20, 2))
	m = drain(t, m, cmd)

	if m.Selected() == nil || m.Selected().Key() != "https://example.com/" {
		t.Fatalf("Selected = %v, want home row", m.Selected())
	}
	if got := len(m.Detail().Rows()); got != 6 {
		t.Fatalf("record rows = %d, want 6 fields", got)
	}

	m, _ = m.Update(runeKey("2"))
	if m.Tab() != TabLinks {
		t.Fatalf("Tab = %v, want Links", m.Tab())
	}
	if got := len(m.Detail().Rows()); got != 2 {
		t.Fatalf("links rows = %d, want 2", got)
	}
	if !m.Master().Selection().Is(0, 1) {
		t.Fatalf("switching tabs changed the master selection")
	}

	m, _ = m.Update(runeKey("]"))
	if m.Tab() != TabImages || len(m.Detail().Rows()) != 1 {
		t.Fatalf("images tab = %v rows %d", m.Tab(), len(m.Detail().Rows()))
	}
	m, _ = m.Update(runeKey("]"))
	rows := m.Detail().Rows()
	if m.Tab() != TabResources || len(rows) != 1 || rows[0].Field("type") != "script" {
		t.Fatalf("resources tab rows = %v", rows)
	}

	// Toggle off clears the details.
	m, cmd = m.Update(press(20, 2))
	m = drain(t, m, cmd)
	if m.Selected() != nil || len(m.Detail().Rows()) != 0 {
		t.Fatalf("detail not cleared after toggle-off")
	}
}

func TestWorkspace_TabClick(t *testing.T) {
	m := newWorkspace(t)
	// " Record " spans 0..7, then a space, then " Links " from 9.
	m, _ = m.Update(press(10, 28))
	if m.Tab() != TabLinks {
		t.Fatalf("Tab = %v, want Links", m.Tab())
	}
	m, _ = m.Update(press(8, 28))
	if m.Tab() != TabLinks {
		t.Fatalf("click on the gap changed the tab to %v", m.Tab())
	}
}

func TestWorkspace_SetRowsRefreshesSelected(t *testing.T) {
	m := newWorkspace(t)
	var cmd tea.Cmd
	m, cmd = m.Update(press(20, 3))
	m = drain(t, m, cmd)
	if m.Selected() == nil || m.Selected().Key() != "https://example.com/about" {
		t.Fatalf("Selected = %v", m.Selected())
	}

	updated := grid.RowsFromMaps([]map[string]any{
		{"url": "https://example.com/about", "status": float64(301), "title": "About (moved)"},
	}, "url")
	m.SetRows(updated)
	if m.Selected() == nil || m.Selected().Field("status") != float64(301) {
		t.Fatalf("detail did not follow refreshed row: %v", m.Selected())
	}

	m.SetRows(grid.RowsFromMaps([]map[string]any{{"url": "https://example.com/new"}}, "url"))
	if m.Selected() != nil {
		t.Fatalf("detail kept a row that disappeared")
	}
}

// selectHome clicks the home row and checks the detail tabs follow it.
func selectHome(t *testing.T, m Model) Model {
	t.Helper()
	var cmd tea.Cmd
	m, cmd = m.Update(press(20, 2))
	m = drain(t, m, cmd)
	if m.Selected() == nil || m.Selected().Key() != "https://example.com/" {
		t.Fatalf("Selected = %v, want home row", m.Selected())
	}
	return m
}

func assertDetailsCleared(t *testing.T, m Model) {
	t.Helper()
	if _, ok := m.Master().SelectedRow(); ok {
		t.Fatalf("master selection survived the refilter")
	}
	if m.Selected() != nil {
		t.Fatalf("detail still shows %q", m.Selected().Key())
	}
	if got := len(m.Detail().Rows()); got != 0 {
		t.Fatalf("record rows = %d, want 0", got)
	}
}

// feedDebounce runs cmd and hands every debounce tick it yields to m.
func feedDebounce(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case grid.DebounceMsg:
		m, _ = m.Update(msg)
	case tea.BatchMsg:
		for _, c := range msg {
			m = feedDebounce(t, m, c)
		}
	}
	return m
}

func TestWorkspace_FacetDropsSelectionFromDetails(t *testing.T) {
	m := selectHome(t, newWorkspace(t))

	// 2xx keeps the home row.
	m.CycleFacet()
	if m.Selected() == nil || len(m.Detail().Rows()) != 6 {
		t.Fatalf("2xx facet dropped a visible selection")
	}

	m.CycleFacet()
	m.CycleFacet()
	if f := m.Master().Facet(); f == nil || f.Label != "4xx" {
		t.Fatalf("facet = %v, want 4xx", f)
	}
	assertDetailsCleared(t, m)
}

func TestWorkspace_FacetKeyDropsSelectionFromDetails(t *testing.T) {
	m := selectHome(t, newWorkspace(t))
	for i := 0; i < 3; i++ {
		m, _ = m.Update(runeKey("f"))
	}
	assertDetailsCleared(t, m)
}

func TestWorkspace_AppliedFilterDropsSelectionFromDetails(t *testing.T) {
	m := selectHome(t, newWorkspace(t))

	m, _ = m.Update(runeKey("/"))
	for _, r := range "gone" {
		m, _ = m.Update(runeKey(string(r)))
	}
	if m.Selected() == nil {
		t.Fatalf("details cleared before the filter committed")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := len(m.Master().FilteredRows()); got != 1 {
		t.Fatalf("filtered = %d, want 1", got)
	}
	assertDetailsCleared(t, m)

	// Clearing the filter does not bring the selection back.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Selected() != nil {
		t.Fatalf("details came back after clearing the filter")
	}
}

func TestWorkspace_DebouncedFilterDropsSelectionFromDetails(t *testing.T) {
	m := New(Options{
		Master: grid.Options{
			Columns:  crawlColumns(),
			Debounce: time.Millisecond,
		},
		MinPane: 5,
	})
	m.SetSize(80, 41)
	m.SetRows(crawlRows())
	t.Cleanup(m.Close)
	m = selectHome(t, m)

	var cmd tea.Cmd
	m, _ = m.Update(runeKey("/"))
	for _, r := range "gone" {
		m, cmd = m.Update(runeKey(string(r)))
	}
	m = feedDebounce(t, m, cmd)

	if m.Master().Term() != "gone" {
		t.Fatalf("Term = %q, want gone", m.Master().Term())
	}
	assertDetailsCleared(t, m)
}

func TestWorkspace_FocusAndPaneKeys(t *testing.T) {
	m := newWorkspace(t)
	if !m.Master().Focused() {
		t.Fatalf("master not focused initially")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus() != PaneDetail || m.Master().Focused() || !m.Detail().Focused() {
		t.Fatalf("tab did not move focus to the detail grid")
	}

	bottom := m.Split().Bottom()
	m, _ = m.Update(runeKey("K"))
	if m.Split().Bottom() != bottom+1 {
		t.Fatalf("K did not grow detail pane")
	}
	m, _ = m.Update(runeKey("J"))
	if m.Split().Bottom() != bottom {
		t.Fatalf("J did not shrink detail pane")
	}

	// Clicking in the master grid takes focus back.
	m, _ = m.Update(press(20, 5))
	if m.Focus() != PaneMaster {
		t.Fatalf("click did not focus master")
	}
}

func TestWorkspace_FilteringSwallowsWorkspaceKeys(t *testing.T) {
	m := newWorkspace(t)
	m, _ = m.Update(runeKey("/"))
	if !m.Filtering() {
		t.Fatalf("master filter did not open")
	}
	m, _ = m.Update(runeKey("2"))
	if m.Tab() != TabRecord {
		t.Fatalf("digit switched tabs while filtering")
	}
	if m.Master().RawTerm() != "2" {
		t.Fatalf("RawTerm = %q, want 2", m.Master().RawTerm())
	}
}

func TestDefaultFacets(t *testing.T) {
	rows := grid.RowsFromMaps([]map[string]any{
		{"url": "a", "status": float64(200), "content_type": "text/html; charset=utf-8"},
		{"url": "b", "status": float64(404), "content_type": "text/html"},
		{"url": "c", "status": "301", "content_type": "image/png"},
		{"url": "d", "content_type": "application/javascript"},
	}, "url")

	counts := map[string]int{}
	for _, f := range DefaultFacets() {
		counts[f.Label] = len(grid.ApplyFacet(rows, &f))
	}
	want := map[string]int{"2xx": 1, "3xx": 1, "4xx": 1, "5xx": 0, "HTML": 2, "Images": 1, "JS": 1, "CSS": 0}
	for label, n := range want {
		if counts[label] != n {
			t.Fatalf("facet %s matched %d, want %d", label, counts[label], n)
		}
	}
}

func TestListItems(t *testing.T) {
	items := listItems([]any{"https://x", map[string]any{"url": "https://y", "type": "font"}, nil, float64(3)}, "script")
	if len(items) != 3 {
		t.Fatalf("items = %v", items)
	}
	if items[0]["url"] != "https://x" || items[0]["type"] != "script" {
		t.Fatalf("string item = %v", items[0])
	}
	if items[1]["type"] != "font" {
		t.Fatalf("existing type overwritten: %v", items[1])
	}
	if items[2]["url"] != "3" {
		t.Fatalf("scalar item = %v", items[2])
	}
	if listItems("not a list", "") != nil {
		t.Fatalf("non-list value produced items")
	}
}
