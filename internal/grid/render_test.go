package grid

import (
	"fmt"
	"strings"
	"testing"
)

func manyRows(n int) []Row {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"id":     float64(i + 1),
			"url":    fmt.Sprintf("https://example.com/page-%d", i),
			"status": float64(200),
		}
	}
	return RowsFromMaps(items, "url")
}

func TestRender_MaterializesOnlyWindow(t *testing.T) {
	rows := manyRows(10000)
	cols := NewLayout(testColumns()).Resolve(79)

	f := Render(RenderInput{
		Rows:     rows,
		Columns:  cols,
		Heights:  UniformHeights{N: len(rows), RowHeight: 25},
		Viewport: 600,
		Overscan: 18,
	})

	if len(f.Rows) != 43 {
		t.Fatalf("rendered %d rows, want 43", len(f.Rows))
	}
	if f.Rows[0].Index != 0 || f.Rows[42].Index != 42 {
		t.Fatalf("rendered range %d..%d, want 0..42", f.Rows[0].Index, f.Rows[42].Index)
	}
	if f.Empty {
		t.Fatalf("frame marked empty")
	}
	for _, rr := range f.Rows {
		if len(rr.Cells) != len(cols) {
			t.Fatalf("row %d has %d cells, want %d", rr.Index, len(rr.Cells), len(cols))
		}
	}
}

func TestRender_StripesFollowFilteredIndex(t *testing.T) {
	rows := manyRows(100)
	cols := NewLayout(testColumns()).Resolve(79)

	f := Render(RenderInput{
		Rows:     rows,
		Columns:  cols,
		Heights:  UniformHeights{N: len(rows), RowHeight: 1},
		Scroll:   37,
		Viewport: 10,
	})

	for _, rr := range f.Rows {
		if rr.Odd != (rr.Index%2 == 1) {
			t.Fatalf("row %d Odd=%v", rr.Index, rr.Odd)
		}
	}
	if f.Rows[0].Index != 37 || !f.Rows[0].Odd {
		t.Fatalf("first windowed row = %d odd=%v, want 37 odd", f.Rows[0].Index, f.Rows[0].Odd)
	}
}

func TestRender_TruncatesWithFullValueKept(t *testing.T) {
	long := strings.Repeat("a", 150)
	rows := RowsFromMaps([]map[string]any{{"url": long}}, "url")
	cols := NewLayout([]ColumnDef{{ID: "url", DefaultWidth: 40}}).Resolve(80)

	f := Render(RenderInput{Rows: rows, Columns: cols, Viewport: 5, Truncate: 120})
	c := f.Rows[0].Cells[0]

	if !c.Truncated {
		t.Fatalf("cell not marked truncated")
	}
	if got := len([]rune(c.Text)); got != 120 {
		t.Fatalf("display length = %d, want 120", got)
	}
	if !strings.HasSuffix(c.Text, ellipsis) {
		t.Fatalf("display text %q missing ellipsis", c.Text)
	}
	if c.Full != long {
		t.Fatalf("full value lost")
	}
}

func TestRender_MissingAndPanickingFields(t *testing.T) {
	rows := RowsFromMaps([]map[string]any{
		{"url": "https://example.com/a"},
		{"url": "https://example.com/b", "title": "B"},
	}, "url")
	defs := []ColumnDef{
		{ID: "title", DefaultWidth: 10},
		{ID: "boom", DefaultWidth: 5, Accessor: func(r Row) any {
			if r.Key() == "https://example.com/a" {
				panic("malformed")
			}
			return "ok"
		}},
	}

	f := Render(RenderInput{Rows: rows, Columns: NewLayout(defs).Resolve(40), Viewport: 5})
	if len(f.Rows) != 2 {
		t.Fatalf("rendered %d rows, want 2", len(f.Rows))
	}
	if got := f.Rows[0].Cells[0].Text; got != "" {
		t.Fatalf("missing field rendered %q, want empty", got)
	}
	if got := f.Rows[0].Cells[1].Text; got != "" {
		t.Fatalf("panicking accessor rendered %q, want empty", got)
	}
	if got := f.Rows[1].Cells[1].Text; got != "ok" {
		t.Fatalf("second row = %q, want ok", got)
	}
}

func TestRender_EmptyRows(t *testing.T) {
	f := Render(RenderInput{Columns: NewLayout(testColumns()).Resolve(79), Viewport: 10})
	if !f.Empty || len(f.Rows) != 0 || !f.Window.Empty() {
		t.Fatalf("empty frame = %#v", f)
	}
	if len(f.Header) != 3 {
		t.Fatalf("header still expected on empty frame, got %d cells", len(f.Header))
	}
}

func TestRender_SelectionMarksCell(t *testing.T) {
	rows := manyRows(5)
	var sel Selection
	sel.Select(2, 1)

	f := Render(RenderInput{Rows: rows, Columns: NewLayout(testColumns()).Resolve(79), Viewport: 5, Selection: sel})
	for _, rr := range f.Rows {
		if rr.Selected != (rr.Index == 2) {
			t.Fatalf("row %d Selected=%v", rr.Index, rr.Selected)
		}
		for _, c := range rr.Cells {
			if c.Selected != (rr.Index == 2 && c.Column == 1) {
				t.Fatalf("cell (%d,%d) Selected=%v", rr.Index, c.Column, c.Selected)
			}
		}
	}
}

func TestHitHeader_LabelVersusDivider(t *testing.T) {
	cells := headerCells(NewLayout(testColumns()).Resolve(79), 1)

	tests := []struct {
		x    int
		kind HitKind
		col  int
	}{
		{0, HitNone, -1},
		{1, HitLabel, 0},
		{6, HitLabel, 0},
		{7, HitDivider, 0},
		{8, HitLabel, 1},
		{72, HitDivider, 1},
		{79, HitDivider, 2},
		{80, HitNone, -1},
	}
	for _, tt := range tests {
		kind, col := hitHeader(cells, tt.x)
		if kind != tt.kind || col != tt.col {
			t.Fatalf("hitHeader(%d) = (%v,%d), want (%v,%d)", tt.x, kind, col, tt.kind, tt.col)
		}
	}
	if got := ColumnAt(cells, 7); got != 0 {
		t.Fatalf("ColumnAt(divider) = %d, want 0", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
		cut   bool
	}{
		{"short", 10, "short", false},
		{"exactly", 7, "exactly", false},
		{"toolong", 4, "too…", true},
		{"ünïcödé", 3, "ün…", true},
		{"x", 0, "x", false},
		{"xy", 1, "…", true},
	}
	for _, tt := range tests {
		got, cut := truncateRunes(tt.in, tt.limit)
		if got != tt.want || cut != tt.cut {
			t.Fatalf("truncateRunes(%q,%d) = (%q,%v), want (%q,%v)", tt.in, tt.limit, got, cut, tt.want, tt.cut)
		}
	}
}
