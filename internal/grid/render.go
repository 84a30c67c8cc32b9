package grid

// DefaultTruncate is the character budget for displayed cell text.
const DefaultTruncate = 120

const ellipsis = "…"

// RenderInput is everything Render needs; it never reads ambient state.
type RenderInput struct {
	Rows      []Row // filtered rows
	Columns   []ResolvedColumn
	Heights   HeightModel
	Scroll    int
	Viewport  int
	Overscan  int
	Truncate  int
	Selection Selection
	// Gutter is the width reserved left of the first column.
	Gutter int
}

// Cell is one materialized value.
type Cell struct {
	Column    int // layout index
	Text      string
	Full      string
	Truncated bool
	Width     int
	Align     Alignment
	Selected  bool
}

// RenderedRow is one materialized row.
type RenderedRow struct {
	Index    int // filtered index
	Key      string
	Offset   int
	Height   int
	Odd      bool
	Selected bool
	Cells    []Cell
}

// HeaderCell carries a column title and its hit regions. Label covers
// [LabelStart, LabelEnd); Divider is the x of the trailing resize handle.
type HeaderCell struct {
	Column     int
	Title      string
	Width      int
	Align      Alignment
	LabelStart int
	LabelEnd   int
	Divider    int
}

// Frame is a sparse render: only windowed rows and visible columns exist.
type Frame struct {
	Header []HeaderCell
	Rows   []RenderedRow
	Window Window
	Width  int
	Empty  bool
}

// Render materializes the visible window. Rows outside the window are
// represented only by the window's spacers.
func Render(in RenderInput) Frame {
	f := Frame{Header: headerCells(in.Columns, in.Gutter)}
	if n := len(f.Header); n > 0 {
		f.Width = f.Header[n-1].Divider + 1
	} else {
		f.Width = in.Gutter
	}

	heights := in.Heights
	if heights == nil {
		heights = UniformHeights{N: len(in.Rows), RowHeight: 1}
	}
	if len(in.Rows) == 0 || heights.Len() == 0 {
		f.Empty = true
		f.Window = Window{Start: 0, End: -1}
		return f
	}

	budget := in.Truncate
	if budget <= 0 {
		budget = DefaultTruncate
	}

	w := ComputeWindowFor(heights, in.Scroll, in.Viewport, in.Overscan)
	f.Window = w
	f.Rows = make([]RenderedRow, 0, w.Len())
	for i := w.Start; i <= w.End && i < len(in.Rows); i++ {
		row := in.Rows[i]
		rr := RenderedRow{
			Index:    i,
			Offset:   heights.Offset(i),
			Height:   heights.Height(i),
			Odd:      i%2 == 1,
			Selected: in.Selection.RowSelected(i),
			Cells:    make([]Cell, 0, len(in.Columns)),
		}
		if row != nil {
			rr.Key = row.Key()
		}
		for _, col := range in.Columns {
			full := Stringify(cellValue(col.Def, row))
			text, cut := truncateRunes(full, budget)
			rr.Cells = append(rr.Cells, Cell{
				Column:    col.Index,
				Text:      text,
				Full:      full,
				Truncated: cut,
				Width:     col.Width,
				Align:     col.Align,
				Selected:  in.Selection.Is(i, col.Index),
			})
		}
		f.Rows = append(f.Rows, rr)
	}
	return f
}

func headerCells(cols []ResolvedColumn, gutter int) []HeaderCell {
	out := make([]HeaderCell, 0, len(cols))
	x := gutter
	for _, col := range cols {
		title := col.Def.Title
		if title == "" {
			title = col.Def.ID
		}
		out = append(out, HeaderCell{
			Column:     col.Index,
			Title:      title,
			Width:      col.Width,
			Align:      col.Align,
			LabelStart: x,
			LabelEnd:   x + col.Width,
			Divider:    x + col.Width,
		})
		x += col.Width + 1
	}
	return out
}

// CellText returns the full display text of a cell.
func CellText(def ColumnDef, row Row) string {
	return Stringify(cellValue(def, row))
}

// cellValue reads a cell, treating a panicking accessor as a missing field
// so one malformed row cannot abort the window.
func cellValue(def ColumnDef, row Row) (v any) {
	if row == nil {
		return nil
	}
	defer func() {
		if recover() != nil {
			v = nil
		}
	}()
	return def.value(row)
}

// truncateRunes cuts s to limit runes, ending with an ellipsis when cut.
func truncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	if limit == 1 {
		return ellipsis, true
	}
	return string(runes[:limit-1]) + ellipsis, true
}

// HitKind classifies a header position.
type HitKind int

const (
	HitNone HitKind = iota
	HitLabel
	HitDivider
)

// HitHeader maps an x position on the header row to a column and target.
func (f Frame) HitHeader(x int) (HitKind, int) {
	return hitHeader(f.Header, x)
}

func hitHeader(cells []HeaderCell, x int) (HitKind, int) {
	for _, c := range cells {
		if x == c.Divider {
			return HitDivider, c.Column
		}
		if x >= c.LabelStart && x < c.LabelEnd {
			return HitLabel, c.Column
		}
	}
	return HitNone, -1
}

// ColumnAt maps an x position in the body to a layout column index.
func ColumnAt(cells []HeaderCell, x int) int {
	for _, c := range cells {
		if x >= c.LabelStart && x <= c.Divider {
			return c.Column
		}
	}
	return -1
}
