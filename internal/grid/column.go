package grid

// Alignment controls horizontal placement of cell text.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the config spelling of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment maps "left", "center" and "right" to an Alignment. Anything
// else is AlignLeft.
func ParseAlignment(s string) Alignment {
	switch s {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// ColumnDef declares a column. Definitions are immutable once a grid is built.
type ColumnDef struct {
	ID           string
	Title        string
	Accessor     func(Row) any // nil reads row.Field(ID)
	MinWidth     int
	DefaultWidth int
	DefaultAlign Alignment
	// Flex marks the primary content column. It is left out of TotalWidth and
	// absorbs the space the fixed columns leave over.
	Flex bool
}

func (d ColumnDef) value(row Row) any {
	if d.Accessor != nil {
		return d.Accessor(row)
	}
	return row.Field(d.ID)
}

func (d ColumnDef) minWidth() int {
	if d.MinWidth < 1 {
		return 1
	}
	return d.MinWidth
}

// Layout is the mutable width/alignment/visibility state of one grid,
// indexed parallel to its column definitions.
type Layout struct {
	defs    []ColumnDef
	widths  []int
	aligns  []Alignment
	visible []bool
}

// NewLayout creates a layout holding every column's defaults.
func NewLayout(defs []ColumnDef) *Layout {
	l := &Layout{
		defs:    append([]ColumnDef(nil), defs...),
		widths:  make([]int, len(defs)),
		aligns:  make([]Alignment, len(defs)),
		visible: make([]bool, len(defs)),
	}
	for i, d := range l.defs {
		w := d.DefaultWidth
		if w < d.minWidth() {
			w = d.minWidth()
		}
		l.widths[i] = w
		l.aligns[i] = d.DefaultAlign
		l.visible[i] = true
	}
	return l
}

// Len returns the number of declared columns.
func (l *Layout) Len() int { return len(l.defs) }

// Def returns the definition at index i.
func (l *Layout) Def(i int) ColumnDef { return l.defs[i] }

// Defs returns a copy of all column definitions.
func (l *Layout) Defs() []ColumnDef { return append([]ColumnDef(nil), l.defs...) }

func (l *Layout) valid(i int) bool { return i >= 0 && i < len(l.defs) }

// Width returns the current width of column i, or 0 when i is out of range.
func (l *Layout) Width(i int) int {
	if !l.valid(i) {
		return 0
	}
	return l.widths[i]
}

// Align returns the alignment of column i.
func (l *Layout) Align(i int) Alignment {
	if !l.valid(i) {
		return AlignLeft
	}
	return l.aligns[i]
}

// Visible reports whether column i is shown.
func (l *Layout) Visible(i int) bool {
	return l.valid(i) && l.visible[i]
}

// ResizeColumn adds delta to column i's width and floors the result at the
// column's minimum. It returns the new width; out-of-range indexes are
// ignored and return 0.
func (l *Layout) ResizeColumn(i, delta int) int {
	if !l.valid(i) {
		return 0
	}
	w := l.widths[i] + delta
	if m := l.defs[i].minWidth(); w < m {
		w = m
	}
	l.widths[i] = w
	return w
}

// ToggleAlignment flips column i between left and center. Right-aligned
// columns stay right-aligned.
func (l *Layout) ToggleAlignment(i int) {
	if !l.valid(i) {
		return
	}
	switch l.aligns[i] {
	case AlignLeft:
		l.aligns[i] = AlignCenter
	case AlignCenter:
		l.aligns[i] = AlignLeft
	}
}

// SetVisibility shows or hides column i without touching width or alignment.
func (l *Layout) SetVisibility(i int, visible bool) {
	if !l.valid(i) {
		return
	}
	l.visible[i] = visible
}

// VisibleIndexes returns the indexes of shown columns in declaration order.
func (l *Layout) VisibleIndexes() []int {
	out := make([]int, 0, len(l.defs))
	for i := range l.defs {
		if l.visible[i] {
			out = append(out, i)
		}
	}
	return out
}

// TotalWidth sums the widths of the visible fixed columns. Flex columns are
// excluded.
func (l *Layout) TotalWidth() int {
	total := 0
	for i, d := range l.defs {
		if l.visible[i] && !d.Flex {
			total += l.widths[i]
		}
	}
	return total
}

// ResolvedColumn is a visible column with its final on-screen width.
type ResolvedColumn struct {
	Index int
	Def   ColumnDef
	Width int
	Align Alignment
}

// Resolve computes the visible columns for a viewport. Each column is
// followed by a one-cell divider. Flex columns share whatever room remains
// after the fixed columns and never shrink below their own width.
func (l *Layout) Resolve(viewportWidth int) []ResolvedColumn {
	idx := l.VisibleIndexes()
	out := make([]ResolvedColumn, 0, len(idx))

	flexCount := 0
	for _, i := range idx {
		if l.defs[i].Flex {
			flexCount++
		}
	}
	remaining := viewportWidth - l.TotalWidth() - len(idx)
	flexShare := 0
	if flexCount > 0 && remaining > 0 {
		flexShare = remaining / flexCount
	}

	for _, i := range idx {
		w := l.widths[i]
		if l.defs[i].Flex && flexShare > w {
			w = flexShare
		}
		out = append(out, ResolvedColumn{Index: i, Def: l.defs[i], Width: w, Align: l.aligns[i]})
	}
	return out
}

// ColumnState is the persisted form of one column's layout.
type ColumnState struct {
	ID     string `toml:"id"`
	Width  int    `toml:"width"`
	Align  string `toml:"align"`
	Hidden bool   `toml:"hidden"`
}

// Snapshot captures the layout by column ID.
func (l *Layout) Snapshot() []ColumnState {
	out := make([]ColumnState, len(l.defs))
	for i, d := range l.defs {
		out[i] = ColumnState{ID: d.ID, Width: l.widths[i], Align: l.aligns[i].String(), Hidden: !l.visible[i]}
	}
	return out
}

// Restore applies saved column state. Unknown IDs are ignored; widths are
// floored at the column minimum and right alignment stays fixed.
func (l *Layout) Restore(states []ColumnState) {
	byID := make(map[string]int, len(l.defs))
	for i, d := range l.defs {
		byID[d.ID] = i
	}
	for _, st := range states {
		i, ok := byID[st.ID]
		if !ok {
			continue
		}
		if st.Width > 0 {
			l.widths[i] = max(st.Width, l.defs[i].minWidth())
		}
		if l.defs[i].DefaultAlign != AlignRight {
			if a := ParseAlignment(st.Align); a != AlignRight {
				l.aligns[i] = a
			}
		}
		l.visible[i] = !st.Hidden
	}
}
