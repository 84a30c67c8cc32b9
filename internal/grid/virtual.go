package grid

import (
	"fmt"
	"sort"
)

// HeightModel describes row geometry for the virtualizer.
type HeightModel interface {
	Len() int
	Height(i int) int
	// Offset returns the top of row i; Offset(Len()) is the total extent.
	Offset(i int) int
	Total() int
	// FirstAtOrBelow returns the largest i with Offset(i) <= y, clamped to
	// [0, Len()].
	FirstAtOrBelow(y int) int
	// FirstAtOrAfter returns the smallest i with Offset(i) >= y, clamped to
	// [0, Len()].
	FirstAtOrAfter(y int) int
}

// UniformHeights is the common fixed-height model.
type UniformHeights struct {
	N         int
	RowHeight int
}

func (u UniformHeights) rh() int {
	if u.RowHeight < 1 {
		return 1
	}
	return u.RowHeight
}

func (u UniformHeights) Len() int { return u.N }

func (u UniformHeights) Height(int) int { return u.rh() }

func (u UniformHeights) Offset(i int) int { return i * u.rh() }

func (u UniformHeights) Total() int { return u.N * u.rh() }

func (u UniformHeights) FirstAtOrBelow(y int) int {
	return clampInt(floorDiv(y, u.rh()), 0, u.N)
}

func (u UniformHeights) FirstAtOrAfter(y int) int {
	return clampInt(ceilDiv(y, u.rh()), 0, u.N)
}

// VariableHeights keeps per-row heights with a prefix sum so offsets stay
// O(1) and lookups O(log n).
type VariableHeights struct {
	heights []int
	prefix  []int // len(heights)+1; prefix[i] is the top of row i
	min     int
}

// NewVariableHeights builds a model of n rows at defaultHeight each.
func NewVariableHeights(n, defaultHeight int) *VariableHeights {
	if defaultHeight < 1 {
		defaultHeight = 1
	}
	v := &VariableHeights{heights: make([]int, n), prefix: make([]int, n+1), min: 1}
	for i := range v.heights {
		v.heights[i] = defaultHeight
		v.prefix[i+1] = v.prefix[i] + defaultHeight
	}
	return v
}

func (v *VariableHeights) Len() int { return len(v.heights) }

func (v *VariableHeights) Height(i int) int {
	if i < 0 || i >= len(v.heights) {
		return 0
	}
	return v.heights[i]
}

func (v *VariableHeights) Offset(i int) int {
	return v.prefix[clampInt(i, 0, len(v.heights))]
}

func (v *VariableHeights) Total() int { return v.prefix[len(v.heights)] }

// SetHeight changes row i's height and returns the stored value, floored at
// one line. Only the offsets of rows below i move.
func (v *VariableHeights) SetHeight(i, h int) int {
	if i < 0 || i >= len(v.heights) {
		return 0
	}
	if h < v.min {
		h = v.min
	}
	if v.heights[i] == h {
		return h
	}
	v.heights[i] = h
	for j := i; j < len(v.heights); j++ {
		v.prefix[j+1] = v.prefix[j] + v.heights[j]
	}
	return h
}

func (v *VariableHeights) FirstAtOrBelow(y int) int {
	// sort.Search finds the first prefix > y; the row before it contains y.
	i := sort.Search(len(v.prefix), func(k int) bool { return v.prefix[k] > y }) - 1
	return clampInt(i, 0, len(v.heights))
}

func (v *VariableHeights) FirstAtOrAfter(y int) int {
	i := sort.Search(len(v.prefix), func(k int) bool { return v.prefix[k] >= y })
	return clampInt(i, 0, len(v.heights))
}

// Window is the slice of rows to materialize.
type Window struct {
	Start, End   int   // inclusive; End < Start when empty
	Offsets      []int // top of each row in [Start, End]
	TotalExtent  int
	TopSpacer    int // extent above Start
	BottomSpacer int // extent below End
}

// Empty reports whether the window has no rows.
func (w Window) Empty() bool { return w.End < w.Start }

// Len returns the number of windowed rows.
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.End - w.Start + 1
}

// ComputeWindow is the uniform-height form:
// start = max(0, floor(scroll/rowHeight) - overscan),
// end = min(rowCount-1, ceil((scroll+viewport)/rowHeight) + overscan).
func ComputeWindow(rowCount, rowHeight, scrollOffset, viewportHeight, overscan int) Window {
	return ComputeWindowFor(UniformHeights{N: rowCount, RowHeight: rowHeight}, scrollOffset, viewportHeight, overscan)
}

// ComputeWindowFor computes the window over any height model. With uniform
// heights it reduces exactly to ComputeWindow's formula.
func ComputeWindowFor(h HeightModel, scrollOffset, viewportHeight, overscan int) Window {
	n := h.Len()
	if n < 0 {
		panic(fmt.Sprintf("grid: negative row count %d", n))
	}
	total := h.Total()
	if n == 0 {
		return Window{Start: 0, End: -1}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	start := h.FirstAtOrBelow(scrollOffset) - overscan
	end := h.FirstAtOrAfter(scrollOffset+viewportHeight) + overscan

	end = clampInt(end, 0, n-1)
	start = clampInt(start, 0, end)

	offsets := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		offsets = append(offsets, h.Offset(i))
	}
	return Window{
		Start:        start,
		End:          end,
		Offsets:      offsets,
		TotalExtent:  total,
		TopSpacer:    h.Offset(start),
		BottomSpacer: total - h.Offset(end+1),
	}
}

// ScrollToReveal returns the smallest scroll change that brings row i fully
// into a viewport of the given height.
func ScrollToReveal(h HeightModel, i, scrollOffset, viewportHeight int) int {
	if i < 0 || i >= h.Len() {
		return scrollOffset
	}
	top := h.Offset(i)
	bottom := top + h.Height(i)
	switch {
	case top < scrollOffset:
		return top
	case bottom > scrollOffset+viewportHeight:
		return max(0, bottom-viewportHeight)
	default:
		return scrollOffset
	}
}

// MaxScroll returns the largest useful scroll offset.
func MaxScroll(h HeightModel, viewportHeight int) int {
	return max(0, h.Total()-viewportHeight)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
