package grid

// DefaultMinPane is the smallest height either pane may be dragged to.
const DefaultMinPane = 5

// Split divides a fixed container height between a master pane on top and a
// detail pane below.
type Split struct {
	container int
	bottom    int
	min       int
}

// NewSplit builds a split and clamps bottom into range.
func NewSplit(container, bottom, min int) *Split {
	if min < 1 {
		min = DefaultMinPane
	}
	s := &Split{container: max(container, 0), min: min}
	s.SetBottom(bottom)
	return s
}

// SetContainer changes the total height and re-clamps the detail pane.
func (s *Split) SetContainer(h int) {
	s.container = max(h, 0)
	s.SetBottom(s.bottom)
}

// SetBottom requests a detail height and returns the clamped value. Both
// panes keep at least the minimum height; a container too small for two
// minimums is split evenly.
func (s *Split) SetBottom(h int) int {
	if s.container < 2*s.min {
		s.bottom = s.container / 2
		return s.bottom
	}
	s.bottom = clampInt(h, s.min, s.container-s.min)
	return s.bottom
}

// Drag moves the divider by delta lines; positive deltas move it down and
// shrink the detail pane.
func (s *Split) Drag(delta int) int {
	return s.SetBottom(s.bottom - delta)
}

// Container returns the total height.
func (s *Split) Container() int { return s.container }

// Bottom returns the detail pane height.
func (s *Split) Bottom() int { return s.bottom }

// Top returns the master pane height.
func (s *Split) Top() int { return s.container - s.bottom }

// Min returns the minimum pane height.
func (s *Split) Min() int { return s.min }
