package grid

// ResizeKind names what a drag session resizes.
type ResizeKind int

const (
	ResizeColumn ResizeKind = iota
	ResizePane
	ResizeRow
)

func (k ResizeKind) String() string {
	switch k {
	case ResizePane:
		return "pane"
	case ResizeRow:
		return "row"
	default:
		return "column"
	}
}

// ResizeSession is the state of one pointer drag.
type ResizeSession struct {
	Kind       ResizeKind
	Target     int
	StartCoord int
	StartSize  int

	last  int
	apply func(delta int)
}

// ResizeManager turns pointer movement into incremental size deltas. It
// holds at most one session; a column drag and a pane drag can never run
// together. The zero value is idle and ready to use.
type ResizeManager struct {
	active *ResizeSession
}

// Begin starts a session on pointer-down over a divider. It returns false
// and changes nothing when a session is already running.
func (m *ResizeManager) Begin(kind ResizeKind, target, coord, startSize int, apply func(delta int)) bool {
	if m.active != nil {
		return false
	}
	m.active = &ResizeSession{
		Kind:       kind,
		Target:     target,
		StartCoord: coord,
		StartSize:  startSize,
		last:       coord,
		apply:      apply,
	}
	return true
}

// Move applies coord minus the last recorded coord, then records coord.
// Deltas are incremental so clamping in the target cannot cause drift.
// It returns the applied delta; zero when idle.
func (m *ResizeManager) Move(coord int) int {
	if m.active == nil {
		return 0
	}
	delta := coord - m.active.last
	m.active.last = coord
	if delta != 0 && m.active.apply != nil {
		m.active.apply(delta)
	}
	return delta
}

// End finishes any session. It is safe to call while idle.
func (m *ResizeManager) End() {
	m.active = nil
}

// Dragging reports whether a session is active.
func (m *ResizeManager) Dragging() bool { return m.active != nil }

// DraggingKind reports whether a session of the given kind is active.
func (m *ResizeManager) DraggingKind(kind ResizeKind) bool {
	return m.active != nil && m.active.Kind == kind
}

// MovePointer feeds a pointer position to the active session, reading X for
// column drags and Y for pane and row drags.
func (m *ResizeManager) MovePointer(x, y int) int {
	if m.active == nil {
		return 0
	}
	if m.active.Kind == ResizeColumn {
		return m.Move(x)
	}
	return m.Move(y)
}
