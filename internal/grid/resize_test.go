package grid

import "testing"

func TestResizeManager_IncrementalDeltas(t *testing.T) {
	l := NewLayout([]ColumnDef{{ID: "title", MinWidth: 50, DefaultWidth: 90}})
	var rm ResizeManager

	if !rm.Begin(ResizeColumn, 0, 100, l.Width(0), func(d int) { l.ResizeColumn(0, d) }) {
		t.Fatalf("Begin returned false on idle manager")
	}

	// Drag far left: clamps at 50.
	rm.Move(-100)
	if l.Width(0) != 50 {
		t.Fatalf("width after far drag = %d, want 50", l.Width(0))
	}
	// Moving back right by 10 grows from the clamped width, not from the
	// original start, so there is no dead zone.
	rm.Move(-90)
	if l.Width(0) != 60 {
		t.Fatalf("width after reversing = %d, want 60", l.Width(0))
	}

	rm.End()
	if rm.Dragging() {
		t.Fatalf("still dragging after End")
	}
	if d := rm.Move(500); d != 0 || l.Width(0) != 60 {
		t.Fatalf("Move while idle applied delta %d (width %d)", d, l.Width(0))
	}
}

func TestResizeManager_SingleSession(t *testing.T) {
	var rm ResizeManager
	calls := 0

	rm.Begin(ResizeColumn, 1, 10, 20, func(int) { calls++ })
	if rm.Begin(ResizePane, 0, 5, 8, func(int) { t.Fatalf("pane apply ran during column drag") }) {
		t.Fatalf("second Begin succeeded while dragging")
	}
	if !rm.DraggingKind(ResizeColumn) || rm.DraggingKind(ResizePane) {
		t.Fatalf("DraggingKind mismatch")
	}

	rm.MovePointer(12, 99)
	if calls != 1 {
		t.Fatalf("apply calls = %d, want 1", calls)
	}
	if s := rm.active; s.Target != 1 || s.StartCoord != 10 || s.StartSize != 20 || s.last != 12 {
		t.Fatalf("session = %+v", *s)
	}
}

func TestResizeManager_PaneReadsY(t *testing.T) {
	var rm ResizeManager
	var got []int

	rm.Begin(ResizePane, 0, 30, 10, func(d int) { got = append(got, d) })
	rm.MovePointer(100, 28)
	rm.MovePointer(0, 28)
	rm.MovePointer(0, 33)
	rm.End()

	if len(got) != 2 || got[0] != -2 || got[1] != 5 {
		t.Fatalf("deltas = %v, want [-2 5]", got)
	}
}

func TestResizeManager_EndWhileIdle(t *testing.T) {
	var rm ResizeManager
	rm.End()
	if rm.Dragging() {
		t.Fatalf("zero manager reports dragging")
	}
	if rm.DraggingKind(ResizeColumn) || rm.DraggingKind(ResizePane) {
		t.Fatalf("zero manager reports a drag kind")
	}
}

func TestResizeKind_String(t *testing.T) {
	if ResizeColumn.String() != "column" || ResizePane.String() != "pane" || ResizeRow.String() != "row" {
		t.Fatalf("unexpected kind names")
	}
}
