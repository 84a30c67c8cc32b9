package grid

import "testing"

func TestSplit_ClampsToMinimum(t *testing.T) {
	s := NewSplit(900, 300, 100)

	if got := s.SetBottom(900); got != 800 {
		t.Fatalf("SetBottom(900) = %d, want 800", got)
	}
	if s.Top() != 100 {
		t.Fatalf("Top = %d, want 100", s.Top())
	}
	if got := s.SetBottom(0); got != 100 {
		t.Fatalf("SetBottom(0) = %d, want 100", got)
	}
}

func TestSplit_DragThroughResizeManager(t *testing.T) {
	s := NewSplit(900, 300, 100)
	var rm ResizeManager

	rm.Begin(ResizePane, 0, 600, s.Bottom(), func(d int) { s.Drag(d) })
	rm.MovePointer(0, -400) // divider dragged far above the container
	if s.Bottom() != 800 {
		t.Fatalf("Bottom = %d, want 800", s.Bottom())
	}
	rm.MovePointer(0, -350)
	if s.Bottom() != 750 {
		t.Fatalf("Bottom after moving down 50 = %d, want 750", s.Bottom())
	}
	rm.End()
}

func TestSplit_SmallContainerSplitsEvenly(t *testing.T) {
	s := NewSplit(7, 5, 5)
	if s.Bottom() != 3 || s.Top() != 4 {
		t.Fatalf("split = %d/%d, want 4/3", s.Top(), s.Bottom())
	}

	s.SetContainer(40)
	s.SetBottom(12)
	if s.Bottom() != 12 {
		t.Fatalf("Bottom = %d, want 12", s.Bottom())
	}
	s.SetContainer(14)
	if s.Bottom() != 9 || s.Top() != 5 {
		t.Fatalf("after shrink split = %d/%d, want 5/9", s.Top(), s.Bottom())
	}
}

func TestSplit_DefaultMinimum(t *testing.T) {
	s := NewSplit(30, 1, 0)
	if s.Min() != DefaultMinPane || s.Bottom() != DefaultMinPane {
		t.Fatalf("min=%d bottom=%d, want %d", s.Min(), s.Bottom(), DefaultMinPane)
	}
}
