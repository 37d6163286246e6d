package selection

import "testing"

func TestRange_FromToDirection(t *testing.T) {
	r := NewRange(5, 2)
	if got, want := r.From(), 2; got != want {
		t.Fatalf("From=%d, want %d", got, want)
	}
	if got, want := r.To(), 5; got != want {
		t.Fatalf("To=%d, want %d", got, want)
	}
	if got, want := r.Direction(), Backward; got != want {
		t.Fatalf("Direction=%v, want %v", got, want)
	}
	if got, want := Point(3).Direction(), Forward; got != want {
		t.Fatalf("caret direction=%v, want %v", got, want)
	}
}

func TestRange_Cursor(t *testing.T) {
	prev := func(i int) int { return i - 1 }
	// A forward range's cursor sits on the last selected grapheme.
	if got, want := NewRange(1, 4).Cursor(prev), 3; got != want {
		t.Fatalf("forward cursor=%d, want %d", got, want)
	}
	if got, want := NewRange(4, 1).Cursor(prev), 1; got != want {
		t.Fatalf("backward cursor=%d, want %d", got, want)
	}
	if got, want := Point(2).Cursor(prev), 2; got != want {
		t.Fatalf("caret cursor=%d, want %d", got, want)
	}
}

func TestSelection_NewNormalizes(t *testing.T) {
	s := New([]Range{NewRange(8, 10), NewRange(0, 2), NewRange(4, 6)}, 0)
	ranges := s.Ranges()
	if got, want := len(ranges), 3; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	for i, want := range []int{0, 4, 8} {
		if got := ranges[i].From(); got != want {
			t.Fatalf("range[%d].From=%d, want %d", i, got, want)
		}
	}
	// Primary followed its range through the sort.
	if got, want := s.Primary().From(), 8; got != want {
		t.Fatalf("primary from=%d, want %d", got, want)
	}
}

func TestSelection_MergeOverlapping(t *testing.T) {
	s := New([]Range{NewRange(0, 5), NewRange(3, 8), NewRange(10, 12)}, 1)
	if got, want := s.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	first := s.Ranges()[0]
	if got, want := first.From(), 0; got != want {
		t.Fatalf("merged from=%d, want %d", got, want)
	}
	if got, want := first.To(), 8; got != want {
		t.Fatalf("merged to=%d, want %d", got, want)
	}
	// The merged range inherited primary identity.
	if got, want := s.PrimaryIndex(), 0; got != want {
		t.Fatalf("primary=%d, want %d", got, want)
	}
}

func TestSelection_MergeKeepsPrimaryDirection(t *testing.T) {
	s := New([]Range{NewRange(0, 5), NewRange(8, 3)}, 1)
	if got, want := s.Len(), 1; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	r := s.Primary()
	if got, want := r.Direction(), Backward; got != want {
		t.Fatalf("direction=%v, want %v", got, want)
	}
	if got, want := r.From(), 0; got != want {
		t.Fatalf("from=%d, want %d", got, want)
	}
	if got, want := r.To(), 8; got != want {
		t.Fatalf("to=%d, want %d", got, want)
	}
}

func TestSelection_PushReplaceRemove(t *testing.T) {
	s := PointSel(0)
	s = s.Push(Point(5), true)
	if got, want := s.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, want := s.Primary(), Point(5); got != want {
		t.Fatalf("primary=%v, want %v", got, want)
	}

	s = s.Replace(0, Point(2))
	if got, want := s.Ranges()[0], Point(2); got != want {
		t.Fatalf("replaced=%v, want %v", got, want)
	}

	s = s.Remove(1)
	if got, want := s.Len(), 1; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
	if got, want := s.PrimaryIndex(), 0; got != want {
		t.Fatalf("primary=%d, want %d", got, want)
	}
}

func TestSelection_RotatePrimary(t *testing.T) {
	s := New([]Range{Point(0), Point(5), Point(9)}, 0)
	s = s.RotatePrimary(1)
	if got, want := s.PrimaryIndex(), 1; got != want {
		t.Fatalf("primary=%d, want %d", got, want)
	}
	s = s.RotatePrimary(-2)
	if got, want := s.PrimaryIndex(), 2; got != want {
		t.Fatalf("primary after wrap=%d, want %d", got, want)
	}
}

func TestSelection_TransformRelocatesPrimary(t *testing.T) {
	s := New([]Range{Point(0), Point(10)}, 1)
	s = s.Transform(func(r Range) Range {
		return Point(r.Head / 2)
	})
	if got, want := s.Primary(), Point(5); got != want {
		t.Fatalf("primary=%v, want %v", got, want)
	}
}

func TestSelection_InvariantsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty selection")
		}
	}()
	New(nil, 0)
}
