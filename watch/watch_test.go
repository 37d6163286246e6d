package watch

import (
	"testing"
	"time"
)

func TestReloader_SuppressionWindow(t *testing.T) {
	t0 := time.Now()
	r := NewReloader("/tmp/file.txt")
	r.Suppress(t0.Add(500 * time.Millisecond))

	batch := []PathEvent{{Path: "/tmp/file.txt", Kind: Changed}}

	// Inside the window: the editor's own save, not an external change.
	d := r.Consume(t0.Add(100*time.Millisecond), batch)
	if d.Outcome != NoChanges {
		t.Fatalf("suppressed batch gave %v, want NoChanges", d.Outcome)
	}

	// Past the window: a genuine external change.
	d = r.Consume(t0.Add(700*time.Millisecond), batch)
	if d.Outcome != Changes {
		t.Fatalf("late batch gave %v, want Changes", d.Outcome)
	}
	if d.FinalKind() != Changed {
		t.Fatalf("final kind=%v, want Changed", d.FinalKind())
	}
	if d.URI != "file:///tmp/file.txt" {
		t.Fatalf("uri=%q", d.URI)
	}
}

func TestReloader_CollapsesBurstToFinalKind(t *testing.T) {
	r := NewReloader("/w/a.go")
	d := r.Consume(time.Now(), []PathEvent{
		{Path: "/w/a.go", Kind: Removed},
		{Path: "/w/a.go", Kind: Created},
		{Path: "/w/a.go", Kind: Changed},
	})
	if d.Outcome != Changes {
		t.Fatalf("outcome=%v, want Changes", d.Outcome)
	}
	if got, want := len(d.Kinds), 3; got != want {
		t.Fatalf("kinds=%v, want %d entries", d.Kinds, want)
	}
	if d.FinalKind() != Changed {
		t.Fatalf("final kind=%v, want Changed", d.FinalKind())
	}
}

func TestReloader_IgnoresOtherPaths(t *testing.T) {
	r := NewReloader("/w/a.go")
	d := r.Consume(time.Now(), []PathEvent{
		{Path: "/w/b.go", Kind: Changed},
		{Path: "/w/c.go", Kind: Removed},
	})
	if d.Outcome != NoChanges {
		t.Fatalf("foreign batch gave %v, want NoChanges", d.Outcome)
	}
}

func TestReloader_Disconnect(t *testing.T) {
	r := NewReloader("/w/a.go")
	d := r.Disconnect()
	if d.Outcome != Disconnected || d.Path != "/w/a.go" {
		t.Fatalf("decision=%+v", d)
	}
}
