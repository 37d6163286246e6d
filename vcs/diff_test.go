package vcs

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDiffLines_Added(t *testing.T) {
	base := "one\ntwo\n"
	current := "one\ninserted\ntwo\n"
	want := []Hunk{
		{Kind: Added, OldStart: 1, OldEnd: 1, NewStart: 1, NewEnd: 2},
	}
	if diff := cmp.Diff(want, DiffLines(base, current)); diff != "" {
		t.Fatalf("hunks mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffLines_Removed(t *testing.T) {
	base := "one\ntwo\nthree\n"
	current := "one\nthree\n"
	want := []Hunk{
		{Kind: Removed, OldStart: 1, OldEnd: 2, NewStart: 1, NewEnd: 1},
	}
	if diff := cmp.Diff(want, DiffLines(base, current)); diff != "" {
		t.Fatalf("hunks mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffLines_Modified(t *testing.T) {
	base := "one\ntwo\nthree\n"
	current := "one\nTWO!\nthree\n"
	want := []Hunk{
		{Kind: Modified, OldStart: 1, OldEnd: 2, NewStart: 1, NewEnd: 2},
	}
	if diff := cmp.Diff(want, DiffLines(base, current)); diff != "" {
		t.Fatalf("hunks mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffLines_Identical(t *testing.T) {
	if hunks := DiffLines("same\n", "same\n"); len(hunks) != 0 {
		t.Fatalf("identical texts produced hunks: %+v", hunks)
	}
}

func TestWorker_ComputesOffThread(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWorker(4)
	done := make(chan struct{})
	go func() {
		w.Run(ctx, 2)
		close(done)
	}()

	if !w.Submit(Request{Path: "a.txt", Version: 3, Base: "x\n", Current: "x\ny\n"}) {
		t.Fatalf("submit rejected on empty queue")
	}

	select {
	case res := <-w.Results():
		if res.Path != "a.txt" || res.Version != 3 {
			t.Fatalf("result=%+v", res)
		}
		if len(res.Hunks) != 1 || res.Hunks[0].Kind != Added {
			t.Fatalf("hunks=%+v", res.Hunks)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no diff result within deadline")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("worker did not stop on cancellation")
	}
}

func TestParsePorcelain(t *testing.T) {
	out := []byte(" M internal/a.go\n" +
		"A  newfile.go\n" +
		"?? scratch.txt\n" +
		" D gone.go\n" +
		"R  old.go -> new.go\n")
	want := []FileChange{
		{Path: "internal/a.go", Kind: Modified},
		{Path: "newfile.go", Kind: Added},
		{Path: "scratch.txt", Kind: Added},
		{Path: "gone.go", Kind: Removed},
		{Path: "new.go", Kind: Modified},
	}
	if diff := cmp.Diff(want, parsePorcelain(out)); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}
