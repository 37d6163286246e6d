package syntax

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

func TestTreeEdits_SingleReplace(t *testing.T) {
	old := rope.New("fn main() {}\nlet x = 1;\n")
	cs, err := edit.NewChangeSet(old, []edit.Change{{From: 17, To: 18, Insert: "y2"}})
	if err != nil {
		t.Fatalf("NewChangeSet: %v", err)
	}

	edits := treeEdits(old, cs)
	if got, want := len(edits), 1; got != want {
		t.Fatalf("edits=%d, want %d", got, want)
	}
	want := sitter.EditInput{
		StartIndex:  17,
		OldEndIndex: 18,
		NewEndIndex: 19,
		StartPoint:  sitter.Point{Row: 1, Column: 4},
		OldEndPoint: sitter.Point{Row: 1, Column: 5},
		NewEndPoint: sitter.Point{Row: 1, Column: 6},
	}
	if edits[0] != want {
		t.Fatalf("edit=%+v, want %+v", edits[0], want)
	}
}

func TestTreeEdits_MultilineInsert(t *testing.T) {
	old := rope.New("ab")
	cs, err := edit.NewChangeSet(old, []edit.Change{{From: 1, To: 1, Insert: "x\nyz"}})
	if err != nil {
		t.Fatalf("NewChangeSet: %v", err)
	}

	edits := treeEdits(old, cs)
	got := edits[0]
	if got.NewEndIndex != 5 {
		t.Fatalf("new end index=%d, want 5", got.NewEndIndex)
	}
	if want := (sitter.Point{Row: 1, Column: 2}); got.NewEndPoint != want {
		t.Fatalf("new end point=%+v, want %+v", got.NewEndPoint, want)
	}
}

func TestPointAtByte(t *testing.T) {
	text := rope.New("héllo\nwörld")
	cases := []struct {
		byteIdx int
		want    sitter.Point
	}{
		{byteIdx: 0, want: sitter.Point{Row: 0, Column: 0}},
		{byteIdx: 3, want: sitter.Point{Row: 0, Column: 3}}, // after the two-byte é
		{byteIdx: 7, want: sitter.Point{Row: 1, Column: 0}},
		{byteIdx: 10, want: sitter.Point{Row: 1, Column: 3}},
	}
	for _, tc := range cases {
		if got := pointAtByte(text, tc.byteIdx); got != tc.want {
			t.Fatalf("pointAtByte(%d)=%+v, want %+v", tc.byteIdx, got, tc.want)
		}
	}
}

func TestAdvancePoint(t *testing.T) {
	p := sitter.Point{Row: 2, Column: 4}
	if got, want := advancePoint(p, "abc"), (sitter.Point{Row: 2, Column: 7}); got != want {
		t.Fatalf("same-line advance=%+v, want %+v", got, want)
	}
	if got, want := advancePoint(p, "a\n\nbc"), (sitter.Point{Row: 4, Column: 2}); got != want {
		t.Fatalf("multiline advance=%+v, want %+v", got, want)
	}
	if got, want := advancePoint(p, "x\n"), (sitter.Point{Row: 3, Column: 0}); got != want {
		t.Fatalf("trailing newline advance=%+v, want %+v", got, want)
	}
}
