package lsp

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

func TestPositionOfChar_UTF16Units(t *testing.T) {
	// "🙂" is one char but two UTF-16 code units.
	text := rope.New("a🙂b\ncd")
	cases := []struct {
		char int
		want Position
	}{
		{char: 0, want: Position{Line: 0, Character: 0}},
		{char: 1, want: Position{Line: 0, Character: 1}},
		{char: 2, want: Position{Line: 0, Character: 3}}, // after the surrogate pair
		{char: 3, want: Position{Line: 0, Character: 4}},
		{char: 4, want: Position{Line: 1, Character: 0}},
		{char: 6, want: Position{Line: 1, Character: 2}},
	}
	for _, tc := range cases {
		if got := PositionOfChar(text, tc.char); got != tc.want {
			t.Fatalf("PositionOfChar(%d)=%v, want %v", tc.char, got, tc.want)
		}
	}
}

func TestCharOfPosition_RoundtripAndClamp(t *testing.T) {
	text := rope.New("a🙂b\ncd")
	for _, char := range []int{0, 1, 2, 3, 4, 5, 6} {
		pos := PositionOfChar(text, char)
		if got := CharOfPosition(text, pos); got != char {
			t.Fatalf("roundtrip of char %d via %v gave %d", char, pos, got)
		}
	}
	// Character past the line end clamps to the content end, before the
	// line break rather than onto the next line's start.
	if got, want := CharOfPosition(text, Position{Line: 0, Character: 99}), 3; got != want {
		t.Fatalf("clamped char=%d, want %d", got, want)
	}
	if got, want := CharOfPosition(text, Position{Line: 1, Character: 99}), 6; got != want {
		t.Fatalf("clamped char=%d, want %d", got, want)
	}
	// Line past the text clamps to the text end.
	if got, want := CharOfPosition(text, Position{Line: 9, Character: 0}), 6; got != want {
		t.Fatalf("clamped char=%d, want %d", got, want)
	}
}

func TestContentChanges_PreImageCoordinates(t *testing.T) {
	old := rope.New("hello\nworld")
	cs, err := edit.NewChangeSet(old, []edit.Change{
		{From: 0, To: 1, Insert: "H"},
		{From: 6, To: 11, Insert: "there"},
	})
	if err != nil {
		t.Fatalf("NewChangeSet: %v", err)
	}

	got := ContentChanges(old, cs)
	want := []ContentChange{
		{Range: &Range{Start: Position{0, 0}, End: Position{0, 1}}, Text: "H"},
		{Range: &Range{Start: Position{1, 0}, End: Position{1, 5}}, Text: "there"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestDidChange_Payload(t *testing.T) {
	old := rope.New("ab")
	cs, err := edit.NewChangeSet(old, []edit.Change{{From: 1, To: 1, Insert: "x"}})
	if err != nil {
		t.Fatalf("NewChangeSet: %v", err)
	}

	params := DidChange("file:///tmp/a.go", 7, old, cs)
	raw, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"textDocument":{"uri":"file:///tmp/a.go","version":7},` +
		`"contentChanges":[{"range":{"start":{"line":0,"character":1},` +
		`"end":{"line":0,"character":1}},"text":"x"}]}`
	if string(raw) != want {
		t.Fatalf("payload=%s\nwant   =%s", raw, want)
	}
}

func TestFullContentChange(t *testing.T) {
	got := FullContentChange(rope.New("all of it"))
	if len(got) != 1 || got[0].Range != nil || got[0].Text != "all of it" {
		t.Fatalf("full change=%+v", got)
	}
}
