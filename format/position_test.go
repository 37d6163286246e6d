package format

import (
	"testing"

	"github.com/vellumtext/vellum/rope"
)

func TestVisualPosAtChar_SoftWrap(t *testing.T) {
	text := rope.New("abcdefghij")
	cfg := wrapFormat(4)

	cases := []struct {
		char int
		want rope.Position
	}{
		{char: 0, want: rope.Position{Row: 0, Col: 0}},
		{char: 4, want: rope.Position{Row: 1, Col: 1}},
		{char: 6, want: rope.Position{Row: 1, Col: 3}},
		{char: 10, want: rope.Position{Row: 2, Col: 4}}, // EOF position
	}
	for _, tc := range cases {
		if got := VisualPosAtChar(text, cfg, nil, tc.char); got != tc.want {
			t.Fatalf("VisualPosAtChar(%d)=%v, want %v", tc.char, got, tc.want)
		}
	}
}

func TestCharAtVisualPos_SoftWrap(t *testing.T) {
	text := rope.New("abcdefghij")
	cfg := wrapFormat(4)

	cases := []struct {
		pos  rope.Position
		want int
	}{
		{pos: rope.Position{Row: 0, Col: 2}, want: 2},
		{pos: rope.Position{Row: 1, Col: 0}, want: 4}, // indicator column resolves to first char after it
		{pos: rope.Position{Row: 1, Col: 3}, want: 6},
		{pos: rope.Position{Row: 2, Col: 99}, want: 10}, // past row end clamps to EOF
	}
	for _, tc := range cases {
		if got := CharAtVisualPos(text, cfg, nil, tc.pos); got != tc.want {
			t.Fatalf("CharAtVisualPos(%v)=%d, want %d", tc.pos, got, tc.want)
		}
	}
}

func TestVisualCharRoundtripWithoutSoftWrap(t *testing.T) {
	text := rope.New("héllo\twor🙂ld\nsecond line\n\tindented")
	cfg := TextFormat{TabWidth: 4, ViewportWidth: 80}

	boundaries := []int{0}
	it := text.Graphemes(0, text.LenChars())
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		boundaries = append(boundaries, g.CharIdx+g.Chars)
	}
	for _, i := range boundaries {
		pos := VisualPosAtChar(text, cfg, nil, i)
		if got := CharAtVisualPos(text, cfg, nil, pos); got != i {
			t.Fatalf("roundtrip of char %d via %v gave %d", i, pos, got)
		}
	}
}

func TestCharAtVisualPos_ClampsPastLineEnd(t *testing.T) {
	text := rope.New("ab\ncdef\n")
	cfg := TextFormat{TabWidth: 4, ViewportWidth: 80}

	// Col past the content stops before the line break.
	if got, want := CharAtVisualPos(text, cfg, nil, rope.Position{Row: 0, Col: 10}), 2; got != want {
		t.Fatalf("clamped char=%d, want %d", got, want)
	}
	// Row past the last line clamps to the last line.
	if got, want := CharAtVisualPos(text, cfg, nil, rope.Position{Row: 99, Col: 0}), 8; got != want {
		t.Fatalf("clamped char=%d, want %d", got, want)
	}
}

func TestVisualOffsetFromBlock(t *testing.T) {
	text := rope.New("abcdefghij")
	cfg := wrapFormat(4)

	pos, block := VisualOffsetFromBlock(text, cfg, nil, 6, 6)
	if want := (rope.Position{Row: 1, Col: 3}); pos != want || block != 0 {
		t.Fatalf("offset=(%v,%d), want (%v,0)", pos, block, want)
	}
}

func TestCharIdxAtVisualOffset_AcrossLines(t *testing.T) {
	text := rope.New("one\ntwo three\nfour")
	cfg := TextFormat{TabWidth: 4, ViewportWidth: 80}

	cases := []struct {
		anchor, rowOffset, col int
		want, leftover         int
	}{
		{anchor: 4, rowOffset: -1, col: 0, want: 0},
		{anchor: 4, rowOffset: 1, col: 0, want: 14},
		{anchor: 4, rowOffset: 1, col: 2, want: 16},
		{anchor: 0, rowOffset: 10, col: 0, want: 18, leftover: 8},
		{anchor: 14, rowOffset: -10, col: 0, want: 0},
	}
	for _, tc := range cases {
		got, left := CharIdxAtVisualOffset(text, cfg, nil, tc.anchor, tc.rowOffset, tc.col)
		if got != tc.want || left != tc.leftover {
			t.Fatalf("CharIdxAtVisualOffset(%d,%d,%d)=(%d,%d), want (%d,%d)",
				tc.anchor, tc.rowOffset, tc.col, got, left, tc.want, tc.leftover)
		}
	}
}

func TestCharIdxAtVisualOffset_AcrossWraps(t *testing.T) {
	text := rope.New("abcdefghij")
	cfg := wrapFormat(4)

	// Down one visual row within the same logical line.
	if got, _ := CharIdxAtVisualOffset(text, cfg, nil, 0, 1, 3); got != 6 {
		t.Fatalf("down into wrap gave %d, want 6", got)
	}
	// Back up from the wrapped row.
	if got, _ := CharIdxAtVisualOffset(text, cfg, nil, 6, -1, 2); got != 2 {
		t.Fatalf("up from wrap gave %d, want 2", got)
	}
}
