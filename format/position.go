package format

import "github.com/vellumtext/vellum/rope"

// VisualPosAtChar maps a char index to its visual position from the
// document start. Without soft wrap or annotations the row is the line
// index and the col is a width sum over the line prefix; otherwise the
// formatter runs from the start.
func VisualPosAtChar(text rope.Rope, cfg TextFormat, ann *Annotations, char int) rope.Position {
	if !cfg.SoftWrap && ann.IsEmpty() {
		row := text.CharToLine(char)
		col := 0
		it := text.Graphemes(text.LineToChar(row), char)
		for g, ok := it.Next(); ok; g, ok = it.Next() {
			col += rope.GraphemeWidth(g.Text, col, cfg.TabWidth)
		}
		return rope.Position{Row: row, Col: col}
	}

	f := New(text, cfg, ann, 0)
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		if !documentLike(g.Source) {
			continue
		}
		if g.Source == SourceEOF || g.CharIdx+max(g.Chars, 1) > char {
			return rope.Position{Row: g.Row, Col: g.Col}
		}
	}
	return rope.Position{}
}

// CharAtVisualPos is the inverse of VisualPosAtChar: the char whose
// grapheme covers pos, clamped to the row's content when col runs past its
// end and to the text when the row runs past the last one.
func CharAtVisualPos(text rope.Rope, cfg TextFormat, ann *Annotations, pos rope.Position) int {
	if !cfg.SoftWrap && ann.IsEmpty() {
		return charAtLineCol(text, cfg, pos)
	}

	f := New(text, cfg, ann, 0)
	fallback := 0
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		if !documentLike(g.Source) {
			continue
		}
		if g.Row > pos.Row {
			return fallback
		}
		if g.Source == SourceEOF {
			return g.CharIdx
		}
		fallback = g.CharIdx
		if g.Row == pos.Row && pos.Col < g.Col+max(g.Width, 1) {
			return g.CharIdx
		}
	}
	return text.LenChars()
}

func charAtLineCol(text rope.Rope, cfg TextFormat, pos rope.Position) int {
	row := pos.Row
	if row < 0 {
		row = 0
	}
	if last := text.LenLines() - 1; row > last {
		row = last
	}
	start, end := text.LineBounds(row)
	c := start
	col := 0
	it := text.Graphemes(start, end)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		switch g.Text {
		case "\n", "\r\n", "\r":
			return g.CharIdx
		}
		w := rope.GraphemeWidth(g.Text, col, cfg.TabWidth)
		if pos.Col < col+w {
			return g.CharIdx
		}
		col += w
		c = g.CharIdx + g.Chars
	}
	return c
}

// VisualOffsetFromBlock returns pos's visual position relative to the
// block containing anchor, plus the block's start char.
func VisualOffsetFromBlock(text rope.Rope, cfg TextFormat, ann *Annotations, anchor, pos int) (rope.Position, int) {
	block := BlockStart(text, anchor)
	f := New(text, cfg, ann, block)
	var last rope.Position
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		if !documentLike(g.Source) {
			continue
		}
		if g.CharIdx > pos {
			break
		}
		last = rope.Position{Row: g.Row, Col: g.Col}
		if g.Source == SourceEOF {
			break
		}
	}
	return last, block
}

// CharIdxAtVisualOffset resolves the char rowOffset visual rows away from
// anchor at the given visual col. Negative offsets walk blocks backwards,
// summing their heights. The second result counts virtual rows left over
// when the target lies beyond the end of the text.
func CharIdxAtVisualOffset(text rope.Rope, cfg TextFormat, ann *Annotations, anchor, rowOffset, col int) (int, int) {
	anchorPos, block := VisualOffsetFromBlock(text, cfg, ann, anchor, anchor)
	target := anchorPos.Row + rowOffset
	for target < 0 && block > 0 {
		prevStart := text.LineToChar(text.CharToLine(block - 1))
		target += blockHeight(text, cfg, ann, prevStart)
		block = prevStart
	}
	if target < 0 {
		return 0, 0
	}

	f := New(text, cfg, ann, block)
	fallback := block
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		if !documentLike(g.Source) {
			continue
		}
		if g.Row > target {
			return fallback, 0
		}
		if g.Source == SourceEOF {
			return g.CharIdx, target - g.Row
		}
		fallback = g.CharIdx
		if g.Row == target && col < g.Col+max(g.Width, 1) {
			return g.CharIdx, 0
		}
	}
	return text.LenChars(), 0
}

// blockHeight counts the visual rows of the logical line starting at
// lineStart, wraps and virtual rows included.
func blockHeight(text rope.Rope, cfg TextFormat, ann *Annotations, lineStart int) int {
	line := text.CharToLine(lineStart)
	end := text.LenChars() + 1
	if line+1 < text.LenLines() {
		end = text.LineToChar(line + 1)
	}
	f := New(text, cfg, ann, lineStart)
	height := 1
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		if g.CharIdx >= end {
			break
		}
		height = g.Row + 1
	}
	return height
}

func documentLike(s Source) bool {
	return s == SourceDocument || s == SourceEOF
}
