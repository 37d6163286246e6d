package rope

// Position is a (row, col) pair. Row is a line index; Col counts grapheme
// clusters from the line start.
type Position struct {
	Row int
	Col int
}

// CoordsAtPos maps a char index to its (row, grapheme col) coordinates.
func (r Rope) CoordsAtPos(c int) Position {
	checkBounds(c, r.LenChars())
	row := r.CharToLine(c)
	start := r.LineToChar(row)
	col := 0
	it := r.Graphemes(start, c)
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		col++
	}
	return Position{Row: row, Col: col}
}

// CharIdxAtCoords maps coordinates back to a char index, clamping Col to
// the line end (excluding the line break) and Row to the last line.
func (r Rope) CharIdxAtCoords(p Position) int {
	row := p.Row
	if row < 0 {
		row = 0
	}
	if last := r.LenLines() - 1; row > last {
		row = last
	}
	start, end := r.LineBounds(row)
	// Keep the cursor off the line break.
	limit := end
	if row < r.LenLines()-1 {
		limit = r.lineContentEnd(start, end)
	}
	c := start
	col := 0
	it := r.Graphemes(start, limit)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if col >= p.Col {
			return g.CharIdx
		}
		c = g.CharIdx + g.Chars
		col++
	}
	return c
}

// lineContentEnd returns end minus the line break chars, if present.
func (r Rope) lineContentEnd(start, end int) int {
	if end > start {
		tail := r.Slice(maxOf(start, end-2), end).String()
		switch {
		case len(tail) >= 2 && tail[len(tail)-2:] == "\r\n":
			return end - 2
		case tail[len(tail)-1] == '\n' || tail[len(tail)-1] == '\r':
			return end - 1
		}
	}
	return end
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
