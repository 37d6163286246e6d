package rope

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme is one user-perceived character as produced by iteration.
type Grapheme struct {
	// Text is the cluster's UTF-8 bytes.
	Text string
	// CharIdx is the rope char index where the cluster starts.
	CharIdx int
	// Chars is the number of Unicode scalars in the cluster.
	Chars int
}

// Width returns the display width of the cluster in cells (0, 1, or 2).
// Tabs report the advance from visualCol to the next tab stop.
func (g Grapheme) Width(visualCol, tabWidth int) int {
	return GraphemeWidth(g.Text, visualCol, tabWidth)
}

// GraphemeWidth returns the display width of a single cluster at visualCol.
func GraphemeWidth(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		return TabAdvance(visualCol, tabWidth)
	}
	if cluster == "\n" || cluster == "\r\n" || cluster == "\r" {
		return 0
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		// runewidth reports 0 for some clusters (e.g. emoji ZWJ
		// sequences on older tables); uniseg knows better.
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	if w < 0 {
		w = 0
	}
	return w
}

// TabAdvance returns the width of a tab starting at visualCol.
func TabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}

// GraphemeIter iterates the clusters of a char range in order.
// Boundaries follow UAX #29; "\r\n" is a single cluster.
type GraphemeIter struct {
	text    string
	state   int
	charIdx int
}

// Graphemes returns an iterator over the clusters of [from, to).
func (r Rope) Graphemes(from, to int) *GraphemeIter {
	return &GraphemeIter{
		text:    r.Slice(from, to).String(),
		state:   -1,
		charIdx: from,
	}
}

// Next returns the next cluster, or ok=false at the end of the range.
func (it *GraphemeIter) Next() (Grapheme, bool) {
	if it.text == "" {
		return Grapheme{}, false
	}
	cluster, rest, _, state := uniseg.StepString(it.text, it.state)
	it.state = state
	it.text = rest
	g := Grapheme{
		Text:    cluster,
		CharIdx: it.charIdx,
		Chars:   runeCount(cluster),
	}
	it.charIdx += g.Chars
	return g, true
}

// ReverseGraphemeIter iterates clusters of a char range in reverse.
type ReverseGraphemeIter struct {
	clusters []Grapheme
	i        int
}

// GraphemesBefore returns a reverse iterator over [from, to).
func (r Rope) GraphemesBefore(from, to int) *ReverseGraphemeIter {
	var clusters []Grapheme
	it := r.Graphemes(from, to)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		clusters = append(clusters, g)
	}
	return &ReverseGraphemeIter{clusters: clusters, i: len(clusters)}
}

// Prev returns the previous cluster, or ok=false at the start of the range.
func (it *ReverseGraphemeIter) Prev() (Grapheme, bool) {
	if it.i == 0 {
		return Grapheme{}, false
	}
	it.i--
	return it.clusters[it.i], true
}

// EnsureGraphemeBoundaryPrev snaps c to the nearest cluster boundary <= c.
func (r Rope) EnsureGraphemeBoundaryPrev(c int) int {
	checkBounds(c, r.LenChars())
	if c == 0 || c == r.LenChars() {
		return c
	}
	start, end := r.lineSpanAround(c)
	boundary := start
	it := r.Graphemes(start, end)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if g.CharIdx > c {
			break
		}
		boundary = g.CharIdx
	}
	return boundary
}

// EnsureGraphemeBoundaryNext snaps c to the nearest cluster boundary >= c.
func (r Rope) EnsureGraphemeBoundaryNext(c int) int {
	checkBounds(c, r.LenChars())
	if c == 0 || c == r.LenChars() {
		return c
	}
	start, end := r.lineSpanAround(c)
	it := r.Graphemes(start, end)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if g.CharIdx >= c {
			return g.CharIdx
		}
		if g.CharIdx+g.Chars > c {
			return g.CharIdx + g.Chars
		}
	}
	return end
}

// PrevGraphemeBoundary returns the boundary strictly before c (0 at the
// document start).
func (r Rope) PrevGraphemeBoundary(c int) int {
	if c == 0 {
		return 0
	}
	return r.EnsureGraphemeBoundaryPrev(c - 1)
}

// NextGraphemeBoundary returns the boundary strictly after c (LenChars at
// the document end).
func (r Rope) NextGraphemeBoundary(c int) int {
	n := r.LenChars()
	if c >= n {
		return n
	}
	start, end := r.lineSpanAround(c)
	it := r.Graphemes(start, end)
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		if g.CharIdx+g.Chars > c {
			return g.CharIdx + g.Chars
		}
	}
	return end
}

// lineSpanAround returns the bounds of the line containing c, including the
// line break. Clusters never cross a line break, so this is a safe window
// for boundary scans.
func (r Rope) lineSpanAround(c int) (start, end int) {
	line := r.CharToLine(c)
	return r.LineBounds(line)
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
