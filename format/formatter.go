package format

import "github.com/vellumtext/vellum/rope"

// Formatter streams positioned graphemes from a checkpoint char index.
// Rows and columns are relative to the checkpoint, which must be a line
// start (see BlockStart). The stream ends with a single SourceEOF sentinel
// carrying the final visual position.
type Formatter struct {
	text rope.Rope
	cfg  TextFormat

	it     *rope.GraphemeIter
	inline []InlineAnnotation
	lines  []LineAnnotation

	indicator      []string
	indicatorWidth int

	queue []FormattedGrapheme
	qi    int

	row, col int
	wraps    int

	lineIndent int
	indentDone bool

	endChar int
	eofDone bool
}

// BlockStart returns the formatter checkpoint for char: the start of its
// logical line.
func BlockStart(text rope.Rope, char int) int {
	return text.LineToChar(text.CharToLine(char))
}

// New starts a formatter at the checkpoint start. Line annotations are
// expected to be anchored at line starts.
func New(text rope.Rope, cfg TextFormat, ann *Annotations, start int) *Formatter {
	f := &Formatter{
		text:    text,
		cfg:     cfg,
		it:      text.Graphemes(start, text.LenChars()),
		inline:  ann.inlineFrom(start),
		lines:   ann.linesFrom(start),
		endChar: text.LenChars(),
	}
	ind := rope.New(cfg.WrapIndicator)
	it := ind.Graphemes(0, ind.LenChars())
	for g, ok := it.Next(); ok; g, ok = it.Next() {
		f.indicator = append(f.indicator, g.Text)
		f.indicatorWidth += rope.GraphemeWidth(g.Text, f.indicatorWidth, cfg.TabWidth)
	}
	return f
}

// Next returns the next formatted grapheme, or ok=false after the EOF
// sentinel has been yielded.
func (f *Formatter) Next() (FormattedGrapheme, bool) {
	if f.qi == len(f.queue) {
		f.queue = f.queue[:0]
		f.qi = 0
		if !f.fill() {
			return FormattedGrapheme{}, false
		}
	}
	g := f.queue[f.qi]
	f.qi++
	return g, true
}

func (f *Formatter) fill() bool {
	g, ok := f.it.Next()
	if !ok {
		if f.eofDone {
			return false
		}
		f.eofDone = true
		f.emitLineAnnotations(f.endChar)
		f.emitInline(f.endChar)
		f.queue = append(f.queue, FormattedGrapheme{
			CharIdx:   f.endChar,
			Row:       f.row,
			Col:       f.col,
			Source:    SourceEOF,
			Highlight: NoHighlight,
		})
		return true
	}
	f.emitLineAnnotations(g.CharIdx)
	f.emitInline(g.CharIdx)
	f.place(g)
	return true
}

func (f *Formatter) emitLineAnnotations(char int) {
	for len(f.lines) > 0 && f.lines[0].CharIdx <= char {
		for i := 0; i < f.lines[0].Height; i++ {
			f.queue = append(f.queue, FormattedGrapheme{
				CharIdx:   f.lines[0].CharIdx,
				Row:       f.row,
				Source:    SourceVirtualLine,
				Highlight: NoHighlight,
			})
			f.row++
		}
		f.lines = f.lines[1:]
	}
}

func (f *Formatter) emitInline(char int) {
	for len(f.inline) > 0 && f.inline[0].CharIdx <= char {
		ann := f.inline[0]
		f.inline = f.inline[1:]
		it := rope.New(ann.Text).Graphemes(0, len([]rune(ann.Text)))
		for g, ok := it.Next(); ok; g, ok = it.Next() {
			f.placeCluster(g.Text, char, 0, SourceVirtual, ann.Highlight)
		}
	}
}

func (f *Formatter) place(g rope.Grapheme) {
	switch g.Text {
	case "\n", "\r\n", "\r":
		f.queue = append(f.queue, FormattedGrapheme{
			CharIdx:   g.CharIdx,
			Chars:     g.Chars,
			Raw:       g.Text,
			Row:       f.row,
			Col:       f.col,
			Source:    SourceDocument,
			Highlight: NoHighlight,
		})
		f.row++
		f.col = 0
		f.wraps = 0
		f.lineIndent = 0
		f.indentDone = false
		return
	}
	if !f.indentDone {
		if g.Text == " " || g.Text == "\t" {
			f.lineIndent += rope.GraphemeWidth(g.Text, f.col, f.cfg.TabWidth)
		} else {
			f.indentDone = true
		}
	}
	f.placeCluster(g.Text, g.CharIdx, g.Chars, SourceDocument, NoHighlight)
}

func (f *Formatter) placeCluster(raw string, charIdx, chars int, source Source, highlight int) {
	w := rope.GraphemeWidth(raw, f.col, f.cfg.TabWidth)
	if f.cfg.SoftWrap && f.wraps < f.cfg.MaxWrap {
		indent := f.wrapIndent()
		if f.col+w > f.cfg.wrapLimit() && f.col > indent {
			f.row++
			f.wraps++
			f.col = indent
			for _, cluster := range f.indicator {
				iw := rope.GraphemeWidth(cluster, f.col, f.cfg.TabWidth)
				f.queue = append(f.queue, FormattedGrapheme{
					CharIdx:   charIdx,
					Raw:       cluster,
					Row:       f.row,
					Col:       f.col,
					Width:     iw,
					Source:    SourceWrapIndicator,
					Highlight: f.cfg.WrapIndicatorHighlight,
				})
				f.col += iw
			}
			w = rope.GraphemeWidth(raw, f.col, f.cfg.TabWidth)
		}
	}
	f.queue = append(f.queue, FormattedGrapheme{
		CharIdx:   charIdx,
		Chars:     chars,
		Raw:       raw,
		Row:       f.row,
		Col:       f.col,
		Width:     w,
		Source:    source,
		Highlight: highlight,
	})
	f.col += w
}

// wrapIndent is the column continuation rows restart at: the logical
// line's leading indent, capped, and dropped entirely when it would leave
// no room for content.
func (f *Formatter) wrapIndent() int {
	indent := f.lineIndent
	if indent > f.cfg.MaxIndentRetain {
		indent = f.cfg.MaxIndentRetain
	}
	if indent+f.indicatorWidth >= f.cfg.wrapLimit() {
		return 0
	}
	return indent
}
