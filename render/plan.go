package render

import (
	"strings"

	"github.com/vellumtext/vellum/format"
	"github.com/vellumtext/vellum/rope"
	"github.com/vellumtext/vellum/selection"
)

// Rect is a viewport area in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Scroll is the view origin in visual rows and cols.
type Scroll struct {
	Row int
	Col int
}

// Span is a run of cells sharing one style. Col is viewport-relative.
type Span struct {
	Col       int
	Text      string
	Highlight int
	Overlay   Overlay
	Virtual   bool
}

// Line is one visible row of spans. Row is viewport-relative.
type Line struct {
	Row   int
	Spans []Span
}

// CursorKind distinguishes the primary cursor from secondary markers.
type CursorKind int

const (
	CursorPrimary CursorKind = iota
	CursorSecondary
)

// Cursor is a cursor cell in viewport coordinates. Backends that can only
// place one hardware cursor draw the primary and paint the rest.
type Cursor struct {
	Row  int
	Col  int
	Kind CursorKind
}

// Plan is a frame: the visible lines and every cursor in view.
type Plan struct {
	Lines   []Line
	Cursors []Cursor
}

type lineBuilder struct {
	plan    *Plan
	row     int
	open    bool
	spanEnd int
}

func (b *lineBuilder) cell(row, col int, text string, width, highlight int, overlay Overlay, virtual bool) {
	if !b.open || b.row != row {
		b.plan.Lines = append(b.plan.Lines, Line{Row: row})
		b.row = row
		b.open = true
		b.spanEnd = -1
	}
	line := &b.plan.Lines[len(b.plan.Lines)-1]
	if n := len(line.Spans); n > 0 && b.spanEnd == col {
		last := &line.Spans[n-1]
		if last.Highlight == highlight && last.Overlay == overlay && last.Virtual == virtual {
			last.Text += text
			b.spanEnd += width
			return
		}
	}
	line.Spans = append(line.Spans, Span{
		Col: col, Text: text, Highlight: highlight, Overlay: overlay, Virtual: virtual,
	})
	b.spanEnd = col + width
}

// BuildPlan runs the formatter once over the viewport and produces the
// frame plan. highlightAt resolves a char index to a highlight (may be
// nil). Rows above scroll are skipped; iteration stops past the viewport.
func BuildPlan(text rope.Rope, sel selection.Selection, cfg format.TextFormat,
	ann *format.Annotations, viewport Rect, scroll Scroll, highlightAt func(charIdx int) int) Plan {

	cursors := make(map[int]CursorKind, sel.Len())
	for i, r := range sel.Ranges() {
		kind := CursorSecondary
		if i == sel.PrimaryIndex() {
			kind = CursorPrimary
		}
		cursors[r.Cursor(text.PrevGraphemeBoundary)] = kind
	}

	// Checkpoint: without soft wrap or annotations, visual rows are line
	// indices, so formatting can start at the first visible line.
	start, baseRow := 0, 0
	if !cfg.SoftWrap && ann.IsEmpty() {
		line := scroll.Row
		if last := text.LenLines() - 1; line > last {
			line = last
		}
		if line < 0 {
			line = 0
		}
		start = text.LineToChar(line)
		baseRow = line
	}

	var plan Plan
	b := lineBuilder{plan: &plan}
	f := format.New(text, cfg, ann, start)
	for g, ok := f.Next(); ok; g, ok = f.Next() {
		row := baseRow + g.Row
		if row < scroll.Row {
			continue
		}
		if row >= scroll.Row+viewport.Height {
			break
		}
		relRow := row - scroll.Row
		relCol := g.Col - scroll.Col

		isDoc := g.Source == format.SourceDocument || g.Source == format.SourceEOF
		overlay := OverlayNone
		if isDoc {
			if kind, ok := cursors[g.CharIdx]; ok {
				overlay = OverlayCursor
				if kind == CursorPrimary {
					overlay = OverlayActiveCursor
				}
				if relCol >= 0 && relCol < viewport.Width {
					plan.Cursors = append(plan.Cursors, Cursor{Row: relRow, Col: relCol, Kind: kind})
				}
			} else if inSelection(sel, g.CharIdx) {
				overlay = OverlaySelection
			}
		}

		cellText, width := displayText(g)
		if width == 0 && overlay == OverlayNone {
			continue
		}
		if width == 0 {
			// Cursor resting on a newline or EOF still needs a cell.
			cellText, width = " ", 1
		}
		if relCol < 0 || relCol >= viewport.Width {
			continue
		}

		highlight := g.Highlight
		if g.Source == format.SourceDocument && highlightAt != nil {
			highlight = highlightAt(g.CharIdx)
		}
		b.cell(relRow, relCol, cellText, width, highlight, overlay, !isDoc)
	}
	return plan
}

func displayText(g format.FormattedGrapheme) (string, int) {
	switch g.Source {
	case format.SourceVirtualLine, format.SourceEOF:
		return "", 0
	}
	switch g.Raw {
	case "\n", "\r\n", "\r":
		return "", 0
	case "\t":
		return strings.Repeat(" ", g.Width), g.Width
	}
	return g.Raw, g.Width
}

func inSelection(sel selection.Selection, char int) bool {
	for _, r := range sel.Ranges() {
		if !r.IsEmpty() && r.From() <= char && char < r.To() {
			return true
		}
	}
	return false
}
