package format

import "sort"

// InlineAnnotation inserts virtual graphemes before the document grapheme
// at CharIdx. Inlay hints and similar overlays use this.
type InlineAnnotation struct {
	CharIdx   int
	Text      string
	Highlight int
}

// LineAnnotation reserves Height virtual rows before the row holding
// CharIdx. Diagnostics rendered between lines use this.
type LineAnnotation struct {
	CharIdx int
	Height  int
}

// Annotations collects the virtual text threaded into formatting. Entries
// within each kind must not overlap; the formatter consumes them in char
// order.
type Annotations struct {
	inline []InlineAnnotation
	lines  []LineAnnotation
}

// AddInline registers an inline annotation, keeping char order.
func (a *Annotations) AddInline(ann InlineAnnotation) *Annotations {
	a.inline = append(a.inline, ann)
	sort.SliceStable(a.inline, func(i, j int) bool {
		return a.inline[i].CharIdx < a.inline[j].CharIdx
	})
	return a
}

// AddLine registers a line annotation, keeping char order.
func (a *Annotations) AddLine(ann LineAnnotation) *Annotations {
	a.lines = append(a.lines, ann)
	sort.SliceStable(a.lines, func(i, j int) bool {
		return a.lines[i].CharIdx < a.lines[j].CharIdx
	})
	return a
}

// IsEmpty reports whether no annotations are registered. The mapping fast
// paths require this.
func (a *Annotations) IsEmpty() bool {
	return a == nil || (len(a.inline) == 0 && len(a.lines) == 0)
}

func (a *Annotations) inlineFrom(char int) []InlineAnnotation {
	if a == nil {
		return nil
	}
	i := sort.Search(len(a.inline), func(i int) bool { return a.inline[i].CharIdx >= char })
	return a.inline[i:]
}

func (a *Annotations) linesFrom(char int) []LineAnnotation {
	if a == nil {
		return nil
	}
	i := sort.Search(len(a.lines), func(i int) bool { return a.lines[i].CharIdx >= char })
	return a.lines[i:]
}
