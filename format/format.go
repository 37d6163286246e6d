// Package format turns rope slices into positioned grapheme streams:
// tab expansion, soft wrap, and virtual-text annotations all happen here,
// so everything downstream (render planner, vertical motion) sees a single
// visual coordinate space.
package format

// NoHighlight marks a grapheme with no style of its own.
const NoHighlight = -1

// TextFormat is the per-frame view configuration. Values are plain data;
// callers build one per render pass.
type TextFormat struct {
	SoftWrap        bool
	TabWidth        int
	MaxWrap         int
	MaxIndentRetain int
	// WrapIndicator is drawn at the start of every continuation row.
	WrapIndicator          string
	WrapIndicatorHighlight int
	ViewportWidth          int
	// SoftWrapAtTextWidth wraps at TextWidth instead of the viewport edge
	// when the viewport is wider.
	SoftWrapAtTextWidth bool
	TextWidth           int
}

// DefaultTextFormat returns the configuration used when a view has no
// explicit overrides.
func DefaultTextFormat(viewportWidth int) TextFormat {
	return TextFormat{
		TabWidth:               4,
		MaxWrap:                20,
		MaxIndentRetain:        40,
		WrapIndicator:          "↪",
		WrapIndicatorHighlight: NoHighlight,
		ViewportWidth:          viewportWidth,
	}
}

// wrapLimit is the column past which soft wrap triggers.
func (f TextFormat) wrapLimit() int {
	if f.SoftWrapAtTextWidth && f.TextWidth > 0 && f.TextWidth < f.ViewportWidth {
		return f.TextWidth
	}
	return f.ViewportWidth
}

// Source says where a formatted grapheme came from.
type Source int

const (
	// SourceDocument is rope content; CharIdx is meaningful.
	SourceDocument Source = iota
	// SourceVirtual is inline annotation text.
	SourceVirtual
	// SourceVirtualLine is a whole virtual row; Raw is empty.
	SourceVirtualLine
	// SourceWrapIndicator is the indicator at the start of a wrapped row.
	SourceWrapIndicator
	// SourceEOF is the terminal sentinel carrying the final visual
	// position. CharIdx equals the text length.
	SourceEOF
)

// FormattedGrapheme is one positioned cluster in the visual stream.
type FormattedGrapheme struct {
	// CharIdx is the rope position this grapheme starts at. Virtual
	// graphemes carry the position of the document grapheme that follows
	// them.
	CharIdx int
	// Chars is the number of scalars consumed; zero for virtual content.
	Chars  int
	Raw    string
	Row    int
	Col    int
	Width  int
	Source Source
	// Highlight styles virtual content; NoHighlight for document
	// graphemes, whose styling comes from the syntax cache.
	Highlight int
}
