package syntax

import "github.com/vellumtext/vellum/rope"

// HighlightRange returns highlight spans for the byte range [start, end).
// On a cache miss the request widens to whole lines, runs the query over
// that window, and stores the result against the current version pair, so
// scrolling within already-rendered lines never reparses.
func (s *Syntax) HighlightRange(cache *Cache, text rope.Rope, start, end uint32, docVersion uint64) []Span {
	if end > uint32(text.LenBytes()) {
		end = uint32(text.LenBytes())
	}
	if start >= end {
		return nil
	}
	if !cache.IsRangeCached(start, end, docVersion, s.version) {
		a, b := lineCover(text, start, end)
		cache.UpdateRange(a, b, s.highlightSpans(a, b), docVersion, s.version)
	}
	return cache.GetByteRange(start, end)
}

// lineCover widens a byte range to line boundaries.
func lineCover(text rope.Rope, start, end uint32) (uint32, uint32) {
	firstLine := text.CharToLine(text.ByteToChar(int(start)))
	a := text.CharToByte(text.LineToChar(firstLine))

	lastLine := text.CharToLine(text.ByteToChar(int(end)))
	b := text.LenBytes()
	if lastLine+1 < text.LenLines() {
		b = text.CharToByte(text.LineToChar(lastLine + 1))
	}
	return uint32(a), uint32(b)
}
