package syntax

import "sort"

// Highlight identifies a capture in the language's highlight query. The
// renderer maps it to a style through the theme.
type Highlight uint32

// Span is a highlighted byte range, half-open.
type Span struct {
	Start     uint32
	End       uint32
	Highlight Highlight
}

type cachedSpan struct {
	Span
	seq uint64 // insertion order, breaks specificity ties
}

// Cache stores highlight spans keyed by the (document, syntax) version
// pair they were computed against. Entries from any other version pair are
// invalid; the first update after an edit resets the cache wholesale.
type Cache struct {
	docVersion    uint64
	syntaxVersion uint64
	valid         bool

	// Byte ranges known to be fully populated, sorted and non-overlapping.
	ranges [][2]uint32
	spans  []cachedSpan
	seq    uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// IsRangeCached reports whether [start, end) was populated against exactly
// this version pair.
func (c *Cache) IsRangeCached(start, end uint32, docVersion, syntaxVersion uint64) bool {
	if !c.valid || c.docVersion != docVersion || c.syntaxVersion != syntaxVersion {
		return false
	}
	if start >= end {
		return true
	}
	// Ranges are merged, so containment means one range covers both ends.
	i := sort.Search(len(c.ranges), func(i int) bool { return c.ranges[i][1] > start })
	return i < len(c.ranges) && c.ranges[i][0] <= start && end <= c.ranges[i][1]
}

// UpdateRange replaces the cached spans overlapping [start, end) with
// spans, recorded against the given version pair. A version change drops
// all previous entries first.
func (c *Cache) UpdateRange(start, end uint32, spans []Span, docVersion, syntaxVersion uint64) {
	if !c.valid || c.docVersion != docVersion || c.syntaxVersion != syntaxVersion {
		c.ranges = c.ranges[:0]
		c.spans = c.spans[:0]
		c.docVersion = docVersion
		c.syntaxVersion = syntaxVersion
		c.valid = true
	}

	kept := c.spans[:0]
	for _, s := range c.spans {
		if s.End <= start || s.Start >= end {
			kept = append(kept, s)
		}
	}
	c.spans = kept
	for _, s := range spans {
		c.seq++
		c.spans = append(c.spans, cachedSpan{Span: s, seq: c.seq})
	}
	c.insertRange(start, end)
}

func (c *Cache) insertRange(start, end uint32) {
	c.ranges = append(c.ranges, [2]uint32{start, end})
	sort.Slice(c.ranges, func(i, j int) bool { return c.ranges[i][0] < c.ranges[j][0] })
	merged := c.ranges[:1]
	for _, r := range c.ranges[1:] {
		last := &merged[len(merged)-1]
		if r[0] <= last[1] {
			if r[1] > last[1] {
				last[1] = r[1]
			}
			continue
		}
		merged = append(merged, r)
	}
	c.ranges = merged
}

// GetByteRange returns the cached spans overlapping [start, end), ordered
// by start position then insertion order. The caller is expected to have
// checked IsRangeCached first; uncovered portions simply yield no spans.
func (c *Cache) GetByteRange(start, end uint32) []Span {
	if !c.valid {
		return nil
	}
	var out []cachedSpan
	for _, s := range c.spans {
		if s.End <= start || s.Start >= end {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].seq < out[j].seq
	})
	spans := make([]Span, len(out))
	for i, s := range out {
		spans[i] = s.Span
	}
	return spans
}

// HighlightAt resolves the highlight for a single byte position. When
// several spans cover it the shortest wins; equal lengths resolve to the
// later-inserted span.
func (c *Cache) HighlightAt(pos uint32) (Highlight, bool) {
	if !c.valid {
		return 0, false
	}
	best := -1
	for i, s := range c.spans {
		if pos < s.Start || pos >= s.End {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := c.spans[best]
		width, bestWidth := s.End-s.Start, b.End-b.Start
		if width < bestWidth || (width == bestWidth && s.seq > b.seq) {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return c.spans[best].Highlight, true
}
