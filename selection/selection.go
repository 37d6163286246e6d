// Package selection implements ranges over char indices and ordered
// multi-range selections with a primary index.
package selection

import (
	"fmt"
	"sort"
)

// Direction reports which way a range points.
type Direction int

const (
	// Forward means Head >= Anchor.
	Forward Direction = iota
	// Backward means Head < Anchor.
	Backward
)

// NoVisualHint marks an unset cached visual column.
const NoVisualHint = -1

// Range is an ordered (anchor, head) pair of char indices. An empty range
// (anchor == head) is a caret.
type Range struct {
	Anchor int
	Head   int

	// OldVisualCol caches the visual column for vertical motion so the
	// cursor can return to its column after crossing short lines.
	// NoVisualHint when unset.
	OldVisualCol int
}

// Point returns a caret at pos.
func Point(pos int) Range {
	return Range{Anchor: pos, Head: pos, OldVisualCol: NoVisualHint}
}

// NewRange returns a range from anchor to head.
func NewRange(anchor, head int) Range {
	return Range{Anchor: anchor, Head: head, OldVisualCol: NoVisualHint}
}

// From returns the lower bound.
func (r Range) From() int {
	if r.Anchor < r.Head {
		return r.Anchor
	}
	return r.Head
}

// To returns the upper bound.
func (r Range) To() int {
	if r.Anchor > r.Head {
		return r.Anchor
	}
	return r.Head
}

// Len returns the number of chars covered.
func (r Range) Len() int { return r.To() - r.From() }

// IsEmpty reports whether the range is a caret.
func (r Range) IsEmpty() bool { return r.Anchor == r.Head }

// Direction reports which way the range points. Carets point Forward.
func (r Range) Direction() Direction {
	if r.Head < r.Anchor {
		return Backward
	}
	return Forward
}

// Flip swaps anchor and head.
func (r Range) Flip() Range {
	return Range{Anchor: r.Head, Head: r.Anchor, OldVisualCol: r.OldVisualCol}
}

// WithDirection returns the range pointing in dir.
func (r Range) WithDirection(dir Direction) Range {
	if r.Direction() == dir {
		return r
	}
	return r.Flip()
}

// Overlaps reports whether two ranges share at least one position. A caret
// overlaps a range it touches.
func (r Range) Overlaps(other Range) bool {
	if r.From() <= other.From() {
		return other.From() == r.From() || other.From() < r.To()
	}
	return r.From() == other.From() || r.From() < other.To()
}

// Contains reports whether pos lies inside the range interior.
func (r Range) Contains(pos int) bool {
	return r.From() <= pos && pos < r.To()
}

// Cursor returns the char index of the left edge of the 1-width block
// cursor. A forward range's cursor sits on its last grapheme, so the head
// steps back one boundary; backward and empty ranges use the head itself.
func (r Range) Cursor(prevGrapheme func(int) int) int {
	if r.Head > r.Anchor {
		return prevGrapheme(r.Head)
	}
	return r.Head
}

// Merge unions two ranges, keeping r's direction.
func (r Range) Merge(other Range) Range {
	from := r.From()
	if other.From() < from {
		from = other.From()
	}
	to := r.To()
	if other.To() > to {
		to = other.To()
	}
	out := Range{Anchor: from, Head: to, OldVisualCol: NoVisualHint}
	if r.Direction() == Backward {
		out = out.Flip()
	}
	return out
}

// Selection is a non-empty ordered set of ranges with a primary index.
// After normalization ranges are sorted by From and do not overlap.
type Selection struct {
	ranges  []Range
	primary int
}

// Single returns a one-range selection.
func Single(anchor, head int) Selection {
	return Selection{ranges: []Range{NewRange(anchor, head)}}
}

// PointSel returns a one-caret selection.
func PointSel(pos int) Selection {
	return Selection{ranges: []Range{Point(pos)}}
}

// New builds a normalized selection. It panics on an empty range list or a
// primary out of bounds: a selection always has at least one range.
func New(ranges []Range, primary int) Selection {
	if len(ranges) == 0 {
		panic("selection: empty range list")
	}
	if primary < 0 || primary >= len(ranges) {
		panic(fmt.Sprintf("selection: primary %d out of bounds for %d ranges", primary, len(ranges)))
	}
	s := Selection{ranges: append([]Range(nil), ranges...), primary: primary}
	s.normalize()
	return s
}

// Clone returns a deep copy.
func (s Selection) Clone() Selection {
	return Selection{ranges: append([]Range(nil), s.ranges...), primary: s.primary}
}

// Len returns the number of ranges.
func (s Selection) Len() int { return len(s.ranges) }

// Ranges returns the ranges in order. The slice must not be mutated.
func (s Selection) Ranges() []Range { return s.ranges }

// PrimaryIndex returns the primary range index.
func (s Selection) PrimaryIndex() int { return s.primary }

// Primary returns the primary range.
func (s Selection) Primary() Range { return s.ranges[s.primary] }

// Push appends r and renormalizes. If makePrimary is set the new range
// becomes primary.
func (s Selection) Push(r Range, makePrimary bool) Selection {
	out := s.Clone()
	out.ranges = append(out.ranges, r)
	if makePrimary {
		out.primary = len(out.ranges) - 1
	}
	out.normalize()
	return out
}

// Replace swaps the range at i and renormalizes.
func (s Selection) Replace(i int, r Range) Selection {
	out := s.Clone()
	out.ranges[i] = r
	out.normalize()
	return out
}

// Remove drops the range at i. Removing the last range panics.
func (s Selection) Remove(i int) Selection {
	if len(s.ranges) == 1 {
		panic("selection: cannot remove the only range")
	}
	out := s.Clone()
	out.ranges = append(out.ranges[:i:i], out.ranges[i+1:]...)
	switch {
	case out.primary > i:
		out.primary--
	case out.primary == i && out.primary == len(out.ranges):
		out.primary--
	}
	return out
}

// RotatePrimary moves the primary index by delta, wrapping.
func (s Selection) RotatePrimary(delta int) Selection {
	out := s.Clone()
	n := len(out.ranges)
	out.primary = ((out.primary+delta)%n + n) % n
	return out
}

// Transform maps every range through f and renormalizes, relocating the
// primary to its surviving merge target.
func (s Selection) Transform(f func(Range) Range) Selection {
	out := s.Clone()
	for i := range out.ranges {
		out.ranges[i] = f(out.ranges[i])
	}
	out.normalize()
	return out
}

// normalize sorts ranges by From and merges overlaps. Merging keeps the
// direction of the surviving range that held primary identity.
func (s *Selection) normalize() {
	if len(s.ranges) == 1 {
		return
	}
	type tagged struct {
		r       Range
		primary bool
	}
	items := make([]tagged, len(s.ranges))
	for i, r := range s.ranges {
		items[i] = tagged{r: r, primary: i == s.primary}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].r.From() != items[j].r.From() {
			return items[i].r.From() < items[j].r.From()
		}
		return items[i].r.To() < items[j].r.To()
	})

	merged := items[:1]
	for _, it := range items[1:] {
		last := &merged[len(merged)-1]
		if last.r.Overlaps(it.r) {
			keep := last.r
			if it.primary {
				// The primary survivor dictates direction.
				keep = it.r.Merge(last.r)
			} else {
				keep = keep.Merge(it.r)
			}
			last.r = keep
			last.primary = last.primary || it.primary
			continue
		}
		merged = append(merged, it)
	}

	s.ranges = s.ranges[:0]
	s.primary = 0
	for i, it := range merged {
		s.ranges = append(s.ranges, it.r)
		if it.primary {
			s.primary = i
		}
	}
}
