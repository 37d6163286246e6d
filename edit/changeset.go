// Package edit implements composable text edits. A ChangeSet is a sequence
// of Retain/Delete/Insert operations over an implicit cursor moving through
// the pre-image text; a Transaction pairs a ChangeSet with an optional
// target selection.
package edit

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vellumtext/vellum/rope"
)

var (
	// ErrLengthMismatch is returned when a ChangeSet is applied to text
	// whose length differs from the ChangeSet's pre-image length.
	ErrLengthMismatch = errors.New("edit: changeset length mismatch")
	// ErrUnsortedEdits is returned when edits are out of order or overlap.
	ErrUnsortedEdits = errors.New("edit: edits unsorted or overlapping")
	// ErrOutOfBounds is returned when an edit range exceeds the text.
	ErrOutOfBounds = errors.New("edit: edit range out of bounds")
)

// Assoc disambiguates positions that land exactly on an insertion when
// mapping through a ChangeSet.
type Assoc int

const (
	// AssocBefore keeps the position at the insertion start.
	AssocBefore Assoc = iota
	// AssocAfter moves the position past the inserted text.
	AssocAfter
)

type opKind uint8

const (
	opRetain opKind = iota
	opDelete
	opInsert
)

type operation struct {
	kind opKind
	n    int    // char count for retain/delete
	text string // inserted text for insert
}

// ChangeSet describes one edit of a text of length LenBefore into a text
// of length LenAfter. The zero value is the identity edit of empty text.
type ChangeSet struct {
	ops       []operation
	lenBefore int
	lenAfter  int
}

// Identity returns the ChangeSet that leaves text of length n unchanged.
func Identity(n int) *ChangeSet {
	cs := &ChangeSet{}
	cs.retain(n)
	return cs
}

// LenBefore returns the pre-image length in chars.
func (cs *ChangeSet) LenBefore() int { return cs.lenBefore }

// LenAfter returns the post-image length in chars.
func (cs *ChangeSet) LenAfter() int { return cs.lenAfter }

// IsEmpty reports whether the ChangeSet cannot change any text it applies
// cleanly to.
func (cs *ChangeSet) IsEmpty() bool {
	for _, op := range cs.ops {
		if op.kind != opRetain {
			return false
		}
	}
	return true
}

func (cs *ChangeSet) retain(n int) {
	if n == 0 {
		return
	}
	cs.lenBefore += n
	cs.lenAfter += n
	if last := len(cs.ops) - 1; last >= 0 && cs.ops[last].kind == opRetain {
		cs.ops[last].n += n
		return
	}
	cs.ops = append(cs.ops, operation{kind: opRetain, n: n})
}

func (cs *ChangeSet) delete(n int) {
	if n == 0 {
		return
	}
	cs.lenBefore += n
	if last := len(cs.ops) - 1; last >= 0 && cs.ops[last].kind == opDelete {
		cs.ops[last].n += n
		return
	}
	cs.ops = append(cs.ops, operation{kind: opDelete, n: n})
}

func (cs *ChangeSet) insert(text string) {
	if text == "" {
		return
	}
	chars := utf8.RuneCountInString(text)
	cs.lenAfter += chars
	if last := len(cs.ops) - 1; last >= 0 {
		switch cs.ops[last].kind {
		case opInsert:
			cs.ops[last].text += text
			return
		case opDelete:
			// Keep a canonical insert-before-delete order so equal edits
			// compare equal regardless of construction order.
			if len(cs.ops) >= 2 && cs.ops[len(cs.ops)-2].kind == opInsert {
				cs.ops[len(cs.ops)-2].text += text
				return
			}
			del := cs.ops[last]
			cs.ops[last] = operation{kind: opInsert, text: text}
			cs.ops = append(cs.ops, del)
			return
		}
	}
	cs.ops = append(cs.ops, operation{kind: opInsert, text: text})
}

// Apply produces the post-image of text. It fails without side effects if
// the pre-image length does not match.
func (cs *ChangeSet) Apply(text rope.Rope) (rope.Rope, error) {
	if text.LenChars() != cs.lenBefore {
		return text, fmt.Errorf("%w: text has %d chars, changeset expects %d",
			ErrLengthMismatch, text.LenChars(), cs.lenBefore)
	}
	var out rope.Rope
	pos := 0
	for _, op := range cs.ops {
		switch op.kind {
		case opRetain:
			out = out.Concat(text.Slice(pos, pos+op.n))
			pos += op.n
		case opDelete:
			pos += op.n
		case opInsert:
			out = out.Concat(rope.New(op.text))
		}
	}
	return out, nil
}

// Invert returns the ChangeSet that undoes cs. preImage must be the text cs
// was built against.
func (cs *ChangeSet) Invert(preImage rope.Rope) *ChangeSet {
	if preImage.LenChars() != cs.lenBefore {
		panic("edit: invert pre-image length mismatch")
	}
	inv := &ChangeSet{}
	pos := 0
	for _, op := range cs.ops {
		switch op.kind {
		case opRetain:
			inv.retain(op.n)
			pos += op.n
		case opDelete:
			inv.insert(preImage.Slice(pos, pos+op.n).String())
			pos += op.n
		case opInsert:
			inv.delete(utf8.RuneCountInString(op.text))
		}
	}
	return inv
}

// Compose returns a ChangeSet equivalent to applying cs then other.
// other's pre-image length must equal cs's post-image length.
func (cs *ChangeSet) Compose(other *ChangeSet) *ChangeSet {
	if cs.lenAfter != other.lenBefore {
		panic("edit: compose length mismatch")
	}
	out := &ChangeSet{}

	a := append([]operation(nil), cs.ops...)
	b := append([]operation(nil), other.ops...)
	ia, ib := 0, 0
	for ia < len(a) || ib < len(b) {
		switch {
		case ia < len(a) && a[ia].kind == opDelete:
			// Deleted pre-image text is invisible to other.
			out.delete(a[ia].n)
			ia++
		case ib < len(b) && b[ib].kind == opInsert:
			out.insert(b[ib].text)
			ib++
		case ia == len(a) || ib == len(b):
			panic("edit: compose ran out of operations")
		case a[ia].kind == opRetain && b[ib].kind == opRetain:
			n := minN(a[ia].n, b[ib].n)
			out.retain(n)
			ia, ib = consume(a, ia, n), consume(b, ib, n)
		case a[ia].kind == opRetain && b[ib].kind == opDelete:
			n := minN(a[ia].n, b[ib].n)
			out.delete(n)
			ia, ib = consume(a, ia, n), consume(b, ib, n)
		case a[ia].kind == opInsert && b[ib].kind == opRetain:
			n := minN(utf8.RuneCountInString(a[ia].text), b[ib].n)
			head, tail := splitRunes(a[ia].text, n)
			out.insert(head)
			a[ia].text = tail
			if tail == "" {
				ia++
			}
			ib = consume(b, ib, n)
		case a[ia].kind == opInsert && b[ib].kind == opDelete:
			// other deletes text cs inserted: both vanish.
			n := minN(utf8.RuneCountInString(a[ia].text), b[ib].n)
			_, tail := splitRunes(a[ia].text, n)
			a[ia].text = tail
			if tail == "" {
				ia++
			}
			ib = consume(b, ib, n)
		default:
			panic("edit: compose operation mismatch")
		}
	}
	return out
}

// consume shrinks the retain/delete at ops[i] by n chars, returning the
// next index once it is exhausted.
func consume(ops []operation, i, n int) int {
	ops[i].n -= n
	if ops[i].n == 0 {
		return i + 1
	}
	return i
}

func splitRunes(s string, n int) (head, tail string) {
	b := 0
	for ; n > 0; n-- {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}
	return s[:b], s[b:]
}

// MapPos maps a pre-image char position into the post-image. Positions
// inside a plain deletion snap to the deletion start. An insert directly
// followed by a delete is a replacement: positions inside the replaced
// span map to the insertion start (AssocBefore) or end (AssocAfter), as do
// positions exactly at an insertion point.
func (cs *ChangeSet) MapPos(pos int, assoc Assoc) int {
	if pos < 0 || pos > cs.lenBefore {
		panic("edit: mapped position out of range")
	}
	oldPos, newPos := 0, 0
	ops := cs.ops
	for i := 0; i < len(ops); i++ {
		op := ops[i]
		switch op.kind {
		case opRetain:
			if pos < oldPos+op.n {
				return newPos + (pos - oldPos)
			}
			oldPos += op.n
			newPos += op.n
		case opDelete:
			if pos < oldPos+op.n {
				return newPos
			}
			oldPos += op.n
		case opInsert:
			chars := utf8.RuneCountInString(op.text)
			if i+1 < len(ops) && ops[i+1].kind == opDelete {
				// Replacement: consume the paired delete.
				del := ops[i+1].n
				i++
				if pos < oldPos+del {
					if assoc == AssocBefore {
						return newPos
					}
					return newPos + chars
				}
				oldPos += del
				newPos += chars
				continue
			}
			if pos == oldPos {
				if assoc == AssocBefore {
					return newPos
				}
				return newPos + chars
			}
			newPos += chars
		}
	}
	return newPos + (pos - oldPos)
}

// Change is one edit in pre-image coordinates: replace [From, To) with
// Insert. From == To inserts; Insert == "" deletes.
type Change struct {
	From   int
	To     int
	Insert string
}

// NewChangeSet builds a ChangeSet from sorted, non-overlapping changes
// against text.
func NewChangeSet(text rope.Rope, changes []Change) (*ChangeSet, error) {
	length := text.LenChars()
	cs := &ChangeSet{}
	last := 0
	for _, ch := range changes {
		if ch.From > ch.To {
			return nil, fmt.Errorf("%w: range %d..%d reversed", ErrUnsortedEdits, ch.From, ch.To)
		}
		if ch.From < last {
			return nil, fmt.Errorf("%w: change at %d begins before %d", ErrUnsortedEdits, ch.From, last)
		}
		if ch.To > length {
			return nil, fmt.Errorf("%w: range %d..%d exceeds %d chars", ErrOutOfBounds, ch.From, ch.To, length)
		}
		cs.retain(ch.From - last)
		cs.insert(ch.Insert)
		cs.delete(ch.To - ch.From)
		last = ch.To
	}
	cs.retain(length - last)
	return cs, nil
}

// Changes returns cs as a list of pre-image coordinate changes.
func (cs *ChangeSet) Changes() []Change {
	var out []Change
	pos := 0
	var pending *Change
	flush := func() {
		if pending != nil {
			out = append(out, *pending)
			pending = nil
		}
	}
	for _, op := range cs.ops {
		switch op.kind {
		case opRetain:
			flush()
			pos += op.n
		case opDelete:
			if pending == nil {
				pending = &Change{From: pos, To: pos}
			}
			pending.To += op.n
			pos += op.n
		case opInsert:
			if pending == nil {
				pending = &Change{From: pos, To: pos}
			}
			pending.Insert += op.text
		}
	}
	flush()
	return out
}

func minN(a, b int) int {
	if a < b {
		return a
	}
	return b
}
