package edit

import (
	"github.com/vellumtext/vellum/rope"
	"github.com/vellumtext/vellum/selection"
)

// Transaction is a ChangeSet plus an optional target selection. When no
// selection is carried, applying the transaction remaps the prior
// selection through the ChangeSet with AssocAfter.
type Transaction struct {
	changes   *ChangeSet
	selection *selection.Selection
}

// NewTransaction wraps a ChangeSet.
func NewTransaction(cs *ChangeSet) *Transaction {
	return &Transaction{changes: cs}
}

// Changes returns the transaction's ChangeSet.
func (t *Transaction) Changes() *ChangeSet { return t.changes }

// Selection returns the explicit target selection, if any.
func (t *Transaction) Selection() (selection.Selection, bool) {
	if t.selection == nil {
		return selection.Selection{}, false
	}
	return *t.selection, true
}

// WithSelection returns a transaction that installs sel after applying.
func (t *Transaction) WithSelection(sel selection.Selection) *Transaction {
	s := sel.Clone()
	return &Transaction{changes: t.changes, selection: &s}
}

// ChangeText builds a transaction from sorted, non-overlapping changes.
func ChangeText(text rope.Rope, changes []Change) (*Transaction, error) {
	cs, err := NewChangeSet(text, changes)
	if err != nil {
		return nil, err
	}
	return NewTransaction(cs), nil
}

// ChangeBySelection maps every range of sel to a change via f. The mapped
// changes must remain sorted and non-overlapping.
func ChangeBySelection(text rope.Rope, sel selection.Selection, f func(selection.Range) Change) (*Transaction, error) {
	changes := make([]Change, 0, sel.Len())
	for _, r := range sel.Ranges() {
		changes = append(changes, f(r))
	}
	return ChangeText(text, changes)
}

// InsertText inserts text at every range's cursor; non-empty ranges are
// replaced.
func InsertText(text rope.Rope, sel selection.Selection, insert string) (*Transaction, error) {
	return ChangeBySelection(text, sel, func(r selection.Range) Change {
		if r.IsEmpty() {
			return Change{From: r.Head, To: r.Head, Insert: insert}
		}
		return Change{From: r.From(), To: r.To(), Insert: insert}
	})
}

// DeleteRanges deletes every (from, to) pair; pairs must be sorted and
// non-overlapping.
func DeleteRanges(text rope.Rope, ranges [][2]int) (*Transaction, error) {
	changes := make([]Change, 0, len(ranges))
	for _, r := range ranges {
		changes = append(changes, Change{From: r[0], To: r[1]})
	}
	return ChangeText(text, changes)
}

// MapSelection remaps sel through cs, snapping every endpoint with
// AssocAfter so carets land at the end of inserted text.
func MapSelection(cs *ChangeSet, sel selection.Selection) selection.Selection {
	return sel.Transform(func(r selection.Range) selection.Range {
		return selection.Range{
			Anchor: cs.MapPos(r.Anchor, AssocAfter),
			Head:   cs.MapPos(r.Head, AssocAfter),
		}
	})
}
