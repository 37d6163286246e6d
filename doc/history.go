package doc

import "github.com/vellumtext/vellum/edit"

// defaultHistoryLimit bounds undo depth.
const defaultHistoryLimit = 1000

type revision struct {
	changes *edit.ChangeSet
	inverse *edit.ChangeSet
}

// History stores committed transactions and their inverses. A commit
// truncates any redo tail.
type History struct {
	revisions []revision
	cursor    int // number of applied revisions
	limit     int
}

func (h *History) commit(changes, inverse *edit.ChangeSet) {
	if h.limit == 0 {
		h.limit = defaultHistoryLimit
	}
	h.revisions = append(h.revisions[:h.cursor], revision{changes: changes, inverse: inverse})
	if len(h.revisions) > h.limit {
		drop := len(h.revisions) - h.limit
		h.revisions = append([]revision(nil), h.revisions[drop:]...)
	}
	h.cursor = len(h.revisions)
}

func (h *History) undo() (*edit.ChangeSet, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.revisions[h.cursor].inverse, true
}

func (h *History) redo() (*edit.ChangeSet, bool) {
	if h.cursor == len(h.revisions) {
		return nil, false
	}
	rev := h.revisions[h.cursor]
	h.cursor++
	return rev.changes, true
}

// Len returns the number of undoable revisions.
func (h *History) Len() int { return h.cursor }
