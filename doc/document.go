// Package doc implements the Document: text plus per-view selections,
// version tracking, undo history, and the apply pipeline that every
// mutation funnels through.
package doc

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/event"
	"github.com/vellumtext/vellum/rope"
	"github.com/vellumtext/vellum/selection"
)

var (
	// ErrReentrantApply is returned when a change hook applies another
	// transaction to the same document synchronously. Hooks must schedule
	// follow-up edits through the main loop instead.
	ErrReentrantApply = errors.New("doc: re-entrant apply")
	// ErrReadonly is returned when applying to a readonly document.
	ErrReadonly = errors.New("doc: document is readonly")
)

// ID identifies a document within the App.
type ID int

// ViewID identifies an editor view holding a selection into a document.
type ViewID int

// LineEnding is the document's dominant line ending, detected on load and
// used when saving.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

// DidChange is dispatched on the event bus after every applied
// transaction, before Apply returns. Hooks must not apply further
// transactions to the same document synchronously.
type DidChange struct {
	Doc     *Document
	OldText rope.Rope
	Changes *edit.ChangeSet
}

// RegisterEvents declares the document event types on the bus. The shell
// calls this once at startup.
func RegisterEvents() {
	event.Register[DidChange]()
}

// Document owns a text and everything that tracks it.
type Document struct {
	id         ID
	text       rope.Rope
	selections map[ViewID]selection.Selection

	version    uint64
	path       string
	languageID string
	modified   bool
	readonly   bool
	lineEnding LineEnding
	lastSaved  time.Time

	history History

	// Diagnostics published for this document, with the doc version they
	// were computed against.
	diagnostics        []Diagnostic
	diagnosticsVersion uint64

	// mutating guards against re-entrant Apply from change hooks.
	mutating bool
}

// Severity grades a diagnostic.
type Severity int

const (
	SeverityHint Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// Diagnostic is one reported problem, in char coordinates.
type Diagnostic struct {
	From     int
	To       int
	Severity Severity
	Message  string
	Source   string
}

// New creates an empty in-memory document.
func New(id ID) *Document {
	return &Document{
		id:         id,
		selections: make(map[ViewID]selection.Selection),
	}
}

// NewFromText creates a document holding text.
func NewFromText(id ID, text string) *Document {
	d := New(id)
	d.lineEnding = detectLineEnding(text)
	d.text = rope.New(normalizeNewlines(text))
	return d
}

func (d *Document) ID() ID                 { return d.id }
func (d *Document) Text() rope.Rope        { return d.text }
func (d *Document) Version() uint64        { return d.version }
func (d *Document) Path() string           { return d.path }
func (d *Document) LanguageID() string     { return d.languageID }
func (d *Document) Modified() bool         { return d.modified }
func (d *Document) Readonly() bool         { return d.readonly }
func (d *Document) LineEnding() LineEnding { return d.lineEnding }

// SetLanguageID records the language used for syntax highlighting.
func (d *Document) SetLanguageID(id string) { d.languageID = id }

// SetReadonly toggles the readonly flag.
func (d *Document) SetReadonly(v bool) { d.readonly = v }

// Selection returns the selection for view, falling back to a caret at 0.
// The result always has at least one range.
func (d *Document) Selection(view ViewID) selection.Selection {
	if sel, ok := d.selections[view]; ok {
		return sel
	}
	return selection.PointSel(0)
}

// SetSelection installs a selection for view.
func (d *Document) SetSelection(view ViewID, sel selection.Selection) {
	d.selections[view] = sel
}

// RemoveView drops the selection state of a closed view.
func (d *Document) RemoveView(view ViewID) {
	delete(d.selections, view)
}

// Apply applies tx for view: the text mutates, selections remap (or the
// transaction's explicit selection installs), the version bumps, and
// DidChange hooks run before Apply returns. On error the document is
// unchanged.
func (d *Document) Apply(view ViewID, tx *edit.Transaction) error {
	return d.apply(view, tx, true)
}

func (d *Document) apply(view ViewID, tx *edit.Transaction, record bool) error {
	if d.mutating {
		log.Error().Str("source", "doc").Int("doc", int(d.id)).
			Msg("re-entrant apply dropped")
		return ErrReentrantApply
	}
	if d.readonly {
		return ErrReadonly
	}

	oldText := d.text
	cs := tx.Changes()
	newText, err := cs.Apply(oldText)
	if err != nil {
		return fmt.Errorf("doc: apply: %w", err)
	}
	d.text = newText

	// Every view remaps through the changeset; the explicit selection, if
	// any, then replaces the applying view's.
	for v, sel := range d.selections {
		d.selections[v] = edit.MapSelection(cs, sel)
	}
	if sel, ok := tx.Selection(); ok {
		d.selections[view] = sel
	}

	d.version++
	d.modified = true
	if record {
		d.history.commit(cs, cs.Invert(oldText))
	}

	d.mutating = true
	err = event.Dispatch(&DidChange{Doc: d, OldText: oldText, Changes: cs})
	d.mutating = false
	return err
}

// Undo reverts the newest committed transaction. It reports whether there
// was anything to undo.
func (d *Document) Undo(view ViewID) (bool, error) {
	inv, ok := d.history.undo()
	if !ok {
		return false, nil
	}
	return true, d.apply(view, edit.NewTransaction(inv), false)
}

// Redo re-applies the most recently undone transaction.
func (d *Document) Redo(view ViewID) (bool, error) {
	cs, ok := d.history.redo()
	if !ok {
		return false, nil
	}
	return true, d.apply(view, edit.NewTransaction(cs), false)
}

// SetDiagnostics installs diagnostics computed against version. Stale
// versions are dropped.
func (d *Document) SetDiagnostics(version uint64, diags []Diagnostic) bool {
	if version < d.diagnosticsVersion || version > d.version {
		return false
	}
	d.diagnostics = diags
	d.diagnosticsVersion = version
	return true
}

// Diagnostics returns the current diagnostics list.
func (d *Document) Diagnostics() []Diagnostic { return d.diagnostics }
