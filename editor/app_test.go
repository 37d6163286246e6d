package editor

import (
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vellumtext/vellum/config"
	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/selection"
	"github.com/vellumtext/vellum/syntax"
)

func init() {
	RegisterEvents()
}

func newTestApp() *App {
	return NewApp(config.Default())
}

func TestApp_MintsDistinctIDs(t *testing.T) {
	a := newTestApp()
	d1 := a.NewDocument()
	d2 := a.NewDocument()
	if d1.ID() == d2.ID() {
		t.Fatalf("documents share id %d", d1.ID())
	}
	e1 := a.NewEditor(d1.ID())
	e2 := a.NewEditor(d2.ID())
	if e1.ID() == e2.ID() {
		t.Fatalf("editors share id %d", e1.ID())
	}
}

func TestApp_CurrentEditorAndDocument(t *testing.T) {
	a := newTestApp()
	if a.CurrentEditor() != nil || a.CurrentDocument() != nil {
		t.Fatalf("empty app has a current editor")
	}

	d1 := a.NewDocument()
	d2 := a.NewDocument()
	e1 := a.NewEditor(d1.ID())
	e2 := a.NewEditor(d2.ID())

	// The first editor took focus.
	if got := a.CurrentEditor(); got != e1 {
		t.Fatalf("current editor=%v, want first", got)
	}
	a.Focus(e2.ID())
	if got := a.CurrentDocument(); got == nil || got.ID() != d2.ID() {
		t.Fatalf("current document=%v, want %d", got, d2.ID())
	}

	a.CloseEditor(e2.ID())
	if got := a.CurrentEditor(); got != e1 {
		t.Fatalf("focus did not fall back to survivor")
	}
}

func TestApp_CloseEditorDropsViewSelection(t *testing.T) {
	a := newTestApp()
	d := a.NewDocument()
	e := a.NewEditor(d.ID())
	d.SetSelection(e.ViewID(), selection.PointSel(0))
	a.CloseEditor(e.ID())
	// The fallback selection proves the stored one is gone.
	if got := d.Selection(e.ViewID()); got.Primary() != selection.Point(0) {
		t.Fatalf("selection=%v after close", got)
	}
}

func TestApp_ApplySurfacesEditConflicts(t *testing.T) {
	a := newTestApp()
	d := a.NewDocument()
	a.NewEditor(d.ID())

	stale, err := edit.NewChangeSet(d.Text(), nil)
	if err != nil {
		t.Fatalf("NewChangeSet: %v", err)
	}
	tx, err := edit.ChangeText(d.Text(), []edit.Change{{From: 0, To: 0, Insert: "grow"}})
	if err != nil {
		t.Fatalf("ChangeText: %v", err)
	}
	if err := a.Apply(tx); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// The stale changeset no longer matches the text.
	if err := a.Apply(edit.NewTransaction(stale)); !errors.Is(err, edit.ErrLengthMismatch) {
		t.Fatalf("err=%v, want length mismatch", err)
	}
	active, ok := a.Messages.Active()
	if !ok || active.Level != LevelError || active.Source != "edit" {
		t.Fatalf("conflict did not reach the message center: %+v", active)
	}
}

// emptyLoader satisfies syntax.Loader and has nothing to offer.
type emptyLoader struct{}

func (emptyLoader) Grammar(string) (*sitter.Language, error) { return nil, nil }

func (emptyLoader) Query(string, syntax.QueryKind) (string, bool) { return "", false }

func TestApp_EnableSyntaxWithoutGrammarFallsBack(t *testing.T) {
	a := newTestApp()
	a.Loader = emptyLoader{}
	d := a.NewDocument()

	if err := a.EnableSyntax(d.ID(), "klingon"); !errors.Is(err, syntax.ErrNoGrammar) {
		t.Fatalf("err=%v, want ErrNoGrammar", err)
	}
	if _, ok := a.Syntax(d.ID()); ok {
		t.Fatalf("syntax handle stored despite load failure")
	}
	if got, want := d.LanguageID(), "klingon"; got != want {
		t.Fatalf("language id=%q, want %q", got, want)
	}
}

func TestApp_TextFormatFollowsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.SoftWrap = true
	cfg.Editor.TabWidth = 8
	a := NewApp(cfg)

	tf := a.TextFormat(100)
	if !tf.SoftWrap || tf.TabWidth != 8 || tf.ViewportWidth != 100 {
		t.Fatalf("text format=%+v", tf)
	}
}

func TestApp_OpenDocumentFailureHitsMessageCenter(t *testing.T) {
	a := newTestApp()
	if _, err := a.OpenDocument("/dev/null/not-a-dir/x"); err == nil {
		t.Fatalf("expected open failure")
	}
	active, ok := a.Messages.Active()
	if !ok || active.Source != "open" || active.Level != LevelError {
		t.Fatalf("open failure not published: %+v", active)
	}
}
