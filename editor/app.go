// Package editor is the shell: it owns the document and editor arenas,
// the message center, and the cross-cutting registries, and wires change
// events into the syntax pipeline.
package editor

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vellumtext/vellum/config"
	"github.com/vellumtext/vellum/dispatch"
	"github.com/vellumtext/vellum/doc"
	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/event"
	"github.com/vellumtext/vellum/format"
	"github.com/vellumtext/vellum/syntax"
	"github.com/vellumtext/vellum/vcs"
)

// App owns documents and editors in arenas keyed by their IDs and mints
// fresh IDs for both. All mutation happens on the main thread.
type App struct {
	cfg config.Config

	docs    map[doc.ID]*doc.Document
	editors map[EditorID]*Editor

	nextDocID    doc.ID
	nextEditorID EditorID
	current      EditorID

	syntaxes   map[doc.ID]*syntax.Syntax
	highlights map[doc.ID]*syntax.Cache

	// Messages is the status log; Commands the runtime command registry.
	Messages *MessageCenter
	Commands *dispatch.Registry[App]

	// Loader, Diff, and Clipboard are the external collaborators the
	// shell plugs in. Clipboard defaults to the in-process fallback.
	Loader    syntax.Loader
	Diff      vcs.Provider
	Clipboard Clipboard
}

// SetLogger replaces the process logger. The shell calls this once at
// startup so every subsystem's "source"-tagged logs share one sink.
func SetLogger(l zerolog.Logger) { log.Logger = l }

// RegisterEvents declares every core event type on the bus. Call once at
// startup, before any hook registration or dispatch.
func RegisterEvents() {
	doc.RegisterEvents()
	event.Register[CompletionTrigger]()
	event.Register[SignatureHelpTrigger]()
}

// NewApp builds an empty shell with the given configuration.
func NewApp(cfg config.Config) *App {
	return &App{
		cfg:        cfg,
		docs:       make(map[doc.ID]*doc.Document),
		editors:    make(map[EditorID]*Editor),
		syntaxes:   make(map[doc.ID]*syntax.Syntax),
		highlights: make(map[doc.ID]*syntax.Cache),
		Messages:   NewMessageCenter(),
		Commands:   dispatch.NewRegistry[App](),
		Clipboard:  &MemoryClipboard{},
	}
}

// Config returns the resolved configuration.
func (a *App) Config() config.Config { return a.cfg }

// InstallHooks registers the shell's change hook: every applied
// transaction feeds the document's syntax tree.
func (a *App) InstallHooks() {
	event.RegisterHook(func(e *doc.DidChange) error {
		a.updateSyntax(e)
		return nil
	})
}

// NewDocument mints an empty scratch document.
func (a *App) NewDocument() *doc.Document {
	a.nextDocID++
	d := doc.New(a.nextDocID)
	a.docs[d.ID()] = d
	return d
}

// OpenDocument reads path into a fresh document. Failures land in the
// message center and are returned.
func (a *App) OpenDocument(path string) (*doc.Document, error) {
	a.nextDocID++
	d, err := doc.Open(a.nextDocID, path)
	if err != nil {
		a.nextDocID--
		a.Messages.Publish(LevelError, "open", err.Error())
		return nil, err
	}
	a.docs[d.ID()] = d
	return d, nil
}

// CloseDocument drops a document and its render state.
func (a *App) CloseDocument(id doc.ID) {
	delete(a.docs, id)
	delete(a.syntaxes, id)
	delete(a.highlights, id)
}

// Document looks up a document by ID.
func (a *App) Document(id doc.ID) (*doc.Document, bool) {
	d, ok := a.docs[id]
	return d, ok
}

// NewEditor mints an editor over an existing document and focuses it if
// it is the first one.
func (a *App) NewEditor(docID doc.ID) *Editor {
	a.nextEditorID++
	e := &Editor{
		id:    a.nextEditorID,
		docID: docID,
		view:  ViewState{Scrolloff: a.cfg.Editor.Scrolloff},
	}
	a.editors[e.id] = e
	if len(a.editors) == 1 {
		a.current = e.id
	}
	return e
}

// CloseEditor removes an editor and its selection state, refocusing an
// arbitrary survivor.
func (a *App) CloseEditor(id EditorID) {
	e, ok := a.editors[id]
	if !ok {
		return
	}
	if d, ok := a.docs[e.docID]; ok {
		d.RemoveView(e.ViewID())
	}
	delete(a.editors, id)
	if a.current == id {
		a.current = 0
		for other := range a.editors {
			a.current = other
			break
		}
	}
}

// Editor looks up an editor by ID.
func (a *App) Editor(id EditorID) (*Editor, bool) {
	e, ok := a.editors[id]
	return e, ok
}

// Focus makes an editor current.
func (a *App) Focus(id EditorID) {
	if _, ok := a.editors[id]; ok {
		a.current = id
	}
}

// CurrentEditor returns the focused editor, or nil when none exists.
func (a *App) CurrentEditor() *Editor {
	return a.editors[a.current]
}

// CurrentDocument returns the focused editor's document, or nil.
func (a *App) CurrentDocument() *doc.Document {
	e := a.CurrentEditor()
	if e == nil {
		return nil
	}
	return a.docs[e.docID]
}

// Apply runs a transaction against the focused document. Edit conflicts
// surface in the message center; the document is unchanged on error.
func (a *App) Apply(tx *edit.Transaction) error {
	e := a.CurrentEditor()
	d := a.CurrentDocument()
	if e == nil || d == nil {
		return nil
	}
	if err := d.Apply(e.ViewID(), tx); err != nil {
		a.Messages.Publish(LevelError, "edit", err.Error())
		return err
	}
	return nil
}

// TextFormat derives the formatting policy for a viewport width from the
// configuration.
func (a *App) TextFormat(viewportWidth int) format.TextFormat {
	cfg := format.DefaultTextFormat(viewportWidth)
	cfg.SoftWrap = a.cfg.Editor.SoftWrap
	cfg.TabWidth = a.cfg.Editor.TabWidth
	return cfg
}

// EnableSyntax attaches a parsed tree to a document. Load failures leave
// the document in no-highlight mode.
func (a *App) EnableSyntax(id doc.ID, languageID string) error {
	d, ok := a.docs[id]
	if !ok || a.Loader == nil {
		return nil
	}
	d.SetLanguageID(languageID)
	syn, err := syntax.New(languageID, a.Loader, d.Text())
	if err != nil {
		return err
	}
	a.syntaxes[id] = syn
	a.highlights[id] = syntax.NewCache()
	return nil
}

// Syntax returns the document's parse handle, if syntax is enabled.
func (a *App) Syntax(id doc.ID) (*syntax.Syntax, bool) {
	s, ok := a.syntaxes[id]
	return s, ok
}

// HighlightCache returns the document's highlight cache, if syntax is
// enabled.
func (a *App) HighlightCache(id doc.ID) (*syntax.Cache, bool) {
	c, ok := a.highlights[id]
	return c, ok
}

func (a *App) updateSyntax(e *doc.DidChange) {
	syn, ok := a.syntaxes[e.Doc.ID()]
	if !ok {
		return
	}
	if err := syn.Update(e.OldText, e.Doc.Text(), e.Changes); err != nil {
		log.Warn().Str("source", "syntax").Int("doc", int(e.Doc.ID())).Err(err).
			Msg("incremental reparse failed, disabling highlights")
		delete(a.syntaxes, e.Doc.ID())
		delete(a.highlights, e.Doc.ID())
	}
}
