package editor

import (
	"github.com/vellumtext/vellum/doc"
	"github.com/vellumtext/vellum/format"
	"github.com/vellumtext/vellum/render"
	"github.com/vellumtext/vellum/rope"
)

// EditorID identifies one editor view within the App.
type EditorID int

// ViewState is the scroll state of an editor. Scroll is expressed in
// visual rows and cols, after wrapping and annotations.
type ViewState struct {
	Viewport  render.Rect
	Scroll    render.Scroll
	Scrolloff int
}

// Editor pairs a document with a view. Components refer to documents and
// editors by ID; the App owns both arenas.
type Editor struct {
	id    EditorID
	docID doc.ID
	view  ViewState
}

func (e *Editor) ID() EditorID     { return e.id }
func (e *Editor) DocID() doc.ID    { return e.docID }
func (e *Editor) View() *ViewState { return &e.view }

// ViewID is the document-side key for this editor's selection.
func (e *Editor) ViewID() doc.ViewID { return doc.ViewID(e.id) }

// SetViewport resizes the editor area.
func (e *Editor) SetViewport(r render.Rect) { e.view.Viewport = r }

// EnsureCursorInView scrolls so the cursor sits inside the viewport with
// the configured scrolloff margin.
func (e *Editor) EnsureCursorInView(text rope.Rope, cfg format.TextFormat, ann *format.Annotations, cursor int) {
	pos := format.VisualPosAtChar(text, cfg, ann, cursor)
	v := &e.view

	off := v.Scrolloff
	if limit := (v.Viewport.Height - 1) / 2; off > limit {
		off = limit
	}
	if pos.Row < v.Scroll.Row+off {
		v.Scroll.Row = pos.Row - off
	}
	if pos.Row > v.Scroll.Row+v.Viewport.Height-1-off {
		v.Scroll.Row = pos.Row - v.Viewport.Height + 1 + off
	}
	if v.Scroll.Row < 0 {
		v.Scroll.Row = 0
	}

	if pos.Col < v.Scroll.Col {
		v.Scroll.Col = pos.Col
	}
	if pos.Col > v.Scroll.Col+v.Viewport.Width-1 {
		v.Scroll.Col = pos.Col - v.Viewport.Width + 1
	}
	if v.Scroll.Col < 0 {
		v.Scroll.Col = 0
	}
}
