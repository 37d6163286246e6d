package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vellumtext/vellum/config"
	"github.com/vellumtext/vellum/dispatch"
	"github.com/vellumtext/vellum/doc"
	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/editor"
	"github.com/vellumtext/vellum/format"
	"github.com/vellumtext/vellum/render"
	"github.com/vellumtext/vellum/rope"
	"github.com/vellumtext/vellum/selection"
)

const seedText = "Hello from vellum.\n\nType to edit, arrows to move.\n" +
	"Shift+arrows select, ctrl+z undoes.\nCtrl+Q quits."

type model struct {
	app    *editor.App
	keys   editor.KeyMap
	styles render.Styles
}

func newModel() model {
	editor.RegisterEvents()
	app := editor.NewApp(config.Default())
	app.InstallHooks()

	d := app.NewDocument()
	app.NewEditor(d.ID())
	if tx, err := edit.ChangeText(d.Text(), []edit.Change{{Insert: seedText}}); err == nil {
		_ = app.Apply(tx.WithSelection(selection.PointSel(0)))
	}

	registerCommands(app.Commands)
	return model{app: app, keys: editor.DefaultKeyMap(), styles: render.DefaultStyles()}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	in, ok := editor.FromTea(msg)
	if !ok {
		return m, nil
	}

	switch in := in.(type) {
	case editor.ResizeInput:
		if e := m.app.CurrentEditor(); e != nil {
			// The last row is the status line.
			e.SetViewport(render.Rect{Width: in.Width, Height: in.Height - 1})
		}
		return m, nil
	case editor.TextInput:
		insertText(m.app, in.Text)
	case editor.ScrollInput:
		scrollBy(m.app, in.Dy)
		return m, nil
	case editor.KeyInput:
		name, bound := m.keys.Resolve(in)
		if !bound {
			return m, nil
		}
		if name == "quit" {
			return m, tea.Quit
		}
		if _, err := m.app.Commands.Dispatch(name, m.app, in); err != nil {
			m.app.Messages.Publish(editor.LevelError, "keymap", err.Error())
		}
	}

	followCursor(m.app)
	return m, nil
}

func (m model) View() string {
	e := m.app.CurrentEditor()
	d := m.app.CurrentDocument()
	if e == nil || d == nil || e.View().Viewport.Width == 0 {
		return ""
	}
	view := e.View()
	cfg := m.app.TextFormat(view.Viewport.Width)
	plan := render.BuildPlan(d.Text(), d.Selection(e.ViewID()), cfg, nil,
		view.Viewport, view.Scroll, nil)

	rows := make([]string, view.Viewport.Height)
	for _, line := range plan.Lines {
		if line.Row < 0 || line.Row >= len(rows) {
			continue
		}
		var b strings.Builder
		col := 0
		for _, sp := range line.Spans {
			for ; col < sp.Col; col++ {
				b.WriteByte(' ')
			}
			b.WriteString(m.styles.Apply(sp))
			col += runewidth.StringWidth(sp.Text)
		}
		rows[line.Row] = b.String()
	}
	return strings.Join(rows, "\n") + "\n" + statusLine(m.app, d)
}

func statusLine(a *editor.App, d *doc.Document) string {
	if msg, ok := a.Messages.Active(); ok {
		return fmt.Sprintf("[%s] %s", msg.Source, msg.Text)
	}
	name := d.Path()
	if name == "" {
		name = "[scratch]"
	}
	modified := ""
	if d.Modified() {
		modified = " +"
	}
	return fmt.Sprintf("%s%s  v%d", name, modified, d.Version())
}

// registerCommands installs the demo's edit commands. The names mirror
// DefaultKeyMap's bindings.
func registerCommands(reg *dispatch.Registry[editor.App]) {
	move := func(name string, f func(a *editor.App)) {
		reg.Register(name, func(a *editor.App, _ any) any {
			f(a)
			return nil
		})
	}

	move("move-left", func(a *editor.App) { moveH(a, -1, false) })
	move("move-right", func(a *editor.App) { moveH(a, +1, false) })
	move("extend-left", func(a *editor.App) { moveH(a, -1, true) })
	move("extend-right", func(a *editor.App) { moveH(a, +1, true) })
	move("move-up", func(a *editor.App) { moveV(a, -1, false) })
	move("move-down", func(a *editor.App) { moveV(a, +1, false) })
	move("extend-up", func(a *editor.App) { moveV(a, -1, true) })
	move("extend-down", func(a *editor.App) { moveV(a, +1, true) })
	move("word-left", func(a *editor.App) { moveWord(a, -1) })
	move("word-right", func(a *editor.App) { moveWord(a, +1) })
	move("line-start", func(a *editor.App) { moveLineEdge(a, false) })
	move("line-end", func(a *editor.App) { moveLineEdge(a, true) })

	move("delete-back", func(a *editor.App) { deleteAdjacent(a, -1) })
	move("delete-forward", func(a *editor.App) { deleteAdjacent(a, +1) })
	move("insert-newline", func(a *editor.App) { insertText(a, "\n") })

	move("undo", func(a *editor.App) { history(a, true) })
	move("redo", func(a *editor.App) { history(a, false) })

	move("copy", func(a *editor.App) { copySelection(a, false) })
	move("cut", func(a *editor.App) { copySelection(a, true) })
	move("paste", func(a *editor.App) { paste(a) })

	move("save", func(a *editor.App) { save(a) })
	move("dismiss", func(a *editor.App) { a.Messages.Dismiss() })
}

func current(a *editor.App) (*editor.Editor, *doc.Document, bool) {
	e := a.CurrentEditor()
	d := a.CurrentDocument()
	return e, d, e != nil && d != nil
}

func moveH(a *editor.App, dir int, extend bool) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	sel := d.Selection(e.ViewID()).Transform(func(r selection.Range) selection.Range {
		head := r.Head
		if dir < 0 {
			head = text.PrevGraphemeBoundary(head)
		} else {
			head = text.NextGraphemeBoundary(head)
		}
		if extend {
			return selection.NewRange(r.Anchor, head)
		}
		return selection.Point(head)
	})
	d.SetSelection(e.ViewID(), sel)
}

func moveV(a *editor.App, rows int, extend bool) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	cfg := a.TextFormat(e.View().Viewport.Width)
	sel := d.Selection(e.ViewID()).Transform(func(r selection.Range) selection.Range {
		pos := format.VisualPosAtChar(text, cfg, nil, r.Head)
		head, _ := format.CharIdxAtVisualOffset(text, cfg, nil, r.Head, rows, pos.Col)
		if extend {
			return selection.NewRange(r.Anchor, head)
		}
		return selection.Point(head)
	})
	d.SetSelection(e.ViewID(), sel)
}

func moveWord(a *editor.App, dir int) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	sel := d.Selection(e.ViewID()).Transform(func(r selection.Range) selection.Range {
		if dir < 0 {
			return selection.Point(prevWordStart(text, r.Head))
		}
		return selection.Point(nextWordEnd(text, r.Head))
	})
	d.SetSelection(e.ViewID(), sel)
}

func prevWordStart(text rope.Rope, c int) int {
	for c > 0 && unicode.IsSpace(charAt(text, c-1)) {
		c--
	}
	for c > 0 && !unicode.IsSpace(charAt(text, c-1)) {
		c--
	}
	return c
}

func nextWordEnd(text rope.Rope, c int) int {
	n := text.LenChars()
	for c < n && unicode.IsSpace(charAt(text, c)) {
		c++
	}
	for c < n && !unicode.IsSpace(charAt(text, c)) {
		c++
	}
	return c
}

func charAt(text rope.Rope, c int) rune {
	for _, r := range text.Slice(c, c+1).String() {
		return r
	}
	return 0
}

func moveLineEdge(a *editor.App, end bool) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	sel := d.Selection(e.ViewID()).Transform(func(r selection.Range) selection.Range {
		line := text.CharToLine(r.Head)
		if !end {
			return selection.Point(text.LineToChar(line))
		}
		pos := text.LineToChar(line + 1)
		if line < text.LenLines()-1 {
			// Stop before the line's trailing newline.
			pos--
		}
		return selection.Point(pos)
	})
	d.SetSelection(e.ViewID(), sel)
}

func insertText(a *editor.App, s string) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	tx, err := edit.InsertText(d.Text(), d.Selection(e.ViewID()), s)
	if err != nil {
		a.Messages.Publish(editor.LevelError, "edit", err.Error())
		return
	}
	_ = a.Apply(tx)
	followCursor(a)
}

func deleteAdjacent(a *editor.App, dir int) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	tx, err := edit.ChangeBySelection(text, d.Selection(e.ViewID()), func(r selection.Range) edit.Change {
		if !r.IsEmpty() {
			return edit.Change{From: r.From(), To: r.To()}
		}
		if dir < 0 {
			return edit.Change{From: text.PrevGraphemeBoundary(r.Head), To: r.Head}
		}
		return edit.Change{From: r.Head, To: text.NextGraphemeBoundary(r.Head)}
	})
	if err != nil {
		a.Messages.Publish(editor.LevelError, "edit", err.Error())
		return
	}
	_ = a.Apply(tx)
	followCursor(a)
}

func history(a *editor.App, undo bool) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	var err error
	if undo {
		_, err = d.Undo(e.ViewID())
	} else {
		_, err = d.Redo(e.ViewID())
	}
	if err != nil {
		a.Messages.Publish(editor.LevelError, "history", err.Error())
	}
	followCursor(a)
}

func copySelection(a *editor.App, cut bool) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	r := d.Selection(e.ViewID()).Primary()
	if r.IsEmpty() {
		return
	}
	if err := a.Clipboard.WriteText(text.Slice(r.From(), r.To()).String()); err != nil {
		a.Messages.Publish(editor.LevelWarning, "clipboard", err.Error())
		return
	}
	if cut {
		if tx, err := edit.DeleteRanges(text, [][2]int{{r.From(), r.To()}}); err == nil {
			_ = a.Apply(tx)
		}
	}
	followCursor(a)
}

func paste(a *editor.App) {
	s, err := a.Clipboard.ReadText()
	if err != nil {
		a.Messages.Publish(editor.LevelWarning, "clipboard", err.Error())
		return
	}
	if s != "" {
		insertText(a, s)
	}
}

func save(a *editor.App) {
	_, d, ok := current(a)
	if !ok {
		return
	}
	if err := d.Save(); err != nil {
		a.Messages.Publish(editor.LevelError, "save", err.Error())
		return
	}
	a.Messages.Publish(editor.LevelInfo, "save", "written "+d.Path())
}

func scrollBy(a *editor.App, dy int) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	view := e.View()
	row := view.Scroll.Row + dy
	if last := d.Text().LenLines() - 1; row > last {
		row = last
	}
	if row < 0 {
		row = 0
	}
	view.Scroll.Row = row
}

func followCursor(a *editor.App) {
	e, d, ok := current(a)
	if !ok {
		return
	}
	text := d.Text()
	cfg := a.TextFormat(e.View().Viewport.Width)
	cursor := d.Selection(e.ViewID()).Primary().Cursor(text.PrevGraphemeBoundary)
	e.EnsureCursorInView(text, cfg, nil, cursor)
}

func main() {
	p := tea.NewProgram(newModel(), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
