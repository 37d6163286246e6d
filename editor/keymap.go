package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds keys to the command names registered on App.Commands.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	Save, Dismiss, Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "extend left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "extend right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss message")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

type namedBinding struct {
	command string
	binding key.Binding
}

func (km KeyMap) bindings() []namedBinding {
	return []namedBinding{
		{"move-left", km.Left},
		{"move-right", km.Right},
		{"move-up", km.Up},
		{"move-down", km.Down},
		{"extend-left", km.ShiftLeft},
		{"extend-right", km.ShiftRight},
		{"extend-up", km.ShiftUp},
		{"extend-down", km.ShiftDown},
		{"word-left", km.WordLeft},
		{"word-right", km.WordRight},
		{"line-start", km.Home},
		{"line-end", km.End},
		{"delete-back", km.Backspace},
		{"delete-forward", km.Delete},
		{"insert-newline", km.Enter},
		{"undo", km.Undo},
		{"redo", km.Redo},
		{"copy", km.Copy},
		{"cut", km.Cut},
		{"paste", km.Paste},
		{"save", km.Save},
		{"dismiss", km.Dismiss},
		{"quit", km.Quit},
	}
}

// Resolve maps a key press to a command name. It reports false for
// unbound keys, which callers typically feed to the default insert path.
func (km KeyMap) Resolve(in KeyInput) (string, bool) {
	for _, nb := range km.bindings() {
		if !nb.binding.Enabled() {
			continue
		}
		for _, k := range nb.binding.Keys() {
			if k == in.Code {
				return nb.command, true
			}
		}
	}
	return "", false
}
