package editor

import tea "github.com/charmbracelet/bubbletea"

// Input is the sum type of events a rendering backend delivers. The
// bubbletea adapter is provided; other backends construct these directly.
type Input interface{ isInput() }

// KeyInput is a non-text key press, in bubbletea's key notation
// ("ctrl+s", "esc", "alt+enter").
type KeyInput struct {
	Code string
}

// TextInput is typed text, possibly a multi-rune paste.
type TextInput struct {
	Text string
}

// MouseInput is a button or motion event at a cell position.
type MouseInput struct {
	X, Y   int
	Action tea.MouseAction
	Button tea.MouseButton
	Mods   MouseMods
}

// MouseMods are the modifier keys held during a mouse event.
type MouseMods struct {
	Shift bool
	Alt   bool
	Ctrl  bool
}

// ScrollInput is wheel movement in lines.
type ScrollInput struct {
	Dx, Dy int
}

// ResizeInput reports the new cell grid size.
type ResizeInput struct {
	Width, Height int
}

func (KeyInput) isInput()    {}
func (TextInput) isInput()   {}
func (MouseInput) isInput()  {}
func (ScrollInput) isInput() {}
func (ResizeInput) isInput() {}

// FromTea converts a bubbletea message to an Input. It reports false for
// messages the editor does not consume.
func FromTea(msg tea.Msg) (Input, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.Type == tea.KeyRunes && !m.Alt {
			return TextInput{Text: string(m.Runes)}, true
		}
		return KeyInput{Code: m.String()}, true
	case tea.MouseMsg:
		switch m.Button {
		case tea.MouseButtonWheelUp:
			return ScrollInput{Dy: -1}, true
		case tea.MouseButtonWheelDown:
			return ScrollInput{Dy: 1}, true
		case tea.MouseButtonWheelLeft:
			return ScrollInput{Dx: -1}, true
		case tea.MouseButtonWheelRight:
			return ScrollInput{Dx: 1}, true
		}
		return MouseInput{
			X: m.X, Y: m.Y,
			Action: m.Action,
			Button: m.Button,
			Mods:   MouseMods{Shift: m.Shift, Alt: m.Alt, Ctrl: m.Ctrl},
		}, true
	case tea.WindowSizeMsg:
		return ResizeInput{Width: m.Width, Height: m.Height}, true
	}
	return nil, false
}
