package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFromTea_TextAndKeys(t *testing.T) {
	in, ok := FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if !ok {
		t.Fatalf("rune key not consumed")
	}
	if text, ok := in.(TextInput); !ok || text.Text != "ab" {
		t.Fatalf("input=%#v, want TextInput{ab}", in)
	}

	in, _ = FromTea(tea.KeyMsg{Type: tea.KeyCtrlS})
	key, ok := in.(KeyInput)
	if !ok || key.Code != "ctrl+s" {
		t.Fatalf("input=%#v, want KeyInput{ctrl+s}", in)
	}

	// Alt-modified runes are chords, not text.
	in, _ = FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true})
	if _, ok := in.(KeyInput); !ok {
		t.Fatalf("alt+x decoded as %#v, want KeyInput", in)
	}
}

func TestFromTea_MouseAndScroll(t *testing.T) {
	in, _ := FromTea(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Ctrl: true})
	mouse, ok := in.(MouseInput)
	if !ok || mouse.X != 3 || mouse.Y != 5 || !mouse.Mods.Ctrl {
		t.Fatalf("input=%#v", in)
	}

	in, _ = FromTea(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if scroll, ok := in.(ScrollInput); !ok || scroll.Dy != 1 {
		t.Fatalf("input=%#v, want ScrollInput{Dy:1}", in)
	}
}

func TestFromTea_ResizeAndUnknown(t *testing.T) {
	in, ok := FromTea(tea.WindowSizeMsg{Width: 80, Height: 24})
	if !ok {
		t.Fatalf("resize not consumed")
	}
	if resize, ok := in.(ResizeInput); !ok || resize.Width != 80 || resize.Height != 24 {
		t.Fatalf("input=%#v", in)
	}

	if _, ok := FromTea(tea.QuitMsg{}); ok {
		t.Fatalf("unrelated message consumed")
	}
}
