package editor

import "testing"

func TestKeyMap_Resolve(t *testing.T) {
	km := DefaultKeyMap()
	cases := []struct {
		code string
		want string
	}{
		{"left", "move-left"},
		{"shift+down", "extend-down"},
		{"alt+left", "word-left"},
		{"ctrl+left", "word-left"}, // terminal fallback
		{"ctrl+a", "line-start"},
		{"backspace", "delete-back"},
		{"ctrl+z", "undo"},
		{"ctrl+shift+z", "redo"},
		{"ctrl+v", "paste"},
		{"ctrl+s", "save"},
		{"esc", "dismiss"},
	}
	for _, tc := range cases {
		got, ok := km.Resolve(KeyInput{Code: tc.code})
		if !ok || got != tc.want {
			t.Errorf("Resolve(%q)=%q,%v, want %q", tc.code, got, ok, tc.want)
		}
	}

	if cmd, ok := km.Resolve(KeyInput{Code: "f12"}); ok {
		t.Fatalf("unbound key resolved to %q", cmd)
	}
}

func TestMemoryClipboard_RoundTrip(t *testing.T) {
	var cb MemoryClipboard
	if err := cb.WriteText("snippet"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := cb.ReadText()
	if err != nil || got != "snippet" {
		t.Fatalf("ReadText=%q, %v", got, err)
	}
}
