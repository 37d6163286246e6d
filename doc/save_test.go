package doc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vellumtext/vellum/edit"
)

func TestDocument_SaveAndOpenRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	d := NewFromText(1, "line one\nline two\n")
	d.path = path

	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if d.Modified() {
		t.Fatalf("modified flag still set after save")
	}
	if d.LastSaved().IsZero() {
		t.Fatalf("LastSaved not recorded")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(raw), "line one\nline two\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}

	d2, err := Open(2, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := d2.Text().String(), "line one\nline two\n"; got != want {
		t.Fatalf("opened=%q, want %q", got, want)
	}
	if got, want := d2.LineEnding(), LF; got != want {
		t.Fatalf("line ending=%v, want %v", got, want)
	}
}

func TestDocument_OpenDetectsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dos.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := Open(1, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := d.LineEnding(), CRLF; got != want {
		t.Fatalf("line ending=%v, want %v", got, want)
	}
	// The in-memory text is LF-only.
	if got, want := d.Text().String(), "a\nb\n"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	// Saving restores the detected line ending.
	tx, err := edit.ChangeText(d.Text(), []edit.Change{{From: 4, To: 4, Insert: "c\n"}})
	if err != nil {
		t.Fatalf("ChangeText: %v", err)
	}
	if err := d.Apply(0, tx); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(raw), "a\r\nb\r\nc\r\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
}

func TestDocument_OpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	d, err := Open(1, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := d.Text().LenChars(), 0; got != want {
		t.Fatalf("chars=%d, want %d", got, want)
	}
	if got, want := d.Path(), path; got != want {
		t.Fatalf("path=%q, want %q", got, want)
	}
}

func TestDocument_ReloadRemapsSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.txt")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := Open(1, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(path, []byte("brand new content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := d.Reload(0); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got, want := d.Text().String(), "brand new content"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if d.Modified() {
		t.Fatalf("reload left modified flag set")
	}
}

func TestDocument_SaveRequiresPath(t *testing.T) {
	d := NewFromText(1, "x")
	if err := d.Save(); err == nil {
		t.Fatalf("expected error saving pathless document")
	}
	// Scratch documents still accept edits.
	tx, err := edit.ChangeText(d.Text(), []edit.Change{{From: 0, To: 0, Insert: "y"}})
	if err != nil {
		t.Fatalf("ChangeText: %v", err)
	}
	if err := d.Apply(0, tx); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}
