package doc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

// lastSaved is kept per document; the file watcher compares it against
// event timestamps to suppress reloads caused by our own writes.

// Open reads path into a new document. The line ending is detected from
// the content; missing files yield an empty modifiable document bound to
// the path.
func Open(id ID, path string) (*Document, error) {
	d := New(id)
	d.path = path
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("doc: open %s: %w", path, err)
	}
	text := string(raw)
	d.lineEnding = detectLineEnding(text)
	d.text = rope.New(normalizeNewlines(text))
	if info, err := os.Stat(path); err == nil {
		d.lastSaved = info.ModTime()
		if info.Mode().Perm()&0o200 == 0 {
			d.readonly = true
		}
	}
	return d, nil
}

// Save writes the document atomically: temp file in the same directory,
// fsync, rename. On success the modified flag clears and LastSaved records
// the resulting mtime.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("doc: save: document has no path")
	}
	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".vellum-*.tmp")
	if err != nil {
		return fmt.Errorf("doc: save %s: %w", d.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(d.serialize()); err != nil {
		tmp.Close()
		return fmt.Errorf("doc: save %s: %w", d.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("doc: save %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("doc: save %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("doc: save %s: %w", d.path, err)
	}

	d.modified = false
	if info, err := os.Stat(d.path); err == nil {
		d.lastSaved = info.ModTime()
	} else {
		d.lastSaved = time.Now()
	}
	log.Info().Str("source", "save").Str("path", d.path).Msg("document saved")
	return nil
}

// LastSaved returns the mtime recorded by the latest successful save or
// load.
func (d *Document) LastSaved() time.Time { return d.lastSaved }

// Reload replaces the text from disk through a single whole-document
// transaction for view, so selections remap and change hooks fire.
func (d *Document) Reload(view ViewID) error {
	if d.path == "" {
		return fmt.Errorf("doc: reload: document has no path")
	}
	raw, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("doc: reload %s: %w", d.path, err)
	}
	text := string(raw)
	tx, err := replaceAll(d, normalizeNewlines(text))
	if err != nil {
		return err
	}
	if err := d.Apply(view, tx); err != nil {
		return err
	}
	d.modified = false
	d.lineEnding = detectLineEnding(text)
	if info, err := os.Stat(d.path); err == nil {
		d.lastSaved = info.ModTime()
	}
	return nil
}

// replaceAll builds a whole-document replacement transaction.
func replaceAll(d *Document, text string) (*edit.Transaction, error) {
	return edit.ChangeText(d.text, []edit.Change{{
		From:   0,
		To:     d.text.LenChars(),
		Insert: text,
	}})
}

// serialize renders the text with the document's detected line ending.
// The in-memory rope is always LF-only.
func (d *Document) serialize() string {
	text := d.text.String()
	if d.lineEnding == CRLF {
		return strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// normalizeNewlines converts CRLF to bare LF for the in-memory text; the
// detected line ending is restored on save.
func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func detectLineEnding(text string) LineEnding {
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		return CRLF
	}
	return LF
}
