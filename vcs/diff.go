// Package vcs computes line-level diffs against a version-control base and
// defines the provider interface the shell implements. Diff computation is
// CPU-bound and runs on worker goroutines; the main loop consumes results
// from a channel.
package vcs

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind classifies a changed file or hunk.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
)

// FileChange is one entry reported by Provider.ForEachChangedFile.
type FileChange struct {
	Path string
	Kind ChangeKind
}

// Provider is the version-control backend. Implementations are invoked off
// the main thread and must be safe for concurrent use.
type Provider interface {
	// DiffBase returns the committed contents of path.
	DiffBase(path string) ([]byte, error)
	// CurrentHeadName returns the human-readable head name (branch or
	// short hash).
	CurrentHeadName(path string) (string, error)
	// ForEachChangedFile reports files changed under cwd until fn returns
	// an error or the context is done.
	ForEachChangedFile(ctx context.Context, cwd string, fn func(FileChange) error) error
}

// Hunk is one changed region as zero-based half-open line ranges. Added
// hunks have an empty old range; Removed hunks an empty new range.
type Hunk struct {
	Kind     ChangeKind
	OldStart int
	OldEnd   int
	NewStart int
	NewEnd   int
}

// DiffLines computes line hunks between base and current using a
// line-granular diff.
func DiffLines(base, current string) []Hunk {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(base, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var hunks []Hunk
	oldLine, newLine := 0, 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldLine += n
			newLine += n
		case diffmatchpatch.DiffDelete:
			if i+1 < len(diffs) && diffs[i+1].Type == diffmatchpatch.DiffInsert {
				m := countLines(diffs[i+1].Text)
				hunks = append(hunks, Hunk{
					Kind:     Modified,
					OldStart: oldLine, OldEnd: oldLine + n,
					NewStart: newLine, NewEnd: newLine + m,
				})
				oldLine += n
				newLine += m
				i++
				continue
			}
			hunks = append(hunks, Hunk{
				Kind:     Removed,
				OldStart: oldLine, OldEnd: oldLine + n,
				NewStart: newLine, NewEnd: newLine,
			})
			oldLine += n
		case diffmatchpatch.DiffInsert:
			hunks = append(hunks, Hunk{
				Kind:     Added,
				OldStart: oldLine, OldEnd: oldLine,
				NewStart: newLine, NewEnd: newLine + n,
			})
			newLine += n
		}
	}
	return hunks
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
