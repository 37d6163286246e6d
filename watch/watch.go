// Package watch decides when an externally modified file should be
// reloaded. Filesystem events arrive in batches; the reloader filters its
// own document's path, drops batches caused by the editor's own saves, and
// collapses bursts to a single final kind.
package watch

import (
	"errors"
	"time"
)

// Kind classifies a filesystem event.
type Kind int

const (
	Created Kind = iota
	Changed
	Removed
)

// PathEvent is one filesystem event as delivered by the watcher backend.
type PathEvent struct {
	Path string
	Kind Kind
}

// ErrDisconnected is reported when the watch stream closes; the watcher
// can be re-armed on the next document focus.
var ErrDisconnected = errors.New("watch: stream disconnected")

// Outcome is the reloader's verdict on one batch.
type Outcome int

const (
	NoChanges Outcome = iota
	Disconnected
	Changes
)

// Decision carries the verdict plus the document identity for Changes and
// Disconnected outcomes.
type Decision struct {
	Outcome Outcome
	Path    string
	URI     string
	// Kinds holds the batch's kinds for this path in order; the last one
	// is the effective state of the file.
	Kinds []Kind
}

// FinalKind returns the collapsed kind of the batch.
func (d Decision) FinalKind() Kind {
	if len(d.Kinds) == 0 {
		return Changed
	}
	return d.Kinds[len(d.Kinds)-1]
}

// Reloader tracks the suppression window for one document.
type Reloader struct {
	path          string
	suppressUntil time.Time
}

// NewReloader watches for external changes to path.
func NewReloader(path string) *Reloader {
	return &Reloader{path: path}
}

// Suppress ignores batches until t. Called with save-time + margin after
// every save so the editor's own writes don't trigger a reload prompt.
func (r *Reloader) Suppress(until time.Time) {
	r.suppressUntil = until
}

// Consume judges one batch received at now.
func (r *Reloader) Consume(now time.Time, batch []PathEvent) Decision {
	var kinds []Kind
	for _, ev := range batch {
		if ev.Path == r.path {
			kinds = append(kinds, ev.Kind)
		}
	}
	if len(kinds) == 0 {
		return Decision{Outcome: NoChanges}
	}
	if now.Before(r.suppressUntil) {
		return Decision{Outcome: NoChanges}
	}
	return Decision{
		Outcome: Changes,
		Path:    r.path,
		URI:     "file://" + r.path,
		Kinds:   kinds,
	}
}

// Disconnect reports the stream closing.
func (r *Reloader) Disconnect() Decision {
	return Decision{Outcome: Disconnected, Path: r.path, URI: "file://" + r.path}
}
