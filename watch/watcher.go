package watch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// batchWindow groups filesystem events arriving close together into one
// batch, so an editor saving via temp-file + rename yields a single
// decision instead of three.
const batchWindow = 50 * time.Millisecond

// Watcher adapts fsnotify to batched PathEvents. Closing of the underlying
// stream closes Batches, which consumers surface as a Disconnected
// decision.
type Watcher struct {
	fs      *fsnotify.Watcher
	batches chan []PathEvent
}

// NewWatcher opens the platform watcher.
func NewWatcher() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fs: fs, batches: make(chan []PathEvent, 16)}, nil
}

// Add starts watching a path. Watching the parent directory is the
// caller's choice for editors that replace files by rename.
func (w *Watcher) Add(path string) error { return w.fs.Add(path) }

// Remove stops watching a path.
func (w *Watcher) Remove(path string) error { return w.fs.Remove(path) }

// Batches delivers grouped events; it closes when the stream disconnects.
func (w *Watcher) Batches() <-chan []PathEvent { return w.batches }

// Close tears down the watcher.
func (w *Watcher) Close() error { return w.fs.Close() }

// Run pumps events until the context is done or the stream closes.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.batches)
	var (
		pending []PathEvent
		timer   *time.Timer
		expiry  <-chan time.Time
	)
	flush := func() {
		if len(pending) > 0 {
			w.batches <- pending
			pending = nil
		}
		expiry = nil
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				flush()
				return
			}
			pending = append(pending, PathEvent{Path: ev.Name, Kind: eventKind(ev.Op)})
			if expiry == nil {
				if timer == nil {
					timer = time.NewTimer(batchWindow)
				} else {
					timer.Reset(batchWindow)
				}
				expiry = timer.C
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				flush()
				return
			}
			log.Warn().Str("source", "watch").Err(err).Msg("watcher error")
		case <-expiry:
			flush()
		}
	}
}

func eventKind(op fsnotify.Op) Kind {
	switch {
	case op.Has(fsnotify.Create):
		return Created
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return Removed
	default:
		return Changed
	}
}
