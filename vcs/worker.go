package vcs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Request asks for the hunks of one document against its diff base.
type Request struct {
	Path    string
	Version uint64
	Base    string
	Current string
}

// Result carries the computed hunks back to the main loop. Version echoes
// the request so stale results can be discarded.
type Result struct {
	Path    string
	Version uint64
	Hunks   []Hunk
}

// Worker computes diffs off the main thread. Submit never blocks; a full
// queue drops the request, and the editor resubmits on the next change.
type Worker struct {
	requests chan Request
	results  chan Result
}

// NewWorker returns a worker with the given queue depth.
func NewWorker(depth int) *Worker {
	return &Worker{
		requests: make(chan Request, depth),
		results:  make(chan Result, depth),
	}
}

// Run processes requests on parallelism goroutines until the context is
// done, then closes the results channel.
func (w *Worker) Run(ctx context.Context, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < parallelism; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case req := <-w.requests:
					res := Result{
						Path:    req.Path,
						Version: req.Version,
						Hunks:   DiffLines(req.Base, req.Current),
					}
					select {
					case <-ctx.Done():
						return ctx.Err()
					case w.results <- res:
					}
				}
			}
		})
	}
	err := g.Wait()
	close(w.results)
	return err
}

// Submit enqueues a request; it reports false when the queue is full.
func (w *Worker) Submit(req Request) bool {
	select {
	case w.requests <- req:
		return true
	default:
		return false
	}
}

// Results is the channel the main loop polls for finished diffs.
func (w *Worker) Results() <-chan Result { return w.results }
