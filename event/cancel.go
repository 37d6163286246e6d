package event

import (
	"context"
	"sync"
)

// TaskHandle lets an async task observe cooperative cancellation.
type TaskHandle struct {
	ctx context.Context
}

// Cancelled reports whether the task was cancelled.
func (h TaskHandle) Cancelled() bool {
	select {
	case <-h.ctx.Done():
		return true
	default:
		return false
	}
}

// Done returns a channel closed on cancellation, for use in selects.
func (h TaskHandle) Done() <-chan struct{} { return h.ctx.Done() }

// Context returns the handle's context for APIs that take one.
func (h TaskHandle) Context() context.Context { return h.ctx }

// TaskController mints TaskHandles where starting a new task cancels the
// previous one. The main loop uses one controller per concern (completion,
// item resolve) so a fresh trigger cancels in-flight work.
type TaskController struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Restart cancels the in-flight task, if any, and returns a handle for the
// next one.
func (c *TaskController) Restart() TaskHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return TaskHandle{ctx: ctx}
}

// CancelAll cancels the in-flight task without starting a new one.
func (c *TaskController) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
