package editor

import (
	"strings"
	"time"

	"github.com/vellumtext/vellum/doc"
	"github.com/vellumtext/vellum/event"
	"github.com/vellumtext/vellum/watch"
)

// Debounce delays for advisory triggers. Typing bursts collapse to one
// request; a fresh trigger cancels the in-flight one.
const (
	CompletionDebounce    = 150 * time.Millisecond
	SignatureHelpDebounce = 150 * time.Millisecond
	AutoReloadDebounce    = 100 * time.Millisecond
)

// CompletionTrigger asks for completions at the cursor. Manual and
// trigger-character requests skip the debounce.
type CompletionTrigger struct {
	Doc         doc.ID
	Cursor      int
	Manual      bool
	TriggerChar bool
}

// IsTriggerChar reports whether typed text ends in one of the server's
// completion trigger characters.
func IsTriggerChar(triggers []string, text string) bool {
	for _, t := range triggers {
		if t != "" && strings.HasSuffix(text, t) {
			return true
		}
	}
	return false
}

// SignatureHelpTrigger asks for signature help at the cursor.
type SignatureHelpTrigger struct {
	Doc    doc.ID
	Cursor int
}

// debounced coalesces events of one kind: the newest event wins, and the
// request task only launches once the debounce window closes. Each new
// event cancels whatever task is still in flight.
type debounced[E any] struct {
	delay     time.Duration
	tasks     event.TaskController
	pending   *E
	immediate func(E) bool
	run       func(event.TaskHandle, E)
}

func (h *debounced[E]) HandleEvent(ev E, _ time.Time) time.Time {
	h.tasks.CancelAll()
	h.pending = &ev
	if h.immediate != nil && h.immediate(ev) {
		h.FinishDebounce()
		return time.Time{}
	}
	return time.Now().Add(h.delay)
}

func (h *debounced[E]) FinishDebounce() {
	if h.pending == nil {
		return
	}
	ev := *h.pending
	h.pending = nil
	handle := h.tasks.Restart()
	go h.run(handle, ev)
}

// NewCompletionHook returns the async hook behind completion triggers.
// request runs off the main thread and must watch the handle for
// cancellation.
func NewCompletionHook(request func(event.TaskHandle, CompletionTrigger)) event.AsyncHook[CompletionTrigger] {
	return &debounced[CompletionTrigger]{
		delay:     CompletionDebounce,
		immediate: func(t CompletionTrigger) bool { return t.Manual || t.TriggerChar },
		run:       request,
	}
}

// NewSignatureHelpHook returns the async hook behind signature help.
func NewSignatureHelpHook(request func(event.TaskHandle, SignatureHelpTrigger)) event.AsyncHook[SignatureHelpTrigger] {
	return &debounced[SignatureHelpTrigger]{
		delay: SignatureHelpDebounce,
		run:   request,
	}
}

// ReloadHook coalesces file watcher batches and reports the reloader's
// decision back to the main loop.
type ReloadHook struct {
	reloader *watch.Reloader
	pending  []watch.PathEvent
	decide   func(watch.Decision)
}

// NewReloadHook wires a document's reloader to the main loop callback.
func NewReloadHook(r *watch.Reloader, decide func(watch.Decision)) *ReloadHook {
	return &ReloadHook{reloader: r, decide: decide}
}

// HandleEvent accumulates a batch and extends the debounce window.
func (h *ReloadHook) HandleEvent(batch []watch.PathEvent, _ time.Time) time.Time {
	h.pending = append(h.pending, batch...)
	return time.Now().Add(AutoReloadDebounce)
}

// FinishDebounce judges the accumulated batch.
func (h *ReloadHook) FinishDebounce() {
	batch := h.pending
	h.pending = nil
	if d := h.reloader.Consume(time.Now(), batch); d.Outcome != watch.NoChanges {
		h.decide(d)
	}
}
