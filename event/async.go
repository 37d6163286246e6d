package event

import (
	"time"
)

// ChannelCapacity is the buffer size of async hook channels. Producers use
// TrySend, so a full channel drops the producer's event rather than
// blocking the main thread.
const ChannelCapacity = 256

// AsyncHook is a single-consumer cooperative task that coalesces and
// debounces events arriving on a channel.
type AsyncHook[E any] interface {
	// HandleEvent is called for each event with the current debounce
	// deadline (zero when none is pending). It returns the new deadline;
	// returning the zero time cancels the debounce.
	HandleEvent(event E, deadline time.Time) time.Time

	// FinishDebounce is called when the deadline elapses with no further
	// events.
	FinishDebounce()
}

// Spawn starts the consumer goroutine for hook and returns its send
// channel. Closing the channel terminates the task cleanly.
func Spawn[E any](hook AsyncHook[E]) chan<- E {
	ch := make(chan E, ChannelCapacity)
	go runAsyncHook(hook, ch)
	return ch
}

// TrySend offers an event without blocking. It reports whether the event
// was accepted; on a full channel the caller's event is dropped, never
// buffered ones.
func TrySend[E any](ch chan<- E, event E) bool {
	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

func runAsyncHook[E any](hook AsyncHook[E], ch <-chan E) {
	var deadline time.Time
	for {
		if deadline.IsZero() {
			e, ok := <-ch
			if !ok {
				return
			}
			deadline = hook.HandleEvent(e, deadline)
			continue
		}

		timer := time.NewTimer(time.Until(deadline))
		select {
		case e, ok := <-ch:
			timer.Stop()
			if !ok {
				return
			}
			deadline = hook.HandleEvent(e, deadline)
		case <-timer.C:
			hook.FinishDebounce()
			deadline = time.Time{}
		}
	}
}
