// Package event provides the synchronous typed event bus and the async
// hook (debounce) runtime. Event types are registered once at startup;
// hooks then run synchronously in registration order on every dispatch.
package event

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"
)

type bus struct {
	mu         sync.Mutex
	registered map[reflect.Type]bool
	hooks      map[reflect.Type][]any

	// Dispatch depth and the queue of events raised from inside hooks.
	// Those drain after the current chain completes so hooks never see
	// recursive dispatch.
	dispatching bool
	queue       []func() error
}

var global = &bus{
	registered: make(map[reflect.Type]bool),
	hooks:      make(map[reflect.Type][]any),
}

// Register declares event type E. All event types must be registered at
// application start, before hooks are added or events dispatched.
func Register[E any]() {
	t := reflect.TypeFor[E]()
	global.mu.Lock()
	defer global.mu.Unlock()
	global.registered[t] = true
}

// RegisterHook adds a hook for event type E. Hooks run in registration
// order; a hook error aborts the chain.
func RegisterHook[E any](hook func(*E) error) {
	t := reflect.TypeFor[E]()
	global.mu.Lock()
	defer global.mu.Unlock()
	if !global.registered[t] {
		panic(fmt.Sprintf("event: hook registered for unregistered event type %v", t))
	}
	global.hooks[t] = append(global.hooks[t], hook)
}

// Dispatch runs the hooks for E synchronously. Dispatching an unregistered
// event type is an invariant violation and panics. When called from inside
// a hook, the event is queued and dispatched after the current chain
// completes; queued dispatch errors are logged, not returned.
func Dispatch[E any](e *E) error {
	t := reflect.TypeFor[E]()
	global.mu.Lock()
	if !global.registered[t] {
		global.mu.Unlock()
		panic(fmt.Sprintf("event: dispatch of unregistered event type %v", t))
	}
	if global.dispatching {
		global.queue = append(global.queue, func() error { return dispatchNow(t, e) })
		global.mu.Unlock()
		return nil
	}
	global.dispatching = true
	global.mu.Unlock()

	err := dispatchNow(t, e)
	drainQueue()

	global.mu.Lock()
	global.dispatching = false
	global.mu.Unlock()
	return err
}

func dispatchNow[E any](t reflect.Type, e *E) error {
	global.mu.Lock()
	hooks := append([]any(nil), global.hooks[t]...)
	global.mu.Unlock()
	for _, h := range hooks {
		if err := h.(func(*E) error)(e); err != nil {
			return err
		}
	}
	return nil
}

func drainQueue() {
	for {
		global.mu.Lock()
		if len(global.queue) == 0 {
			global.mu.Unlock()
			return
		}
		next := global.queue[0]
		global.queue = global.queue[1:]
		global.mu.Unlock()
		if err := next(); err != nil {
			log.Warn().Err(err).Str("source", "event").Msg("queued event hook failed")
		}
	}
}

// resetForTest clears all registrations. Test helper only.
func resetForTest() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.registered = make(map[reflect.Type]bool)
	global.hooks = make(map[reflect.Type][]any)
	global.dispatching = false
	global.queue = nil
}
