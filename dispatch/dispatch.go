// Package dispatch provides the command dispatch building blocks: typed
// dispatch points composed into per-subsystem dispatch structs, and a
// string-keyed dynamic registry for runtime overrides.
package dispatch

import (
	"errors"
	"fmt"
	"sync"
)

// Handler is the function shape of every dispatch point.
type Handler[Ctx, In, Out any] func(*Ctx, In) Out

// Point is one named dispatch site. A zero Point is valid: calling it
// returns the zero Out, so unset points behave as defaults.
type Point[Ctx, In, Out any] struct {
	handler Handler[Ctx, In, Out]
}

// NewPoint returns a point bound to h.
func NewPoint[Ctx, In, Out any](h Handler[Ctx, In, Out]) Point[Ctx, In, Out] {
	return Point[Ctx, In, Out]{handler: h}
}

// With returns a copy of the point with the handler replaced. Dispatch
// structs expose this through their own WithX builders.
func (p Point[Ctx, In, Out]) With(h Handler[Ctx, In, Out]) Point[Ctx, In, Out] {
	p.handler = h
	return p
}

// IsSet reports whether a handler is bound.
func (p Point[Ctx, In, Out]) IsSet() bool { return p.handler != nil }

// Call invokes the handler, or returns the zero Out when none is bound.
func (p Point[Ctx, In, Out]) Call(ctx *Ctx, in In) Out {
	if p.handler == nil {
		var zero Out
		return zero
	}
	return p.handler(ctx, in)
}

// ErrUnknownPoint is returned by Registry.Dispatch for unregistered names.
var ErrUnknownPoint = errors.New("dispatch: unknown dispatch point")

// Erased is a type-erased handler as stored in the Registry. Callers are
// responsible for the input/output downcasts.
type Erased[Ctx any] func(*Ctx, any) any

// Erase wraps a typed handler for registry storage. The returned handler
// panics if invoked with the wrong input type, mirroring a bad downcast at
// the call site.
func Erase[Ctx, In, Out any](h Handler[Ctx, In, Out]) Erased[Ctx] {
	return func(ctx *Ctx, in any) any {
		typed, ok := in.(In)
		if !ok {
			panic(fmt.Sprintf("dispatch: handler input %T, want %T", in, typed))
		}
		return h(ctx, typed)
	}
}

// Registry is a runtime-extensible map of named handlers. Lookups are not
// type-safe; the static dispatch structs are preferred where the call
// sites are known at compile time.
type Registry[Ctx any] struct {
	mu       sync.Mutex
	handlers map[string]Erased[Ctx]
}

// NewRegistry returns an empty registry.
func NewRegistry[Ctx any]() *Registry[Ctx] {
	return &Registry[Ctx]{handlers: make(map[string]Erased[Ctx])}
}

// Register installs a handler under name, returning the one it replaced.
func (r *Registry[Ctx]) Register(name string, h Erased[Ctx]) (prev Erased[Ctx]) {
	r.mu.Lock()
	prev = r.handlers[name]
	r.handlers[name] = h
	r.mu.Unlock()
	return prev
}

// Remove drops the handler under name.
func (r *Registry[Ctx]) Remove(name string) {
	r.mu.Lock()
	delete(r.handlers, name)
	r.mu.Unlock()
}

// Lookup returns the handler under name.
func (r *Registry[Ctx]) Lookup(name string) (Erased[Ctx], bool) {
	r.mu.Lock()
	h, ok := r.handlers[name]
	r.mu.Unlock()
	return h, ok
}

// Names returns the registered dispatch point names, unordered.
func (r *Registry[Ctx]) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.Unlock()
	return names
}

// Dispatch invokes the handler under name. The lock is released before the
// handler runs; handlers may re-enter the registry.
func (r *Registry[Ctx]) Dispatch(name string, ctx *Ctx, in any) (any, error) {
	h, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPoint, name)
	}
	return h(ctx, in), nil
}
