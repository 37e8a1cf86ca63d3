// Package events is a small synchronous event emitter.
package events

import "sync"

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

type entry struct {
	fn   Listener
	once bool
}

// Emitter dispatches named events to registered listeners.
// The zero value is ready to use and safe for concurrent use.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*entry
}

// On registers fn for event. Listeners run in registration order.
func (e *Emitter) On(event string, fn Listener) {
	e.add(event, &entry{fn: fn})
}

// Once registers fn to run at most one time.
func (e *Emitter) Once(event string, fn Listener) {
	e.add(event, &entry{fn: fn, once: true})
}

// Off removes every listener for event.
func (e *Emitter) Off(event string) {
	e.mu.Lock()
	delete(e.listeners, event)
	e.mu.Unlock()
}

// Emit calls the listeners of event with args and reports whether any ran.
// Listeners are invoked outside the lock so they may register or emit.
func (e *Emitter) Emit(event string, args ...any) bool {
	e.mu.Lock()
	current := e.listeners[event]
	if len(current) == 0 {
		e.mu.Unlock()
		return false
	}
	run := make([]*entry, len(current))
	copy(run, current)

	kept := current[:0:0]
	for _, l := range current {
		if !l.once {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		delete(e.listeners, event)
	} else {
		e.listeners[event] = kept
	}
	e.mu.Unlock()

	for _, l := range run {
		l.fn(args...)
	}
	return true
}

// ListenerCount returns how many listeners are registered for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

func (e *Emitter) add(event string, l *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]*entry)
	}
	e.listeners[event] = append(e.listeners[event], l)
}
