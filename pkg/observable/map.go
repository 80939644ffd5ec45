package observable

import (
	"maps"
	"sync"
)

// EventKind classifies a model mutation.
type EventKind string

const (
	// EventAdd reports a field that did not exist before.
	EventAdd EventKind = "add"
	// EventUpdate reports an existing field whose value changed.
	EventUpdate EventKind = "update"
	// EventDelete reports a removed field.
	EventDelete EventKind = "delete"
	// EventReplace reports a wholesale value swap; Field is empty because
	// no single field can be named.
	EventReplace EventKind = "replace"
)

// Event describes one model mutation.
type Event struct {
	Kind  EventKind
	Field string
}

// UnsubscribeFunc removes a subscription. It is safe to call repeatedly and
// never mutates the model's values.
type UnsubscribeFunc func()

// Map is an observable field→value model. The zero value is not usable;
// construct with NewMap.
//
// The mutex only guards the internal maps against concurrent access from
// unrelated goroutines; listeners always run synchronously on the mutating
// goroutine, outside the lock, so they may freely read the model.
type Map struct {
	mu        sync.RWMutex
	values    map[string]any
	listeners map[int]func(Event)
	nextID    int
}

// NewMap creates an observable model seeded with a copy of initial.
func NewMap(initial map[string]any) *Map {
	m := &Map{
		values:    make(map[string]any, len(initial)),
		listeners: make(map[int]func(Event)),
	}
	maps.Copy(m.values, initial)
	return m
}

// Get returns the value for a field and whether it exists.
func (m *Map) Get(field string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[field]
	return v, ok
}

// Len returns the number of fields.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Snapshot returns a plain copy of the current values, suitable for handing
// to code that must not alias the live model.
func (m *Map) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.values))
	maps.Copy(out, m.values)
	return out
}

// Set stores a value and notifies subscribers with EventAdd or EventUpdate
// depending on whether the field already existed.
func (m *Map) Set(field string, value any) {
	m.mu.Lock()
	_, existed := m.values[field]
	m.values[field] = value
	m.mu.Unlock()

	kind := EventAdd
	if existed {
		kind = EventUpdate
	}
	m.notify(Event{Kind: kind, Field: field})
}

// Delete removes a field. Deleting an absent field is a no-op and emits
// nothing.
func (m *Map) Delete(field string) {
	m.mu.Lock()
	_, existed := m.values[field]
	delete(m.values, field)
	m.mu.Unlock()

	if existed {
		m.notify(Event{Kind: EventDelete, Field: field})
	}
}

// Replace swaps the entire value set for a copy of values and emits a single
// EventReplace.
func (m *Map) Replace(values map[string]any) {
	next := make(map[string]any, len(values))
	maps.Copy(next, values)

	m.mu.Lock()
	m.values = next
	m.mu.Unlock()

	m.notify(Event{Kind: EventReplace})
}

// Subscribe registers a listener for subsequent mutations and returns its
// idempotent unsubscribe function.
func (m *Map) Subscribe(fn func(Event)) UnsubscribeFunc {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// notify runs listeners outside the lock so they can re-enter the model
// (Snapshot, Get) without deadlocking. Delivery order across listeners is
// unspecified.
func (m *Map) notify(ev Event) {
	m.mu.RLock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
