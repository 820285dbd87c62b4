// Package reactive provides a minimal settable value implementing the
// subscribable protocol consumed by the engine. It exists for demo content
// and tests; the engine itself only depends on the protocol.
package reactive

import "sync"

// State holds a value and notifies subscribers on every Set. Subscribe
// delivers the current value immediately. Safe for concurrent use; callbacks
// run on the goroutine calling Set (or Subscribe for the initial delivery),
// so consumers are expected to marshal them onto their own control thread.
type State[T any] struct {
	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// NewState creates a State with the given initial value.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and notifies all subscribers.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Update applies fn to the current value under the lock and notifies.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	v := s.value
	fns := make([]func(T), 0, len(s.subs))
	for _, f := range s.subs {
		fns = append(fns, f)
	}
	s.mu.Unlock()
	for _, f := range fns {
		f(v)
	}
}

// Subscribe implements the subscribable protocol. The callback receives the
// current value before Subscribe returns. The returned cancel is idempotent.
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	v := s.value
	s.mu.Unlock()
	fn(v)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
