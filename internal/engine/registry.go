package engine

// Scope identifies one of the three subscription-clearing lifetimes.
type Scope uint8

const (
	// ScopeScreen is cleared whenever the visible top of the stack changes.
	ScopeScreen Scope = iota
	// ScopeMenu is cleared on top changes and additionally on pagination.
	ScopeMenu
	// ScopeStackItem is cleared only when the owning stack item is destroyed.
	ScopeStackItem

	scopeCount
)

// String implements fmt.Stringer for trace payloads.
func (s Scope) String() string {
	switch s {
	case ScopeScreen:
		return "screen"
	case ScopeMenu:
		return "menu"
	case ScopeStackItem:
		return "stack-item"
	default:
		return "unknown"
	}
}

// Subscription is a single cancellable live binding. The active flag gates
// delivery: marshaled callbacks check it on the control goroutine before
// invoking, so a delivery in flight at cancel time is dropped rather than
// applied to a destroyed stack item.
type Subscription struct {
	cancel func()
	active bool
}

// Active reports whether deliveries may still be applied.
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

// Cancel deactivates the subscription and calls the source's unsubscribe
// exactly once. Idempotent.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	if s.cancel != nil {
		cancel := s.cancel
		s.cancel = nil
		cancel()
	}
}

func (s *Subscription) attach(cancel func()) {
	if !s.active {
		// Cancelled while the subscribe call was still in progress.
		if cancel != nil {
			cancel()
		}
		return
	}
	s.cancel = cancel
}

// Registry maps active subscriptions to their clearing scope. Each stack
// item owns one registry; all access happens on the engine's control
// goroutine, which is the synchronization mechanism here.
type Registry struct {
	scopes [scopeCount][]*Subscription
}

// Track registers a new active subscription under the given scope. The
// source's unsubscribe is attached afterwards via attach, so the gate exists
// before the source can deliver.
func (r *Registry) Track(scope Scope) *Subscription {
	sub := &Subscription{active: true}
	r.scopes[scope] = append(r.scopes[scope], sub)
	return sub
}

// remove drops the subscription from the given scope without cancelling it.
// Used when a binding created against a parent moves into the binding slot
// of a pushed child.
func (r *Registry) remove(scope Scope, sub *Subscription) {
	subs := r.scopes[scope]
	for i, candidate := range subs {
		if candidate == sub {
			r.scopes[scope] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Clear cancels every subscription registered under the scope and returns
// how many were cancelled. Clearing an empty scope is a no-op.
func (r *Registry) Clear(scope Scope) int {
	subs := r.scopes[scope]
	if len(subs) == 0 {
		return 0
	}
	r.scopes[scope] = nil
	for _, sub := range subs {
		sub.Cancel()
	}
	return len(subs)
}

// ClearAll cancels every subscription in every scope.
func (r *Registry) ClearAll() int {
	total := 0
	for scope := Scope(0); scope < scopeCount; scope++ {
		total += r.Clear(scope)
	}
	return total
}
