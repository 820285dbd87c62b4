package engine

import "testing"

func TestRegistryClearCancelsScopeOnly(t *testing.T) {
	r := &Registry{}
	cancelled := map[string]int{}
	attach := func(scope Scope, name string) *Subscription {
		sub := r.Track(scope)
		sub.attach(func() { cancelled[name]++ })
		return sub
	}
	attach(ScopeScreen, "screen")
	attach(ScopeMenu, "menu")
	item := attach(ScopeStackItem, "item")

	if n := r.Clear(ScopeMenu); n != 1 {
		t.Fatalf("expected 1 cancelled, got %d", n)
	}
	if cancelled["menu"] != 1 || cancelled["screen"] != 0 || cancelled["item"] != 0 {
		t.Fatalf("expected only the menu scope cancelled, got %v", cancelled)
	}
	if !item.Active() {
		t.Fatalf("expected stack-item subscription untouched")
	}
	if n := r.Clear(ScopeMenu); n != 0 {
		t.Fatalf("expected cleared scope to be empty, got %d", n)
	}
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	r := &Registry{}
	calls := 0
	sub := r.Track(ScopeScreen)
	sub.attach(func() { calls++ })
	sub.Cancel()
	sub.Cancel()
	if calls != 1 {
		t.Fatalf("expected one unsubscribe, got %d", calls)
	}
	if sub.Active() {
		t.Fatalf("expected inactive after cancel")
	}
}

func TestAttachAfterCancelUnsubscribesImmediately(t *testing.T) {
	r := &Registry{}
	sub := r.Track(ScopeScreen)
	sub.Cancel()
	calls := 0
	sub.attach(func() { calls++ })
	if calls != 1 {
		t.Fatalf("expected late attach to unsubscribe immediately, got %d", calls)
	}
}

func TestClearAllSpansEveryScope(t *testing.T) {
	r := &Registry{}
	for scope := Scope(0); scope < scopeCount; scope++ {
		r.Track(scope).attach(func() {})
		r.Track(scope).attach(func() {})
	}
	if n := r.ClearAll(); n != int(scopeCount)*2 {
		t.Fatalf("expected %d cancelled, got %d", int(scopeCount)*2, n)
	}
}

func TestRemoveReleasesOwnershipWithoutCancelling(t *testing.T) {
	parent := &Registry{}
	calls := 0
	sub := parent.Track(ScopeStackItem)
	sub.attach(func() { calls++ })
	parent.remove(ScopeStackItem, sub)

	if n := parent.ClearAll(); n != 0 {
		t.Fatalf("expected parent registry empty, got %d", n)
	}
	if calls != 0 || !sub.Active() {
		t.Fatalf("expected removed subscription still live")
	}
	sub.Cancel()
	if calls != 1 || sub.Active() {
		t.Fatalf("expected direct cancel to unsubscribe, calls=%d", calls)
	}
}
