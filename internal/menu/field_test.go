package menu

import (
	"strings"
	"testing"
)

func TestStaticEval(t *testing.T) {
	f := Static("hello")
	v, err := f.Eval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "hello" {
		t.Fatalf("expected hello, got %q", v)
	}
	if _, ok := f.Source(); ok {
		t.Fatalf("static field must not expose a source")
	}
}

func TestZeroFieldEvalsToZero(t *testing.T) {
	var f Field[int]
	v, err := f.Eval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0 {
		t.Fatalf("expected zero, got %d", v)
	}
}

func TestComputedEvalsOnEachResolve(t *testing.T) {
	n := 0
	f := Computed(func() int { n++; return n })
	for want := 1; want <= 3; want++ {
		v, err := f.Eval()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != want {
			t.Fatalf("expected %d, got %d", want, v)
		}
	}
}

func TestComputedPanicBecomesError(t *testing.T) {
	f := Computed(func() string { panic("bad field") })
	_, err := f.Eval()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "bad field") {
		t.Fatalf("expected panic value in error, got %v", err)
	}
}

func TestNilComputedEvalsToZero(t *testing.T) {
	f := Computed[string](nil)
	v, err := f.Eval()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "" {
		t.Fatalf("expected zero value, got %q", v)
	}
}

type staticSource[T any] struct{ v T }

func (s staticSource[T]) Subscribe(fn func(T)) func() {
	fn(s.v)
	return func() {}
}

func TestFromSourceExposesSourceAndRefusesEval(t *testing.T) {
	f := FromSource[int](staticSource[int]{v: 7})
	src, ok := f.Source()
	if !ok {
		t.Fatalf("expected a source")
	}
	got := 0
	cancel := src.Subscribe(func(v int) { got = v })
	defer cancel()
	if got != 7 {
		t.Fatalf("expected immediate delivery of 7, got %d", got)
	}
	if _, err := f.Eval(); err == nil {
		t.Fatalf("expected eval of a subscribable field to fail")
	}
}

func TestItemKeyFallsBackToStaticLabel(t *testing.T) {
	withKey := &ActionItem{ItemSpec: ItemSpec{Key: "explicit", Label: Static("Label")}}
	if got := ItemKey(withKey); got != "explicit" {
		t.Fatalf("expected explicit key, got %q", got)
	}
	labelOnly := &ActionItem{ItemSpec: ItemSpec{Label: Static("Settings")}}
	if got := ItemKey(labelOnly); got != "Settings" {
		t.Fatalf("expected label fallback, got %q", got)
	}
	computed := &ActionItem{ItemSpec: ItemSpec{Label: Computed(func() string { return "x" })}}
	if got := ItemKey(computed); got != "x" {
		t.Fatalf("expected computed label fallback, got %q", got)
	}
	live := &ActionItem{ItemSpec: ItemSpec{Label: FromSource[string](staticSource[string]{v: "x"})}}
	if got := ItemKey(live); got != "" {
		t.Fatalf("expected no key for a subscribable label, got %q", got)
	}
}
