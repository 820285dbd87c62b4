package engine

import "testing"

func TestSequencerRunsFIFO(t *testing.T) {
	var ran []string
	var pending []func()
	seq := NewSequencer(func(tr Transition, done func()) {
		ran = append(ran, tr.Target)
		pending = append(pending, done)
	})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "t1"})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "t2"})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "t3"})
	if len(ran) != 1 || ran[0] != "t1" {
		t.Fatalf("expected only t1 started, got %v", ran)
	}
	if seq.Pending() != 2 {
		t.Fatalf("expected 2 queued, got %d", seq.Pending())
	}
	for len(pending) > 0 {
		done := pending[0]
		pending = pending[1:]
		done()
	}
	if len(ran) != 3 || ran[1] != "t2" || ran[2] != "t3" {
		t.Fatalf("expected FIFO order t1 t2 t3, got %v", ran)
	}
	if seq.Transitioning() {
		t.Fatalf("expected idle after drain")
	}
	if seq.Displayed() != "t3" {
		t.Fatalf("expected t3 displayed, got %q", seq.Displayed())
	}
}

func TestSequencerCoalescesRedundantTarget(t *testing.T) {
	var ran []string
	seq := NewSequencer(func(tr Transition, done func()) {
		ran = append(ran, tr.Target)
		done()
	})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "home"})
	if accepted := seq.Switch(Transition{Kind: TransitionSlide, Target: "home"}); accepted {
		t.Fatalf("expected idle request for the displayed target to coalesce")
	}
	if len(ran) != 1 {
		t.Fatalf("expected one run, got %v", ran)
	}
}

func TestSequencerCoalescesAgainstQueueTail(t *testing.T) {
	var pending []func()
	seq := NewSequencer(func(tr Transition, done func()) {
		pending = append(pending, done)
	})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "a"})
	seq.Switch(Transition{Kind: TransitionSlide, Target: "b"})
	if accepted := seq.Switch(Transition{Kind: TransitionSwap, Target: "b"}); accepted {
		t.Fatalf("expected duplicate of the queue tail to coalesce")
	}
	if seq.Pending() != 1 {
		t.Fatalf("expected 1 queued, got %d", seq.Pending())
	}
	// A repeat of the active target coalesces too while nothing is queued yet.
	seq2 := NewSequencer(func(tr Transition, done func()) {})
	seq2.Switch(Transition{Kind: TransitionSlide, Target: "x"})
	if accepted := seq2.Switch(Transition{Kind: TransitionSlide, Target: "x"}); accepted {
		t.Fatalf("expected repeat of the active target to coalesce")
	}
}

func TestSequencerDoneIsIdempotent(t *testing.T) {
	finishes := 0
	var savedDone func()
	seq := NewSequencer(func(tr Transition, done func()) {
		savedDone = done
	})
	seq.SetHooks(nil, func(Transition) { finishes++ })
	seq.Switch(Transition{Kind: TransitionSlide, Target: "once"})
	savedDone()
	savedDone()
	if finishes != 1 {
		t.Fatalf("expected a double done call to finish once, got %d", finishes)
	}
	if seq.Transitioning() {
		t.Fatalf("expected idle")
	}
}

func TestSequencerNilRunnerCompletesImmediately(t *testing.T) {
	seq := NewSequencer(nil)
	seq.Switch(Transition{Kind: TransitionNone, Target: "direct"})
	if seq.Transitioning() {
		t.Fatalf("expected immediate completion")
	}
	if seq.Displayed() != "direct" {
		t.Fatalf("expected target displayed, got %q", seq.Displayed())
	}
}
