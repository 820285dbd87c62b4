package engine

import (
	"time"

	"github.com/hwpanel/menunav/internal/logging/events"
)

// TransitionKind identifies the visual effect of a screen switch.
type TransitionKind uint8

const (
	TransitionNone TransitionKind = iota
	TransitionSlide
	TransitionSwap
	TransitionRiseIn
)

// String implements fmt.Stringer.
func (k TransitionKind) String() string {
	switch k {
	case TransitionNone:
		return "none"
	case TransitionSlide:
		return "slide"
	case TransitionSwap:
		return "swap"
	case TransitionRiseIn:
		return "rise-in"
	default:
		return "unknown"
	}
}

// Direction is the slide direction of a transition.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Transition describes one requested visual switch. Target identifies the
// screen being switched to; requests whose target is already displayed are
// coalesced away instead of queued.
type Transition struct {
	Kind      TransitionKind
	Direction Direction
	Target    string
	// Duration is a hint for the runner; zero means the runner's default.
	Duration time.Duration
}

// Runner executes the visual part of a transition and calls done exactly
// once when it completes. A nil runner completes immediately.
type Runner func(t Transition, done func())

type seqState uint8

const (
	seqIdle seqState = iota
	seqTransitioning
)

// Sequencer serializes visual transitions: exactly one runs at a time,
// additional requests queue in FIFO order, and a request whose net effect is
// a no-op is dropped. All methods run on the engine's control goroutine.
type Sequencer struct {
	state     seqState
	queue     []Transition
	active    Transition
	displayed string

	run      Runner
	onStart  func(Transition)
	onFinish func(Transition)
}

// NewSequencer creates a sequencer with the given runner.
func NewSequencer(run Runner) *Sequencer {
	return &Sequencer{run: run}
}

// SetRunner replaces the transition runner.
func (s *Sequencer) SetRunner(run Runner) { s.run = run }

// SetHooks installs the start/finish notification hooks.
func (s *Sequencer) SetHooks(onStart, onFinish func(Transition)) {
	s.onStart = onStart
	s.onFinish = onFinish
}

// Transitioning reports whether a transition is in flight.
func (s *Sequencer) Transitioning() bool { return s.state == seqTransitioning }

// Displayed returns the target of the last completed transition.
func (s *Sequencer) Displayed() string { return s.displayed }

// Pending returns how many transitions are queued behind the active one.
func (s *Sequencer) Pending() int { return len(s.queue) }

// Switch requests a transition. Returns false when the request was coalesced
// away as a no-op.
func (s *Sequencer) Switch(t Transition) bool {
	if s.state == seqIdle {
		if t.Target == s.displayed && s.displayed != "" {
			events.Transition.Coalesce(t.Kind.String(), t.Target)
			return false
		}
		s.begin(t)
		return true
	}
	last := s.active
	if n := len(s.queue); n > 0 {
		last = s.queue[n-1]
	}
	if last.Target == t.Target {
		events.Transition.Coalesce(t.Kind.String(), t.Target)
		return false
	}
	s.queue = append(s.queue, t)
	events.Transition.Queue(t.Kind.String(), t.Target, len(s.queue))
	return true
}

func (s *Sequencer) begin(t Transition) {
	s.state = seqTransitioning
	s.active = t
	events.Transition.Start(t.Kind.String(), t.Target)
	if s.onStart != nil {
		s.onStart(t)
	}
	called := false
	done := func() {
		if called {
			return
		}
		called = true
		s.finish(t)
	}
	if s.run == nil {
		done()
		return
	}
	s.run(t, done)
}

func (s *Sequencer) finish(t Transition) {
	s.displayed = t.Target
	events.Transition.Finish(t.Kind.String(), t.Target)
	if s.onFinish != nil {
		s.onFinish(t)
	}
	if len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.begin(next)
		return
	}
	s.state = seqIdle
	s.active = Transition{}
}
