package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/hwpanel/menunav/internal/logging/events"
	"github.com/hwpanel/menunav/internal/menu"
)

const defaultTransitionDuration = 120 * time.Millisecond

// Bridge runs the navigation engine on its control goroutine and exposes its
// renderer callbacks as a channel of events for the Bubble Tea model to poll.
type Bridge struct {
	loop   *engine.Loop
	eng    *engine.Engine
	events chan engineEvent
}

type engineEvent any

type screenEvent struct {
	snapshot engine.Snapshot
}

type transitionEvent struct {
	transition engine.Transition
	started    bool
}

type applicationEvent struct {
	app    menu.Application
	opened bool
}

type noticeEvent struct {
	text string
}

// NewBridge starts the engine's control goroutine. The caller owns the
// returned bridge and must Stop it.
func NewBridge(cfg engine.Config) *Bridge {
	b := &Bridge{
		loop:   engine.NewLoop(),
		events: make(chan engineEvent, 256),
	}
	b.eng = engine.New(cfg, (*bridgeRenderer)(b), (*bridgeObserver)(b))
	b.eng.SetMarshal(b.loop.Post)
	b.eng.SetTransitionRunner(func(t engine.Transition, done func()) {
		d := t.Duration
		if d == 0 {
			d = defaultTransitionDuration
		}
		time.AfterFunc(d, done)
	})
	return b
}

// Events exposes the engine's outbound event stream.
func (b *Bridge) Events() <-chan engineEvent { return b.events }

// SetRoot installs or replaces the root menu.
func (b *Bridge) SetRoot(m menu.Menu) {
	b.loop.Post(func() { b.eng.SetRootMenu(m) })
}

// Press forwards a button event to the engine.
func (b *Bridge) Press(btn engine.Button) {
	b.loop.Post(func() { b.eng.Press(btn) })
}

// CurrentKeys returns the item keys of the visible menu level, in order.
func (b *Bridge) CurrentKeys() []string {
	var keys []string
	b.loop.Call(func() {
		top := b.eng.Current()
		if top == nil || !top.IsMenu() {
			return
		}
		for _, item := range top.Items() {
			keys = append(keys, menu.ItemKey(item))
		}
	})
	return keys
}

// JumpTo moves the highlight of the visible menu to the item with the key.
func (b *Bridge) JumpTo(key string) {
	b.loop.Post(func() { b.eng.JumpTo(key) })
}

// Stop releases every subscription and halts the control goroutine.
func (b *Bridge) Stop() {
	b.loop.Call(b.eng.Close)
	b.loop.Stop()
	b.loop.Wait()
}

// send delivers an event without ever blocking the control goroutine: under
// backlog the oldest event is dropped so the latest screen always lands.
func (b *Bridge) send(evt engineEvent) {
	for {
		select {
		case b.events <- evt:
			return
		default:
			select {
			case <-b.events:
			default:
			}
		}
	}
}

// bridgeRenderer adapts the engine's renderer callbacks onto the event
// channel. All methods run on the control goroutine.
type bridgeRenderer Bridge

func (r *bridgeRenderer) Screen(s engine.Snapshot) {
	(*Bridge)(r).send(screenEvent{snapshot: s})
}

func (r *bridgeRenderer) TransitionStarted(t engine.Transition) {
	(*Bridge)(r).send(transitionEvent{transition: t, started: true})
}

func (r *bridgeRenderer) TransitionFinished(t engine.Transition) {
	(*Bridge)(r).send(transitionEvent{transition: t})
}

func (r *bridgeRenderer) ApplicationOpened(app menu.Application) {
	(*Bridge)(r).send(applicationEvent{app: app, opened: true})
}

func (r *bridgeRenderer) ApplicationClosed(app menu.Application) {
	(*Bridge)(r).send(applicationEvent{app: app})
}

// bridgeObserver surfaces recovered failures as transient notices.
type bridgeObserver Bridge

func (o *bridgeObserver) FieldError(field string, err error) {
	events.Resolver.FieldError(field, err)
	(*Bridge)(o).send(noticeEvent{text: field + ": " + err.Error()})
}

func (o *bridgeObserver) Misuse(op string) {
	events.Stack.Misuse(op)
}

func (o *bridgeObserver) Violation(op string) {
	events.Stack.Violation(op)
	(*Bridge)(o).send(noticeEvent{text: op})
}

func waitForEngineEvent(b *Bridge) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-b.Events()
		if !ok {
			return engineDoneMsg{}
		}
		return engineEventMsg{event: evt}
	}
}

type engineEventMsg struct {
	event engineEvent
}

type engineDoneMsg struct{}

func (m *Model) handleEngineEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(engineEventMsg)
	if !ok {
		return nil
	}
	m.applyEngineEvent(eventMsg.event)
	if m.bridge != nil {
		return waitForEngineEvent(m.bridge)
	}
	return nil
}

func (m *Model) handleEngineDoneMsg(tea.Msg) tea.Cmd {
	m.bridge = nil
	return nil
}

func (m *Model) applyEngineEvent(evt engineEvent) {
	switch e := evt.(type) {
	case screenEvent:
		m.snapshot = e.snapshot
		m.haveSnapshot = true
	case transitionEvent:
		m.transitioning = e.started
	case applicationEvent:
		if e.opened {
			m.activeApp = e.app
		} else if m.activeApp == e.app {
			m.activeApp = nil
		}
	case noticeEvent:
		m.setNotice(e.text)
	}
}
