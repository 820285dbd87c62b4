package engine

import (
	"context"
	"sync"
)

// Loop owns the engine's control goroutine. Every engine call and every
// subscription delivery is posted here, giving the single logical timeline
// the engine requires. Wire it up with engine.SetMarshal(loop.Post).
type Loop struct {
	jobs   chan func()
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoop starts the control goroutine.
func NewLoop() *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		jobs:   make(chan func(), 64),
		ctx:    ctx,
		cancel: cancel,
	}
	l.wg.Add(1)
	go l.run()
	return l
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.ctx.Done():
			return
		case fn := <-l.jobs:
			fn()
		}
	}
}

// Post schedules fn on the control goroutine. Posts after Stop are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.ctx.Done():
	case l.jobs <- fn:
	}
}

// Call runs fn on the control goroutine and waits for it to finish. Used
// for synchronous reads such as inspecting the current stack top.
func (l *Loop) Call(fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
	case <-l.ctx.Done():
	}
}

// Stop cancels the loop. Jobs already dequeued finish; queued jobs are
// dropped. Use Wait for a clean drain in tests.
func (l *Loop) Stop() {
	l.cancel()
}

// Wait blocks until the control goroutine has exited. Call after Stop.
func (l *Loop) Wait() {
	l.wg.Wait()
}
