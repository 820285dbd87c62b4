package engine

import (
	"sync"
	"testing"

	"github.com/hwpanel/menunav/internal/menu"
	"github.com/hwpanel/menunav/internal/reactive"
)

func TestLoopRunsJobsInOrder(t *testing.T) {
	l := NewLoop()
	defer func() {
		l.Stop()
		l.Wait()
	}()
	var got []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() {
			got = append(got, i)
			wg.Done()
		})
	}
	wg.Wait()
	for i, v := range got {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", got)
		}
	}
}

func TestLoopCallIsSynchronous(t *testing.T) {
	l := NewLoop()
	defer func() {
		l.Stop()
		l.Wait()
	}()
	value := 0
	l.Call(func() { value = 42 })
	if value != 42 {
		t.Fatalf("expected call to complete before returning, got %d", value)
	}
}

func TestLoopDropsPostsAfterStop(t *testing.T) {
	l := NewLoop()
	l.Stop()
	l.Wait()
	l.Post(func() { t.Fatalf("job ran after stop") })
	l.Call(func() { t.Fatalf("call ran after stop") })
}

// A delivery racing a scope clear must never apply after the clear: the
// active gate is checked on the control goroutine, the same place the clear
// runs, so the count observed at clear time is final.
func TestClearIsLinearizableWithDeliveries(t *testing.T) {
	l := NewLoop()
	defer func() {
		l.Stop()
		l.Wait()
	}()
	e := New(Config{}, nil, nil)
	e.SetMarshal(l.Post)

	items := reactive.NewState(textItems("a"))
	root := &menu.HeadlessMenu{MenuSpec: menu.MenuSpec{
		Title: menu.Static("root"),
		Items: menu.FromSource[[]menu.Item](items),
	}}
	l.Call(func() { e.SetRootMenu(root) })

	stop := make(chan struct{})
	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		n := 1
		for {
			select {
			case <-stop:
				return
			default:
			}
			n++
			keys := make([]string, n%5+1)
			for i := range keys {
				keys[i] = string(rune('a' + i))
			}
			items.Set(textItems(keys...))
		}
	}()

	var atClear int
	l.Call(func() {
		e.Close()
		atClear = len(e.Root().Items())
	})
	close(stop)
	writer.Wait()

	// Drain everything still queued, then verify no late delivery landed.
	var after int
	l.Call(func() { after = len(e.Root().Items()) })
	if after != atClear {
		t.Fatalf("delivery applied after clear: %d -> %d items", atClear, after)
	}
}
