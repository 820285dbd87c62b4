package engine

import (
	"fmt"
	"sync"

	"github.com/hwpanel/menunav/internal/logging/events"
	"github.com/hwpanel/menunav/internal/menu"
)

// subscribeMarshaled subscribes to src on behalf of sub. Deliveries arriving
// while the Subscribe call is still in progress are captured under a lock and
// coalesced into one synchronous apply on the control goroutine once
// Subscribe returns; every later delivery goes through the marshal hook and
// is gated on the subscription still being active. A source firing from
// another goroutine therefore never runs apply on its own goroutine.
func subscribeMarshaled[T any](e *Engine, sub *Subscription, src menu.Source[T], apply func(T)) {
	var (
		mu       sync.Mutex
		settling = true
		seeded   bool
		first    T
	)
	cancel := src.Subscribe(func(v T) {
		mu.Lock()
		if settling {
			first, seeded = v, true
			mu.Unlock()
			return
		}
		mu.Unlock()
		e.marshal(func() {
			if sub.Active() {
				apply(v)
			}
		})
	})
	mu.Lock()
	settling = false
	v, ok := first, seeded
	mu.Unlock()
	sub.attach(cancel)
	if ok && sub.Active() {
		apply(v)
	}
}

// bindField resolves a field into apply at the given scope. Static and
// computed fields resolve synchronously on the control goroutine; a
// subscribable field is subscribed once per scope-lifetime through
// subscribeMarshaled. apply is responsible for republishing the screen when
// it changes visible state.
func bindField[T any](e *Engine, it *StackItem, scope Scope, name string, f menu.Field[T], apply func(T)) {
	if src, ok := f.Source(); ok {
		sub := it.registry.Track(scope)
		subscribeMarshaled(e, sub, src, apply)
		events.Resolver.Field(name, scope.String())
		return
	}
	v, err := f.Eval()
	if err != nil {
		events.Resolver.FieldError(name, err)
		e.observer.FieldError(name, err)
		return
	}
	apply(v)
}

// renderTop re-establishes the subscriptions of the stack top after a top
// change. The outgoing item's screen and menu scopes are cleared; its
// stack-item scope survives backgrounding so its item list keeps tracking
// upstream changes.
func (e *Engine) renderTop(outgoing *StackItem) {
	if outgoing != nil && outgoing != e.top() {
		events.Resolver.ScopeCleared(ScopeScreen.String(), outgoing.registry.Clear(ScopeScreen))
		events.Resolver.ScopeCleared(ScopeMenu.String(), outgoing.registry.Clear(ScopeMenu))
	}
	top := e.top()
	if top == nil {
		return
	}
	e.suspendPublish(func() {
		wasResolving := e.resolving
		e.resolving = true
		top.registry.Clear(ScopeScreen)
		e.bindTitle(top)
		if top.IsMenu() {
			e.bindItems(top)
			e.rebindMenuScope(top)
		}
		e.resolving = wasResolving
	})
}

func (e *Engine) bindTitle(it *StackItem) {
	var field menu.Field[string]
	if it.app != nil {
		field = it.app.Title()
	} else {
		field = it.menu.Spec().Title
	}
	bindField(e, it, ScopeScreen, "title", field, func(v string) {
		it.title = v
		e.publish()
	})
}

// bindItems subscribes the item list at stack-item scope, once per stack
// item lifetime (or again after a menu replacement).
func (e *Engine) bindItems(it *StackItem) {
	if it.itemsBound {
		return
	}
	it.itemsBound = true
	bindField(e, it, ScopeStackItem, "items", it.menu.Spec().Items, func(items []menu.Item) {
		e.applyItems(it, items)
	})
}

// applyItems installs a freshly resolved item list: the highlighted item is
// carried by key, pagination is re-clamped, and, when the item is visible,
// the page-dependent bindings are refreshed.
func (e *Engine) applyItems(it *StackItem, items []menu.Item) {
	it.reconcileCursor(items)
	it.items = items
	pages := pageCountFor(it.menu, len(items))
	if it.pageIndex >= pages {
		it.pageIndex = pages - 1
	}
	if len(items) > 0 {
		it.pageIndex = pageOf(it.menu, it.cursor)
	} else {
		it.pageIndex = 0
	}
	events.Resolver.Items(len(items), it.pageIndex, pages)
	if e.top() == it && !e.resolving {
		e.rebindMenuScope(it)
	}
	e.publish()
}

// rebindMenuScope clears the menu scope and re-subscribes every
// page-dependent field: heading, sub-heading, placeholder, and the
// presentation fields of the items on the visible page.
func (e *Engine) rebindMenuScope(it *StackItem) {
	e.suspendPublish(func() {
		events.Resolver.ScopeCleared(ScopeMenu.String(), it.registry.Clear(ScopeMenu))
		it.cells = make(map[int]*itemCell)
		if hm, ok := it.menu.(*menu.HeadedMenu); ok {
			bindField(e, it, ScopeMenu, "heading", hm.Heading, func(v string) {
				it.heading = v
				e.publish()
			})
			bindField(e, it, ScopeMenu, "sub_heading", hm.SubHeading, func(v string) {
				it.subHeading = v
				e.publish()
			})
		}
		bindField(e, it, ScopeMenu, "placeholder", it.menu.Spec().Placeholder, func(v string) {
			it.placeholder = v
			e.publish()
		})
		start, end := e.visibleBounds(it)
		for i := start; i < end; i++ {
			e.bindItemCell(it, i)
		}
	})
}

// visibleBounds is the page's item range, widened by one on each side when
// the faded surroundings are rendered.
func (e *Engine) visibleBounds(it *StackItem) (int, int) {
	n := len(it.items)
	start, end := pageBounds(it.menu, it.pageIndex, n)
	if e.cfg.RenderSurroundings {
		if start > 0 {
			start--
		}
		if end < n {
			end++
		}
	}
	return start, end
}

func (e *Engine) bindItemCell(it *StackItem, index int) {
	spec := it.items[index].Spec()
	cell := &itemCell{}
	it.cells[index] = cell
	name := fmt.Sprintf("item[%d]", index)
	bindField(e, it, ScopeMenu, name+".label", spec.Label, func(v string) {
		cell.label = v
		e.publish()
	})
	bindField(e, it, ScopeMenu, name+".icon", spec.Icon, func(v string) {
		cell.icon = v
		e.publish()
	})
	bindField(e, it, ScopeMenu, name+".color", spec.Color, func(v string) {
		cell.color = v
		e.publish()
	})
	bindField(e, it, ScopeMenu, name+".background_color", spec.BackgroundColor, func(v string) {
		cell.background = v
		e.publish()
	})
	bindField(e, it, ScopeMenu, name+".is_short", spec.IsShort, func(v bool) {
		cell.isShort = v
		e.publish()
	})
	if spec.HasProgress {
		bindField(e, it, ScopeMenu, name+".progress", spec.Progress, func(v float64) {
			cell.progress = v
			cell.hasProgress = true
			e.publish()
		})
	}
}

// buildPage computes the effective page of the given menu item. An empty
// active page yields Empty=true so the renderer shows the placeholder
// instead of a blank page.
func (e *Engine) buildPage(it *StackItem) Page {
	n := len(it.items)
	page := Page{
		Index:       it.pageIndex,
		Count:       pageCountFor(it.menu, n),
		Placeholder: it.placeholder,
		Cursor:      -1,
	}
	if isHeaded(it.menu) && it.pageIndex == 0 {
		page.ShowHeading = true
		page.Heading = it.heading
		page.SubHeading = it.subHeading
	}
	start, end := pageBounds(it.menu, it.pageIndex, n)
	if start >= end {
		page.Empty = true
		return page
	}
	if e.cfg.RenderSurroundings && start > 0 {
		page.Items = append(page.Items, e.pageItemFor(it, start-1, true))
	}
	for i := start; i < end; i++ {
		row := e.pageItemFor(it, i, false)
		if i == it.cursor {
			row.Selected = true
			page.Cursor = len(page.Items)
		}
		page.Items = append(page.Items, row)
	}
	if e.cfg.RenderSurroundings && end < n {
		page.Items = append(page.Items, e.pageItemFor(it, end, true))
	}
	return page
}

func (e *Engine) pageItemFor(it *StackItem, index int, faded bool) PageItem {
	spec := it.items[index].Spec()
	row := PageItem{
		Key:     menu.ItemKey(it.items[index]),
		Opacity: spec.Opacity,
		Faded:   faded,
	}
	if row.Opacity == 0 {
		row.Opacity = 1
	}
	if faded {
		row.Opacity = fadedOpacity
	}
	if cell, ok := it.cells[index]; ok {
		row.Label = cell.label
		row.Icon = cell.icon
		row.Color = cell.color
		row.BackgroundColor = cell.background
		row.IsShort = cell.isShort
		row.Progress = cell.progress
		row.HasProgress = cell.hasProgress
	}
	return row
}
