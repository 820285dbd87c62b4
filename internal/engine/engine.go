// Package engine implements the navigation stack, the three-tier
// subscription lifecycle, selection persistence, menu resolution with
// pagination, and the transition sequencer for a button-driven menu
// interface. All engine state is confined to a single control goroutine;
// external reactive sources are marshaled onto it before any callback runs.
package engine

import (
	"fmt"
	"time"

	"github.com/hwpanel/menunav/internal/logging/events"
	"github.com/hwpanel/menunav/internal/menu"
)

// Button is a physical button event, pre-mapped by the input layer.
type Button uint8

const (
	ButtonSelect Button = iota
	ButtonBack
	ButtonScrollUp
	ButtonScrollDown
	ButtonHome
)

// String implements fmt.Stringer.
func (b Button) String() string {
	switch b {
	case ButtonSelect:
		return "select"
	case ButtonBack:
		return "back"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonHome:
		return "home"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view of the visible screen handed to the
// renderer on every screen-relevant change.
type Snapshot struct {
	Depth         int
	Title         string
	IsApplication bool
	Application   menu.Application
	PageIndex     int
	Pages         int
	Page          Page
	ShowScrollbar bool
}

// Renderer is the widget/drawing collaborator. It receives the resolved
// screen, transition boundaries in request order, and application lifecycle
// events. Implementations run on the engine's control goroutine and must
// not call back into the engine synchronously.
type Renderer interface {
	Screen(Snapshot)
	TransitionStarted(Transition)
	TransitionFinished(Transition)
	ApplicationOpened(menu.Application)
	ApplicationClosed(menu.Application)
}

// Observer receives reports about recovered failures and invalid
// operations. It is telemetry only, not a control interface.
type Observer interface {
	FieldError(field string, err error)
	Misuse(op string)
	Violation(op string)
}

// Config carries engine options.
type Config struct {
	// RenderSurroundings adds faded previous/next rows around the page.
	RenderSurroundings bool
}

// Engine owns the navigation stack and drives the renderer.
type Engine struct {
	cfg      Config
	renderer Renderer
	observer Observer
	marshal  func(func())
	seq      *Sequencer

	stack  []*StackItem
	nextID uint64

	suspended bool
	dirty     bool
	resolving bool
}

// New creates an engine. A nil renderer or observer falls back to no-op and
// log-only implementations.
func New(cfg Config, renderer Renderer, observer Observer) *Engine {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	if observer == nil {
		observer = logObserver{}
	}
	e := &Engine{
		cfg:      cfg,
		renderer: renderer,
		observer: observer,
		marshal:  func(fn func()) { fn() },
	}
	e.seq = NewSequencer(nil)
	e.seq.SetHooks(renderer.TransitionStarted, renderer.TransitionFinished)
	return e
}

// SetMarshal installs the function that serializes external deliveries onto
// the control goroutine. The default runs them inline, which is only valid
// when the caller itself is single-threaded.
func (e *Engine) SetMarshal(fn func(func())) {
	if fn != nil {
		e.marshal = fn
	}
}

// SetTransitionRunner installs the runner executing the visual part of each
// transition. Its done callback is marshaled, so runners may complete from
// timers or animation goroutines.
func (e *Engine) SetTransitionRunner(run Runner) {
	if run == nil {
		e.seq.SetRunner(nil)
		return
	}
	e.seq.SetRunner(func(t Transition, done func()) {
		run(t, func() { e.marshal(done) })
	})
}

// Current returns the top stack item. Never nil once a root menu is set.
func (e *Engine) Current() *StackItem { return e.top() }

// Depth returns the stack depth.
func (e *Engine) Depth() int { return len(e.stack) }

// Root returns the bottom stack item.
func (e *Engine) Root() *StackItem {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[0]
}

// Transitioning reports whether a visual transition is in flight.
func (e *Engine) Transitioning() bool { return e.seq.Transitioning() }

// SetRootMenu installs or replaces the root menu. The first call pushes the
// root without a transition; later calls perform a deep, selection-
// preserving replacement.
func (e *Engine) SetRootMenu(m menu.Menu) {
	if m == nil {
		return
	}
	if len(e.stack) == 0 {
		e.pushMenu(m, nil, "", Transition{Kind: TransitionNone})
		return
	}
	e.replaceMenu(e.stack[0], m)
}

// ReplaceTop swaps the top of the stack for the given menu without
// extending history. A menu top is replaced in place so the screen never
// flashes through a shorter stack; an application top is removed and the
// menu pushed in the same step.
func (e *Engine) ReplaceTop(m menu.Menu) {
	if m == nil {
		return
	}
	top := e.top()
	if top == nil {
		e.SetRootMenu(m)
		return
	}
	if top.IsMenu() {
		e.replaceMenu(top, m)
		return
	}
	parent := top.parent
	e.stack = e.stack[:len(e.stack)-1]
	e.destroyItem(top)
	events.Stack.Replace(top.title, len(e.stack))
	e.pushMenu(m, parent, "", Transition{Kind: TransitionNone})
}

// Press dispatches a pre-mapped physical button event.
func (e *Engine) Press(b Button) {
	switch b {
	case ButtonSelect:
		e.Select()
	case ButtonBack:
		e.Back()
	case ButtonScrollUp:
		e.ScrollUp()
	case ButtonScrollDown:
		e.ScrollDown()
	case ButtonHome:
		e.Home()
	}
}

// Select activates the highlighted item of the visible menu. Ignored while
// a transition is in flight so a rapid double-trigger cannot invoke an
// action twice for one user selection.
func (e *Engine) Select() {
	top := e.top()
	if top == nil || top.app != nil {
		return
	}
	if e.seq.Transitioning() {
		return
	}
	if top.cursor < 0 || top.cursor >= len(top.items) {
		return
	}
	switch item := top.items[top.cursor].(type) {
	case *menu.ActionItem:
		e.selectAction(item, top)
	case *menu.SubMenuItem:
		e.openMenu(item.SubMenu, menu.ItemKey(item), top)
	case *menu.ApplicationItem:
		e.selectApplication(item, top)
	}
}

// Back pops the top of the stack. An application gets the chance to consume
// the event first. Popping the root is a reported no-op.
func (e *Engine) Back() {
	top := e.top()
	if top == nil {
		return
	}
	if top.app != nil && top.app.GoBack() {
		e.publish()
		return
	}
	e.pop()
}

// ScrollUp moves the highlight up, wrapping at the top.
func (e *Engine) ScrollUp() { e.scroll(-1) }

// ScrollDown moves the highlight down, wrapping at the bottom.
func (e *Engine) ScrollDown() { e.scroll(1) }

// Home truncates the stack to the root. The root's selection is cleared
// before truncation; doing it the other way around leaves a transient
// corrupted highlight. Already at root is a reported no-op.
func (e *Engine) Home() {
	if len(e.stack) <= 1 {
		events.Stack.Misuse("home")
		e.observer.Misuse("home")
		return
	}
	events.Stack.Home(len(e.stack))
	root := e.stack[0]
	outgoing := e.top()
	root.selection = nil
	root.cursor = 0
	root.pageIndex = 0
	removed := e.stack[1:]
	e.stack = e.stack[:1]
	for i := len(removed) - 1; i >= 0; i-- {
		e.destroyItem(removed[i])
	}
	e.afterTopChange(outgoing, Transition{Kind: TransitionRiseIn})
}

// CloseApplication removes the given application, and everything opened on
// top of it, from the stack. Removing a non-top item while a transition is
// in flight indicates a sequencing bug in the caller and is rejected.
func (e *Engine) CloseApplication(app menu.Application) {
	if app == nil {
		return
	}
	var doomed []*StackItem
	for _, it := range e.stack {
		if it.hasInLineage(app) {
			doomed = append(doomed, it)
		}
	}
	if len(doomed) == 0 {
		return
	}
	top := e.top()
	if e.seq.Transitioning() {
		for _, it := range doomed {
			if it != top {
				events.Stack.Violation("close-application")
				e.observer.Violation("close-application: destroying a non-top stack item during a transition")
				return
			}
		}
	}
	topDoomed := false
	for _, it := range doomed {
		if it == top {
			topDoomed = true
			continue
		}
		e.removeFromStack(it)
		e.destroyItem(it)
	}
	if topDoomed {
		e.pop()
	} else {
		e.publish()
	}
}

// Close releases every subscription held by the stack.
func (e *Engine) Close() {
	for i := len(e.stack) - 1; i >= 0; i-- {
		it := e.stack[i]
		if it.binding != nil {
			it.binding.Cancel()
			it.binding = nil
		}
		it.registry.ClearAll()
	}
}

func (e *Engine) top() *StackItem {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

func (e *Engine) contains(it *StackItem) bool {
	for _, candidate := range e.stack {
		if candidate == it {
			return true
		}
	}
	return false
}

func (e *Engine) removeFromStack(it *StackItem) {
	for i, candidate := range e.stack {
		if candidate == it {
			e.stack = append(e.stack[:i:i], e.stack[i+1:]...)
			return
		}
	}
}

func (e *Engine) pushMenu(m menu.Menu, parent *StackItem, key string, t Transition) *StackItem {
	it := &StackItem{id: e.nextID, menu: m, parent: parent}
	e.nextID++
	if parent != nil && parent.IsMenu() {
		parent.selection = &Selection{Key: key, Child: it}
	}
	outgoing := e.top()
	e.stack = append(e.stack, it)
	events.Stack.Push("menu", it.title, len(e.stack))
	e.afterTopChange(outgoing, t)
	return it
}

func (e *Engine) pushApplication(app menu.Application, parent *StackItem) *StackItem {
	it := &StackItem{id: e.nextID, app: app, parent: parent}
	e.nextID++
	outgoing := e.top()
	e.stack = append(e.stack, it)
	events.Stack.Push("application", it.title, len(e.stack))
	if lc, ok := app.(menu.Lifecycle); ok {
		lc.OnOpen()
	}
	e.renderer.ApplicationOpened(app)
	events.App.Open(it.title)
	e.afterTopChange(outgoing, Transition{
		Kind:      TransitionSwap,
		Direction: DirectionLeft,
		Duration:  200 * time.Millisecond,
	})
	return it
}

func (e *Engine) pop() {
	if len(e.stack) <= 1 {
		events.Stack.Misuse("pop")
		e.observer.Misuse("pop")
		return
	}
	popping := e.top()
	e.stack = e.stack[:len(e.stack)-1]
	if popping.parent != nil && popping.parent.IsMenu() {
		popping.parent.selection = nil
	}
	e.destroyItem(popping)
	events.Stack.Pop(popping.title, len(e.stack))
	t := Transition{Kind: TransitionSlide, Direction: DirectionRight}
	if popping.app != nil || e.top().app != nil {
		t.Kind = TransitionSwap
	}
	e.afterTopChange(popping, t)
}

// destroyItem releases the item's live binding and all three scopes, then
// dispatches the application close lifecycle. Must only be called once the
// item left the stack.
func (e *Engine) destroyItem(it *StackItem) {
	if it.binding != nil {
		it.binding.Cancel()
		it.binding = nil
	}
	it.registry.ClearAll()
	it.selection = nil
	if it.app != nil {
		if lc, ok := it.app.(menu.Lifecycle); ok {
			lc.OnClose()
		}
		e.renderer.ApplicationClosed(it.app)
		events.App.Close(it.title)
	}
}

// afterTopChange re-resolves the new top, schedules the visual switch, and
// notifies the renderer of the resolved screen.
func (e *Engine) afterTopChange(outgoing *StackItem, t Transition) {
	e.renderTop(outgoing)
	top := e.top()
	if top == nil {
		return
	}
	t.Target = e.screenTarget(top)
	e.seq.Switch(t)
	e.publish()
}

func (e *Engine) scroll(delta int) {
	top := e.top()
	if top == nil {
		return
	}
	if top.app != nil {
		if delta < 0 {
			top.app.GoUp()
		} else {
			top.app.GoDown()
		}
		e.publish()
		return
	}
	n := len(top.items)
	if n == 0 {
		return
	}
	cursor := top.cursor + delta
	if cursor < 0 {
		cursor = n - 1
	}
	if cursor >= n {
		cursor = 0
	}
	if cursor == top.cursor {
		return
	}
	top.cursor = cursor
	oldPage := top.pageIndex
	top.pageIndex = pageOf(top.menu, cursor)
	if top.pageIndex != oldPage {
		e.rebindMenuScope(top)
		direction := DirectionDown
		if delta > 0 {
			direction = DirectionUp
		}
		e.seq.Switch(Transition{
			Kind:      TransitionSlide,
			Direction: direction,
			Target:    e.screenTarget(top),
		})
	}
	e.publish()
}

// JumpTo moves the highlight of the visible menu to the item with the given
// key. Unknown keys are ignored.
func (e *Engine) JumpTo(key string) {
	top := e.top()
	if top == nil || top.app != nil || key == "" {
		return
	}
	index := indexOfKey(top.items, key)
	if index == -1 || index == top.cursor {
		return
	}
	direction := DirectionUp
	if index < top.cursor {
		direction = DirectionDown
	}
	top.cursor = index
	oldPage := top.pageIndex
	top.pageIndex = pageOf(top.menu, index)
	if top.pageIndex != oldPage {
		e.rebindMenuScope(top)
		e.seq.Switch(Transition{
			Kind:      TransitionSlide,
			Direction: direction,
			Target:    e.screenTarget(top),
		})
	}
	e.publish()
}

func (e *Engine) selectAction(item *menu.ActionItem, parent *StackItem) {
	if item.Action == nil {
		return
	}
	result, err := callAction(item.Action)
	if err != nil {
		events.Resolver.FieldError("action", err)
		e.observer.FieldError("action", err)
		return
	}
	switch r := result.(type) {
	case nil:
	case menu.MenuField:
		e.openMenu(r, menu.ItemKey(item), parent)
	case menu.Menu:
		e.openMenu(menu.Static(r), menu.ItemKey(item), parent)
	case menu.Application:
		e.pushApplication(r, parent)
	case func() menu.Application:
		e.pushApplication(r(), parent)
	default:
		err := fmt.Errorf("unsupported action result %T", r)
		events.Resolver.FieldError("action", err)
		e.observer.FieldError("action", err)
	}
}

func callAction(fn func() any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action panicked: %v", r)
		}
	}()
	return fn(), nil
}

// selectApplication opens the item's application. A subscribable application
// field is subscribed once per open: the binding is owned by the pushed
// application's stack item, so closing the application cancels it and a
// later source update opens nothing. While the binding is live a delivery of
// a different application swaps the open one out.
func (e *Engine) selectApplication(item *menu.ApplicationItem, parent *StackItem) {
	if src, ok := item.Application.Source(); ok {
		if parent.appBindings[item].Active() {
			return
		}
		owner := parent
		sub := owner.registry.Track(ScopeStackItem)
		if owner.appBindings == nil {
			owner.appBindings = make(map[*menu.ApplicationItem]*Subscription)
		}
		owner.appBindings[item] = sub
		var target *StackItem
		deliver := func(app menu.Application) {
			if target != nil {
				if app == target.app {
					return
				}
				prev := target
				target = nil
				prev.binding = nil
				e.CloseApplication(prev.app)
				if app == nil {
					sub.Cancel()
					return
				}
			}
			if app == nil {
				return
			}
			target = e.pushApplication(app, parent)
			owner.registry.remove(ScopeStackItem, sub)
			target.binding = sub
		}
		subscribeMarshaled(e, sub, src, deliver)
		return
	}
	app, err := item.Application.Eval()
	if err != nil {
		events.Resolver.FieldError("application", err)
		e.observer.FieldError("application", err)
		return
	}
	if app != nil {
		e.pushApplication(app, parent)
	}
}

// openMenu opens a menu-valued field as a submenu of parent. A subscribable
// menu keeps the opened level live: later deliveries replace it in place,
// preserving the selection chain beneath it. Until the first delivery the
// binding sits in the parent's stack-item scope; once pushed it moves to the
// child's binding slot, outside the registries, so the scope clear performed
// by each in-place replacement cannot cancel it. Popping the child cancels
// it, and a later re-selection starts a fresh scope-lifetime.
func (e *Engine) openMenu(f menu.MenuField, key string, parent *StackItem) {
	if src, ok := f.Source(); ok {
		var target *StackItem
		owner := parent
		sub := owner.registry.Track(ScopeStackItem)
		deliver := func(m menu.Menu) {
			if target != nil {
				if m != nil {
					e.replaceMenu(target, m)
				}
				return
			}
			if m == nil {
				return
			}
			target = e.pushMenu(m, parent, key, Transition{Kind: TransitionSlide, Direction: DirectionLeft})
			owner.registry.remove(ScopeStackItem, sub)
			target.binding = sub
		}
		subscribeMarshaled(e, sub, src, deliver)
		return
	}
	m, err := f.Eval()
	if err != nil {
		events.Resolver.FieldError("sub_menu", err)
		e.observer.FieldError("sub_menu", err)
		return
	}
	if m != nil {
		e.pushMenu(m, parent, key, Transition{Kind: TransitionSlide, Direction: DirectionLeft})
	}
}

// replaceMenu swaps the menu wrapped by a live stack item, keeping its page
// index and carrying its selection chain: when the replacement contains a
// submenu item with the matching key, the child level is replaced
// recursively instead of being collapsed.
func (e *Engine) replaceMenu(it *StackItem, m menu.Menu) {
	if !e.contains(it) {
		events.Stack.Violation("replace-menu")
		e.observer.Violation("replace-menu: stack item not on stack")
		return
	}
	prevKey := ""
	if it.selection != nil {
		prevKey = it.selection.Key
	}
	it.menu = m
	events.Resolver.ScopeCleared(ScopeStackItem.String(), it.registry.Clear(ScopeStackItem))
	it.itemsBound = false
	wasResolving := e.resolving
	e.resolving = true
	e.suspendPublish(func() {
		e.bindItems(it)
	})
	e.resolving = wasResolving
	if it.selection != nil {
		it.selection = e.reconcileSelection(it, prevKey)
	}
	events.Stack.Replace(it.title, e.indexOf(it))
	if e.top() == it {
		e.renderTop(nil)
		e.seq.Switch(Transition{Kind: TransitionNone, Target: e.screenTarget(it)})
		e.publish()
	}
}

// reconcileSelection re-anchors an open child after its parent menu was
// replaced. The first submenu item matching the selection key wins; without
// a literal replacement menu the selection is dropped.
func (e *Engine) reconcileSelection(it *StackItem, key string) *Selection {
	sub := findSubMenuByKey(it.items, key)
	if sub == nil {
		return nil
	}
	if _, live := sub.SubMenu.Source(); live {
		// The child owns its own live binding; leave the chain alone.
		return it.selection
	}
	replacement, err := sub.SubMenu.Eval()
	if err != nil {
		events.Resolver.FieldError("sub_menu", err)
		e.observer.FieldError("sub_menu", err)
		return nil
	}
	if replacement == nil {
		return nil
	}
	child := it.selection.Child
	e.replaceMenu(child, replacement)
	return &Selection{Key: key, Child: child}
}

func (e *Engine) indexOf(it *StackItem) int {
	for i, candidate := range e.stack {
		if candidate == it {
			return i
		}
	}
	return -1
}

func (e *Engine) screenTarget(it *StackItem) string {
	if it.app != nil {
		return fmt.Sprintf("app:%d", it.id)
	}
	return fmt.Sprintf("menu:%d:page:%d", it.id, it.pageIndex)
}

// publish pushes the resolved screen to the renderer unless publication is
// suspended by an in-progress batch of bindings.
func (e *Engine) publish() {
	if e.suspended {
		e.dirty = true
		return
	}
	top := e.top()
	if top == nil {
		return
	}
	e.renderer.Screen(e.snapshot(top))
}

func (e *Engine) suspendPublish(fn func()) {
	prev := e.suspended
	e.suspended = true
	fn()
	e.suspended = prev
}

func (e *Engine) snapshot(top *StackItem) Snapshot {
	snap := Snapshot{
		Depth: len(e.stack),
		Title: top.title,
	}
	if top.app != nil {
		snap.IsApplication = true
		snap.Application = top.app
		return snap
	}
	snap.Pages = pageCountFor(top.menu, len(top.items))
	snap.PageIndex = top.pageIndex
	snap.Page = e.buildPage(top)
	snap.ShowScrollbar = snap.Pages > 1
	return snap
}

type nopRenderer struct{}

func (nopRenderer) Screen(Snapshot)                    {}
func (nopRenderer) TransitionStarted(Transition)       {}
func (nopRenderer) TransitionFinished(Transition)      {}
func (nopRenderer) ApplicationOpened(menu.Application) {}
func (nopRenderer) ApplicationClosed(menu.Application) {}

type logObserver struct{}

func (logObserver) FieldError(field string, err error) { events.Resolver.FieldError(field, err) }
func (logObserver) Misuse(op string)                   { events.Stack.Misuse(op) }
func (logObserver) Violation(op string)                { events.Stack.Violation(op) }
