package events

import "github.com/hwpanel/menunav/internal/logging"

type StackTracer struct{}

type ResolverTracer struct{}

type TransitionTracer struct{}

type AppTracer struct{}

var (
	Stack      = StackTracer{}
	Resolver   = ResolverTracer{}
	Transition = TransitionTracer{}
	App        = AppTracer{}
)

func (StackTracer) Push(kind, title string, depth int) {
	logging.Trace("stack.push", map[string]interface{}{
		"kind":  kind,
		"title": title,
		"depth": depth,
	})
}

func (StackTracer) Pop(title string, depth int) {
	logging.Trace("stack.pop", map[string]interface{}{"title": title, "depth": depth})
}

func (StackTracer) Replace(title string, index int) {
	logging.Trace("stack.replace", map[string]interface{}{"title": title, "index": index})
}

func (StackTracer) Home(fromDepth int) {
	logging.Trace("stack.home", map[string]interface{}{"from_depth": fromDepth})
}

func (StackTracer) Misuse(op string) {
	logging.Trace("stack.misuse", map[string]interface{}{"op": op})
}

func (StackTracer) Violation(op string) {
	logging.Trace("stack.violation", map[string]interface{}{"op": op})
}

func (ResolverTracer) Field(name string, scope string) {
	logging.Trace("resolver.field", map[string]interface{}{"field": name, "scope": scope})
}

func (ResolverTracer) FieldError(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("resolver.field-error", map[string]interface{}{
		"field": name,
		"error": err.Error(),
	})
}

func (ResolverTracer) Items(count, page, pages int) {
	logging.Trace("resolver.items", map[string]interface{}{
		"count": count,
		"page":  page,
		"pages": pages,
	})
}

func (ResolverTracer) ScopeCleared(scope string, count int) {
	if count == 0 {
		return
	}
	logging.Trace("resolver.scope-cleared", map[string]interface{}{
		"scope": scope,
		"count": count,
	})
}

func (TransitionTracer) Queue(kind, target string, depth int) {
	logging.Trace("transition.queue", map[string]interface{}{
		"kind":   kind,
		"target": target,
		"depth":  depth,
	})
}

func (TransitionTracer) Start(kind, target string) {
	logging.Trace("transition.start", map[string]interface{}{"kind": kind, "target": target})
}

func (TransitionTracer) Finish(kind, target string) {
	logging.Trace("transition.finish", map[string]interface{}{"kind": kind, "target": target})
}

func (TransitionTracer) Coalesce(kind, target string) {
	logging.Trace("transition.coalesce", map[string]interface{}{"kind": kind, "target": target})
}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Open(title string) {
	logging.Trace("application.open", map[string]interface{}{"title": title})
}

func (AppTracer) Close(title string) {
	logging.Trace("application.close", map[string]interface{}{"title": title})
}
