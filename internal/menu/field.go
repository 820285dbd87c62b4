package menu

import "fmt"

// Source is the subscribable value protocol. Subscribe registers a callback
// that receives the current value immediately and every subsequent change,
// and returns a cancel function. Cancel is called exactly once by the
// consumer; after it returns, the callback must not be invoked again by the
// source itself, though in-flight deliveries may still be crossing the
// marshaling boundary and are dropped there.
type Source[T any] interface {
	Subscribe(fn func(T)) (cancel func())
}

type fieldKind uint8

const (
	fieldStatic fieldKind = iota
	fieldComputed
	fieldSource
)

// Field is a tagged variant for menu and item attributes: a literal value, a
// zero-argument function re-evaluated on each resolve, or a subscribable
// source pushing changes. The zero value is a static zero of T.
type Field[T any] struct {
	kind  fieldKind
	value T
	fn    func() T
	src   Source[T]
}

// Static wraps a literal value.
func Static[T any](v T) Field[T] {
	return Field[T]{kind: fieldStatic, value: v}
}

// Computed wraps a function evaluated on each resolve.
func Computed[T any](fn func() T) Field[T] {
	return Field[T]{kind: fieldComputed, fn: fn}
}

// FromSource wraps a subscribable source.
func FromSource[T any](src Source[T]) Field[T] {
	return Field[T]{kind: fieldSource, src: src}
}

// Source returns the underlying subscribable source, if any.
func (f Field[T]) Source() (Source[T], bool) {
	if f.kind == fieldSource {
		return f.src, true
	}
	return nil, false
}

// Eval resolves a static or computed field. A panic inside a computed
// function is recovered and returned as an error so a misbehaving field
// cannot destabilize navigation; callers keep the previous value.
func (f Field[T]) Eval() (v T, err error) {
	switch f.kind {
	case fieldComputed:
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("field function panicked: %v", r)
			}
		}()
		if f.fn == nil {
			return v, nil
		}
		return f.fn(), nil
	case fieldSource:
		return v, fmt.Errorf("cannot eval a subscribable field")
	default:
		return f.value, nil
	}
}

// MenuField is a menu-valued field; its subscribable form drives live
// replacement of an open (sub)menu.
type MenuField = Field[Menu]
