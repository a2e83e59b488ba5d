package hooks

import (
	"reflect"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

func reflectDeepEqual(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Kind() == rb.Kind() && ra.Pointer() == rb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

// UseState returns the call site's current value and a setter. The
// setter stages the value for the next render and schedules it; two
// setter calls in the same task coalesce into one render observing the
// last value. Setter calls after unmount are silent no-ops.
func UseState[T any](ctx *Context, initial T) (T, func(T)) {
	r := ctx.next(KindState)
	s := ctx.store
	if !r.init {
		r.value = initial
		r.init = true
	}
	if r.aux == nil {
		r.aux = func(v any) {
			if s.closed {
				return
			}
			r.staged = v
			r.hasStaged = true
			s.requestUpdate()
		}
	}
	set := r.aux.(func(any))
	cur, _ := r.value.(T)
	return cur, func(v T) { set(v) }
}

// UseReducer returns the current value and a dispatch function that
// runs the reducer against the latest staged value and schedules a
// re-render.
func UseReducer[S, A any](ctx *Context, reducer func(S, A) S, initial S) (S, func(A)) {
	r := ctx.next(KindReducer)
	s := ctx.store
	if !r.init {
		r.value = initial
		r.init = true
	}
	if r.aux == nil {
		r.aux = func(action any) {
			if s.closed {
				return
			}
			cur, _ := r.value.(S)
			if r.hasStaged {
				cur, _ = r.staged.(S)
			}
			a, _ := action.(A)
			r.staged = reducer(cur, a)
			r.hasStaged = true
			s.requestUpdate()
		}
	}
	dispatch := r.aux.(func(any))
	cur, _ := r.value.(S)
	return cur, func(a A) { dispatch(a) }
}

// Ref is a stable mutable box whose identity persists across renders.
// The runtime never reassigns Current; attach/detach points belong to
// the caller.
type Ref[T any] struct {
	Current T
}

// UseRef returns the call site's ref box, creating it on first render.
func UseRef[T any](ctx *Context, initial T) *Ref[T] {
	r := ctx.next(KindRef)
	if r.value == nil {
		r.value = &Ref[T]{Current: initial}
	}
	return r.value.(*Ref[T])
}

// UseMemo recomputes only when deps differ from the previous call's
// deps; otherwise the cached value is returned.
func UseMemo[T any](ctx *Context, compute func() T, deps ...any) T {
	r := ctx.next(KindMemo)
	if !r.init || !depsEqual(r.deps, deps) {
		r.value = compute()
		r.deps = deps
		r.init = true
	}
	v, _ := r.value.(T)
	return v
}

// UseCallback returns a stable function identity that only changes
// when deps differ.
func UseCallback[F any](ctx *Context, fn F, deps ...any) F {
	r := ctx.next(KindCallback)
	if !r.init || !depsEqual(r.deps, deps) {
		r.value = fn
		r.deps = deps
		r.init = true
	}
	return r.value.(F)
}

// Cleanup is an optional function returned by an effect body, run
// before the effect re-runs and once on unmount.
type Cleanup func()

// UseEffect records an effect to run asynchronously after this
// commit's paint boundary. The effect is dirty on first render, when
// deps differ from the previous render, or always when no deps are
// given.
func UseEffect(ctx *Context, fn func() Cleanup, deps ...any) {
	useEffect(ctx, KindEffect, fn, deps)
}

// UseLayoutEffect is UseEffect but flushed synchronously after DOM
// commit, before the paint boundary.
func UseLayoutEffect(ctx *Context, fn func() Cleanup, deps ...any) {
	useEffect(ctx, KindLayoutEffect, fn, deps)
}

func useEffect(ctx *Context, kind Kind, fn func() Cleanup, deps []any) {
	r := ctx.next(kind)
	first := r.fn == nil && r.cleanup == nil && r.deps == nil && !r.dirty
	if first || deps == nil || !depsEqual(r.deps, deps) {
		r.dirty = true
	}
	r.deps = deps
	if deps == nil {
		r.deps = []any{}
	}
	r.fn = func() {
		if c := fn(); c != nil {
			r.cleanup = c
		} else {
			r.cleanup = nil
		}
	}
}

// UseHost returns the instance's host element.
func UseHost(ctx *Context) *dom.Element {
	r := ctx.next(KindHost)
	if r.value == nil {
		r.value = ctx.store.host
	}
	return r.value.(*dom.Element)
}

// UseProp reads a named prop of the host instance and returns a setter
// that writes it back, scheduling a re-render on change.
func UseProp[T any](ctx *Context, name string) (T, func(T)) {
	ctx.next(KindProp)
	s := ctx.store

	var cur T
	if v, ok := s.props[name]; ok {
		if tv, ok := v.(T); ok {
			cur = tv
		}
	}
	return cur, func(v T) { s.SetProp(name, v) }
}

// EventInit configures events dispatched by UseEvent closures.
type EventInit struct {
	Bubbles    bool
	Cancelable bool
	Composed   bool
}

// UseEvent returns a stable closure that dispatches a custom event of
// the given type on the host, carrying its argument as Detail.
func UseEvent(ctx *Context, typ string, init EventInit) func(detail any) {
	r := ctx.next(KindEvent)
	if r.value == nil {
		host := ctx.store.host
		r.value = func(detail any) {
			if host == nil {
				return
			}
			host.DispatchEvent(&dom.Event{
				Type:       typ,
				Detail:     detail,
				Bubbles:    init.Bubbles,
				Cancelable: init.Cancelable,
				Composed:   init.Composed,
			})
		}
	}
	return r.value.(func(detail any))
}

// UseUpdate returns a stable closure that forces a re-render of the
// owning instance without changing any hook value.
func UseUpdate(ctx *Context) func() {
	r := ctx.next(KindUpdate)
	if r.value == nil {
		s := ctx.store
		r.value = func() { s.requestUpdate() }
	}
	return r.value.(func())
}
