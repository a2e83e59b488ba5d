package hooks

import (
	"errors"
	"fmt"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// Kind identifies the variant of a hook record.
type Kind uint8

const (
	KindState Kind = iota + 1
	KindReducer
	KindRef
	KindMemo
	KindCallback
	KindEffect
	KindLayoutEffect
	KindHost
	KindProp
	KindEvent
	KindUpdate
)

// String returns a human-readable name for the hook kind.
func (k Kind) String() string {
	switch k {
	case KindState:
		return "State"
	case KindReducer:
		return "Reducer"
	case KindRef:
		return "Ref"
	case KindMemo:
		return "Memo"
	case KindCallback:
		return "Callback"
	case KindEffect:
		return "Effect"
	case KindLayoutEffect:
		return "LayoutEffect"
	case KindHost:
		return "Host"
	case KindProp:
		return "Prop"
	case KindEvent:
		return "Event"
	case KindUpdate:
		return "Update"
	default:
		return "Unknown"
	}
}

// ErrOutsideRender reports a hook primitive called without an open
// render context.
var ErrOutsideRender = errors.New("hooks: primitive called outside a render context")

// OrderError reports a hook call sequence that deviates from the
// sequence recorded on the instance's first render. It is fatal for
// the instance.
type OrderError struct {
	Index int
	Want  Kind
	Got   Kind
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("hooks: extra %s hook at index %d", e.Got, e.Index)
	}
	if e.Got == 0 {
		return fmt.Sprintf("hooks: missing %s hook at index %d", e.Want, e.Index)
	}
	return fmt.Sprintf("hooks: order changed at index %d: want %s, got %s", e.Index, e.Want, e.Got)
}

// record is one hook call-site's persistent state.
type record struct {
	kind Kind

	value     any  // committed value (state, reducer, memo, callback, ref box, dispatch closure)
	init      bool // value has been assigned at least once; nil is a legal value
	staged    any  // value staged by a setter for the next render
	hasStaged bool

	deps    []any  // last dependency list (memo, callback, effects)
	fn      func() // pending effect body, wrapped
	cleanup func() // cleanup returned by the last effect run
	dirty   bool   // effect must run after this commit

	aux any // reducer function; event init
}

// Store is the per-instance hook arena. One instance owns exactly one
// Store for its whole lifetime; it is only ever accessed from the
// instance's render/effect cycle.
type Store struct {
	records []*record
	locked  bool // variant sequence locked by the first completed render
	closed  bool

	host     *dom.Element
	props    map[string]any
	schedule func()
}

// NewStore creates the hook store for an instance. schedule is invoked
// whenever a setter (or UseUpdate's closure) requests a re-render; it
// must be safe to call at any point of the instance's lifecycle.
func NewStore(host *dom.Element, schedule func()) *Store {
	return &Store{
		host:     host,
		props:    make(map[string]any),
		schedule: schedule,
	}
}

// Host returns the store's host element.
func (s *Store) Host() *dom.Element { return s.host }

// SetProp stages a named prop value and schedules a re-render when the
// value changed. Called by the instance wrapper, mirrored by UseProp.
func (s *Store) SetProp(name string, v any) {
	if s.closed {
		return
	}
	if old, ok := s.props[name]; ok && depEqual(old, v) {
		return
	}
	s.props[name] = v
	s.requestUpdate()
}

// Prop returns the current value of a named prop.
func (s *Store) Prop(name string) (any, bool) {
	v, ok := s.props[name]
	return v, ok
}

// Closed reports whether the store was discarded by unmount.
func (s *Store) Closed() bool { return s.closed }

func (s *Store) requestUpdate() {
	if s.closed || s.schedule == nil {
		return
	}
	s.schedule()
}

// Context is the explicit render context: the store currently
// rendering plus the next record index to consume. It is created by
// Store.Begin and invalidated by Store.End.
type Context struct {
	store *Store
	index int
	open  bool
}

// Begin opens a render context. Staged setter values become visible to
// this render. Returns an error if the store was already closed.
func (s *Store) Begin() (*Context, error) {
	if s.closed {
		return nil, errors.New("hooks: render on a closed store")
	}
	for _, r := range s.records {
		if r.hasStaged {
			r.value = r.staged
			r.staged = nil
			r.hasStaged = false
		}
	}
	return &Context{store: s, open: true}, nil
}

// End closes a render context, validating that the render consumed the
// exact hook sequence recorded on the first render.
func (s *Store) End(ctx *Context) error {
	ctx.open = false
	if !s.locked {
		s.locked = true
		return nil
	}
	if ctx.index < len(s.records) {
		return &OrderError{Index: ctx.index, Want: s.records[ctx.index].kind}
	}
	return nil
}

// next fetches or creates the record for the current call site and
// advances the index. A variant mismatch against the locked sequence
// panics with *OrderError; the component layer recovers it into the
// render error path.
func (ctx *Context) next(kind Kind) *record {
	if ctx == nil || !ctx.open {
		panic(ErrOutsideRender)
	}
	s := ctx.store
	i := ctx.index
	ctx.index++

	if i < len(s.records) {
		r := s.records[i]
		if r.kind != kind {
			panic(&OrderError{Index: i, Want: r.kind, Got: kind})
		}
		return r
	}
	if s.locked {
		panic(&OrderError{Index: i, Got: kind})
	}
	r := &record{kind: kind}
	s.records = append(s.records, r)
	return r
}

// depEqual compares two dependency values by identity/equality.
func depEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflectDeepEqual(a, b)
}

func depsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !depEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
