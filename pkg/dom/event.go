package dom

// Event is a synchronous event dispatched through the live tree.
type Event struct {
	Type       string
	Detail     any
	Bubbles    bool
	Cancelable bool
	Composed   bool

	// Target is the element DispatchEvent was called on. Set by
	// DispatchEvent; callers should leave it nil.
	Target *Element

	stopped   bool
	prevented bool
}

// StopPropagation prevents the event from bubbling further.
func (ev *Event) StopPropagation() { ev.stopped = true }

// PreventDefault marks the event's default as prevented. Only
// meaningful when Cancelable is true.
func (ev *Event) PreventDefault() {
	if ev.Cancelable {
		ev.prevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.prevented }

// ListenerHandle identifies one registered listener so it can be
// removed or replaced later. Function values are not comparable, so
// registration hands out handles instead.
type ListenerHandle struct {
	typ string
	fn  func(*Event)
}

// AddListener registers a listener for the given event type and
// returns its handle.
func (e *Element) AddListener(typ string, fn func(*Event)) *ListenerHandle {
	if e.listeners == nil {
		e.listeners = make(map[string][]*ListenerHandle)
	}
	h := &ListenerHandle{typ: typ, fn: fn}
	e.listeners[typ] = append(e.listeners[typ], h)
	return h
}

// RemoveListener unregisters a listener by handle. No-op for unknown
// handles.
func (e *Element) RemoveListener(h *ListenerHandle) {
	if h == nil || e.listeners == nil {
		return
	}
	hs := e.listeners[h.typ]
	for i, cur := range hs {
		if cur == h {
			e.listeners[h.typ] = append(hs[:i], hs[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners for a type.
func (e *Element) ListenerCount(typ string) int {
	return len(e.listeners[typ])
}

// ListenerTypes returns the event types this element listens for.
func (e *Element) ListenerTypes() []string {
	types := make([]string, 0, len(e.listeners))
	for typ, hs := range e.listeners {
		if len(hs) > 0 {
			types = append(types, typ)
		}
	}
	return types
}

// DispatchEvent fires ev at this element, then bubbles it through
// ancestors while ev.Bubbles holds and propagation has not been
// stopped. A non-composed event stops at a shadow boundary. It returns
// false if the event was cancelled via PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	ev.Target = e

	cur := e
	for cur != nil {
		for _, h := range append([]*ListenerHandle(nil), cur.listeners[ev.Type]...) {
			h.fn(ev)
			if ev.stopped {
				return !ev.prevented
			}
		}
		if !ev.Bubbles {
			break
		}
		p := cur.parent
		if p == nil {
			break
		}
		if _, shadow := p.(*ShadowRoot); shadow && !ev.Composed {
			break
		}
		cur = p.element()
	}
	return !ev.prevented
}
