package dom

// Element is a live element node.
type Element struct {
	childList

	id  string
	tag string
	is  string

	parent ParentNode

	attrs  map[string]string
	styles map[string]string
	props  map[string]any

	listeners map[string][]*ListenerHandle

	shadow *ShadowRoot

	// userData is a non-owning back-reference slot. The component layer
	// stores its instance here; the element never touches it.
	userData any

	// onDetach runs when the reconciler unmounts this element's
	// subtree. Set by the component layer for nested instances.
	onDetach func()
}

// NewElement creates a detached element. If the tag (or is, when set)
// has a registered constructor, the constructor output is returned
// instead so custom elements upgrade at creation time.
func NewElement(tag string) *Element {
	if ctor := DefaultRegistry.Lookup(tag); ctor != nil {
		e := ctor()
		e.tag = tag
		return e
	}
	return newRawElement(tag)
}

// NewBuiltin creates a customized built-in: tag names the native
// element, is names the registered custom definition.
func NewBuiltin(tag, is string) *Element {
	var e *Element
	if ctor := DefaultRegistry.Lookup(is); ctor != nil {
		e = ctor()
	} else {
		e = newRawElement(tag)
	}
	e.tag = tag
	e.is = is
	return e
}

func newRawElement(tag string) *Element {
	return &Element{
		id:  nextNodeID(),
		tag: tag,
	}
}

// ID implements Node.
func (e *Element) ID() string { return e.id }

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Is returns the customized built-in name, or "".
func (e *Element) Is() string { return e.is }

// Parent implements Node.
func (e *Element) Parent() ParentNode { return e.parent }

func (e *Element) setParent(p ParentNode) { e.parent = p }

func (e *Element) element() *Element { return e }

// AppendChild implements ParentNode.
func (e *Element) AppendChild(n Node) { e.childList.append(e, n) }

// InsertBefore implements ParentNode.
func (e *Element) InsertBefore(n, ref Node) { e.childList.insertBefore(e, n, ref) }

// RemoveChild implements ParentNode.
func (e *Element) RemoveChild(n Node) { e.childList.remove(n) }

// ReplaceChild implements ParentNode.
func (e *Element) ReplaceChild(n, old Node) { e.childList.replace(e, n, old) }

// SetAttribute sets a string attribute.
func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Attribute returns an attribute value and whether it is set.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (e *Element) Attributes() map[string]string {
	out := make(map[string]string, len(e.attrs))
	for k, v := range e.attrs {
		out[k] = v
	}
	return out
}

// SetStyle sets a single inline style declaration.
func (e *Element) SetStyle(prop, value string) {
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[prop] = value
}

// RemoveStyle removes a single inline style declaration.
func (e *Element) RemoveStyle(prop string) {
	delete(e.styles, prop)
}

// Style returns a style declaration and whether it is set.
func (e *Element) Style(prop string) (string, bool) {
	v, ok := e.styles[prop]
	return v, ok
}

// Styles returns a copy of the inline style map.
func (e *Element) Styles() map[string]string {
	out := make(map[string]string, len(e.styles))
	for k, v := range e.styles {
		out[k] = v
	}
	return out
}

// SetProperty sets a live property (value, checked, ...) as opposed to
// an attribute. Properties do not serialize.
func (e *Element) SetProperty(name string, v any) {
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[name] = v
}

// Property returns a live property and whether it is set.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// SetUserData stores an arbitrary value on the element. Used by the
// component layer for the DOM-to-instance back-reference.
func (e *Element) SetUserData(v any) { e.userData = v }

// UserData returns the value stored with SetUserData.
func (e *Element) UserData() any { return e.userData }

// OnDetach registers a callback invoked when the reconciler removes
// this element from the live tree. At most one callback is kept.
func (e *Element) OnDetach(fn func()) { e.onDetach = fn }

// NotifyDetach runs the detach callbacks of this element and its
// subtree, deepest first. Called by the reconciler on unmount.
func (e *Element) NotifyDetach() {
	for _, k := range e.kids {
		if el, ok := k.(*Element); ok {
			el.NotifyDetach()
		}
	}
	if e.shadow != nil {
		for _, k := range e.shadow.kids {
			if el, ok := k.(*Element); ok {
				el.NotifyDetach()
			}
		}
	}
	if e.onDetach != nil {
		e.onDetach()
	}
}

// AttachShadow returns the element's shadow root, creating it on first
// call. The decision to shadow-mount is fixed at first mount.
func (e *Element) AttachShadow() *ShadowRoot {
	if e.shadow == nil {
		e.shadow = &ShadowRoot{host: e}
	}
	return e.shadow
}

// Shadow returns the shadow root, or nil if none was attached.
func (e *Element) Shadow() *ShadowRoot { return e.shadow }

// Clone implements Node. Listeners, user data and the shadow root are
// not copied.
func (e *Element) Clone(deep bool) Node {
	c := newRawElement(e.tag)
	c.is = e.is
	if len(e.attrs) > 0 {
		c.attrs = make(map[string]string, len(e.attrs))
		for k, v := range e.attrs {
			c.attrs[k] = v
		}
	}
	if len(e.styles) > 0 {
		c.styles = make(map[string]string, len(e.styles))
		for k, v := range e.styles {
			c.styles[k] = v
		}
	}
	if len(e.props) > 0 {
		c.props = make(map[string]any, len(e.props))
		for k, v := range e.props {
			c.props[k] = v
		}
	}
	if deep {
		for _, k := range e.kids {
			c.AppendChild(k.Clone(true))
		}
	}
	return c
}

// ShadowRoot is an isolated child scope attached to a host element.
type ShadowRoot struct {
	childList
	host *Element
}

// Host returns the owning element.
func (s *ShadowRoot) Host() *Element { return s.host }

func (s *ShadowRoot) element() *Element { return s.host }

// AppendChild implements ParentNode.
func (s *ShadowRoot) AppendChild(n Node) { s.childList.append(s, n) }

// InsertBefore implements ParentNode.
func (s *ShadowRoot) InsertBefore(n, ref Node) { s.childList.insertBefore(s, n, ref) }

// RemoveChild implements ParentNode.
func (s *ShadowRoot) RemoveChild(n Node) { s.childList.remove(n) }

// ReplaceChild implements ParentNode.
func (s *ShadowRoot) ReplaceChild(n, old Node) { s.childList.replace(s, n, old) }
