package vdom

import (
	"fmt"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// Structural prop names the pragma lifts out of the props map. They
// are not DOM-visible attributes.
const (
	propStatic   = "staticNode"
	propClone    = "cloneNode"
	propShadow   = "shadowDom"
	propKey      = "key"
	propIs       = "is"
	propChildren = "children"
)

// New is the pragma: it turns a type, props and children into a
// canonical VNode. It is pure: inputs are never mutated, and a fresh
// node is returned on every call.
//
// typ must be a string tag name, a *dom.Element (live instance) or a
// dom.Constructor; anything else panics.
//
// Children normalization: variadic children take precedence. When none
// are passed and props carries a "children" entry, that value is used
// as-is, without wrapping (the back-compat path for pre-built content);
// otherwise children are empty.
func New(typ any, props Props, children ...any) *VNode {
	v := &VNode{}

	switch t := typ.(type) {
	case string:
		v.TagName = t
		v.Raw = RawNone
	case *dom.Element:
		v.LiveNode = t
		v.Raw = RawNode
	case dom.Constructor:
		v.Ctor = t
		v.Raw = RawCtor
	case func() *dom.Element:
		v.Ctor = t
		v.Raw = RawCtor
	default:
		panic(fmt.Sprintf("vdom: invalid node type %T", typ))
	}

	if len(children) > 0 {
		kids := make([]any, len(children))
		copy(kids, children)
		v.Children = kids
	} else if c, ok := props[propChildren]; ok {
		v.Children = c
	} else {
		v.Children = []any{}
	}

	v.Props = stripStructural(v, props)
	return v
}

// NewHost builds a root VNode for a component render: it carries no
// tag of its own, its props apply to the host element and its children
// render inside it (or inside the shadow root when props set
// "shadowDom").
func NewHost(props Props, children ...any) *VNode {
	return New("host", props, children...)
}

// stripStructural lifts key/is/static/clone/shadow out of props and
// returns the forwarded map. The input map is never mutated.
func stripStructural(v *VNode, props Props) Props {
	if len(props) == 0 {
		return nil
	}

	structural := 0
	for _, name := range [...]string{propStatic, propClone, propShadow, propKey, propIs, propChildren} {
		if _, ok := props[name]; ok {
			structural++
		}
	}

	if key, ok := props[propKey]; ok {
		v.Key = key
	}
	if is, ok := props[propIs]; ok {
		if s, ok := is.(string); ok {
			v.Is = s
		}
	}
	v.Static = boolProp(props, propStatic)
	v.Clone = boolProp(props, propClone)
	v.Shadow = boolProp(props, propShadow)

	if structural == len(props) {
		return nil
	}
	out := make(Props, len(props)-structural)
	for k, val := range props {
		switch k {
		case propStatic, propClone, propShadow, propKey, propIs, propChildren:
		default:
			out[k] = val
		}
	}
	return out
}

func boolProp(props Props, name string) bool {
	b, _ := props[name].(bool)
	return b
}
