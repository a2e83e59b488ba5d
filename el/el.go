package el

import (
	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

// Attr is one prop to set on the element being constructed.
type Attr struct {
	Key   string
	Value any
}

// E constructs an element of any tag. Attr arguments become props;
// everything else becomes children.
func E(tag string, args ...any) *vdom.VNode {
	props, children := split(args)
	return vdom.New(tag, props, children...)
}

// Component constructs a nested component instance from a registered
// element constructor.
func Component(ctor dom.Constructor, args ...any) *vdom.VNode {
	props, children := split(args)
	return vdom.New(ctor, props, children...)
}

func split(args []any) (vdom.Props, []any) {
	var props vdom.Props
	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch a := arg.(type) {
		case Attr:
			if props == nil {
				props = vdom.Props{}
			}
			props[a.Key] = a.Value
		case []Attr:
			if props == nil {
				props = vdom.Props{}
			}
			for _, attr := range a {
				props[attr.Key] = attr.Value
			}
		case nil:
			// Skip nil children so If and When compose cleanly.
		case *vdom.VNode:
			if a != nil {
				children = append(children, a)
			}
		default:
			children = append(children, arg)
		}
	}
	return props, children
}

// Key marks the element for keyed reconciliation.
func Key(k any) Attr { return Attr{Key: "key", Value: k} }

// Shadow mounts the element's children into a shadow root.
func Shadow() Attr { return Attr{Key: "shadowDom", Value: true} }

// Static marks the subtree as skippable after first mount.
func Static() Attr { return Attr{Key: "staticNode", Value: true} }

// Is names the customized built-in variant of the element.
func Is(name string) Attr { return Attr{Key: "is", Value: name} }

// View helpers re-exported so call sites need only this package.

func If(condition bool, node *vdom.VNode) *vdom.VNode {
	return vdom.If(condition, node)
}

func IfElse(condition bool, ifTrue, ifFalse *vdom.VNode) *vdom.VNode {
	return vdom.IfElse(condition, ifTrue, ifFalse)
}

func When(condition bool, fn func() *vdom.VNode) *vdom.VNode {
	return vdom.When(condition, fn)
}

func Range[T any](items []T, fn func(item T, index int) *vdom.VNode) []*vdom.VNode {
	return vdom.Range(items, fn)
}

func Repeat(n int, fn func(i int) *vdom.VNode) []*vdom.VNode {
	return vdom.Repeat(n, fn)
}

// Text creates a plain text child. Scalars passed directly to
// constructors render the same way; Text exists for call sites that
// want the intent explicit.
func Text(s string) any { return s }
