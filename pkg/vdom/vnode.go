package vdom

import (
	"reflect"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// RawKind discriminates how a VNode's type instantiates a live node.
type RawKind uint8

const (
	RawNone RawKind = iota // string tag name
	RawNode                // already-constructed element
	RawCtor                // element constructor
)

// String returns the string representation of the RawKind.
func (k RawKind) String() string {
	switch k {
	case RawNone:
		return "None"
	case RawNode:
		return "Node"
	case RawCtor:
		return "Ctor"
	default:
		return "Unknown"
	}
}

// Props holds a VNode's properties. Keys shaped like "on*" bind event
// listeners; "style" accepts a map merged per-declaration; "value" and
// "checked" apply as live properties.
type Props map[string]any

// VNode is an immutable description of a desired live node. Created by
// New, superseded (never updated) by the next render's tree.
//
// Type is a closed variant resolved once at build time: exactly one of
// TagName, LiveNode or Ctor is meaningful, selected by Raw.
type VNode struct {
	TagName  string          // Raw == RawNone
	LiveNode *dom.Element    // Raw == RawNode
	Ctor     dom.Constructor // Raw == RawCtor
	Raw      RawKind

	Props Props

	// Children is nil, a scalar (string, numeric, bool), a *VNode, or
	// a []any mixing those; []any values nested inside a children list
	// render as mark-bounded dynamic ranges.
	Children any

	// Key is the identity token for keyed sibling matching. Must be
	// unique among same-level siblings when set.
	Key any

	// Is names a customized built-in definition.
	Is string

	Static bool // render once, never diffed again
	Clone  bool // deep-clone the RawNode template instead of adopting it
	Shadow bool // mount children into the host's shadow root

	// Reconciler bookkeeping, set on the committed tree only.
	node     dom.Node
	slots    []slot
	handles  map[string]*dom.ListenerHandle
	shadowed bool // root committed into the shadow root
}

// Node returns the live node this VNode committed to, or nil for a
// tree that has not been committed.
func (v *VNode) Node() dom.Node {
	if v == nil {
		return nil
	}
	return v.node
}

// sameType reports whether prev and next instantiate the same live
// node and may be reused in place.
func sameType(prev, next *VNode) bool {
	if prev.Raw != next.Raw {
		return false
	}
	switch next.Raw {
	case RawNone:
		return prev.TagName == next.TagName && prev.Is == next.Is
	case RawNode:
		return prev.LiveNode == next.LiveNode
	case RawCtor:
		return ctorID(prev.Ctor) == ctorID(next.Ctor)
	}
	return false
}

// ctorID gives a comparable identity for a constructor value.
func ctorID(c dom.Constructor) uintptr {
	if c == nil {
		return 0
	}
	return reflect.ValueOf(c).Pointer()
}
