package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

// Listener is the value shape expected for "on*" props.
type Listener func(*dom.Event)

// isEventProp reports whether the key binds an event listener.
// Case-insensitive on the prefix to catch onClick, ONCLICK, OnLoad.
func isEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// eventType extracts the event type from an "on*" key: "onclick" and
// "onClick" both yield "click".
func eventType(key string) string {
	return strings.ToLower(key[2:])
}

// propertyProps apply as live properties rather than attributes.
var propertyProps = map[string]bool{
	"value":   true,
	"checked": true,
}

// applyProps diffs prev against next and applies the result to el.
// Old keys missing from next are removed; changed keys reapplied.
func applyProps(el *dom.Element, v *VNode, prev, next Props, c *committer) {
	for key, oldVal := range prev {
		if _, stillThere := next[key]; stillThere {
			continue
		}
		removeProp(el, v, key, oldVal, c)
	}
	for key, val := range next {
		oldVal, had := prev[key]
		if had && propsEqual(oldVal, val) {
			continue
		}
		setProp(el, v, key, oldVal, val, had, c)
	}
}

func setProp(el *dom.Element, v *VNode, key string, oldVal, val any, had bool, c *committer) {
	switch {
	case isEventProp(key):
		bindListener(el, v, key, val, c)

	case key == "style":
		applyStyle(el, oldVal, val, c)

	case key == "class" || key == "className":
		s := propToString(val)
		el.SetAttribute("class", s)
		c.record(Patch{Op: PatchSetAttr, NodeID: el.ID(), Key: "class", Value: s})

	case propertyProps[key]:
		el.SetProperty(key, val)
		c.record(Patch{Op: PatchSetProp, NodeID: el.ID(), Key: key, Value: propToString(val)})

	default:
		switch b := val.(type) {
		case bool:
			// Boolean props toggle attribute presence.
			if b {
				el.SetAttribute(key, "")
				c.record(Patch{Op: PatchSetAttr, NodeID: el.ID(), Key: key})
			} else if had {
				el.RemoveAttribute(key)
				c.record(Patch{Op: PatchRemoveAttr, NodeID: el.ID(), Key: key})
			}
		case nil:
			if had {
				el.RemoveAttribute(key)
				c.record(Patch{Op: PatchRemoveAttr, NodeID: el.ID(), Key: key})
			}
		default:
			s := propToString(val)
			el.SetAttribute(key, s)
			c.record(Patch{Op: PatchSetAttr, NodeID: el.ID(), Key: key, Value: s})
		}
	}
}

func removeProp(el *dom.Element, v *VNode, key string, oldVal any, c *committer) {
	switch {
	case isEventProp(key):
		if h := v.handles[key]; h != nil {
			el.RemoveListener(h)
			delete(v.handles, key)
		}

	case key == "style":
		if m, ok := oldVal.(map[string]string); ok {
			for prop := range m {
				el.RemoveStyle(prop)
				c.record(Patch{Op: PatchRemoveStyle, NodeID: el.ID(), Key: prop})
			}
		} else {
			el.RemoveAttribute("style")
			c.record(Patch{Op: PatchRemoveAttr, NodeID: el.ID(), Key: "style"})
		}

	case key == "class" || key == "className":
		el.RemoveAttribute("class")
		c.record(Patch{Op: PatchRemoveAttr, NodeID: el.ID(), Key: "class"})

	case propertyProps[key]:
		el.SetProperty(key, nil)
		c.record(Patch{Op: PatchSetProp, NodeID: el.ID(), Key: key})

	default:
		el.RemoveAttribute(key)
		c.record(Patch{Op: PatchRemoveAttr, NodeID: el.ID(), Key: key})
	}
}

// bindListener replaces the element's listener for an event prop. The
// handle lives on the committed VNode so the next diff can swap it.
func bindListener(el *dom.Element, v *VNode, key string, val any, c *committer) {
	if h := v.handles[key]; h != nil {
		el.RemoveListener(h)
		delete(v.handles, key)
	}

	fn := asListener(val)
	if fn == nil {
		return
	}
	if v.handles == nil {
		v.handles = make(map[string]*dom.ListenerHandle)
	}
	v.handles[key] = el.AddListener(eventType(key), fn)
	c.record(Patch{Op: PatchBindEvent, NodeID: el.ID(), Key: eventType(key)})
}

func asListener(val any) func(*dom.Event) {
	switch fn := val.(type) {
	case nil:
		return nil
	case func(*dom.Event):
		return fn
	case Listener:
		return fn
	case func():
		return func(*dom.Event) { fn() }
	default:
		return nil
	}
}

// applyStyle merges style declarations instead of replacing the whole
// attribute. Map values diff per-declaration; a plain string sets the
// style attribute wholesale.
func applyStyle(el *dom.Element, oldVal, val any, c *committer) {
	next, nextIsMap := val.(map[string]string)
	if !nextIsMap {
		s := propToString(val)
		el.SetAttribute("style", s)
		c.record(Patch{Op: PatchSetAttr, NodeID: el.ID(), Key: "style", Value: s})
		return
	}

	prev, _ := oldVal.(map[string]string)
	for prop := range prev {
		if _, keep := next[prop]; !keep {
			el.RemoveStyle(prop)
			c.record(Patch{Op: PatchRemoveStyle, NodeID: el.ID(), Key: prop})
		}
	}
	for prop, value := range next {
		if prev[prop] == value {
			continue
		}
		el.SetStyle(prop, value)
		c.record(Patch{Op: PatchSetStyle, NodeID: el.ID(), Key: prop, Value: value})
	}
}

// propsEqual compares two prop values. Event props compare by function
// identity; everything else by value with a reflect fallback.
func propsEqual(a, b any) bool {
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

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Kind() == rb.Kind() && ra.Pointer() == rb.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

// propToString converts a prop value to its attribute string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
