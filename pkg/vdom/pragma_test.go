package vdom

import (
	"testing"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

func TestNewNormalizesChildren(t *testing.T) {
	tests := []struct {
		name  string
		node  *VNode
		check func(t *testing.T, v *VNode)
	}{
		{
			name: "no children yields empty list",
			node: New("span", Props{"staticNode": true}),
			check: func(t *testing.T, v *VNode) {
				kids, ok := v.Children.([]any)
				if !ok || len(kids) != 0 {
					t.Errorf("Children = %#v, want empty []any", v.Children)
				}
				if !v.Static || v.Clone {
					t.Errorf("Static = %v, Clone = %v", v.Static, v.Clone)
				}
			},
		},
		{
			name: "cloneNode flag",
			node: New("span", Props{"cloneNode": true}),
			check: func(t *testing.T, v *VNode) {
				if v.Static || !v.Clone {
					t.Errorf("Static = %v, Clone = %v", v.Static, v.Clone)
				}
			},
		},
		{
			name: "single variadic child is wrapped",
			node: New("span", Props{}, 10),
			check: func(t *testing.T, v *VNode) {
				kids, ok := v.Children.([]any)
				if !ok || len(kids) != 1 || kids[0] != 10 {
					t.Errorf("Children = %#v, want [10]", v.Children)
				}
			},
		},
		{
			name: "props children pass through unwrapped",
			node: New("span", Props{"children": 10}),
			check: func(t *testing.T, v *VNode) {
				if v.Children != 10 {
					t.Errorf("Children = %#v, want 10", v.Children)
				}
			},
		},
		{
			name: "variadic children win over props children",
			node: New("span", Props{"children": 10}, 20),
			check: func(t *testing.T, v *VNode) {
				kids, ok := v.Children.([]any)
				if !ok || len(kids) != 1 || kids[0] != 20 {
					t.Errorf("Children = %#v, want [20]", v.Children)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.node)
		})
	}
}

func TestNewLiftsStructuralProps(t *testing.T) {
	v := New("li", Props{"key": "a", "is": "x-item", "class": "row"})

	if v.Key != "a" {
		t.Errorf("Key = %v, want a", v.Key)
	}
	if v.Is != "x-item" {
		t.Errorf("Is = %q, want x-item", v.Is)
	}
	if _, ok := v.Props["key"]; ok {
		t.Error("key leaked into forwarded props")
	}
	if _, ok := v.Props["is"]; ok {
		t.Error("is leaked into forwarded props")
	}
	if v.Props["class"] != "row" {
		t.Error("ordinary props must be forwarded")
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	props := Props{"staticNode": true, "id": "x"}
	New("div", props)

	if len(props) != 2 {
		t.Errorf("input props mutated: %#v", props)
	}
	if _, ok := props["staticNode"]; !ok {
		t.Error("staticNode removed from the input map")
	}
}

func TestNewResolvesRawKind(t *testing.T) {
	live := dom.NewElement("canvas")
	ctor := dom.Constructor(func() *dom.Element { return dom.NewElement("x-a") })

	tests := []struct {
		name string
		typ  any
		want RawKind
	}{
		{"string tag", "div", RawNone},
		{"live element", live, RawNode},
		{"constructor", ctor, RawCtor},
		{"plain func constructor", func() *dom.Element { return dom.NewElement("x-b") }, RawCtor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.typ, nil).Raw; got != tt.want {
				t.Errorf("Raw = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPanicsOnInvalidType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(42) did not panic")
		}
	}()
	New(42, nil)
}

func TestNewIsPure(t *testing.T) {
	a := New("div", Props{"id": "x"}, "hi")
	b := New("div", Props{"id": "x"}, "hi")
	if a == b {
		t.Error("New returned a shared node")
	}
}

func TestShadowFlag(t *testing.T) {
	v := NewHost(Props{"shadowDom": true}, "hi")
	if !v.Shadow {
		t.Error("shadowDom prop did not set Shadow")
	}
	if _, ok := v.Props["shadowDom"]; ok {
		t.Error("shadowDom leaked into forwarded props")
	}
}
