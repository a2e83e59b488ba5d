package el

import (
	"testing"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

func TestConstructorSplitsAttrsAndChildren(t *testing.T) {
	node := Div(Class("card"), ID("main"), Span("hello"), "world")

	if node.TagName != "div" {
		t.Fatalf("tag = %q", node.TagName)
	}
	if node.Props["class"] != "card" || node.Props["id"] != "main" {
		t.Errorf("props = %v", node.Props)
	}
	children, ok := node.Children.([]any)
	if !ok || len(children) != 2 {
		t.Fatalf("children = %#v", node.Children)
	}
	if _, ok := children[0].(*vdom.VNode); !ok {
		t.Errorf("first child = %#v", children[0])
	}
	if children[1] != "world" {
		t.Errorf("second child = %#v", children[1])
	}
}

func TestNilChildrenSkipped(t *testing.T) {
	node := Div(If(false, Span("hidden")), "shown")
	children, ok := node.Children.([]any)
	if !ok || len(children) != 1 || children[0] != "shown" {
		t.Errorf("children = %#v", node.Children)
	}
}

func TestAttrSliceMerges(t *testing.T) {
	common := []Attr{Class("btn"), Disabled(true)}
	node := Button(common, "save")
	if node.Props["class"] != "btn" || node.Props["disabled"] != true {
		t.Errorf("props = %v", node.Props)
	}
}

func TestStructuralAttrs(t *testing.T) {
	node := Li(Key("row-3"), "item")
	if node.Key != "row-3" {
		t.Errorf("key = %v", node.Key)
	}
	if _, leaked := node.Props["key"]; leaked {
		t.Error("key leaked into props")
	}

	shadow := Div(Shadow())
	if !shadow.Shadow {
		t.Error("Shadow() not applied")
	}
	static := Div(Static())
	if !static.Static {
		t.Error("Static() not applied")
	}
	builtin := Button(Is("fancy-button"))
	if builtin.Is != "fancy-button" {
		t.Errorf("is = %q", builtin.Is)
	}
}

func TestEventAttr(t *testing.T) {
	fired := false
	node := Button(OnClick(func(*dom.Event) { fired = true }), "go")

	fn, ok := node.Props["onclick"].(func(*dom.Event))
	if !ok {
		t.Fatalf("onclick = %#v", node.Props["onclick"])
	}
	fn(nil)
	if !fired {
		t.Error("listener not invoked")
	}
}

func TestStyleAttr(t *testing.T) {
	node := Div(Style("color", "red", "margin", "0"))
	styles, ok := node.Props["style"].(map[string]string)
	if !ok || styles["color"] != "red" || styles["margin"] != "0" {
		t.Errorf("style = %#v", node.Props["style"])
	}
}

func TestRangeProducesKeyedNodes(t *testing.T) {
	items := []string{"a", "b"}
	nodes := Range(items, func(item string, i int) *vdom.VNode {
		return Li(Key(item), item)
	})
	if len(nodes) != 2 || nodes[0].Key != "a" || nodes[1].Key != "b" {
		t.Errorf("nodes = %#v", nodes)
	}
}
