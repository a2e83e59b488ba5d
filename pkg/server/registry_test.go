package server

import (
	"testing"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/hooks"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

func nopRender(*hooks.Context) *vdom.VNode { return vdom.New("div", nil) }

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Page{Path: "/", Render: nopRender}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	p, ok := r.Lookup("/")
	if !ok {
		t.Fatal("Lookup missed")
	}
	if p.Tag != "app-root" {
		t.Errorf("default tag = %q", p.Tag)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	r.Register(Page{Path: "/", Render: nopRender})
	if err := r.Register(Page{Path: "/", Render: nopRender}); err == nil {
		t.Error("duplicate path accepted")
	}
}

func TestRegistryValidates(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Page{Render: nopRender}); err == nil {
		t.Error("empty path accepted")
	}
	if err := r.Register(Page{Path: "/x"}); err == nil {
		t.Error("nil component accepted")
	}
}

func TestRegistryPathsSorted(t *testing.T) {
	r := NewRegistry()
	for _, p := range []string{"/c", "/a", "/b"} {
		r.Register(Page{Path: p, Render: nopRender})
	}
	paths := r.Paths()
	want := []string{"/a", "/b", "/c"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v", paths)
		}
	}
}
