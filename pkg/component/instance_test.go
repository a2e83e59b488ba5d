package component

import (
	"errors"
	"testing"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/hooks"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/scheduler"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

func hostText(t *testing.T, host *dom.Element) string {
	t.Helper()
	out := ""
	for _, n := range host.Children() {
		if txt, ok := n.(*dom.Text); ok && !txt.IsMark() {
			out += txt.Data()
		}
	}
	return out
}

func TestMountRendersIntoHost(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-counter")

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		return vdom.NewHost(nil,
			vdom.New("button", vdom.Props{"class": "inc"}, "+"),
		)
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	kids := host.Children()
	if len(kids) != 1 {
		t.Fatalf("host children = %d, want 1", len(kids))
	}
	btn, ok := kids[0].(*dom.Element)
	if !ok || btn.Tag() != "button" {
		t.Fatalf("child = %T %v, want button element", kids[0], kids[0])
	}
	if cls, _ := btn.Attribute("class"); cls != "inc" {
		t.Errorf("class = %q, want inc", cls)
	}

	if got, ok := FromHost(host); !ok || got != inst {
		t.Error("host does not reference its instance")
	}
}

func TestMountTwice(t *testing.T) {
	loop := scheduler.NewLoop()
	inst := New(loop, dom.NewElement("x-a"), func(*hooks.Context) *vdom.VNode { return nil })

	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := inst.Mount(); !errors.Is(err, ErrMounted) {
		t.Errorf("second Mount err = %v, want ErrMounted", err)
	}
}

func TestSetterDrivesRerender(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-counter")

	var inc func()
	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		count, setCount := hooks.UseState(ctx, 0)
		inc = func() { setCount(count + 1) }
		return vdom.NewHost(nil, count)
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := hostText(t, host); got != "0" {
		t.Fatalf("text = %q, want 0", got)
	}

	inc()
	inc() // same captured count, coalesces to one pass
	loop.Flush()

	if got := hostText(t, host); got != "1" {
		t.Errorf("text = %q, want 1", got)
	}
	if inst.State() != scheduler.StateIdle {
		t.Errorf("state = %v, want Idle", inst.State())
	}
}

func TestLayoutEffectsRunOnMountPlainAfterFlush(t *testing.T) {
	loop := scheduler.NewLoop()
	var order []string

	inst := New(loop, dom.NewElement("x-a"), func(ctx *hooks.Context) *vdom.VNode {
		hooks.UseEffect(ctx, func() hooks.Cleanup {
			order = append(order, "effect")
			return nil
		})
		hooks.UseLayoutEffect(ctx, func() hooks.Cleanup {
			order = append(order, "layout")
			return nil
		})
		return nil
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if len(order) != 1 || order[0] != "layout" {
		t.Fatalf("after Mount order = %v, want [layout]", order)
	}
	loop.Flush()
	if len(order) != 2 || order[1] != "effect" {
		t.Errorf("after Flush order = %v, want [layout effect]", order)
	}
}

func TestPatchSinkReceivesCommits(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")
	var batches [][]vdom.Patch

	var setLabel func(string)
	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		label, set := hooks.UseState(ctx, "a")
		setLabel = set
		return vdom.NewHost(nil, vdom.New("span", nil, label))
	}, WithPatchSink(func(ps []vdom.Patch) {
		batches = append(batches, ps)
	}))

	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("batches after mount = %d, want 1", len(batches))
	}

	setLabel("b")
	loop.Flush()
	if len(batches) != 2 {
		t.Fatalf("batches after update = %d, want 2", len(batches))
	}
	last := batches[1]
	if len(last) != 1 || last[0].Op != vdom.PatchSetText {
		t.Errorf("update patches = %v, want one SetText", last)
	}
}

func TestPropDrivesRerender(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		name, _ := hooks.UseProp[string](ctx, "name")
		return vdom.NewHost(nil, "hello "+name)
	})
	inst.SetProp("name", "ada")
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got := hostText(t, host); got != "hello ada" {
		t.Fatalf("text = %q", got)
	}

	inst.SetProp("name", "lin")
	loop.Flush()
	if got := hostText(t, host); got != "hello lin" {
		t.Errorf("text = %q, want hello lin", got)
	}

	if v, _ := inst.Prop("name"); v != "lin" {
		t.Errorf("Prop = %v, want lin", v)
	}
}

func TestHookOrderViolationUnmounts(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")
	var failures []error

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		flag, _ := hooks.UseProp[bool](ctx, "flag")
		if flag {
			hooks.UseRef(ctx, 0)
		} else {
			hooks.UseState(ctx, 0)
		}
		return nil
	}, WithErrorSink(func(err error) { failures = append(failures, err) }))

	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	inst.SetProp("flag", true)
	loop.Flush()

	if len(failures) != 1 {
		t.Fatalf("failures = %v, want one order error", failures)
	}
	var oe *hooks.OrderError
	if !errors.As(failures[0], &oe) {
		t.Errorf("failure = %v, want *OrderError", failures[0])
	}
	if inst.State() != scheduler.StateUnmounted {
		t.Errorf("state = %v, want Unmounted", inst.State())
	}
	if _, ok := FromHost(host); ok {
		t.Error("host still references the unmounted instance")
	}
}

func TestRenderPanicKeepsCommittedTree(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")
	var failures []error

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		broken, _ := hooks.UseProp[bool](ctx, "broken")
		if broken {
			panic("render exploded")
		}
		return vdom.NewHost(nil, "ok")
	}, WithErrorSink(func(err error) { failures = append(failures, err) }))

	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	inst.SetProp("broken", true)
	loop.Flush()

	if len(failures) != 1 {
		t.Fatalf("failures = %v, want 1", failures)
	}
	if got := hostText(t, host); got != "ok" {
		t.Errorf("text = %q, committed tree should survive a failed pass", got)
	}
	if inst.State() != scheduler.StateIdle {
		t.Errorf("state = %v, want Idle", inst.State())
	}

	// Recovery: a later good pass renders normally.
	inst.SetProp("broken", false)
	loop.Flush()
	if got := hostText(t, host); got != "ok" {
		t.Errorf("text after recovery = %q, want ok", got)
	}
}

func TestUnmountRunsCleanupsAndClearsHost(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")
	cleaned := false

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		hooks.UseLayoutEffect(ctx, func() hooks.Cleanup {
			return func() { cleaned = true }
		})
		return vdom.NewHost(nil, vdom.New("div", nil))
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if err := inst.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if !cleaned {
		t.Error("layout cleanup did not run on unmount")
	}
	if len(host.Children()) != 0 {
		t.Errorf("host children = %d after unmount, want 0", len(host.Children()))
	}
	if err := inst.Unmount(); err != nil {
		t.Errorf("second Unmount err = %v, want nil", err)
	}
	if err := inst.Mount(); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Mount after Unmount err = %v, want ErrUnmounted", err)
	}
}

func TestHostDetachUnmountsInstance(t *testing.T) {
	loop := scheduler.NewLoop()
	parent := dom.NewElement("div")
	host := dom.NewElement("x-a")
	parent.AppendChild(host)

	cleaned := false
	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		hooks.UseLayoutEffect(ctx, func() hooks.Cleanup {
			return func() { cleaned = true }
		})
		return nil
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	host.NotifyDetach()
	parent.RemoveChild(host)

	if !cleaned {
		t.Error("detaching the host did not unmount the instance")
	}
	if inst.State() != scheduler.StateUnmounted {
		t.Errorf("state = %v, want Unmounted", inst.State())
	}
}

func TestShadowRenderTargetsShadowRoot(t *testing.T) {
	loop := scheduler.NewLoop()
	host := dom.NewElement("x-a")

	inst := New(loop, host, func(ctx *hooks.Context) *vdom.VNode {
		return vdom.NewHost(vdom.Props{"shadowDom": true}, vdom.New("slot", nil))
	})
	if err := inst.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if len(host.Children()) != 0 {
		t.Errorf("light children = %d, want 0", len(host.Children()))
	}
	sh := host.Shadow()
	if sh == nil || len(sh.Children()) != 1 {
		t.Fatal("shadow root missing rendered child")
	}

	if err := inst.Unmount(); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	if len(sh.Children()) != 0 {
		t.Error("shadow children survived unmount")
	}
}
