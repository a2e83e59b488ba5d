package component

import (
	"errors"
	"fmt"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/hooks"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/scheduler"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

// ErrMounted is returned when Mount is called on an instance that is
// already live.
var ErrMounted = errors.New("component: instance already mounted")

// ErrUnmounted is returned when Mount is called on a torn-down
// instance.
var ErrUnmounted = errors.New("component: instance unmounted")

// RenderFunc produces the host tree for one render pass. Returning nil
// renders an empty host.
type RenderFunc func(*hooks.Context) *vdom.VNode

// Option configures an Instance.
type Option func(*Instance)

// WithPatchSink taps the patch log of every commit, in commit order.
// Servers use this to stream mutations to a client.
func WithPatchSink(fn func([]vdom.Patch)) Option {
	return func(i *Instance) { i.onPatch = fn }
}

// WithErrorSink receives render and effect failures that occur on
// scheduled passes, where no caller is waiting on a return value.
func WithErrorSink(fn func(error)) Option {
	return func(i *Instance) { i.onError = fn }
}

// Instance is one live component: a host element, its hook store, its
// committed tree, and the updater sequencing its passes.
type Instance struct {
	host   *dom.Element
	render RenderFunc
	loop   *scheduler.Loop

	store   *hooks.Store
	updater *scheduler.Updater
	tree    *vdom.VNode

	onPatch func([]vdom.Patch)
	onError func(error)

	mounted   bool
	unmounted bool
}

// New creates an unmounted instance for host. The host gains a
// back-reference to the instance and an unmount trigger on detach.
func New(loop *scheduler.Loop, host *dom.Element, render RenderFunc, opts ...Option) *Instance {
	inst := &Instance{
		host:   host,
		render: render,
		loop:   loop,
	}
	for _, opt := range opts {
		opt(inst)
	}
	inst.store = hooks.NewStore(host, func() { inst.updater.Invalidate() })
	inst.updater = scheduler.NewUpdater(loop, inst.renderPass, inst.effectsPass, inst.fail)
	host.SetUserData(inst)
	host.OnDetach(func() { inst.Unmount() })
	return inst
}

// FromHost returns the instance mounted on host, if any.
func FromHost(host *dom.Element) (*Instance, bool) {
	inst, ok := host.UserData().(*Instance)
	return inst, ok
}

// Host returns the instance's host element.
func (i *Instance) Host() *dom.Element { return i.host }

// Tree returns the committed tree of the latest pass.
func (i *Instance) Tree() *vdom.VNode { return i.tree }

// Store exposes the instance's hook store.
func (i *Instance) Store() *hooks.Store { return i.store }

// Mount performs the initial render and commit synchronously, runs
// layout effects, and defers plain effects past the frame boundary.
func (i *Instance) Mount() error {
	if i.unmounted {
		return ErrUnmounted
	}
	if i.mounted {
		return ErrMounted
	}
	i.mounted = true
	if err := i.renderPass(); err != nil {
		return err
	}
	return i.loop.RequestFrame(func() {
		if err := i.effectsPass(); err != nil {
			i.fail(err)
		}
	})
}

// Update schedules a render pass. Multiple calls before the pass runs
// coalesce.
func (i *Instance) Update() { i.updater.Invalidate() }

// SetProp stages a named prop and schedules a pass when the value
// changed.
func (i *Instance) SetProp(name string, v any) { i.store.SetProp(name, v) }

// Prop reads the current value of a named prop.
func (i *Instance) Prop(name string) (any, bool) { return i.store.Prop(name) }

// State returns the updater's lifecycle phase.
func (i *Instance) State() scheduler.State { return i.updater.State() }

// Unmount tears the instance down: pending passes are suppressed,
// effect cleanups run in reverse mount order, rendered children are
// detached from the host, and the host's back-reference is cleared.
// Idempotent.
func (i *Instance) Unmount() error {
	if i.unmounted {
		return nil
	}
	i.unmounted = true
	i.updater.Unmount()
	err := i.store.Close()

	target := dom.ParentNode(i.host)
	if i.tree != nil && i.host.Shadow() != nil {
		target = i.host.Shadow()
	}
	for _, n := range target.Children() {
		if el, ok := n.(*dom.Element); ok {
			el.NotifyDetach()
		}
		target.RemoveChild(n)
	}
	i.tree = nil
	i.host.SetUserData(nil)
	return err
}

// renderPass runs one render, commit, and layout-effect cycle. A hook
// order violation is fatal and unmounts the instance; other render
// panics surface as errors and leave the previous committed tree in
// place.
func (i *Instance) renderPass() error {
	ctx, err := i.store.Begin()
	if err != nil {
		return err
	}

	var next *vdom.VNode
	err = func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				if e, ok := rec.(error); ok {
					err = e
					return
				}
				err = fmt.Errorf("component: render panic: %v", rec)
			}
		}()
		next = i.render(ctx)
		return i.store.End(ctx)
	}()
	if err != nil {
		var oe *hooks.OrderError
		if errors.As(err, &oe) {
			i.Unmount()
		}
		return err
	}

	if next == nil {
		next = vdom.NewHost(nil)
	}
	tree, patches, err := vdom.Commit(i.host, i.tree, next)
	if err != nil {
		return err
	}
	i.tree = tree
	if i.onPatch != nil && len(patches) > 0 {
		i.onPatch(patches)
	}
	return i.store.FlushLayoutEffects()
}

func (i *Instance) effectsPass() error {
	return i.store.FlushEffects()
}

func (i *Instance) fail(err error) {
	if i.onError != nil && err != nil {
		i.onError(err)
	}
}
