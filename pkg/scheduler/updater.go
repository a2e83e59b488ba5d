package scheduler

import "sync"

// State is an Updater lifecycle phase.
type State uint8

const (
	StateIdle State = iota
	StateScheduled
	StateRendering
	StateCommitted
	StateEffectsPending
	StateUnmounted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScheduled:
		return "Scheduled"
	case StateRendering:
		return "Rendering"
	case StateCommitted:
		return "Committed"
	case StateEffectsPending:
		return "EffectsPending"
	case StateUnmounted:
		return "Unmounted"
	default:
		return "Unknown"
	}
}

// Updater sequences one instance's render cycle on a Loop. Any number
// of Invalidate calls collapse into a single scheduled render pass;
// invalidations arriving while a pass is in flight mark the instance
// for one more pass after the current one settles.
type Updater struct {
	loop *Loop

	// render performs render, commit, and layout effects synchronously.
	render func() error
	// effects runs the plain effect queue after the frame boundary.
	effects func() error
	// onError receives render and effect failures. May be nil.
	onError func(error)

	mu    sync.Mutex
	state State
	again bool
}

// NewUpdater creates an idle updater bound to the loop.
func NewUpdater(loop *Loop, render, effects func() error, onError func(error)) *Updater {
	return &Updater{
		loop:    loop,
		render:  render,
		effects: effects,
		onError: onError,
	}
}

// State returns the current lifecycle phase.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Invalidate requests a render pass. Idle instances schedule one
// microtask; already scheduled instances absorb the call; in-flight
// instances queue exactly one follow-up pass. No-op after Unmount.
func (u *Updater) Invalidate() {
	u.mu.Lock()
	switch u.state {
	case StateUnmounted, StateScheduled:
		u.mu.Unlock()
		return
	case StateIdle:
		u.state = StateScheduled
		u.mu.Unlock()
		if err := u.loop.Enqueue(u.run); err != nil {
			u.mu.Lock()
			u.state = StateIdle
			u.mu.Unlock()
			u.fail(err)
		}
		return
	default:
		u.again = true
		u.mu.Unlock()
	}
}

// Unmount terminates the updater from any state. Queued tasks become
// no-ops when they eventually run.
func (u *Updater) Unmount() {
	u.mu.Lock()
	u.state = StateUnmounted
	u.again = false
	u.mu.Unlock()
}

func (u *Updater) run() {
	u.mu.Lock()
	if u.state != StateScheduled {
		u.mu.Unlock()
		return
	}
	u.state = StateRendering
	u.mu.Unlock()

	err := u.render()

	u.mu.Lock()
	if u.state == StateUnmounted {
		u.mu.Unlock()
		if err != nil {
			u.fail(err)
		}
		return
	}
	if err != nil {
		u.state = StateIdle
		again := u.again
		u.again = false
		u.mu.Unlock()
		u.fail(err)
		if again {
			u.Invalidate()
		}
		return
	}
	u.state = StateCommitted
	u.mu.Unlock()

	// Frame tasks execute on the loop goroutine, never concurrently
	// with this call, so the state settles before runEffects can fire.
	if err := u.loop.RequestFrame(u.runEffects); err != nil {
		u.mu.Lock()
		if u.state == StateCommitted {
			u.state = StateIdle
		}
		u.mu.Unlock()
		u.fail(err)
		return
	}
	u.mu.Lock()
	if u.state == StateCommitted {
		u.state = StateEffectsPending
	}
	u.mu.Unlock()
}

func (u *Updater) runEffects() {
	u.mu.Lock()
	if u.state != StateEffectsPending {
		u.mu.Unlock()
		return
	}
	u.mu.Unlock()

	err := u.effects()

	u.mu.Lock()
	if u.state == StateUnmounted {
		u.mu.Unlock()
		if err != nil {
			u.fail(err)
		}
		return
	}
	u.state = StateIdle
	again := u.again
	u.again = false
	u.mu.Unlock()

	if err != nil {
		u.fail(err)
	}
	if again {
		u.Invalidate()
	}
}

func (u *Updater) fail(err error) {
	if u.onError != nil && err != nil {
		u.onError(err)
	}
}
