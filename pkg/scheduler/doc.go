// Package scheduler provides the cooperative update loop that drives
// component rendering.
//
// A Loop owns two task lanes. The microtask lane holds render passes
// and other work that must complete before the current flush settles.
// The frame lane holds work deferred past the paint boundary, chiefly
// plain effects. Flush drains the microtask lane, then one frame
// batch, then the microtask lane again, until both are empty.
//
// Each component instance owns an Updater, a small state machine that
// coalesces invalidations into at most one scheduled render pass and
// sequences the render, commit, and effect phases on the loop.
//
// Tasks run on the goroutine calling Flush or Run. Enqueue,
// RequestFrame, and Updater.Invalidate are safe to call from any
// goroutine.
package scheduler
