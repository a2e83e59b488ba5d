// Package vdom implements the virtual-node model and the reconciler.
//
// A VNode is an immutable description of a desired live node, produced
// by the pragma (New) every render. Commit diffs the previously
// committed tree against the next one and applies the minimal set of
// mutations to the live document (pkg/dom), returning the committed
// tree and an ordered log of the operations it performed.
//
// The reconciler handles keyed child matching (order changes become
// moves, preserving node identity), mark-bounded dynamic child lists,
// static and cloned subtrees, and shadow-root mounting. A commit of a
// deep-equal tree produces an empty operation log.
package vdom
