// Package dom provides the in-memory live document that the reconciler
// mutates. It models the subset of the DOM the engine needs: elements
// with attributes, inline styles, event listeners and an optional shadow
// root; text nodes (including the zero-width mark sentinels used to
// bound dynamic child ranges); and synchronous event dispatch with
// bubbling.
//
// The package has no dependencies and no notion of rendering or
// components. Higher layers (pkg/vdom, pkg/component) build on it; the
// HTML serializer in pkg/render walks it.
//
// Nodes are not safe for concurrent mutation. The owning instance's
// scheduler guarantees that a subtree is only ever mutated from one
// render pass at a time.
package dom
