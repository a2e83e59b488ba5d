// Package component binds a render function, a hook store, and an
// updater into a live component instance mounted on a host element.
//
// An instance renders by calling its render function with an open hook
// context, commits the returned tree against the host, flushes layout
// effects synchronously, and defers plain effects past the loop's
// frame boundary. Setter calls inside hooks invalidate the instance's
// updater, which coalesces them into a single scheduled pass.
//
// The host element carries a back-reference to its instance, and
// detaching the host from the document unmounts the instance. Nested
// instances therefore tear down automatically when an ancestor's
// commit removes their hosts.
package component
