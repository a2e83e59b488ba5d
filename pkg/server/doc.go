// Package server hosts component pages over HTTP and streams live
// updates over WebSocket.
//
// A Server owns a page registry, a session manager, and an HTTP
// router. Page requests render the component tree to HTML. A client
// that upgrades to WebSocket gets a live session: its own update loop,
// host element, and component instance. Commits stream to the client
// as patch frames; client events dispatch into the session's document
// and drive the next commit.
//
// Each session is single-threaded. All of a session's renders, effect
// flushes, and event dispatches run on its read goroutine; only the
// outbound frame queue crosses goroutines.
package server
