// Package protocol defines the wire format between a rendering server
// and its clients.
//
// Every message travels in a binary frame: a 4 byte header carrying
// the frame type, flags, and payload length, followed by the payload.
// Payloads are JSON documents. Patch frames carry the ordered mutation
// log of one commit; freshly inserted subtrees travel as serialized
// HTML. Event frames carry client interactions back to the server.
//
// Frames are independent of the transport. The server streams them
// over WebSocket messages; ReadFrame and WriteFrame also work over any
// byte stream.
package protocol
