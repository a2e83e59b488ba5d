package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/render"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

// Version is the protocol version exchanged during handshake.
const Version = 1

// Handshake is the first frame on a connection, in both directions.
// The client proposes a version and optionally resumes a session; the
// server answers with the session it allocated.
type Handshake struct {
	Version   int    `json:"version"`
	Page      string `json:"page,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Resume    bool   `json:"resume,omitempty"`
}

// EventMsg carries one client interaction to the server.
type EventMsg struct {
	NodeID string          `json:"nodeId"`
	Type   string          `json:"type"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// WirePatch is the JSON form of one commit operation. Inserted
// subtrees travel as serialized HTML.
type WirePatch struct {
	Op       string `json:"op"`
	NodeID   string `json:"nodeId,omitempty"`
	ParentID string `json:"parentId,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
	Index    int    `json:"index"`
	HTML     string `json:"html,omitempty"`
}

// PatchMsg is one commit's ordered mutation log. Seq increments per
// commit so clients can detect gaps and request a resync.
type PatchMsg struct {
	Seq     uint64      `json:"seq"`
	Patches []WirePatch `json:"patches"`
}

// ErrorMsg reports a server-side failure to the client.
type ErrorMsg struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Control carries connection-keeping messages.
type Control struct {
	Kind string `json:"kind"` // "ping", "pong", "resync"
}

// EncodePatches converts a commit's patch log into a Patches frame.
// Inserted nodes serialize through the HTML renderer.
func EncodePatches(seq uint64, patches []vdom.Patch) (*Frame, error) {
	r := render.NewRenderer(render.RendererConfig{})

	msg := PatchMsg{Seq: seq, Patches: make([]WirePatch, 0, len(patches))}
	for _, p := range patches {
		wp := WirePatch{
			Op:       p.Op.String(),
			NodeID:   p.NodeID,
			ParentID: p.ParentID,
			Key:      p.Key,
			Value:    p.Value,
			Index:    p.Index,
		}
		if p.Op == vdom.PatchInsertNode && p.Node != nil {
			html, err := r.RenderToString(p.Node)
			if err != nil {
				return nil, fmt.Errorf("protocol: serialize inserted node: %w", err)
			}
			wp.HTML = html
		}
		msg.Patches = append(msg.Patches, wp)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if len(payload) > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	return NewFrame(FramePatches, payload), nil
}

// DecodePatchMsg decodes a Patches frame payload.
func DecodePatchMsg(payload []byte) (*PatchMsg, error) {
	var msg PatchMsg
	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("protocol: decode patches: %w", err)
	}
	return &msg, nil
}

// EncodeEvent converts an event message into an Event frame.
func EncodeEvent(ev *EventMsg) (*Frame, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return NewFrame(FrameEvent, payload), nil
}

// DecodeEvent decodes an Event frame payload.
func DecodeEvent(payload []byte) (*EventMsg, error) {
	var ev EventMsg
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("protocol: decode event: %w", err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("protocol: event missing type")
	}
	return &ev, nil
}

// EncodeHandshake converts a handshake into a frame.
func EncodeHandshake(h *Handshake) (*Frame, error) {
	payload, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return NewFrame(FrameHandshake, payload), nil
}

// DecodeHandshake decodes a Handshake frame payload.
func DecodeHandshake(payload []byte) (*Handshake, error) {
	var h Handshake
	if err := json.Unmarshal(payload, &h); err != nil {
		return nil, fmt.Errorf("protocol: decode handshake: %w", err)
	}
	return &h, nil
}

// EncodeError converts an error message into a frame.
func EncodeError(code, message string) *Frame {
	payload, _ := json.Marshal(ErrorMsg{Code: code, Message: message})
	return NewFrame(FrameError, payload)
}

// DecodeError decodes an Error frame payload.
func DecodeError(payload []byte) (*ErrorMsg, error) {
	var em ErrorMsg
	if err := json.Unmarshal(payload, &em); err != nil {
		return nil, fmt.Errorf("protocol: decode error message: %w", err)
	}
	return &em, nil
}

// EncodeControl converts a control message into a frame.
func EncodeControl(kind string) *Frame {
	payload, _ := json.Marshal(Control{Kind: kind})
	return NewFrame(FrameControl, payload)
}

// DecodeControl decodes a Control frame payload.
func DecodeControl(payload []byte) (*Control, error) {
	var c Control
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("protocol: decode control: %w", err)
	}
	return &c, nil
}
