package protocol

import (
	"strings"
	"testing"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
	"github.com/Eng-Zeus-Vianna/atomico/pkg/vdom"
)

func TestEncodePatchesCarriesInsertedHTML(t *testing.T) {
	li := dom.NewElement("li")
	li.SetAttribute("class", "row")
	li.AppendChild(dom.NewText("one"))

	frame, err := EncodePatches(7, []vdom.Patch{
		{Op: vdom.PatchInsertNode, NodeID: li.ID(), ParentID: "n1", Index: 0, Node: li},
		{Op: vdom.PatchSetText, NodeID: "n9", Value: "two"},
	})
	if err != nil {
		t.Fatalf("EncodePatches: %v", err)
	}
	if frame.Type != FramePatches {
		t.Errorf("frame type = %v, want Patches", frame.Type)
	}

	msg, err := DecodePatchMsg(frame.Payload)
	if err != nil {
		t.Fatalf("DecodePatchMsg: %v", err)
	}
	if msg.Seq != 7 {
		t.Errorf("Seq = %d, want 7", msg.Seq)
	}
	if len(msg.Patches) != 2 {
		t.Fatalf("patches = %d, want 2", len(msg.Patches))
	}

	ins := msg.Patches[0]
	if ins.Op != "InsertNode" || ins.HTML != `<li class="row">one</li>` {
		t.Errorf("insert patch = %+v", ins)
	}
	if msg.Patches[1].Op != "SetText" || msg.Patches[1].Value != "two" {
		t.Errorf("text patch = %+v", msg.Patches[1])
	}
}

func TestEventRoundTrip(t *testing.T) {
	frame, err := EncodeEvent(&EventMsg{
		NodeID: "n4",
		Type:   "click",
		Detail: []byte(`{"x":10}`),
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	ev, err := DecodeEvent(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev.NodeID != "n4" || ev.Type != "click" {
		t.Errorf("event = %+v", ev)
	}
	if string(ev.Detail) != `{"x":10}` {
		t.Errorf("detail = %s", ev.Detail)
	}
}

func TestDecodeEventRejectsMissingType(t *testing.T) {
	if _, err := DecodeEvent([]byte(`{"nodeId":"n1"}`)); err == nil {
		t.Error("event without type decoded")
	}
	if _, err := DecodeEvent([]byte(`not json`)); err == nil {
		t.Error("malformed payload decoded")
	}
}

func TestHandshakeRoundTrip(t *testing.T) {
	frame, err := EncodeHandshake(&Handshake{Version: Version, SessionID: "s1", Resume: true})
	if err != nil {
		t.Fatalf("EncodeHandshake: %v", err)
	}
	h, err := DecodeHandshake(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeHandshake: %v", err)
	}
	if h.Version != Version || h.SessionID != "s1" || !h.Resume {
		t.Errorf("handshake = %+v", h)
	}
}

func TestErrorAndControlFrames(t *testing.T) {
	em, err := DecodeError(EncodeError("render_failed", "boom").Payload)
	if err != nil {
		t.Fatalf("DecodeError: %v", err)
	}
	if em.Code != "render_failed" || em.Message != "boom" {
		t.Errorf("error msg = %+v", em)
	}

	c, err := DecodeControl(EncodeControl("ping").Payload)
	if err != nil {
		t.Fatalf("DecodeControl: %v", err)
	}
	if c.Kind != "ping" {
		t.Errorf("control kind = %q, want ping", c.Kind)
	}
}

func TestEncodePatchesRejectsOversizedPayload(t *testing.T) {
	big := dom.NewElement("div")
	big.AppendChild(dom.NewText(strings.Repeat("x", MaxPayloadSize)))

	_, err := EncodePatches(1, []vdom.Patch{
		{Op: vdom.PatchInsertNode, NodeID: big.ID(), Index: 0, Node: big},
	})
	if err == nil {
		t.Error("oversized patch payload encoded")
	}
}
