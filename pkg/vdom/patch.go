package vdom

import "github.com/Eng-Zeus-Vianna/atomico/pkg/dom"

// PatchOp is the type of a live-document operation performed by Commit.
type PatchOp uint8

const (
	PatchSetText     PatchOp = iota + 1 // update text content
	PatchSetAttr                        // set/update attribute
	PatchRemoveAttr                     // remove attribute
	PatchSetStyle                       // set inline style declaration
	PatchRemoveStyle                    // remove inline style declaration
	PatchSetProp                        // set live property (value, checked)
	PatchBindEvent                      // (re)bind event listener
	PatchInsertNode                     // insert new node
	PatchRemoveNode                     // remove node
	PatchMoveNode                       // move node to new position
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	case PatchSetProp:
		return "SetProp"
	case PatchBindEvent:
		return "BindEvent"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveNode:
		return "MoveNode"
	default:
		return "Unknown"
	}
}

// Patch records one operation Commit applied to the live document. The
// log is what the wire protocol streams to thin clients and what the
// idempotence tests assert on.
type Patch struct {
	Op       PatchOp
	NodeID   string   // target node
	ParentID string   // parent, for structural ops
	Key      string   // attribute/style/prop/event name
	Value    string   // new value, for Set* ops
	Index    int      // position, for insert/move
	Node     dom.Node // inserted node, for InsertNode
}

// patchLog accumulates patches during one commit.
type patchLog struct {
	patches []Patch
}

func (l *patchLog) add(p Patch) {
	l.patches = append(l.patches, p)
}

func (l *patchLog) structural(op PatchOp, parent dom.ParentNode, n dom.Node, index int) {
	p := Patch{Op: op, NodeID: n.ID(), Index: index}
	if el := parentElementID(parent); el != "" {
		p.ParentID = el
	}
	if op == PatchInsertNode {
		p.Node = n
	}
	l.add(p)
}

func parentElementID(parent dom.ParentNode) string {
	switch p := parent.(type) {
	case *dom.Element:
		return p.ID()
	case *dom.ShadowRoot:
		return p.Host().ID()
	}
	return ""
}
