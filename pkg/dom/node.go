package dom

import (
	"strconv"
	"sync/atomic"
)

// nodeIDCounter assigns a unique ID to every node created in the
// process. IDs identify nodes in patch logs and on the wire.
var nodeIDCounter atomic.Uint64

func nextNodeID() string {
	return "n" + strconv.FormatUint(nodeIDCounter.Add(1), 10)
}

// Node is a member of the live tree: an *Element or a *Text.
type Node interface {
	// ID returns the process-unique identifier of this node.
	ID() string

	// Parent returns the parent container, or nil for a detached node.
	Parent() ParentNode

	// Clone returns a copy of this node. Event listeners and user data
	// are not copied; children are copied only when deep is true.
	Clone(deep bool) Node

	setParent(ParentNode)
}

// ParentNode is a container of child nodes: an *Element or a *ShadowRoot.
type ParentNode interface {
	// AppendChild adds n as the last child, detaching it from any
	// previous parent first.
	AppendChild(n Node)

	// InsertBefore inserts n immediately before ref. A nil ref appends.
	// Inserting a node that is already a child moves it.
	InsertBefore(n, ref Node)

	// RemoveChild detaches n. It is a no-op if n is not a child.
	RemoveChild(n Node)

	// ReplaceChild swaps old for n in place. No-op if old is not a child.
	ReplaceChild(n, old Node)

	// Children returns the current child list. The returned slice is a
	// copy; mutating it does not affect the tree.
	Children() []Node

	// IndexOf returns the position of n among the children, or -1.
	IndexOf(n Node) int

	// FirstChild returns the first child or nil.
	FirstChild() Node

	// NextSibling returns the child following n, or nil.
	NextSibling(n Node) Node

	// element returns the element through which events bubble out of
	// this container, or nil at the top of a detached tree.
	element() *Element
}

// childList is the shared child bookkeeping for Element and ShadowRoot.
type childList struct {
	kids []Node
}

func (c *childList) Children() []Node {
	out := make([]Node, len(c.kids))
	copy(out, c.kids)
	return out
}

func (c *childList) IndexOf(n Node) int {
	for i, k := range c.kids {
		if k == n {
			return i
		}
	}
	return -1
}

// FirstChild returns the first child or nil.
func (c *childList) FirstChild() Node {
	if len(c.kids) == 0 {
		return nil
	}
	return c.kids[0]
}

// NextSibling returns the child following n, or nil.
func (c *childList) NextSibling(n Node) Node {
	i := c.IndexOf(n)
	if i < 0 || i+1 >= len(c.kids) {
		return nil
	}
	return c.kids[i+1]
}

func (c *childList) append(parent ParentNode, n Node) {
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
	n.setParent(parent)
	c.kids = append(c.kids, n)
}

func (c *childList) insertBefore(parent ParentNode, n, ref Node) {
	if n == ref {
		return
	}
	if ref == nil || c.IndexOf(ref) < 0 {
		c.append(parent, n)
		return
	}
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
	n.setParent(parent)
	i := c.IndexOf(ref)
	c.kids = append(c.kids, nil)
	copy(c.kids[i+1:], c.kids[i:])
	c.kids[i] = n
}

func (c *childList) remove(n Node) bool {
	i := c.IndexOf(n)
	if i < 0 {
		return false
	}
	c.kids = append(c.kids[:i], c.kids[i+1:]...)
	n.setParent(nil)
	return true
}

func (c *childList) replace(parent ParentNode, n, old Node) {
	i := c.IndexOf(old)
	if i < 0 {
		return
	}
	if p := n.Parent(); p != nil {
		p.RemoveChild(n)
	}
	old.setParent(nil)
	n.setParent(parent)
	c.kids[i] = n
}
