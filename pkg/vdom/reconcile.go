package vdom

import (
	"errors"

	"github.com/Eng-Zeus-Vianna/atomico/pkg/dom"
)

var (
	// ErrContainerRequired is returned when Commit is called without a
	// container.
	ErrContainerRequired = errors.New("vdom: commit container required")

	// ErrNilTree is returned when Commit is called with a nil next tree.
	ErrNilTree = errors.New("vdom: commit next tree required")

	// ErrNilConstructor is returned when a RawCtor node's constructor
	// produces nil.
	ErrNilConstructor = errors.New("vdom: constructor returned nil element")

	// ErrNilLiveNode is returned when a RawNode VNode carries no live
	// element.
	ErrNilLiveNode = errors.New("vdom: live-instance node is nil")

	// ErrCloneWithoutTemplate is returned when a VNode requests
	// cloning but has no live template element to clone from.
	ErrCloneWithoutTemplate = errors.New("vdom: cloneNode requires a live template element")
)

// slotKind discriminates the committed representation of one child
// position.
type slotKind uint8

const (
	slotNode slotKind = iota + 1 // a committed child VNode
	slotText                     // a primitive rendered as a text node
	slotList                     // a mark-bounded dynamic range
)

type slot struct {
	kind  slotKind
	vnode *VNode
	text  *dom.Text
	value string
	list  *listState
}

// listState is the bookkeeping for a mark-bounded child range.
type listState struct {
	start, end *dom.Text
	items      []slot
}

// Commit performs one render pass: it diffs prev (the committed tree of
// the previous pass, nil on first mount) against next and applies the
// minimal mutations to container. It returns the committed tree to keep
// for the next pass and the ordered log of operations applied.
//
// The root node is special: it describes the host itself. Its props
// apply to the container element, its children render inside the
// container — or inside the container's shadow root when the root
// declares Shadow. The shadow decision is fixed at first mount.
//
// An error applying a subtree aborts that subtree and is returned;
// already-applied sibling mutations stay in place.
func Commit(container dom.ParentNode, prev, next *VNode) (*VNode, []Patch, error) {
	if container == nil {
		return nil, nil, ErrContainerRequired
	}
	if next == nil {
		return nil, nil, ErrNilTree
	}

	c := &committer{log: &patchLog{}}

	var hostEl *dom.Element
	target := container
	switch t := container.(type) {
	case *dom.Element:
		hostEl = t
	case *dom.ShadowRoot:
		hostEl = t.Host()
	}

	// The shadow decision latches at first mount; later renders keep
	// whatever the first commit chose.
	if prev != nil {
		next.shadowed = prev.shadowed
	} else {
		next.shadowed = next.Shadow
	}
	if next.shadowed && hostEl != nil {
		if _, already := container.(*dom.ShadowRoot); !already {
			target = hostEl.AttachShadow()
		}
	}

	var prevProps Props
	var oldSlots []slot
	if prev != nil {
		prevProps = prev.Props
		oldSlots = prev.slots
		next.handles = prev.handles
	}

	next.node = hostEl
	if hostEl != nil {
		applyProps(hostEl, next, prevProps, next.Props, c)
	}

	slots, err := c.patchSequence(target, nil, oldSlots, childItems(next.Children))
	next.slots = slots
	return next, c.log.patches, err
}

// committer carries per-commit state. quiet suppresses patch logging
// inside freshly mounted subtrees, whose interior operations are
// implied by their top-level insert.
type committer struct {
	log   *patchLog
	quiet int
}

func (c *committer) record(p Patch) {
	if c.quiet == 0 {
		c.log.add(p)
	}
}

// childItems normalizes a VNode's Children value into a flat item
// sequence. Nil entries are dropped.
func childItems(children any) []any {
	var raw []any
	switch kids := children.(type) {
	case nil:
		return nil
	case []any:
		raw = kids
	case []*VNode:
		raw = make([]any, len(kids))
		for i, k := range kids {
			raw[i] = k
		}
	default:
		raw = []any{kids}
	}

	items := make([]any, 0, len(raw))
	for _, it := range raw {
		switch v := it.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				items = append(items, v)
			}
		case []*VNode:
			items = append(items, v)
		default:
			items = append(items, it)
		}
	}
	return items
}

// itemKind classifies one normalized child item.
func itemKind(item any) slotKind {
	switch item.(type) {
	case *VNode:
		return slotNode
	case []any, []*VNode:
		return slotList
	default:
		return slotText
	}
}

// cursor tracks the placement position inside one child region while
// its items are processed left to right.
type cursor struct {
	parent dom.ParentNode
	after  dom.Node // last node placed; nil means region start
	top    bool     // region starts at the parent's first child
}

func (cu *cursor) next() dom.Node {
	if cu.after == nil {
		if cu.top {
			return cu.parent.FirstChild()
		}
		return nil
	}
	return cu.parent.NextSibling(cu.after)
}

// place ensures n sits immediately after the cursor, moving or
// inserting it as needed. fresh marks a node entering the tree for
// the first time.
func (cu *cursor) place(c *committer, n dom.Node, fresh bool) {
	ref := cu.next()
	if !fresh && n.Parent() == cu.parent && ref == n {
		cu.after = n
		return
	}

	cu.parent.InsertBefore(n, ref)
	op := PatchMoveNode
	if fresh {
		op = PatchInsertNode
	}
	if c.quiet == 0 {
		c.log.structural(op, cu.parent, n, cu.parent.IndexOf(n))
	}
	cu.after = n
}

// patchSequence reconciles one child region of parent: the committed
// old slots against the next items. start is the mark opening the
// region, or nil when the region is the parent's whole child list.
func (c *committer) patchSequence(parent dom.ParentNode, start dom.Node, old []slot, items []any) ([]slot, error) {
	cu := &cursor{parent: parent, after: start, top: start == nil}

	keyed := hasKeys(old, items)
	var err error
	var newSlots []slot
	if keyed {
		newSlots, err = c.patchKeyed(cu, old, items)
	} else {
		newSlots, err = c.patchPositional(cu, old, items)
	}
	return newSlots, err
}

func hasKeys(old []slot, items []any) bool {
	for _, s := range old {
		if s.kind == slotNode && s.vnode.Key != nil {
			return true
		}
	}
	for _, it := range items {
		if v, ok := it.(*VNode); ok && v.Key != nil {
			return true
		}
	}
	return false
}

// patchPositional matches children by index. A length mismatch mounts
// or unmounts the tail.
func (c *committer) patchPositional(cu *cursor, old []slot, items []any) ([]slot, error) {
	newSlots := make([]slot, 0, len(items))

	for i, item := range items {
		var prev *slot
		if i < len(old) && old[i].kind == itemKind(item) && reusable(old[i], item) {
			prev = &old[i]
		} else if i < len(old) {
			c.unmountSlot(cu.parent, old[i])
			old[i].kind = 0 // consumed
		}

		s, err := c.patchItem(cu, prev, item)
		if err != nil {
			return newSlots, err
		}
		newSlots = append(newSlots, s)
	}

	for i := len(items); i < len(old); i++ {
		c.unmountSlot(cu.parent, old[i])
	}
	return newSlots, nil
}

// patchKeyed matches children by key. Matched pairs are diffed in
// place; order changes become moves so live node identity survives.
// Unkeyed entries in a keyed list mount fresh.
func (c *committer) patchKeyed(cu *cursor, old []slot, items []any) ([]slot, error) {
	byKey := make(map[any]int)
	for i, s := range old {
		if s.kind == slotNode && s.vnode.Key != nil {
			byKey[s.vnode.Key] = i
		}
	}

	consumed := make([]bool, len(old))
	newSlots := make([]slot, 0, len(items))

	for _, item := range items {
		var prev *slot
		if v, ok := item.(*VNode); ok && v.Key != nil {
			if i, found := byKey[v.Key]; found && !consumed[i] && sameType(old[i].vnode, v) {
				prev = &old[i]
				consumed[i] = true
			} else if found && !consumed[i] {
				// Key matched but the type changed: remount.
				c.unmountSlot(cu.parent, old[i])
				consumed[i] = true
			}
		}

		s, err := c.patchItem(cu, prev, item)
		if err != nil {
			// Unmount leftovers so the region is not left with
			// duplicated keys, then surface the error.
			for i, s := range old {
				if !consumed[i] && s.kind != 0 {
					c.unmountSlot(cu.parent, s)
				}
			}
			return newSlots, err
		}
		newSlots = append(newSlots, s)
	}

	for i, s := range old {
		if !consumed[i] {
			c.unmountSlot(cu.parent, s)
		}
	}
	return newSlots, nil
}

// reusable reports whether a committed slot can be updated in place by
// the given item (kinds already match).
func reusable(s slot, item any) bool {
	if s.kind != slotNode {
		return true
	}
	v, ok := item.(*VNode)
	return ok && sameType(s.vnode, v)
}

// patchItem mounts or updates one item and places it at the cursor.
func (c *committer) patchItem(cu *cursor, prev *slot, item any) (slot, error) {
	switch v := item.(type) {
	case *VNode:
		if prev != nil {
			if err := c.patchVNode(prev.vnode, v); err != nil {
				return slot{}, err
			}
			cu.place(c, v.node, false)
			return slot{kind: slotNode, vnode: v}, nil
		}
		if err := c.mountVNode(v); err != nil {
			return slot{}, err
		}
		cu.place(c, v.node, true)
		return slot{kind: slotNode, vnode: v}, nil

	case []any, []*VNode:
		items := childItems(v)
		if prev != nil {
			ls := prev.list
			cu.place(c, ls.start, false)
			inner, err := c.patchSequence(cu.parent, ls.start, ls.items, items)
			ls.items = inner
			if err != nil {
				return slot{kind: slotList, list: ls}, err
			}
			for _, n := range slotRangeNodes(inner) {
				cu.after = n
			}
			cu.place(c, ls.end, false)
			return slot{kind: slotList, list: ls}, nil
		}

		ls := &listState{start: dom.NewMark(), end: dom.NewMark()}
		cu.place(c, ls.start, true)
		inner, err := c.patchSequence(cu.parent, ls.start, nil, items)
		ls.items = inner
		if err != nil {
			return slot{kind: slotList, list: ls}, err
		}
		for _, n := range slotRangeNodes(inner) {
			cu.after = n
		}
		cu.place(c, ls.end, true)
		return slot{kind: slotList, list: ls}, nil

	default:
		value := propToString(item)
		if prev != nil {
			if prev.value != value {
				prev.text.SetData(value)
				c.record(Patch{Op: PatchSetText, NodeID: prev.text.ID(), Value: value})
			}
			cu.place(c, prev.text, false)
			return slot{kind: slotText, text: prev.text, value: value}, nil
		}
		txt := dom.NewText(value)
		cu.place(c, txt, true)
		return slot{kind: slotText, text: txt, value: value}, nil
	}
}

// slotRangeNodes returns the ordered live nodes a slot sequence spans.
func slotRangeNodes(slots []slot) []dom.Node {
	var nodes []dom.Node
	for _, s := range slots {
		nodes = append(nodes, slotNodes(s)...)
	}
	return nodes
}

func slotNodes(s slot) []dom.Node {
	switch s.kind {
	case slotNode:
		return []dom.Node{s.vnode.node}
	case slotText:
		return []dom.Node{s.text}
	case slotList:
		nodes := []dom.Node{s.list.start}
		nodes = append(nodes, slotRangeNodes(s.list.items)...)
		return append(nodes, s.list.end)
	}
	return nil
}

// mountVNode builds the live node for v and its subtree. The node is
// left detached; the caller places it.
func (c *committer) mountVNode(v *VNode) error {
	if v.Clone && v.Raw != RawNode {
		return ErrCloneWithoutTemplate
	}

	var el *dom.Element
	switch v.Raw {
	case RawNone:
		if v.Is != "" {
			el = dom.NewBuiltin(v.TagName, v.Is)
		} else {
			el = dom.NewElement(v.TagName)
		}
	case RawNode:
		el = v.LiveNode
		if el == nil {
			return ErrNilLiveNode
		}
		if v.Clone {
			el = v.LiveNode.Clone(true).(*dom.Element)
		}
	case RawCtor:
		if v.Ctor == nil {
			return ErrNilConstructor
		}
		el = v.Ctor()
		if el == nil {
			return ErrNilConstructor
		}
	}

	// Everything below is implied by the top-level insert the caller
	// records, so none of it reaches the patch log.
	v.node = el
	c.quiet++
	applyProps(el, v, nil, v.Props, c)

	// A clone keeps its template's subtree; it is not diffed child by
	// child.
	if v.Clone {
		c.quiet--
		return nil
	}

	slots, err := c.patchSequence(el, nil, nil, childItems(v.Children))
	c.quiet--
	v.slots = slots
	return err
}

// patchVNode updates a reused live node in place.
func (c *committer) patchVNode(prev, next *VNode) error {
	next.node = prev.node
	next.handles = prev.handles

	// A static subtree is frozen after its first commit.
	if prev.Static || next.Static {
		next.slots = prev.slots
		next.Static = true
		return nil
	}

	el, isElement := prev.node.(*dom.Element)
	if !isElement {
		return nil
	}

	applyProps(el, next, prev.Props, next.Props, c)

	if next.Clone {
		next.slots = prev.slots
		return nil
	}

	slots, err := c.patchSequence(el, nil, prev.slots, childItems(next.Children))
	next.slots = slots
	return err
}

// unmountSlot removes a committed slot's live nodes from the tree,
// notifying element subtrees so nested instances can tear down.
func (c *committer) unmountSlot(parent dom.ParentNode, s slot) {
	for _, n := range slotNodes(s) {
		if el, ok := n.(*dom.Element); ok {
			el.NotifyDetach()
		}
		id := n.ID()
		parent.RemoveChild(n)
		c.record(Patch{Op: PatchRemoveNode, NodeID: id, ParentID: parentElementID(parent)})
	}
}
