package dom

// Text is a live text node. Marks are text nodes with no renderable
// content used by the reconciler to bound dynamic child ranges; they
// are identified structurally via IsMark, never by their data.
type Text struct {
	id     string
	parent ParentNode
	data   string
	mark   bool
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	return &Text{id: nextNodeID(), data: data}
}

// NewMark creates a zero-width sentinel text node.
func NewMark() *Text {
	return &Text{id: nextNodeID(), mark: true}
}

// ID implements Node.
func (t *Text) ID() string { return t.id }

// Parent implements Node.
func (t *Text) Parent() ParentNode { return t.parent }

func (t *Text) setParent(p ParentNode) { t.parent = p }

// Data returns the text content. Marks always return "".
func (t *Text) Data() string { return t.data }

// SetData replaces the text content. No-op on marks.
func (t *Text) SetData(data string) {
	if t.mark {
		return
	}
	t.data = data
}

// IsMark reports whether this node is a reconciler sentinel.
func (t *Text) IsMark() bool { return t.mark }

// Clone implements Node.
func (t *Text) Clone(bool) Node {
	return &Text{id: nextNodeID(), data: t.data, mark: t.mark}
}
