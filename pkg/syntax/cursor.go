package syntax

import (
	"iter"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Cursor is a node together with its path from the root.
//
// Cursors are values. They are only valid for the root they were derived
// from; after a rewrite, navigate again from the new root.
type Cursor struct {
	node   *Node
	parent *Cursor
	index  int // slot index in parent
	pos    int // full start offset
}

// Root returns a cursor at root.
func Root(root *Node) Cursor {
	return Cursor{node: root, index: -1}
}

// Node returns the node under the cursor.
func (c Cursor) Node() *Node { return c.node }

// Kind returns the kind of the node under the cursor.
func (c Cursor) Kind() Kind { return c.node.Kind() }

// Valid reports whether the cursor points to a node.
func (c Cursor) Valid() bool { return c.node != nil }

// Index returns the slot index of the node in its parent, or -1 for the root.
func (c Cursor) Index() int { return c.index }

// Role returns the slot role of the node in its parent.
func (c Cursor) Role() Role {
	if c.parent == nil {
		return RoleNone
	}
	layout := Layout(c.parent.Kind())
	if c.index < len(layout) {
		return layout[c.index]
	}
	return RoleNone
}

// Parent returns the parent cursor, or an invalid cursor at the root.
func (c Cursor) Parent() Cursor {
	if c.parent == nil {
		return Cursor{}
	}
	return *c.parent
}

// RootCursor returns the cursor of the tree root.
func (c Cursor) RootCursor() Cursor {
	for c.parent != nil {
		c = *c.parent
	}
	return c
}

// Child returns a cursor at child slot i. The result is invalid when the
// slot is empty.
func (c Cursor) Child(i int) Cursor {
	child := c.node.Child(i)
	if child == nil {
		return Cursor{}
	}
	pos := c.pos
	for _, sib := range c.node.children[:i] {
		pos += sib.Width()
	}
	p := c
	return Cursor{node: child, parent: &p, index: i, pos: pos}
}

// Field returns a cursor at slot r.
func (c Cursor) Field(r Role) Cursor {
	if c.node == nil {
		return Cursor{}
	}
	return c.Child(slotIndex(c.node.kind, r))
}

// Children iterates over the present children.
func (c Cursor) Children() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		if c.node == nil {
			return
		}
		p := c
		pos := c.pos
		for i, child := range c.node.children {
			if child == nil {
				continue
			}
			if !yield(Cursor{node: child, parent: &p, index: i, pos: pos}) {
				return
			}
			pos += child.width
		}
	}
}

// Elements iterates over the items of a list cursor, skipping separators.
func (c Cursor) Elements() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for child := range c.Children() {
			if c.Kind() == KindSeparatedList && child.index%2 == 1 {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// AncestorsAndSelf iterates from c up to the root.
func (c Cursor) AncestorsAndSelf() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for cur := c; cur.node != nil; cur = cur.Parent() {
			if !yield(cur) {
				return
			}
		}
	}
}

// Ancestors iterates from the parent of c up to the root.
func (c Cursor) Ancestors() iter.Seq[Cursor] {
	return c.Parent().AncestorsAndSelf()
}

// FirstAncestorOrSelf returns the nearest cursor, starting at c, whose kind
// is one of kinds.
func (c Cursor) FirstAncestorOrSelf(kinds ...Kind) (Cursor, bool) {
	for cur := range c.AncestorsAndSelf() {
		if cur.node.Is(kinds...) {
			return cur, true
		}
	}
	return Cursor{}, false
}

// FullSpan returns the byte range of the node including trivia.
func (c Cursor) FullSpan() token.Span {
	return token.Span{Start: c.pos, End: c.pos + c.node.Width()}
}

// Span returns the byte range of the node without its outer trivia.
func (c Cursor) Span() token.Span {
	if c.node == nil {
		return token.Span{Start: c.pos, End: c.pos}
	}
	lead, trail := c.node.outerTriviaWidths()
	return token.Span{Start: c.pos + lead, End: c.pos + c.node.width - trail}
}

// Replace returns a new root in which the node under c is replaced by n.
// A nil n clears an optional slot.
func (c Cursor) Replace(n *Node) *Node {
	for c.parent != nil {
		parent := *c.parent
		n = parent.node.WithChild(c.index, n)
		c = parent
	}
	return n
}

// Descendants iterates over all descendants of c in source order (preorder),
// including c itself.
func (c Cursor) Descendants() iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		inspect(c, func(cur Cursor) bool { return true }, yield)
	}
}

// Inspect walks the subtree at c in preorder. If fn returns false, the
// children of that node are skipped.
func (c Cursor) Inspect(fn func(Cursor) bool) {
	inspect(c, fn, func(Cursor) bool { return true })
}

func inspect(c Cursor, descend func(Cursor) bool, yield func(Cursor) bool) bool {
	if c.node == nil {
		return true
	}
	if !yield(c) {
		return false
	}
	if !descend(c) {
		return true
	}
	for child := range c.Children() {
		if !inspect(child, descend, yield) {
			return false
		}
	}
	return true
}

// FindToken returns the token whose full span contains pos. A position at
// or past the end of the text yields the last token.
func FindToken(root *Node, pos int) Cursor {
	c := Root(root)
	if root == nil {
		return c
	}
	if pos >= root.width {
		pos = root.width - 1
	}
	if pos < 0 {
		pos = 0
	}
	for !c.node.IsToken() {
		next := Cursor{}
		for child := range c.Children() {
			if child.node.width == 0 {
				continue
			}
			next = child
			if pos < child.pos+child.node.width {
				break
			}
		}
		if !next.Valid() {
			return c
		}
		c = next
	}
	return c
}

// FindNode returns the innermost cursor whose span equals span and whose
// kind is one of kinds. It returns false when no such node exists.
func FindNode(root *Node, span token.Span, kinds ...Kind) (Cursor, bool) {
	tok := FindToken(root, span.Start)
	for cur := range tok.AncestorsAndSelf() {
		s := cur.Span()
		if s.Start < span.Start || s.End > span.End {
			break
		}
		if s == span && (len(kinds) == 0 || cur.node.Is(kinds...)) {
			return cur, true
		}
	}
	return Cursor{}, false
}
