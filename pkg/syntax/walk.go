package syntax

import "iter"

// Inspect traverses the tree rooted at root in preorder and calls fn for
// each present node. If fn returns false, the children of that node are skipped.
func Inspect(root *Node, fn func(Cursor) bool) {
	Root(root).Inspect(fn)
}

// Preorder iterates over every node of root, optionally restricted to kinds.
func Preorder(root *Node, kinds ...Kind) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		for c := range Root(root).Descendants() {
			if len(kinds) > 0 && !c.node.Is(kinds...) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Tokens iterates over the token leaves of root in source order.
func Tokens(root *Node) iter.Seq[Cursor] {
	return Preorder(root, KindToken)
}

// Contains reports whether the subtree n contains a node for which pred holds.
func Contains(n *Node, pred func(*Node) bool) bool {
	for c := range Root(n).Descendants() {
		if pred(c.node) {
			return true
		}
	}
	return false
}
