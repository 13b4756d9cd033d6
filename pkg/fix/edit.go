package fix

import (
	"slices"

	"github.com/leapstack-labs/sharplint/pkg/format"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// Replace returns the root of target's tree with target replaced by n. The
// outer trivia of target is moved onto n.
func Replace(target syntax.Cursor, n *syntax.Node) *syntax.Node {
	n = syntax.WithLeadingTrivia(n, syntax.LeadingTrivia(target.Node()))
	n = syntax.WithTrailingTrivia(n, syntax.TrailingTrivia(target.Node()))
	return target.Replace(n)
}

// ReplaceElement replaces the list element at target by nodes, which are
// laid out as they are given. It returns nil when target is not a list
// element.
func ReplaceElement(target syntax.Cursor, nodes ...*syntax.Node) *syntax.Node {
	list := target.Parent()
	if !list.Valid() || list.Kind() != syntax.KindList {
		return nil
	}
	items := slices.Clone(list.Node().Children())
	items = slices.Replace(items, target.Index(), target.Index()+1, nodes...)
	return list.Replace(list.Node().WithChildren(items))
}

// AppendElement appends n to the list at list.
func AppendElement(list syntax.Cursor, n *syntax.Node) *syntax.Node {
	if !list.Valid() || list.Kind() != syntax.KindList {
		return nil
	}
	items := append(slices.Clone(list.Node().Children()), n)
	return list.Replace(list.Node().WithChildren(items))
}

// RemoveElement removes the list element at target, together with the line
// it occupies. With keepComments set, the comments found in the element's
// trivia move onto the next line at the element's indentation. It returns
// nil when target is not a list element.
func RemoveElement(target syntax.Cursor, keepComments bool) *syntax.Node {
	list := target.Parent()
	if !list.Valid() || list.Kind() != syntax.KindList {
		return nil
	}
	n := target.Node()
	var keep []syntax.Trivia
	if keepComments {
		ts := append(slices.Clone(syntax.LeadingTrivia(n)), syntax.TrailingTrivia(n)...)
		keep = format.CommentLines(ts, format.IndentOf(n))
	}
	idx := target.Index()
	items := slices.Delete(slices.Clone(list.Node().Children()), idx, idx+1)
	if len(keep) == 0 {
		return list.Replace(list.Node().WithChildren(items))
	}
	if idx < len(items) {
		items[idx] = prependLeading(items[idx], keep)
		return list.Replace(list.Node().WithChildren(items))
	}

	// Last element: the comments go before the token that follows the list.
	parent := list.Parent()
	if !parent.Valid() {
		return list.Replace(list.Node().WithChildren(items))
	}
	node := parent.Node().WithChild(list.Index(), list.Node().WithChildren(items))
	for j := list.Index() + 1; j < node.Len(); j++ {
		if next := node.Child(j); next != nil {
			node = node.WithChild(j, prependLeading(next, keep))
			break
		}
	}
	return parent.Replace(node)
}

func prependLeading(n *syntax.Node, ts []syntax.Trivia) *syntax.Node {
	lead := append(slices.Clone(ts), syntax.LeadingTrivia(n)...)
	return syntax.WithLeadingTrivia(n, lead)
}
