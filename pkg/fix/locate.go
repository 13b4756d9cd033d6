package fix

import (
	"slices"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Locate finds the node a diagnostic at span refers to: the token at the
// start of the span, then the first of its ancestors (or itself) whose
// kind is one of kinds. When nodes of those kinds are nested and start at
// the same offset, the one covering exactly span wins. The result is false
// when no such node exists or the span lies outside the tree.
func Locate(root *syntax.Node, span token.Span, kinds ...syntax.Kind) (syntax.Cursor, bool) {
	if root == nil || span.Start < 0 || span.Start >= root.Width() {
		return syntax.Cursor{}, false
	}
	tok := syntax.FindToken(root, span.Start)
	if len(kinds) == 0 {
		return tok, tok.Valid()
	}
	first, ok := tok.FirstAncestorOrSelf(kinds...)
	if !ok {
		return first, false
	}
	for c := range first.AncestorsAndSelf() {
		if c.Span().Start != span.Start {
			break
		}
		if c.Span() == span && slices.Contains(kinds, c.Kind()) {
			return c, true
		}
	}
	return first, true
}
