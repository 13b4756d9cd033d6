package syntax

import (
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Common trivia values.
var (
	Space   = Trivia{Kind: token.Whitespace, Text: " "}
	Newline = Trivia{Kind: token.EndOfLine, Text: "\n"}
)

// Spaces returns a whitespace trivia of n spaces.
func Spaces(n int) Trivia {
	return Trivia{Kind: token.Whitespace, Text: strings.Repeat(" ", n)}
}

// FirstToken returns the first token leaf of n, or nil if n contains none.
func FirstToken(n *Node) *Node {
	if n == nil || n.kind == KindToken {
		return n
	}
	for _, c := range n.children {
		if t := FirstToken(c); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last token leaf of n, or nil if n contains none.
func LastToken(n *Node) *Node {
	if n == nil || n.kind == KindToken {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if t := LastToken(n.children[i]); t != nil {
			return t
		}
	}
	return nil
}

// LeadingTrivia returns the leading trivia of the first token of n.
func LeadingTrivia(n *Node) []Trivia {
	return FirstToken(n).LeadingTrivia()
}

// TrailingTrivia returns the trailing trivia of the last token of n.
func TrailingTrivia(n *Node) []Trivia {
	return LastToken(n).TrailingTrivia()
}

// WithLeadingTrivia returns n with the leading trivia of its first token replaced.
func WithLeadingTrivia(n *Node, ts []Trivia) *Node {
	out, _ := mapEdgeToken(n, true, func(t *Node) *Node { return t.WithTrivia(ts, t.trailing) })
	return out
}

// WithTrailingTrivia returns n with the trailing trivia of its last token replaced.
func WithTrailingTrivia(n *Node, ts []Trivia) *Node {
	out, _ := mapEdgeToken(n, false, func(t *Node) *Node { return t.WithTrivia(t.leading, ts) })
	return out
}

// WithoutTrivia strips the outer trivia of n.
func WithoutTrivia(n *Node) *Node {
	return WithTrailingTrivia(WithLeadingTrivia(n, nil), nil)
}

// mapEdgeToken rewrites the first (or last) token of n with f.
func mapEdgeToken(n *Node, first bool, f func(*Node) *Node) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.kind == KindToken {
		return f(n), true
	}
	for j := range n.children {
		i := j
		if !first {
			i = len(n.children) - 1 - j
		}
		if c, ok := mapEdgeToken(n.children[i], first, f); ok {
			return n.WithChild(i, c), true
		}
	}
	return n, false
}

// HasComments reports whether ts contains a comment.
func HasComments(ts []Trivia) bool {
	for _, t := range ts {
		if t.Kind.IsComment() {
			return true
		}
	}
	return false
}

// Indentation returns the whitespace that follows the last end-of-line in ts,
// which is the indentation of the token owning ts as leading trivia.
func Indentation(ts []Trivia) string {
	indent := ""
	for _, t := range ts {
		switch t.Kind {
		case token.EndOfLine:
			indent = ""
		case token.Whitespace:
			indent += t.Text
		default:
			indent = ""
		}
	}
	return indent
}

// TriviaText concatenates the text of ts.
func TriviaText(ts []Trivia) string {
	var sb strings.Builder
	for _, t := range ts {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
