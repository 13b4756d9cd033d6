// Package format renders syntax trees for inspection and provides the
// layout helpers code fixes use to place generated nodes on their own
// lines with the indentation of the code around them.
package format

import (
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// IndentUnit is one level of indentation in generated code.
const IndentUnit = "    "

// Dump renders n as an indented S-expression. Tokens are printed with
// their kind and text; with trivia set, their trivia is listed too.
func Dump(n *syntax.Node, trivia bool) string {
	if n == nil {
		return "<nil>\n"
	}
	p := newPrinter(trivia)
	p.node(syntax.RoleNone, n)
	return p.String()
}

// IndentOf returns the indentation of the line n starts on.
func IndentOf(n *syntax.Node) string {
	return syntax.Indentation(syntax.LeadingTrivia(n))
}

// Line returns n placed on its own line: its leading trivia becomes indent
// and its trailing trivia ends with a newline. Comments already in the
// trailing trivia are kept.
func Line(n *syntax.Node, indent string) *syntax.Node {
	n = syntax.WithLeadingTrivia(n, indentation(indent))
	return syntax.WithTrailingTrivia(n, EndLine(syntax.TrailingTrivia(n)))
}

// LineKeepingLeading is like Line but keeps the comment lines in the leading
// trivia of n, re-indented to indent.
func LineKeepingLeading(n *syntax.Node, indent string) *syntax.Node {
	lead := append(CommentLines(syntax.LeadingTrivia(n), indent), indentation(indent)...)
	n = syntax.WithLeadingTrivia(n, lead)
	return syntax.WithTrailingTrivia(n, EndLine(syntax.TrailingTrivia(n)))
}

// EndLine returns ts terminated by exactly one end-of-line.
func EndLine(ts []syntax.Trivia) []syntax.Trivia {
	out := make([]syntax.Trivia, 0, len(ts)+1)
	for _, t := range ts {
		if t.Kind == token.EndOfLine {
			break
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
		out = out[:len(out)-1]
	}
	return append(out, syntax.Newline)
}

// CommentLines returns one line per comment found in ts, each indented by
// indent and terminated by an end-of-line.
func CommentLines(ts []syntax.Trivia, indent string) []syntax.Trivia {
	var out []syntax.Trivia
	for _, t := range ts {
		if !t.Kind.IsComment() {
			continue
		}
		out = append(out, indentation(indent)...)
		out = append(out, t, syntax.Newline)
	}
	return out
}

// TrailingComments returns the comments of the trailing trivia of n,
// separated from the preceding token by a space.
func TrailingComments(n *syntax.Node) []syntax.Trivia {
	var out []syntax.Trivia
	for _, t := range syntax.TrailingTrivia(n) {
		if t.Kind.IsComment() {
			out = append(out, syntax.Space, t)
		}
	}
	return out
}

// Block returns a block whose braces sit on their own lines at indent and
// whose statements are indented one level deeper.
func Block(indent string, stmts ...*syntax.Node) *syntax.Node {
	inner := indent + IndentUnit
	lines := make([]*syntax.Node, len(stmts))
	for i, s := range stmts {
		lines[i] = Line(s, inner)
	}
	open := syntax.NewToken(token.LBRACE, "{", indentation(indent), []syntax.Trivia{syntax.Newline})
	closeBrace := syntax.NewToken(token.RBRACE, "}", indentation(indent), []syntax.Trivia{syntax.Newline})
	return syntax.NewNode(syntax.KindBlock, open, syntax.NewList(lines...), closeBrace)
}

// Normalize collapses every run of trivia inside n into a single space, so
// that the rendered text depends only on the tokens. It is used to compare
// generated code independently of layout.
func Normalize(n *syntax.Node) string {
	var parts []string
	for tok := range syntax.Tokens(n) {
		if text := tok.Node().TokenText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func indentation(indent string) []syntax.Trivia {
	if indent == "" {
		return nil
	}
	return []syntax.Trivia{{Kind: token.Whitespace, Text: indent}}
}
