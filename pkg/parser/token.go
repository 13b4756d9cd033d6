package parser

import (
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Token is a lexed token leaf together with the position of its text.
type Token struct {
	Node *syntax.Node
	Pos  token.Position
}

// Kind returns the token kind.
func (t Token) Kind() token.Kind {
	return t.Node.TokenKind()
}

// Literal returns the token text without trivia.
func (t Token) Literal() string {
	return t.Node.TokenText()
}
