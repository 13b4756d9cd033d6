package syntax

import (
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Node factories used by code fixes. They produce compact single-line
// spacing; layout across lines is the caller's job.

// spaced returns a trivia-free token followed by one space.
func spaced(k token.Kind) *Node {
	return NewToken(k, k.Text(), nil, []Trivia{Space})
}

// padded returns a token surrounded by single spaces.
func padded(k token.Kind) *Node {
	return NewToken(k, k.Text(), []Trivia{Space}, []Trivia{Space})
}

// NewIdentifierToken returns an identifier token.
func NewIdentifierToken(name string) *Node {
	return NewToken(token.IDENT, name, nil, nil)
}

// NewIdentifierName returns a simple name expression.
func NewIdentifierName(name string) *Node {
	return NewNode(KindIdentifierName, NewIdentifierToken(name))
}

// NewStringLiteral returns a regular string literal holding value.
func NewStringLiteral(value string) *Node {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return NewNode(KindLiteralExpression, NewToken(token.STRING, `"`+r.Replace(value)+`"`, nil, nil))
}

// NewKeywordLiteral returns a true, false, null or this literal.
func NewKeywordLiteral(k token.Kind) *Node {
	if k == token.THIS {
		return NewNode(KindThisExpression, Tok(k))
	}
	return NewNode(KindLiteralExpression, Tok(k))
}

// NewPrefixUnary returns op operand.
func NewPrefixUnary(op token.Kind, operand *Node) *Node {
	return NewNode(KindPrefixUnaryExpression, Tok(op), operand)
}

// NewParenthesized returns (expr).
func NewParenthesized(expr *Node) *Node {
	return NewNode(KindParenthesizedExpression, Tok(token.LPAREN), expr, Tok(token.RPAREN))
}

// NewBinary returns left op right.
func NewBinary(left *Node, op token.Kind, right *Node) *Node {
	return NewNode(KindBinaryExpression, left, padded(op), right)
}

// NewAssignment returns left op right.
func NewAssignment(left *Node, op token.Kind, right *Node) *Node {
	return NewNode(KindAssignmentExpression, left, padded(op), right)
}

// NewConditional returns cond ? whenTrue : whenFalse.
func NewConditional(cond, whenTrue, whenFalse *Node) *Node {
	return NewNode(KindConditionalExpression, cond, padded(token.QUESTION), whenTrue, padded(token.COLON), whenFalse)
}

// NewMemberAccess returns expr.name.
func NewMemberAccess(expr *Node, name string) *Node {
	return NewNode(KindMemberAccessExpression, expr, Tok(token.DOT), NewIdentifierName(name))
}

// NewQualifiedMemberAccess builds a member access chain from a dotted name.
func NewQualifiedMemberAccess(dotted string) *Node {
	parts := strings.Split(dotted, ".")
	expr := NewIdentifierName(parts[0])
	for _, p := range parts[1:] {
		expr = NewMemberAccess(expr, p)
	}
	return expr
}

// NewQualifiedName builds a type name from a dotted name.
func NewQualifiedName(dotted string) *Node {
	parts := strings.Split(dotted, ".")
	name := NewIdentifierName(parts[0])
	for _, p := range parts[1:] {
		name = NewNode(KindQualifiedName, name, Tok(token.DOT), NewIdentifierName(p))
	}
	return name
}

// NewArgumentList returns (a, b, ...).
func NewArgumentList(args ...*Node) *Node {
	return NewNode(KindArgumentList, Tok(token.LPAREN), separated(args, KindArgument), Tok(token.RPAREN))
}

func separated(items []*Node, wrap Kind) *Node {
	parts := make([]*Node, 0, 2*len(items))
	for i, it := range items {
		if i > 0 {
			parts = append(parts, spaced(token.COMMA))
		}
		if wrap == KindArgument && !it.Is(KindArgument) {
			it = NewNode(KindArgument, nil, it)
		}
		parts = append(parts, it)
	}
	return NewSeparatedList(parts...)
}

// NewInvocation returns expr(args...).
func NewInvocation(expr *Node, args ...*Node) *Node {
	return NewNode(KindInvocationExpression, expr, NewArgumentList(args...))
}

// NewObjectCreation returns new typ(args...).
func NewObjectCreation(typ *Node, args ...*Node) *Node {
	return NewNode(KindObjectCreationExpression, spaced(token.NEW), typ, NewArgumentList(args...))
}

// NewExpressionStatement returns expr;.
func NewExpressionStatement(expr *Node) *Node {
	return NewNode(KindExpressionStatement, expr, Tok(token.SEMICOLON))
}

// NewReturnStatement returns return expr; or return; when expr is nil.
func NewReturnStatement(expr *Node) *Node {
	kw := Tok(token.RETURN)
	if expr != nil {
		kw = spaced(token.RETURN)
	}
	return NewNode(KindReturnStatement, kw, expr, Tok(token.SEMICOLON))
}

// NewThrowStatement returns throw expr; or the rethrow statement throw;.
func NewThrowStatement(expr *Node) *Node {
	kw := Tok(token.THROW)
	if expr != nil {
		kw = spaced(token.THROW)
	}
	return NewNode(KindThrowStatement, kw, expr, Tok(token.SEMICOLON))
}

// NewLocalDeclaration returns var name = value;.
func NewLocalDeclaration(name string, value *Node) *Node {
	declarator := NewNode(KindVariableDeclarator,
		NewToken(token.IDENT, name, nil, []Trivia{Space}),
		NewNode(KindEqualsValueClause, spaced(token.ASSIGN), value))
	decl := NewNode(KindVariableDeclaration,
		NewNode(KindIdentifierName, NewToken(token.IDENT, "var", nil, []Trivia{Space})),
		NewSeparatedList(declarator))
	return NewNode(KindLocalDeclarationStatement, NewList(), decl, Tok(token.SEMICOLON))
}

// NewIfStatement returns if (cond) stmt.
func NewIfStatement(cond, stmt *Node) *Node {
	return NewNode(KindIfStatement,
		spaced(token.IF), Tok(token.LPAREN), cond,
		NewToken(token.RPAREN, ")", nil, []Trivia{Space}), stmt, nil)
}

// NewBlock returns { stmts }. The statements keep their own trivia.
func NewBlock(stmts ...*Node) *Node {
	return NewNode(KindBlock, Tok(token.LBRACE), NewList(stmts...), Tok(token.RBRACE))
}

// NewArrowExpressionClause returns => expr.
func NewArrowExpressionClause(expr *Node) *Node {
	return NewNode(KindArrowExpressionClause, padded(token.ARROW), expr)
}

// NewCatchDeclaration returns (typ name).
func NewCatchDeclaration(typ, name string) *Node {
	var ident *Node
	typeTok := NewToken(token.IDENT, typ, nil, nil)
	if name != "" {
		typeTok = NewToken(token.IDENT, typ, nil, []Trivia{Space})
		ident = NewIdentifierToken(name)
	}
	return NewNode(KindCatchDeclaration, Tok(token.LPAREN), NewNode(KindIdentifierName, typeTok), ident, Tok(token.RPAREN))
}

// IsPrimaryExpression reports whether n binds at least as tightly as a
// postfix expression and can therefore be operated on without parentheses.
func IsPrimaryExpression(n *Node) bool {
	switch n.Kind() {
	case KindIdentifierName, KindGenericName, KindQualifiedName, KindPredefinedType,
		KindLiteralExpression, KindThisExpression, KindBaseExpression,
		KindParenthesizedExpression, KindMemberAccessExpression, KindInvocationExpression,
		KindElementAccessExpression, KindObjectCreationExpression, KindPostfixUnaryExpression:
		return true
	}
	return false
}

// ParenthesizeIfNeeded wraps non-primary expressions in parentheses, moving
// the outer trivia to the parentheses.
func ParenthesizeIfNeeded(expr *Node) *Node {
	if IsPrimaryExpression(expr) {
		return expr
	}
	lead, trail := LeadingTrivia(expr), TrailingTrivia(expr)
	p := NewParenthesized(WithoutTrivia(expr))
	return WithTrailingTrivia(WithLeadingTrivia(p, lead), trail)
}
