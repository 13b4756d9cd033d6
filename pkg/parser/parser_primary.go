package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Primary expressions.
//
// Grammar:
//
//	primary   → literal | IDENT | predefined_type | THIS | BASE
//	          | '(' expr ')' | NEW type [arguments]
//	postfix   → primary ('.' IDENT | arguments | '[' args ']' | '++' | '--')*
//	arguments → '(' [argument (',' argument)*] ')'
//	argument  → [REF | OUT] expr

func (p *Parser) parsePrimary() *syntax.Node {
	switch p.token().Kind() {
	case token.NUMBER, token.STRING, token.CHAR, token.TRUE, token.FALSE, token.NULL:
		return syntax.NewNode(syntax.KindLiteralExpression, p.nextToken())
	case token.IDENT:
		return syntax.NewNode(syntax.KindIdentifierName, p.nextToken())
	case token.THIS:
		return syntax.NewNode(syntax.KindThisExpression, p.nextToken())
	case token.BASE:
		return syntax.NewNode(syntax.KindBaseExpression, p.nextToken())
	case token.LPAREN:
		open := p.nextToken()
		expr := p.parseExpression()
		return syntax.NewNode(syntax.KindParenthesizedExpression, open, expr, p.expect(token.RPAREN))
	case token.NEW:
		kw := p.nextToken()
		typ := p.parseType()
		var args *syntax.Node
		if p.check(token.LPAREN) {
			args = p.parseArgumentList()
		}
		return syntax.NewNode(syntax.KindObjectCreationExpression, kw, typ, args)
	}
	if token.IsPredefinedType(p.token().Kind()) {
		return syntax.NewNode(syntax.KindPredefinedType, p.nextToken())
	}

	p.addError(fmt.Sprintf(ErrExpectedExpression, describe(p.token())))
	return syntax.NewNode(syntax.KindIdentifierName, syntax.NewToken(token.IDENT, "", nil, nil))
}

func (p *Parser) parsePostfix(expr *syntax.Node) *syntax.Node {
	for !p.failed() {
		switch p.token().Kind() {
		case token.DOT:
			dot := p.nextToken()
			name := syntax.NewNode(syntax.KindIdentifierName, p.expect(token.IDENT))
			expr = syntax.NewNode(syntax.KindMemberAccessExpression, expr, dot, name)
		case token.LPAREN:
			expr = syntax.NewNode(syntax.KindInvocationExpression, expr, p.parseArgumentList())
		case token.LBRACKET:
			open := p.nextToken()
			args := p.parseArguments(token.RBRACKET)
			list := syntax.NewNode(syntax.KindBracketedArgumentList, open, args, p.expect(token.RBRACKET))
			expr = syntax.NewNode(syntax.KindElementAccessExpression, expr, list)
		case token.INC, token.DEC:
			expr = syntax.NewNode(syntax.KindPostfixUnaryExpression, expr, p.nextToken())
		default:
			return expr
		}
	}
	return expr
}

func (p *Parser) parseArgumentList() *syntax.Node {
	open := p.expect(token.LPAREN)
	args := p.parseArguments(token.RPAREN)
	return syntax.NewNode(syntax.KindArgumentList, open, args, p.expect(token.RPAREN))
}

func (p *Parser) parseArguments(end token.Kind) *syntax.Node {
	var parts []*syntax.Node
	for !p.check(end) && !p.check(token.EOF) && !p.failed() {
		var ref *syntax.Node
		if p.check(token.REF) || p.check(token.OUT) {
			ref = p.nextToken()
		}
		parts = append(parts, syntax.NewNode(syntax.KindArgument, ref, p.parseExpression()))
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	return syntax.NewSeparatedList(parts...)
}
