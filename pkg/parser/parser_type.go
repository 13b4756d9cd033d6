package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// ---------- Types and Names ----------
//
//	type           → (predefined | name) ('[' ']')*
//	name           → simple_name ('.' simple_name)*
//	simple_name    → IDENT [type_arguments]
//	type_arguments → '<' type (',' type)* '>'

// parseType parses a type reference.
func (p *Parser) parseType() *syntax.Node {
	var t *syntax.Node
	switch {
	case token.IsPredefinedType(p.token().Kind()):
		t = syntax.NewNode(syntax.KindPredefinedType, p.nextToken())
	case p.check(token.IDENT):
		t = p.parseTypeName()
	default:
		p.addError(fmt.Sprintf(ErrExpectedType, describe(p.token())))
		return syntax.NewNode(syntax.KindIdentifierName, syntax.NewToken(token.IDENT, "", nil, nil))
	}
	for p.check(token.LBRACKET) && p.checkPeek(token.RBRACKET) {
		open := p.nextToken()
		t = syntax.NewNode(syntax.KindArrayType, t, open, p.nextToken())
	}
	return t
}

// parseTypeName parses a possibly generic, possibly qualified type name.
func (p *Parser) parseTypeName() *syntax.Node {
	name := p.parseSimpleName(true)
	for p.check(token.DOT) && p.peekN(1).Kind() == token.IDENT && !p.failed() {
		dot := p.nextToken()
		name = syntax.NewNode(syntax.KindQualifiedName, name, dot, p.parseSimpleName(true))
	}
	return name
}

// parseQualifiedName parses a dotted namespace name without type arguments.
func (p *Parser) parseQualifiedName() *syntax.Node {
	name := p.parseSimpleName(false)
	for p.check(token.DOT) && !p.failed() {
		dot := p.nextToken()
		name = syntax.NewNode(syntax.KindQualifiedName, name, dot, p.parseSimpleName(false))
	}
	return name
}

func (p *Parser) parseSimpleName(generic bool) *syntax.Node {
	ident := p.expect(token.IDENT)
	if generic && p.check(token.LT) {
		if args, ok := p.tryParseTypeArguments(); ok {
			return syntax.NewNode(syntax.KindGenericName, ident, args)
		}
	}
	return syntax.NewNode(syntax.KindIdentifierName, ident)
}

// tryParseTypeArguments parses '<' type, ... '>' speculatively; on failure
// the parser is left where it started.
func (p *Parser) tryParseTypeArguments() (*syntax.Node, bool) {
	m := p.mark()
	open := p.nextToken()
	var parts []*syntax.Node
	for {
		parts = append(parts, p.parseType())
		if p.failed() {
			p.reset(m)
			return nil, false
		}
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	if !p.check(token.GT) {
		p.reset(m)
		return nil, false
	}
	closeTok := p.nextToken()
	return syntax.NewNode(syntax.KindTypeArgumentList, open, syntax.NewSeparatedList(parts...), closeTok), true
}

// isTypeStart reports whether the current token can begin a type.
func (p *Parser) isTypeStart() bool {
	return p.check(token.IDENT) || token.IsPredefinedType(p.token().Kind())
}

// tryParseDeclarationType parses a type followed by an identifier, the
// shape of a local declaration. On failure the parser is reset.
func (p *Parser) tryParseDeclarationType() (*syntax.Node, bool) {
	if !p.isTypeStart() {
		return nil, false
	}
	m := p.mark()
	t := p.parseType()
	if p.failed() || !p.check(token.IDENT) {
		p.reset(m)
		return nil, false
	}
	switch p.peekN(1).Kind() {
	case token.ASSIGN, token.SEMICOLON, token.COMMA:
		return t, true
	}
	p.reset(m)
	return nil, false
}
