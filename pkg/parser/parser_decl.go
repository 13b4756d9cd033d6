package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// ---------- Declarations ----------

// parseModifiers collects declaration modifiers into a list node.
func (p *Parser) parseModifiers() *syntax.Node {
	var mods []*syntax.Node
	for token.IsModifier(p.token().Kind()) {
		mods = append(mods, p.nextToken())
	}
	return syntax.NewList(mods...)
}

// parseMember parses a type or member declaration.
//
//	member → modifier* ( type_decl | delegate | EVENT var_decl ';' | '~' IDENT params body
//	                   | (IMPLICIT|EXPLICIT) OPERATOR type params body
//	                   | IDENT params [ctor_init] body                  (constructor)
//	                   | type OPERATOR op params body
//	                   | type THIS '[' params ']' accessors
//	                   | type IDENT ( params body | accessors | '=>' expr ';' | declarators ';' ) )
func (p *Parser) parseMember() *syntax.Node {
	mods := p.parseModifiers()

	switch p.token().Kind() {
	case token.CLASS:
		return p.parseTypeDeclaration(syntax.KindClassDeclaration, mods)
	case token.STRUCT:
		return p.parseTypeDeclaration(syntax.KindStructDeclaration, mods)
	case token.INTERFACE:
		return p.parseTypeDeclaration(syntax.KindInterfaceDeclaration, mods)
	case token.ENUM:
		return p.parseEnumDeclaration(mods)
	case token.DELEGATE:
		kw := p.nextToken()
		ret := p.parseType()
		ident := p.expect(token.IDENT)
		params := p.parseParameterList()
		semi := p.expect(token.SEMICOLON)
		return syntax.NewNode(syntax.KindDelegateDeclaration, mods, kw, ret, ident, params, semi)
	case token.EVENT:
		kw := p.nextToken()
		decl := p.parseVariableDeclaration(p.parseType())
		semi := p.expect(token.SEMICOLON)
		return syntax.NewNode(syntax.KindEventFieldDeclaration, mods, kw, decl, semi)
	case token.TILDE:
		tilde := p.nextToken()
		ident := p.expect(token.IDENT)
		params := p.parseParameterList()
		body, arrow, semi := p.parseBody()
		return syntax.NewNode(syntax.KindDestructorDeclaration, mods, tilde, ident, params, body, arrow, semi)
	case token.IMPLICIT, token.EXPLICIT:
		which := p.nextToken()
		kw := p.expect(token.OPERATOR)
		typ := p.parseType()
		params := p.parseParameterList()
		body, arrow, semi := p.parseBody()
		return syntax.NewNode(syntax.KindConversionOperatorDeclaration, mods, which, kw, typ, params, body, arrow, semi)
	}

	if p.check(token.IDENT) && p.checkPeek(token.LPAREN) {
		ident := p.nextToken()
		params := p.parseParameterList()
		var init *syntax.Node
		if p.check(token.COLON) {
			colon := p.nextToken()
			var kw *syntax.Node
			if p.check(token.BASE) || p.check(token.THIS) {
				kw = p.nextToken()
			} else {
				kw = p.expect(token.BASE)
			}
			init = syntax.NewNode(syntax.KindConstructorInitializer, colon, kw, p.parseArgumentList())
		}
		body, arrow, semi := p.parseBody()
		return syntax.NewNode(syntax.KindConstructorDeclaration, mods, ident, params, init, body, arrow, semi)
	}

	if !p.isTypeStart() {
		p.addError(fmt.Sprintf(ErrExpectedMember, describe(p.token())))
		p.nextToken()
		return syntax.NewNode(syntax.KindFieldDeclaration, mods, nil, syntax.NewToken(token.SEMICOLON, "", nil, nil))
	}
	typ := p.parseType()

	switch {
	case p.check(token.OPERATOR):
		kw := p.nextToken()
		op := p.parseOverloadableOperator()
		params := p.parseParameterList()
		body, arrow, semi := p.parseBody()
		return syntax.NewNode(syntax.KindOperatorDeclaration, mods, typ, kw, op, params, body, arrow, semi)
	case p.check(token.THIS):
		kw := p.nextToken()
		params := p.parseBracketedParameterList()
		accessors, arrow, semi := p.parsePropertyBody()
		return syntax.NewNode(syntax.KindIndexerDeclaration, mods, typ, kw, params, accessors, arrow, semi)
	}

	if p.check(token.IDENT) {
		switch p.peekN(1).Kind() {
		case token.LPAREN:
			ident := p.nextToken()
			params := p.parseParameterList()
			body, arrow, semi := p.parseBody()
			return syntax.NewNode(syntax.KindMethodDeclaration, mods, typ, ident, params, body, arrow, semi)
		case token.LBRACE, token.ARROW:
			ident := p.nextToken()
			accessors, arrow, semi := p.parsePropertyBody()
			var init *syntax.Node
			if accessors != nil && p.check(token.ASSIGN) {
				init = p.parseEqualsValue()
				semi = p.expect(token.SEMICOLON)
			}
			return syntax.NewNode(syntax.KindPropertyDeclaration, mods, typ, ident, accessors, arrow, init, semi)
		}
	}

	decl := p.parseVariableDeclaration(typ)
	semi := p.expect(token.SEMICOLON)
	return syntax.NewNode(syntax.KindFieldDeclaration, mods, decl, semi)
}

func (p *Parser) parseOverloadableOperator() *syntax.Node {
	switch p.token().Kind() {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.AMP, token.PIPE,
		token.CARET, token.BANG, token.TILDE, token.EQ, token.NE, token.LT, token.GT, token.LE,
		token.GE, token.INC, token.DEC, token.TRUE, token.FALSE:
		return p.nextToken()
	}
	return p.expect(token.PLUS)
}

// parseTypeDeclaration parses class, struct and interface declarations.
func (p *Parser) parseTypeDeclaration(kind syntax.Kind, mods *syntax.Node) *syntax.Node {
	kw := p.nextToken()
	ident := p.expect(token.IDENT)
	bases := p.parseBaseList()
	open := p.expect(token.LBRACE)
	var members []*syntax.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) && !p.failed() {
		members = append(members, p.parseMember())
	}
	closeBrace := p.expect(token.RBRACE)
	return syntax.NewNode(kind, mods, kw, ident, bases, open, syntax.NewList(members...), closeBrace)
}

func (p *Parser) parseBaseList() *syntax.Node {
	if !p.check(token.COLON) {
		return nil
	}
	colon := p.nextToken()
	var parts []*syntax.Node
	for !p.failed() {
		parts = append(parts, p.parseType())
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	return syntax.NewNode(syntax.KindBaseList, colon, syntax.NewSeparatedList(parts...))
}

func (p *Parser) parseEnumDeclaration(mods *syntax.Node) *syntax.Node {
	kw := p.nextToken()
	ident := p.expect(token.IDENT)
	bases := p.parseBaseList()
	open := p.expect(token.LBRACE)
	var parts []*syntax.Node
	for p.check(token.IDENT) && !p.failed() {
		name := p.nextToken()
		var init *syntax.Node
		if p.check(token.ASSIGN) {
			init = p.parseEqualsValue()
		}
		parts = append(parts, syntax.NewNode(syntax.KindEnumMemberDeclaration, name, init))
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	closeBrace := p.expect(token.RBRACE)
	return syntax.NewNode(syntax.KindEnumDeclaration, mods, kw, ident, bases, open, syntax.NewSeparatedList(parts...), closeBrace)
}

// parseVariableDeclaration parses declarators after an already parsed type.
func (p *Parser) parseVariableDeclaration(typ *syntax.Node) *syntax.Node {
	var parts []*syntax.Node
	for !p.failed() {
		ident := p.expect(token.IDENT)
		var init *syntax.Node
		if p.check(token.ASSIGN) {
			init = p.parseEqualsValue()
		}
		parts = append(parts, syntax.NewNode(syntax.KindVariableDeclarator, ident, init))
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	return syntax.NewNode(syntax.KindVariableDeclaration, typ, syntax.NewSeparatedList(parts...))
}

func (p *Parser) parseEqualsValue() *syntax.Node {
	eq := p.expect(token.ASSIGN)
	return syntax.NewNode(syntax.KindEqualsValueClause, eq, p.parseExpression())
}

// ---------- Parameters ----------

func (p *Parser) parseParameterList() *syntax.Node {
	open := p.expect(token.LPAREN)
	params := p.parseParameters(token.RPAREN)
	closeParen := p.expect(token.RPAREN)
	return syntax.NewNode(syntax.KindParameterList, open, params, closeParen)
}

func (p *Parser) parseBracketedParameterList() *syntax.Node {
	open := p.expect(token.LBRACKET)
	params := p.parseParameters(token.RBRACKET)
	closeBracket := p.expect(token.RBRACKET)
	return syntax.NewNode(syntax.KindBracketedParameterList, open, params, closeBracket)
}

func (p *Parser) parseParameters(end token.Kind) *syntax.Node {
	var parts []*syntax.Node
	for !p.check(end) && !p.check(token.EOF) && !p.failed() {
		var mods []*syntax.Node
		for p.check(token.REF) || p.check(token.OUT) || p.check(token.PARAMS) || p.check(token.THIS) || p.check(token.IN) {
			mods = append(mods, p.nextToken())
		}
		typ := p.parseType()
		ident := p.expect(token.IDENT)
		var def *syntax.Node
		if p.check(token.ASSIGN) {
			def = p.parseEqualsValue()
		}
		parts = append(parts, syntax.NewNode(syntax.KindParameter, syntax.NewList(mods...), typ, ident, def))
		if !p.check(token.COMMA) {
			break
		}
		parts = append(parts, p.nextToken())
	}
	return syntax.NewSeparatedList(parts...)
}

// ---------- Bodies ----------

// parseBody parses a method body: a block, '=>' expr ';', or ';'.
func (p *Parser) parseBody() (block, arrow, semi *syntax.Node) {
	switch {
	case p.check(token.LBRACE):
		return p.parseBlock(), nil, nil
	case p.check(token.ARROW):
		tok := p.nextToken()
		arrow = syntax.NewNode(syntax.KindArrowExpressionClause, tok, p.parseExpression())
		return nil, arrow, p.expect(token.SEMICOLON)
	}
	return nil, nil, p.expect(token.SEMICOLON)
}

// parsePropertyBody parses an accessor list or an expression body.
func (p *Parser) parsePropertyBody() (accessors, arrow, semi *syntax.Node) {
	if p.check(token.ARROW) {
		tok := p.nextToken()
		arrow = syntax.NewNode(syntax.KindArrowExpressionClause, tok, p.parseExpression())
		return nil, arrow, p.expect(token.SEMICOLON)
	}
	open := p.expect(token.LBRACE)
	var list []*syntax.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) && !p.failed() {
		list = append(list, p.parseAccessor())
	}
	closeBrace := p.expect(token.RBRACE)
	return syntax.NewNode(syntax.KindAccessorList, open, syntax.NewList(list...), closeBrace), nil, nil
}

func (p *Parser) parseAccessor() *syntax.Node {
	mods := p.parseModifiers()
	var kind syntax.Kind
	switch {
	case p.checkIdent("get"):
		kind = syntax.KindGetAccessorDeclaration
	case p.checkIdent("set"):
		kind = syntax.KindSetAccessorDeclaration
	default:
		p.addError(fmt.Sprintf(ErrExpectedAccessor, p.token().Literal()))
		kind = syntax.KindGetAccessorDeclaration
	}
	kw := p.nextToken()
	body, arrow, semi := p.parseBody()
	return syntax.NewNode(kind, mods, kw, body, arrow, semi)
}
