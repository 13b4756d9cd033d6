package parser

import (
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Statement parsing.
//
// Grammar:
//
//	statement   → block | ';' | if | return | throw | try | while | foreach
//	            | local_decl | expr_stmt
//	block       → '{' statement* '}'
//	local_decl  → [CONST] type declarator (',' declarator)* ';'
//	if          → IF '(' expr ')' statement [ELSE statement]
//	try         → TRY block catch* [FINALLY block]
//	catch       → CATCH ['(' type [IDENT] ')'] block
//	foreach     → FOREACH '(' type IDENT IN expr ')' statement
//	expr_stmt   → expr ';'     (assignment, call, new, ++, -- only)

// parseStatement parses a single statement.
func (p *Parser) parseStatement() *syntax.Node {
	switch p.token().Kind() {
	case token.LBRACE:
		return p.parseBlock()
	case token.SEMICOLON:
		return syntax.NewNode(syntax.KindEmptyStatement, p.nextToken())
	case token.IF:
		return p.parseIfStatement()
	case token.RETURN, token.THROW:
		kind := syntax.KindReturnStatement
		if p.check(token.THROW) {
			kind = syntax.KindThrowStatement
		}
		kw := p.nextToken()
		var expr *syntax.Node
		if !p.check(token.SEMICOLON) {
			expr = p.parseExpression()
		}
		return syntax.NewNode(kind, kw, expr, p.expect(token.SEMICOLON))
	case token.TRY:
		return p.parseTryStatement()
	case token.WHILE:
		kw := p.nextToken()
		open := p.expect(token.LPAREN)
		cond := p.parseExpression()
		closeParen := p.expect(token.RPAREN)
		return syntax.NewNode(syntax.KindWhileStatement, kw, open, cond, closeParen, p.parseStatement())
	case token.FOREACH:
		kw := p.nextToken()
		open := p.expect(token.LPAREN)
		typ := p.parseType()
		ident := p.expect(token.IDENT)
		in := p.expect(token.IN)
		expr := p.parseExpression()
		closeParen := p.expect(token.RPAREN)
		return syntax.NewNode(syntax.KindForEachStatement, kw, open, typ, ident, in, expr, closeParen, p.parseStatement())
	case token.CONST:
		mods := syntax.NewList(p.nextToken())
		decl := p.parseVariableDeclaration(p.parseType())
		return syntax.NewNode(syntax.KindLocalDeclarationStatement, mods, decl, p.expect(token.SEMICOLON))
	}

	if typ, ok := p.tryParseDeclarationType(); ok {
		decl := p.parseVariableDeclaration(typ)
		return syntax.NewNode(syntax.KindLocalDeclarationStatement, syntax.NewList(), decl, p.expect(token.SEMICOLON))
	}

	start := p.token()
	expr := p.parseExpression()
	if !p.failed() && !isStatementExpression(expr) {
		p.errors = append(p.errors, &ParseError{Pos: start.Pos, Message: ErrInvalidStatement})
	}
	return syntax.NewNode(syntax.KindExpressionStatement, expr, p.expect(token.SEMICOLON))
}

// isStatementExpression reports whether expr may stand alone as a statement.
func isStatementExpression(expr *syntax.Node) bool {
	switch expr.Kind() {
	case syntax.KindAssignmentExpression, syntax.KindInvocationExpression, syntax.KindObjectCreationExpression,
		syntax.KindPostfixUnaryExpression:
		return true
	case syntax.KindPrefixUnaryExpression:
		op := expr.Field(syntax.Operator).TokenKind()
		return op == token.INC || op == token.DEC
	}
	return false
}

func (p *Parser) parseBlock() *syntax.Node {
	open := p.expect(token.LBRACE)
	var stmts []*syntax.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) && !p.failed() {
		stmts = append(stmts, p.parseStatement())
	}
	closeBrace := p.expect(token.RBRACE)
	return syntax.NewNode(syntax.KindBlock, open, syntax.NewList(stmts...), closeBrace)
}

func (p *Parser) parseIfStatement() *syntax.Node {
	kw := p.nextToken()
	open := p.expect(token.LPAREN)
	cond := p.parseExpression()
	closeParen := p.expect(token.RPAREN)
	stmt := p.parseStatement()
	var elseClause *syntax.Node
	if p.check(token.ELSE) {
		elseKw := p.nextToken()
		elseClause = syntax.NewNode(syntax.KindElseClause, elseKw, p.parseStatement())
	}
	return syntax.NewNode(syntax.KindIfStatement, kw, open, cond, closeParen, stmt, elseClause)
}

func (p *Parser) parseTryStatement() *syntax.Node {
	kw := p.nextToken()
	block := p.parseBlock()
	var catches []*syntax.Node
	for p.check(token.CATCH) && !p.failed() {
		catchKw := p.nextToken()
		var decl *syntax.Node
		if p.check(token.LPAREN) {
			open := p.nextToken()
			typ := p.parseType()
			ident := p.match(token.IDENT)
			decl = syntax.NewNode(syntax.KindCatchDeclaration, open, typ, ident, p.expect(token.RPAREN))
		}
		catches = append(catches, syntax.NewNode(syntax.KindCatchClause, catchKw, decl, p.parseBlock()))
	}
	var finally *syntax.Node
	if p.check(token.FINALLY) {
		finallyKw := p.nextToken()
		finally = syntax.NewNode(syntax.KindFinallyClause, finallyKw, p.parseBlock())
	}
	if len(catches) == 0 && finally == nil && !p.failed() {
		p.expect(token.CATCH)
	}
	return syntax.NewNode(syntax.KindTryStatement, kw, block, syntax.NewList(catches...), finally)
}
