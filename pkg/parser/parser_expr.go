package parser

import (
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Expression parsing with precedence climbing.
//
// Grammar (lowest to highest precedence):
//
//	expr        → conditional [assign_op expr]
//	conditional → binary ['?' expr ':' expr]
//	binary      → unary (binary_op unary)*     (see binaryPrecedence)
//	unary       → ('!' | '-' | '+' | '~' | '++' | '--') unary | primary

// binaryPrecedence maps binary operators to their binding power.
var binaryPrecedence = map[token.Kind]int{
	token.OROR:    1,
	token.ANDAND:  2,
	token.PIPE:    3,
	token.CARET:   4,
	token.AMP:     5,
	token.EQ:      6,
	token.NE:      6,
	token.LT:      7,
	token.GT:      7,
	token.LE:      7,
	token.GE:      7,
	token.PLUS:    8,
	token.MINUS:   8,
	token.STAR:    9,
	token.SLASH:   9,
	token.PERCENT: 9,
}

// parseExpression parses an expression including assignments.
func (p *Parser) parseExpression() *syntax.Node {
	left := p.parseConditional()
	if token.IsAssignment(p.token().Kind()) && !p.failed() {
		op := p.nextToken()
		right := p.parseExpression()
		return syntax.NewNode(syntax.KindAssignmentExpression, left, op, right)
	}
	return left
}

func (p *Parser) parseConditional() *syntax.Node {
	cond := p.parseBinary(1)
	if !p.check(token.QUESTION) || p.failed() {
		return cond
	}
	question := p.nextToken()
	whenTrue := p.parseExpression()
	colon := p.expect(token.COLON)
	whenFalse := p.parseExpression()
	return syntax.NewNode(syntax.KindConditionalExpression, cond, question, whenTrue, colon, whenFalse)
}

// parseBinary parses left-associative binary operators binding at least minPrec.
func (p *Parser) parseBinary(minPrec int) *syntax.Node {
	left := p.parseUnary()
	for !p.failed() {
		prec, ok := binaryPrecedence[p.token().Kind()]
		if !ok || prec < minPrec {
			return left
		}
		op := p.nextToken()
		right := p.parseBinary(prec + 1)
		left = syntax.NewNode(syntax.KindBinaryExpression, left, op, right)
	}
	return left
}

func (p *Parser) parseUnary() *syntax.Node {
	switch p.token().Kind() {
	case token.BANG, token.MINUS, token.PLUS, token.TILDE, token.INC, token.DEC:
		op := p.nextToken()
		return syntax.NewNode(syntax.KindPrefixUnaryExpression, op, p.parseUnary())
	}
	return p.parsePostfix(p.parsePrimary())
}
