// Package parser provides a trivia-preserving recursive descent parser for
// the C# subset analyzed by sharplint.
//
// # Usage
//
//	tree, err := parser.Parse("Foo.cs", src)
//	if err != nil {
//	    // handle error (an ErrorList)
//	}
//
// # Grammar Overview
//
//	compilation_unit → using_directive* member* EOF
//	using_directive  → USING name ';'
//	namespace        → NAMESPACE name '{' using_directive* member* '}'
//	type_decl        → modifier* (CLASS|STRUCT|INTERFACE|ENUM) IDENT [base_list] '{' member* '}'
//	member           → field | event | method | ctor | dtor | property | indexer | operator | type_decl
//
// Statements live in parser_stmt.go, expressions in parser_expr.go and
// parser_primary.go, declarations in parser_decl.go, types in parser_type.go.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Parser parses C# source into a syntax tree.
type Parser struct {
	tokens []Token
	cur    int // index of the current token
	errors []error
}

// NewParser creates a new parser for the given source text.
func NewParser(src string) *Parser {
	l := NewLexer(src)
	p := &Parser{tokens: l.Tokenize()}
	p.errors = append(p.errors, l.Errors()...)
	return p
}

// Parse parses a complete compilation unit.
func Parse(path, src string) (*syntax.Tree, error) {
	p := NewParser(src)
	root := p.parseCompilationUnit()
	if len(p.errors) > 0 {
		return nil, ErrorList(p.errors)
	}
	return syntax.NewTree(path, root), nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// for fixed snippets.
func MustParse(path, src string) *syntax.Tree {
	tree, err := Parse(path, src)
	if err != nil {
		panic(err)
	}
	return tree
}

// ParseStatements parses src as a sequence of statements and returns them as a list node.
func ParseStatements(src string) (*syntax.Node, error) {
	p := NewParser(src)
	var stmts []*syntax.Node
	for !p.check(token.EOF) && !p.failed() {
		stmts = append(stmts, p.parseStatement())
	}
	if len(p.errors) > 0 {
		return nil, ErrorList(p.errors)
	}
	return syntax.NewList(stmts...), nil
}

// ParseMembers parses src as a sequence of member declarations.
func ParseMembers(src string) (*syntax.Node, error) {
	p := NewParser(src)
	var members []*syntax.Node
	for !p.check(token.EOF) && !p.failed() {
		members = append(members, p.parseMember())
	}
	if len(p.errors) > 0 {
		return nil, ErrorList(p.errors)
	}
	return syntax.NewList(members...), nil
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (*syntax.Node, error) {
	p := NewParser(src)
	expr := p.parseExpression()
	if !p.failed() && !p.check(token.EOF) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token().Kind(), token.EOF))
	}
	if len(p.errors) > 0 {
		return nil, ErrorList(p.errors)
	}
	return expr, nil
}

// ---------- Token Helpers ----------

func (p *Parser) token() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	i := p.cur + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

// nextToken consumes the current token and returns its node.
func (p *Parser) nextToken() *syntax.Node {
	tok := p.token()
	if p.cur < len(p.tokens)-1 {
		p.cur++
	}
	return tok.Node
}

// check returns true if the current token is of the given kind.
func (p *Parser) check(k token.Kind) bool {
	return p.token().Kind() == k
}

// checkPeek returns true if the token after the current one is of the given kind.
func (p *Parser) checkPeek(k token.Kind) bool {
	return p.peekN(1).Kind() == k
}

// checkIdent returns true if the current token is the contextual word text.
func (p *Parser) checkIdent(text string) bool {
	return p.check(token.IDENT) && p.token().Literal() == text
}

// match consumes the current token if it matches and returns it.
func (p *Parser) match(k token.Kind) *syntax.Node {
	if p.check(k) {
		return p.nextToken()
	}
	return nil
}

// expect consumes the current token if it matches, otherwise adds an error
// and returns a zero-width placeholder token.
func (p *Parser) expect(k token.Kind) *syntax.Node {
	if p.check(k) {
		return p.nextToken()
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token()), k))
	return syntax.NewToken(k, "", nil, nil)
}

func describe(t Token) string {
	if t.Kind() == token.IDENT || t.Kind() == token.NUMBER || t.Kind() == token.STRING {
		return fmt.Sprintf("%s %q", t.Kind(), t.Literal())
	}
	return t.Kind().String()
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token().Pos,
		Message: msg,
	})
}

// failed reports whether an error has been recorded. Parsing stops at the
// first error; loops check it to guarantee termination.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// mark and reset implement speculative parsing.
type mark struct {
	cur    int
	errors int
}

func (p *Parser) mark() mark {
	return mark{cur: p.cur, errors: len(p.errors)}
}

func (p *Parser) reset(m mark) {
	p.cur = m.cur
	p.errors = p.errors[:m.errors]
}

// ---------- Compilation Unit ----------

func (p *Parser) parseCompilationUnit() *syntax.Node {
	usings := p.parseUsings()
	var members []*syntax.Node
	for !p.check(token.EOF) && !p.failed() {
		members = append(members, p.parseNamespaceMember())
	}
	eof := p.expect(token.EOF)
	return syntax.NewNode(syntax.KindCompilationUnit, usings, syntax.NewList(members...), eof)
}

func (p *Parser) parseUsings() *syntax.Node {
	var usings []*syntax.Node
	for p.check(token.USING) && !p.failed() {
		kw := p.nextToken()
		name := p.parseQualifiedName()
		semi := p.expect(token.SEMICOLON)
		usings = append(usings, syntax.NewNode(syntax.KindUsingDirective, kw, name, semi))
	}
	return syntax.NewList(usings...)
}

func (p *Parser) parseNamespaceMember() *syntax.Node {
	if !p.check(token.NAMESPACE) {
		return p.parseMember()
	}
	kw := p.nextToken()
	name := p.parseQualifiedName()
	open := p.expect(token.LBRACE)
	usings := p.parseUsings()
	var members []*syntax.Node
	for !p.check(token.RBRACE) && !p.check(token.EOF) && !p.failed() {
		members = append(members, p.parseNamespaceMember())
	}
	closeBrace := p.expect(token.RBRACE)
	return syntax.NewNode(syntax.KindNamespaceDeclaration, kw, name, open, usings, syntax.NewList(members...), closeBrace)
}
