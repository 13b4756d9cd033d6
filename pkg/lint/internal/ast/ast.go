// Package ast provides syntax helpers shared by the lint rules.
package ast

import (
	"iter"

	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// MemberKinds are the declarations that own parameters and bodies.
var MemberKinds = []syntax.Kind{
	syntax.KindMethodDeclaration,
	syntax.KindConstructorDeclaration,
	syntax.KindDestructorDeclaration,
	syntax.KindOperatorDeclaration,
	syntax.KindConversionOperatorDeclaration,
	syntax.KindPropertyDeclaration,
	syntax.KindIndexerDeclaration,
}

// EnclosingMember returns the nearest member declaration containing c.
func EnclosingMember(c syntax.Cursor) (syntax.Cursor, bool) {
	return c.FirstAncestorOrSelf(MemberKinds...)
}

// Identifier returns the identifier text of a declaration or simple name.
func Identifier(c syntax.Cursor) string {
	return c.Field(syntax.Identifier).Node().TokenText()
}

// SimpleName returns the rightmost simple name of a name or member access.
func SimpleName(c syntax.Cursor) string {
	switch c.Kind() {
	case syntax.KindIdentifierName, syntax.KindGenericName:
		return Identifier(c)
	case syntax.KindMemberAccessExpression:
		return SimpleName(c.Field(syntax.Name))
	case syntax.KindQualifiedName:
		return SimpleName(c.Field(syntax.Right))
	}
	return ""
}

// HasModifier reports whether the declaration at c carries modifier k.
func HasModifier(c syntax.Cursor, k token.Kind) bool {
	for m := range c.Field(syntax.Modifiers).Elements() {
		if m.Node().TokenKind() == k {
			return true
		}
	}
	return false
}

// SingleStatement returns the statement of a branch: the statement itself,
// or the only statement of a block. Blocks holding any other number of
// statements yield false.
func SingleStatement(stmt syntax.Cursor) (syntax.Cursor, bool) {
	if !stmt.Valid() {
		return syntax.Cursor{}, false
	}
	if stmt.Kind() != syntax.KindBlock {
		return stmt, true
	}
	var only syntax.Cursor
	n := 0
	for s := range Statements(stmt) {
		only = s
		n++
	}
	if n != 1 {
		return syntax.Cursor{}, false
	}
	return only, true
}

// Statements iterates over the statements of a block.
func Statements(block syntax.Cursor) iter.Seq[syntax.Cursor] {
	return block.Field(syntax.Statements).Elements()
}

// Arguments returns the argument cursors of an invocation, object creation
// or element access.
func Arguments(c syntax.Cursor) []syntax.Cursor {
	var out []syntax.Cursor
	for a := range c.Field(syntax.ArgumentList).Field(syntax.Arguments).Elements() {
		out = append(out, a)
	}
	return out
}

// IsStringLiteral reports whether c is a string literal expression.
func IsStringLiteral(c syntax.Cursor) bool {
	return c.Kind() == syntax.KindLiteralExpression && c.Field(syntax.Token).Node().TokenKind() == token.STRING
}

// ContainsComments reports whether any token inside n carries a comment,
// ignoring the outer leading and trailing trivia of n.
func ContainsComments(n *syntax.Node) bool {
	first, last := syntax.FirstToken(n), syntax.LastToken(n)
	for tok := range syntax.Tokens(n) {
		t := tok.Node()
		if t != first && syntax.HasComments(t.LeadingTrivia()) {
			return true
		}
		if t != last && syntax.HasComments(t.TrailingTrivia()) {
			return true
		}
	}
	return false
}

// TypeName returns the spelling of a System type for generated code: the
// simple name when the namespace is imported at ctx, the full name otherwise.
func TypeName(ctx syntax.Cursor, ns, name string) string {
	if semantic.HasUsing(ctx, ns) {
		return name
	}
	return ns + "." + name
}

// IsDelegate reports whether t is a delegate type.
func IsDelegate(t *semantic.Symbol) bool {
	return t != nil && t.BaseType != nil && t.BaseType.FullName() == "System.MulticastDelegate"
}

// NameSpan returns the span a member is reported at: its name, or the
// keyword standing in for it in indexers, operators and conversions.
func NameSpan(member syntax.Cursor) token.Span {
	switch member.Kind() {
	case syntax.KindMethodDeclaration, syntax.KindConstructorDeclaration,
		syntax.KindDestructorDeclaration, syntax.KindPropertyDeclaration,
		syntax.KindDelegateDeclaration:
		return member.Field(syntax.Identifier).Span()
	case syntax.KindOperatorDeclaration, syntax.KindIndexerDeclaration:
		return member.Field(syntax.Keyword).Span()
	case syntax.KindConversionOperatorDeclaration:
		return member.Field(syntax.ImplicitOrExplicit).Span()
	}
	if member.Kind().IsTypeDeclaration() {
		return member.Field(syntax.Identifier).Span()
	}
	return member.Span()
}

// ParameterNames returns the parameter names of a declaration with a
// parameter list.
func ParameterNames(decl syntax.Cursor) []string {
	var names []string
	for p := range decl.Field(syntax.ParameterList).Field(syntax.Parameters).Elements() {
		names = append(names, Identifier(p))
	}
	return names
}
