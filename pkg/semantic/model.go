package semantic

import (
	"errors"

	"github.com/leapstack-labs/sharplint/pkg/parser"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// Model answers semantic questions about one tree of a compilation. Cursors
// passed to a Model must come from that tree.
type Model interface {
	// Tree returns the tree the model was built for.
	Tree() *syntax.Tree
	// Resolve returns the symbol an expression or name refers to, or the
	// symbol declared by a declaration node.
	Resolve(n syntax.Cursor) *Symbol
	// ResolveType returns the type of an expression or the type named by a
	// type syntax node.
	ResolveType(n syntax.Cursor) *Symbol
	// ConstantValue folds n to a compile-time constant.
	ConstantValue(n syntax.Cursor) (any, bool)
	// DeclaredSymbol returns the symbol declared by a declaration node.
	DeclaredSymbol(n syntax.Cursor) *Symbol
	// DeclaredTypes lists the types declared in the tree, in source order.
	DeclaredTypes() []*Symbol
	// Declaration returns the declaration node of a source symbol of this tree.
	Declaration(s *Symbol) (syntax.Cursor, bool)
	// LookupType returns a type by full name and arity.
	LookupType(fullName string, arity int) *Symbol
	// Diagnostics parses text as statements, falling back to members, and
	// returns the parse errors. A nil result means text is valid code.
	Diagnostics(text string) []error
}

type model struct {
	comp *Compilation
	tree *syntax.Tree
}

func (m *model) Tree() *syntax.Tree { return m.tree }

func (m *model) Resolve(n syntax.Cursor) *Symbol {
	if !n.Valid() {
		return nil
	}
	return m.comp.resolve(m.tree.Path, n)
}

func (m *model) ResolveType(n syntax.Cursor) *Symbol {
	if !n.Valid() {
		return nil
	}
	if inTypePosition(n) {
		return m.comp.resolveTypeSyntax(m.tree.Path, n)
	}
	return m.comp.typeOf(m.tree.Path, n)
}

func (m *model) ConstantValue(n syntax.Cursor) (any, bool) {
	return m.comp.evalConstant(m.tree.Path, n, 0)
}

func (m *model) DeclaredSymbol(n syntax.Cursor) *Symbol {
	return m.comp.declaredSymbol(m.tree.Path, n)
}

func (m *model) DeclaredTypes() []*Symbol {
	return m.comp.declared[m.tree.Path]
}

func (m *model) Declaration(s *Symbol) (syntax.Cursor, bool) {
	if s == nil || s.Path != m.tree.Path {
		return syntax.Cursor{}, false
	}
	if c, ok := m.comp.sourceDecl[s]; ok {
		return c, true
	}
	return syntax.FindNode(m.tree.Root, s.Decl)
}

func (m *model) LookupType(fullName string, arity int) *Symbol {
	return m.comp.LookupType(fullName, arity)
}

func (m *model) Diagnostics(text string) []error {
	_, err := parser.ParseStatements(text)
	if err == nil {
		return nil
	}
	if _, merr := parser.ParseMembers(text); merr == nil {
		return nil
	}
	var list parser.ErrorList
	if errors.As(err, &list) {
		return list
	}
	return []error{err}
}
