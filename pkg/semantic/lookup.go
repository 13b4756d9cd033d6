package semantic

import (
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Name lookup
//
// Lookup walks the ancestors of the cursor: locals declared earlier in
// enclosing blocks, catch and foreach variables, parameters, members of the
// enclosing types and their bases, then types of the enclosing namespaces,
// using directives and the global namespace.

var predefinedTypes = map[token.Kind]string{
	token.OBJECT:   "System.Object",
	token.STRINGKW: "System.String",
	token.BOOL:     "System.Boolean",
	token.CHARKW:   "System.Char",
	token.INT:      "System.Int32",
	token.LONG:     "System.Int64",
	token.DOUBLE:   "System.Double",
	token.VOID:     "System.Void",
}

// resolveTypeSyntax binds a node in type position to a type symbol.
func (c *Compilation) resolveTypeSyntax(path string, t syntax.Cursor) *Symbol {
	switch t.Kind() {
	case syntax.KindPredefinedType:
		return c.LookupType(predefinedTypes[t.Node().Field(syntax.Keyword).TokenKind()], 0)
	case syntax.KindIdentifierName:
		return c.lookupTypeName(path, t, identText(t.Node()), 0)
	case syntax.KindGenericName:
		arity := len(t.Node().Field(syntax.TypeArgumentList).Field(syntax.TypeArguments).Elements())
		return c.lookupTypeName(path, t, identText(t.Node()), arity)
	case syntax.KindQualifiedName:
		left := c.resolveNamespaceOrType(path, t.Field(syntax.Left))
		right := t.Field(syntax.Right)
		return c.memberType(left, identText(right.Node()), typeArity(right.Node()))
	case syntax.KindArrayType:
		if elem := c.resolveTypeSyntax(path, t.Field(syntax.ElementType)); elem != nil {
			return c.arrayOf(elem)
		}
	}
	return nil
}

func typeArity(n *syntax.Node) int {
	if n.Kind() != syntax.KindGenericName {
		return 0
	}
	return len(n.Field(syntax.TypeArgumentList).Field(syntax.TypeArguments).Elements())
}

// memberType finds a type or namespace inside a namespace or type symbol.
func (c *Compilation) memberType(left *Symbol, name string, arity int) *Symbol {
	switch {
	case left == nil:
		return nil
	case left.Kind == SymbolNamespace:
		if t := c.LookupType(left.Name+"."+name, arity); t != nil {
			return t
		}
		if arity == 0 {
			return c.namespaces[left.Name+"."+name]
		}
	case left.IsType():
		return left.NestedType(name, arity)
	}
	return nil
}

// resolveNamespaceOrType binds the left side of a qualified name.
func (c *Compilation) resolveNamespaceOrType(path string, n syntax.Cursor) *Symbol {
	switch n.Kind() {
	case syntax.KindIdentifierName:
		name := identText(n.Node())
		if t := c.lookupTypeName(path, n, name, 0); t != nil {
			return t
		}
		return c.lookupNamespace(n, name)
	case syntax.KindQualifiedName:
		left := c.resolveNamespaceOrType(path, n.Field(syntax.Left))
		right := n.Field(syntax.Right)
		return c.memberType(left, identText(right.Node()), typeArity(right.Node()))
	}
	return c.resolveTypeSyntax(path, n)
}

func (c *Compilation) arrayOf(elem *Symbol) *Symbol {
	key := typeKey(elem.FullName()+"[]", 0)
	if t, ok := c.locals.Load(key); ok {
		return t.(*Symbol)
	}
	t, _ := c.locals.LoadOrStore(key, &Symbol{
		Kind: SymbolType, Name: elem.Name + "[]", TypeKind: TypeArray, Element: elem,
		BaseType: c.LookupType("System.Object", 0),
	})
	return t.(*Symbol)
}

// lookupTypeName resolves a simple type name from the scope of ctx.
func (c *Compilation) lookupTypeName(path string, ctx syntax.Cursor, name string, arity int) *Symbol {
	for anc := range ctx.Ancestors() {
		if !anc.Kind().IsTypeDeclaration() {
			continue
		}
		if t := c.decls[keyOf(path, anc)]; t != nil {
			if arity == 0 && t.Name == name && t.Arity == 0 {
				return t
			}
			if nested := t.NestedType(name, arity); nested != nil {
				return nested
			}
		}
	}
	for _, ns := range enclosingNamespaces(ctx) {
		if t := c.LookupType(ns+"."+name, arity); t != nil {
			return t
		}
	}
	for _, u := range usingsInScope(ctx) {
		if t := c.LookupType(u+"."+name, arity); t != nil {
			return t
		}
	}
	return c.LookupType(name, arity)
}

// lookupNamespace resolves a simple namespace name from the scope of ctx.
func (c *Compilation) lookupNamespace(ctx syntax.Cursor, name string) *Symbol {
	for _, ns := range enclosingNamespaces(ctx) {
		if s, ok := c.namespaces[ns+"."+name]; ok {
			return s
		}
	}
	return c.namespaces[name]
}

// enclosingNamespaces lists the namespaces containing ctx, innermost first:
// inside "namespace A.B" it yields "A.B", "A".
func enclosingNamespaces(ctx syntax.Cursor) []string {
	var parts []string
	for anc := range ctx.Ancestors() {
		if anc.Kind() == syntax.KindNamespaceDeclaration {
			parts = append([]string{compactText(anc.Node().Field(syntax.Name))}, parts...)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	full := ""
	for _, p := range parts {
		if full != "" {
			full += "."
		}
		full += p
	}
	var out []string
	for full != "" {
		out = append(out, full)
		i := len(full) - 1
		for i >= 0 && full[i] != '.' {
			i--
		}
		if i < 0 {
			break
		}
		full = full[:i]
	}
	return out
}

// usingsInScope lists the namespaces imported by using directives visible at ctx.
func usingsInScope(ctx syntax.Cursor) []string {
	var out []string
	for anc := range ctx.AncestorsAndSelf() {
		if anc.Kind() != syntax.KindNamespaceDeclaration && anc.Kind() != syntax.KindCompilationUnit {
			continue
		}
		for _, u := range anc.Node().Field(syntax.Usings).Elements() {
			out = append(out, compactText(u.Field(syntax.Name)))
		}
	}
	return out
}

// HasUsing reports whether a using directive for ns is visible at ctx.
func HasUsing(ctx syntax.Cursor, ns string) bool {
	for _, u := range usingsInScope(ctx) {
		if u == ns {
			return true
		}
	}
	for _, n := range enclosingNamespaces(ctx) {
		if n == ns {
			return true
		}
	}
	return false
}

// identText returns the identifier of a simple or generic name node.
func identText(n *syntax.Node) string {
	return n.Field(syntax.Identifier).TokenText()
}

// inTypePosition reports whether a name cursor occupies a slot that holds a type.
func inTypePosition(c syntax.Cursor) bool {
	parent := c.Parent()
	role := c.Role()
	if parent.Kind() == syntax.KindSeparatedList {
		role = parent.Role()
		parent = parent.Parent()
	}
	switch role {
	case syntax.Type, syntax.ReturnType, syntax.ElementType, syntax.Types, syntax.TypeArguments:
		return true
	case syntax.Left, syntax.Right:
		return parent.Kind() == syntax.KindQualifiedName
	}
	return false
}

// ---------- Values ----------

// lookupValue resolves a simple name in expression position. Methods are
// returned as the group of all methods with that name.
func (c *Compilation) lookupValue(path string, ctx syntax.Cursor, name string) []*Symbol {
	if local := c.lookupLocal(path, ctx, name); local != nil {
		return []*Symbol{local}
	}
	for anc := range ctx.Ancestors() {
		if !anc.Kind().IsTypeDeclaration() {
			continue
		}
		if t := c.decls[keyOf(path, anc)]; t != nil {
			if ms := t.MembersNamed(name); len(ms) > 0 {
				return ms
			}
		}
	}
	if t := c.lookupTypeName(path, ctx, name, 0); t != nil {
		return []*Symbol{t}
	}
	if ns := c.lookupNamespace(ctx, name); ns != nil {
		return []*Symbol{ns}
	}
	return nil
}

// lookupLocal finds locals and parameters visible at ctx.
func (c *Compilation) lookupLocal(path string, ctx syntax.Cursor, name string) *Symbol {
	child := ctx
	for anc := range ctx.Ancestors() {
		switch anc.Kind() {
		case syntax.KindList:
			if anc.Parent().Kind() != syntax.KindBlock {
				break
			}
			for stmt := range anc.Children() {
				if stmt.Index() >= child.Index() {
					break
				}
				if stmt.Kind() != syntax.KindLocalDeclarationStatement {
					continue
				}
				for v := range stmt.Field(syntax.Declaration).Field(syntax.Variables).Elements() {
					if v.Node().Field(syntax.Identifier).TokenText() == name {
						return c.localSymbol(path, v)
					}
				}
			}
		case syntax.KindForEachStatement:
			if child.Role() == syntax.Statement && anc.Node().Field(syntax.Identifier).TokenText() == name {
				return c.localSymbol(path, anc)
			}
		case syntax.KindCatchClause:
			decl := anc.Field(syntax.Declaration)
			if child.Role() == syntax.Block && decl.Valid() && decl.Node().Field(syntax.Identifier).TokenText() == name {
				return c.localSymbol(path, decl)
			}
		case syntax.KindSetAccessorDeclaration:
			if name == "value" {
				return c.localSymbol(path, anc)
			}
		case syntax.KindMethodDeclaration, syntax.KindConstructorDeclaration, syntax.KindOperatorDeclaration,
			syntax.KindConversionOperatorDeclaration, syntax.KindIndexerDeclaration:
			if owner := c.decls[keyOf(path, anc)]; owner != nil {
				for _, p := range owner.Parameters {
					if p.Name == name {
						return p
					}
				}
			}
		}
		if anc.Kind().IsTypeDeclaration() {
			return nil
		}
		child = anc
	}
	return nil
}

// localSymbol returns the symbol of a local declarator, foreach variable,
// catch variable, or the implicit value parameter of a setter.
func (c *Compilation) localSymbol(path string, decl syntax.Cursor) *Symbol {
	key := keyOf(path, decl)
	if s, ok := c.locals.Load(key); ok {
		return s.(*Symbol)
	}
	s := &Symbol{Path: path, Decl: decl.Span()}
	switch decl.Kind() {
	case syntax.KindVariableDeclarator:
		ident := decl.Field(syntax.Identifier)
		s.Kind, s.Name, s.NameSpan = SymbolLocal, ident.Node().TokenText(), ident.Span()
		declaration := decl.Parent().Parent()
		stmt := declaration.Parent()
		s.IsConst = stmt.Kind() == syntax.KindLocalDeclarationStatement && hasModifier(stmt.Node(), token.CONST)
		s.Type = c.declaredType(path, declaration.Field(syntax.Type), decl.Field(syntax.Initializer).Field(syntax.Value))
	case syntax.KindForEachStatement:
		ident := decl.Field(syntax.Identifier)
		s.Kind, s.Name, s.NameSpan = SymbolLocal, ident.Node().TokenText(), ident.Span()
		s.Type = c.resolveTypeSyntax(path, decl.Field(syntax.Type))
		if s.Type == nil {
			if coll := c.typeOf(path, decl.Field(syntax.Expression)); coll != nil && coll.TypeKind == TypeArray {
				s.Type = coll.Element
			}
		}
	case syntax.KindCatchDeclaration:
		ident := decl.Field(syntax.Identifier)
		s.Kind, s.Name, s.NameSpan = SymbolLocal, ident.Node().TokenText(), ident.Span()
		s.Type = c.resolveTypeSyntax(path, decl.Field(syntax.Type))
	case syntax.KindSetAccessorDeclaration:
		s.Kind, s.Name = SymbolParameter, "value"
		if prop, ok := decl.FirstAncestorOrSelf(syntax.KindPropertyDeclaration, syntax.KindIndexerDeclaration); ok {
			if ps := c.decls[keyOf(path, prop)]; ps != nil {
				s.Type, s.ContainingType = ps.Type, ps.ContainingType
			}
		}
	}
	actual, _ := c.locals.LoadOrStore(key, s)
	return actual.(*Symbol)
}

// declaredType resolves the type of a declaration, inferring "var" from the initializer.
func (c *Compilation) declaredType(path string, typ, init syntax.Cursor) *Symbol {
	if typ.Kind() == syntax.KindIdentifierName && identText(typ.Node()) == "var" {
		if t := c.lookupTypeName(path, typ, "var", 0); t != nil {
			return t
		}
		if init.Valid() {
			return c.typeOf(path, init)
		}
		return nil
	}
	return c.resolveTypeSyntax(path, typ)
}
