package semantic

import (
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// resolve binds an expression or name to the symbol it refers to.
func (c *Compilation) resolve(path string, n syntax.Cursor) *Symbol {
	switch n.Kind() {
	case syntax.KindIdentifierName:
		if inTypePosition(n) {
			return c.resolveTypeSyntax(path, n)
		}
		parent := n.Parent()
		if parent.Kind() == syntax.KindMemberAccessExpression && n.Role() == syntax.Name {
			return c.resolve(path, parent)
		}
		return c.pick(path, n, c.lookupValue(path, n, identText(n.Node())))
	case syntax.KindGenericName, syntax.KindQualifiedName, syntax.KindPredefinedType, syntax.KindArrayType:
		return c.resolveTypeSyntax(path, n)
	case syntax.KindMemberAccessExpression:
		return c.pick(path, n, c.memberGroup(path, n))
	case syntax.KindInvocationExpression:
		callee := n.Field(syntax.Expression)
		sym := c.resolve(path, callee)
		if sym == nil || sym.Kind == SymbolMethod {
			return sym
		}
		if t := valueType(sym); t != nil && t.TypeKind == TypeDelegate {
			return t.Member("Invoke")
		}
		return nil
	case syntax.KindObjectCreationExpression:
		t := c.resolveTypeSyntax(path, n.Field(syntax.Type))
		if t == nil {
			return nil
		}
		var ctors []*Symbol
		for _, m := range t.Members {
			if m.Kind == SymbolMethod && m.MethodKind == MethodConstructor {
				ctors = append(ctors, m)
			}
		}
		return c.selectOverload(path, ctors, n.Field(syntax.ArgumentList))
	case syntax.KindElementAccessExpression:
		t := c.typeOf(path, n.Field(syntax.Expression))
		if t == nil {
			return nil
		}
		return c.selectOverload(path, t.MembersNamed("this[]"), n.Field(syntax.ArgumentList))
	case syntax.KindParenthesizedExpression, syntax.KindArgument:
		return c.resolve(path, n.Field(syntax.Expression))
	}
	return c.declaredSymbol(path, n)
}

// pick chooses among a lookup result. A method group is narrowed by the
// arguments when the name is the callee of an invocation.
func (c *Compilation) pick(path string, n syntax.Cursor, group []*Symbol) *Symbol {
	if len(group) == 0 {
		return nil
	}
	if group[0].Kind != SymbolMethod {
		return group[0]
	}
	if parent := n.Parent(); parent.Kind() == syntax.KindInvocationExpression && n.Role() == syntax.Expression {
		return c.selectOverload(path, group, parent.Field(syntax.ArgumentList))
	}
	if len(group) == 1 {
		return group[0]
	}
	return nil
}

// memberGroup returns the members named by a member access.
func (c *Compilation) memberGroup(path string, ma syntax.Cursor) []*Symbol {
	left := ma.Field(syntax.Expression)
	name := identText(ma.Node().Field(syntax.Name))
	leftSym := c.resolve(path, left)
	if leftSym != nil && leftSym.Kind == SymbolNamespace {
		if t := c.memberType(leftSym, name, 0); t != nil {
			return []*Symbol{t}
		}
		return nil
	}
	var t *Symbol
	if leftSym.IsType() {
		t = leftSym
	} else {
		t = c.typeOf(path, left)
	}
	if t == nil {
		return nil
	}
	ms := t.MembersNamed(name)
	if len(ms) == 0 && t.TypeKind == TypeInterface {
		ms = c.LookupType("System.Object", 0).MembersNamed(name)
	}
	return ms
}

func valueType(s *Symbol) *Symbol {
	switch s.Kind {
	case SymbolField, SymbolProperty, SymbolEvent, SymbolParameter, SymbolLocal, SymbolEnumMember:
		return s.Type
	}
	return nil
}

// selectOverload picks the best applicable candidate for an argument list.
// Candidates need matching arity; identity conversions rank above implicit ones.
func (c *Compilation) selectOverload(path string, candidates []*Symbol, args syntax.Cursor) *Symbol {
	var argList []syntax.Cursor
	for a := range args.Field(syntax.Arguments).Elements() {
		argList = append(argList, a)
	}
	argTypes := make([]*Symbol, len(argList))
	for i, a := range argList {
		argTypes[i] = c.typeOf(path, a.Field(syntax.Expression))
	}

	var best *Symbol
	bestScore := -1
	for _, m := range candidates {
		if len(m.Parameters) != len(argList) {
			continue
		}
		score, ok := 0, true
		for i, p := range m.Parameters {
			switch c.conversion(argTypes[i], p.Type) {
			case convIdentity:
				score += 2
			case convImplicit:
				score++
			default:
				ok = false
			}
		}
		if ok && score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

type conversionKind int

const (
	convNone conversionKind = iota
	convImplicit
	convIdentity
)

var numericWidening = map[string][]string{
	"System.Char":  {"System.Int32", "System.Int64", "System.Double"},
	"System.Int32": {"System.Int64", "System.Double"},
	"System.Int64": {"System.Double"},
}

// conversion classifies the conversion from an expression type to a target.
// An unknown source type (nil, or the null literal) converts implicitly.
func (c *Compilation) conversion(from, to *Symbol) conversionKind {
	switch {
	case to == nil:
		return convImplicit
	case from == nil:
		return convImplicit
	case from == to:
		return convIdentity
	case to.FullName() == "System.Object":
		return convImplicit
	case from.InheritsFrom(to.FullName()) || from.Implements(to.FullName()):
		return convImplicit
	}
	for _, w := range numericWidening[from.FullName()] {
		if w == to.FullName() {
			return convImplicit
		}
	}
	return convNone
}

// typeOf computes the type of an expression.
func (c *Compilation) typeOf(path string, n syntax.Cursor) *Symbol {
	switch n.Kind() {
	case syntax.KindLiteralExpression:
		return c.literalType(n.Node().Field(syntax.Token))
	case syntax.KindIdentifierName, syntax.KindMemberAccessExpression:
		if n.Kind() == syntax.KindIdentifierName && inTypePosition(n) {
			return c.resolveTypeSyntax(path, n)
		}
		sym := c.resolve(path, n)
		if sym.IsType() {
			return sym
		}
		if sym != nil {
			return valueType(sym)
		}
	case syntax.KindGenericName, syntax.KindQualifiedName, syntax.KindPredefinedType, syntax.KindArrayType:
		return c.resolveTypeSyntax(path, n)
	case syntax.KindInvocationExpression:
		if m := c.resolve(path, n); m != nil {
			return m.Type
		}
	case syntax.KindObjectCreationExpression:
		return c.resolveTypeSyntax(path, n.Field(syntax.Type))
	case syntax.KindElementAccessExpression:
		if t := c.typeOf(path, n.Field(syntax.Expression)); t != nil && t.TypeKind == TypeArray {
			return t.Element
		}
		if m := c.resolve(path, n); m != nil {
			return m.Type
		}
	case syntax.KindParenthesizedExpression, syntax.KindArgument:
		return c.typeOf(path, n.Field(syntax.Expression))
	case syntax.KindPrefixUnaryExpression:
		if n.Node().Field(syntax.Operator).TokenKind() == token.BANG {
			return c.LookupType("System.Boolean", 0)
		}
		return c.typeOf(path, n.Field(syntax.Operand))
	case syntax.KindPostfixUnaryExpression:
		return c.typeOf(path, n.Field(syntax.Operand))
	case syntax.KindBinaryExpression:
		return c.binaryType(path, n)
	case syntax.KindAssignmentExpression:
		return c.typeOf(path, n.Field(syntax.Left))
	case syntax.KindConditionalExpression:
		if t := c.typeOf(path, n.Field(syntax.WhenTrue)); t != nil {
			return t
		}
		return c.typeOf(path, n.Field(syntax.WhenFalse))
	case syntax.KindThisExpression, syntax.KindBaseExpression:
		typ, ok := n.FirstAncestorOrSelf(syntax.KindClassDeclaration, syntax.KindStructDeclaration)
		if !ok {
			return nil
		}
		t := c.decls[keyOf(path, typ)]
		if t != nil && n.Kind() == syntax.KindBaseExpression {
			return t.BaseType
		}
		return t
	default:
		if s := c.declaredSymbol(path, n); s != nil {
			return s.Type
		}
	}
	return nil
}

func (c *Compilation) literalType(tok *syntax.Node) *Symbol {
	switch tok.TokenKind() {
	case token.STRING:
		return c.LookupType("System.String", 0)
	case token.CHAR:
		return c.LookupType("System.Char", 0)
	case token.TRUE, token.FALSE:
		return c.LookupType("System.Boolean", 0)
	case token.NUMBER:
		switch v := parseNumber(tok.TokenText()).(type) {
		case float64:
			return c.LookupType("System.Double", 0)
		case int64:
			if isLongLiteral(tok.TokenText()) || v > 1<<31-1 || v < -1<<31 {
				return c.LookupType("System.Int64", 0)
			}
			return c.LookupType("System.Int32", 0)
		}
	}
	return nil
}

func (c *Compilation) binaryType(path string, n syntax.Cursor) *Symbol {
	op := n.Node().Field(syntax.Operator).TokenKind()
	switch op {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE, token.ANDAND, token.OROR:
		return c.LookupType("System.Boolean", 0)
	}
	left, right := c.typeOf(path, n.Field(syntax.Left)), c.typeOf(path, n.Field(syntax.Right))
	if left != nil && left.IsSource() {
		if name, ok := operatorNames[op]; ok {
			for _, m := range left.MembersNamed(name) {
				return m.Type
			}
		}
	}
	str := c.LookupType("System.String", 0)
	if op == token.PLUS && (left == str || right == str) {
		return str
	}
	for _, wide := range []string{"System.Double", "System.Int64", "System.Int32", "System.Boolean"} {
		t := c.LookupType(wide, 0)
		if left == t || right == t {
			return t
		}
	}
	if left == c.LookupType("System.Char", 0) {
		return c.LookupType("System.Int32", 0)
	}
	return left
}

// declaredSymbol returns the symbol declared by a declaration node.
func (c *Compilation) declaredSymbol(path string, n syntax.Cursor) *Symbol {
	if !n.Valid() {
		return nil
	}
	if s := c.decls[keyOf(path, n)]; s != nil {
		return s
	}
	switch n.Kind() {
	case syntax.KindVariableDeclarator, syntax.KindForEachStatement, syntax.KindSetAccessorDeclaration:
		return c.localSymbol(path, n)
	case syntax.KindCatchDeclaration:
		if n.Field(syntax.Identifier).Valid() {
			return c.localSymbol(path, n)
		}
	}
	return nil
}
