package semantic

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Compilation is the symbol table of one project snapshot.
//
// It is immutable after NewCompilation returns, except for symbols of
// locals, which are created on first use behind a sync.Map, so a single
// Compilation may serve concurrent analyses.
type Compilation struct {
	trees      []*syntax.Tree
	byPath     map[string]*syntax.Tree
	types      map[string]*Symbol // by typeKey
	namespaces map[string]*Symbol
	decls      map[declKey]*Symbol
	sourceDecl map[*Symbol]syntax.Cursor // type and member declarations
	declared   map[string][]*Symbol      // declared types per path
	locals     sync.Map                  // declKey -> *Symbol
	logger     *slog.Logger
}

type declKey struct {
	path string
	span token.Span
	kind syntax.Kind
}

func keyOf(path string, c syntax.Cursor) declKey {
	return declKey{path: path, span: c.Span(), kind: c.Kind()}
}

// Option configures a Compilation.
type Option func(*Compilation)

// WithLogger sets the logger used for binding problems.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compilation) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompilation binds the given trees together with the built-in library.
func NewCompilation(trees []*syntax.Tree, opts ...Option) *Compilation {
	lib := newLibrary()
	c := &Compilation{
		trees:      trees,
		byPath:     make(map[string]*syntax.Tree, len(trees)),
		types:      lib.types,
		namespaces: map[string]*Symbol{},
		decls:      map[declKey]*Symbol{},
		sourceDecl: map[*Symbol]syntax.Cursor{},
		declared:   map[string][]*Symbol{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	for ns := range lib.namespaces {
		c.addNamespace(ns)
	}

	var pending []typeDecl
	for _, tree := range trees {
		c.byPath[tree.Path] = tree
		pending = append(pending, c.collectTypes(tree)...)
	}
	for _, td := range pending {
		c.bindBases(td)
	}
	for _, td := range pending {
		c.bindMembers(td)
	}
	for _, td := range pending {
		c.bindConstants(td)
	}
	c.logger.Debug("compilation bound", "trees", len(trees), "types", len(pending))
	return c
}

// Model returns the semantic model of tree.
func (c *Compilation) Model(tree *syntax.Tree) Model {
	return &model{comp: c, tree: tree}
}

// Trees returns the trees of the compilation.
func (c *Compilation) Trees() []*syntax.Tree {
	return c.trees
}

// LookupType returns a type by full name and arity.
func (c *Compilation) LookupType(fullName string, arity int) *Symbol {
	return c.types[typeKey(fullName, arity)]
}

func (c *Compilation) addNamespace(ns string) {
	for ns != "" {
		if _, ok := c.namespaces[ns]; !ok {
			c.namespaces[ns] = &Symbol{Kind: SymbolNamespace, Name: ns}
		}
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			return
		}
		ns = ns[:i]
	}
}

// ---------- Pass 1: types ----------

type typeDecl struct {
	sym  *Symbol
	decl syntax.Cursor
	path string
}

var typeKinds = map[syntax.Kind]TypeKind{
	syntax.KindClassDeclaration:     TypeClass,
	syntax.KindStructDeclaration:    TypeStruct,
	syntax.KindInterfaceDeclaration: TypeInterface,
	syntax.KindEnumDeclaration:      TypeEnum,
	syntax.KindDelegateDeclaration:  TypeDelegate,
}

func (c *Compilation) collectTypes(tree *syntax.Tree) []typeDecl {
	var out []typeDecl
	var visit func(list syntax.Cursor, ns string, container *Symbol)
	visit = func(list syntax.Cursor, ns string, container *Symbol) {
		for m := range list.Elements() {
			switch {
			case m.Kind() == syntax.KindNamespaceDeclaration:
				name := compactText(m.Node().Field(syntax.Name))
				if ns != "" {
					name = ns + "." + name
				}
				c.addNamespace(name)
				visit(m.Field(syntax.Members), name, nil)
			case m.Kind().IsTypeDeclaration():
				sym := c.declareType(tree.Path, m, ns, container)
				out = append(out, typeDecl{sym: sym, decl: m, path: tree.Path})
				if m.Kind() != syntax.KindDelegateDeclaration && m.Kind() != syntax.KindEnumDeclaration {
					visit(m.Field(syntax.Members), ns, sym)
				}
			}
		}
	}
	visit(tree.Cursor().Field(syntax.Members), "", nil)
	return out
}

func (c *Compilation) declareType(path string, decl syntax.Cursor, ns string, container *Symbol) *Symbol {
	ident := decl.Field(syntax.Identifier)
	sym := &Symbol{
		Kind:           SymbolType,
		Name:           ident.Node().TokenText(),
		Namespace:      ns,
		ContainingType: container,
		TypeKind:       typeKinds[decl.Kind()],
		IsStatic:       hasModifier(decl.Node(), token.STATIC),
		Path:           path,
		NameSpan:       ident.Span(),
		Decl:           decl.Span(),
	}
	key := typeKey(sym.FullName(), 0)
	if existing, ok := c.types[key]; ok && existing.IsSource() {
		// partial declarations share one symbol
		c.decls[keyOf(path, decl)] = existing
		return existing
	}
	c.types[key] = sym
	c.decls[keyOf(path, decl)] = sym
	c.sourceDecl[sym] = decl
	c.declared[path] = append(c.declared[path], sym)
	if container != nil {
		container.Members = append(container.Members, sym)
	}
	return sym
}

// ---------- Pass 2: base types ----------

func (c *Compilation) bindBases(td typeDecl) {
	sym := td.sym
	switch sym.TypeKind {
	case TypeEnum:
		sym.BaseType = c.LookupType("System.Enum", 0)
		return
	case TypeDelegate:
		sym.BaseType = c.LookupType("System.MulticastDelegate", 0)
		return
	}
	if bases := td.decl.Field(syntax.BaseList); bases.Valid() {
		for b := range bases.Field(syntax.Types).Elements() {
			t := c.resolveTypeSyntax(td.path, b)
			switch {
			case t == nil:
				c.logger.Debug("unresolved base type", "path", td.path, "type", b.Node().Text())
			case t.TypeKind == TypeInterface:
				sym.Interfaces = append(sym.Interfaces, t)
			case sym.BaseType == nil && sym.TypeKind == TypeClass:
				sym.BaseType = t
			}
		}
	}
	if sym.BaseType == nil && sym.TypeKind != TypeInterface {
		sym.BaseType = c.LookupType("System.Object", 0)
	}
}

// ---------- Pass 3: members ----------

var operatorNames = map[token.Kind]string{
	token.PLUS: "op_Addition", token.MINUS: "op_Subtraction", token.STAR: "op_Multiply",
	token.SLASH: "op_Division", token.PERCENT: "op_Modulus", token.EQ: "op_Equality",
	token.NE: "op_Inequality", token.LT: "op_LessThan", token.GT: "op_GreaterThan",
	token.LE: "op_LessThanOrEqual", token.GE: "op_GreaterThanOrEqual", token.BANG: "op_LogicalNot",
	token.TILDE: "op_OnesComplement", token.INC: "op_Increment", token.DEC: "op_Decrement",
	token.AMP: "op_BitwiseAnd", token.PIPE: "op_BitwiseOr", token.CARET: "op_ExclusiveOr",
	token.TRUE: "op_True", token.FALSE: "op_False",
}

func (c *Compilation) bindMembers(td typeDecl) {
	sym, path := td.sym, td.path
	if sym.TypeKind == TypeDelegate {
		invoke := &Symbol{
			Kind: SymbolMethod, Name: "Invoke", ContainingType: sym,
			Type: c.resolveTypeSyntax(path, td.decl.Field(syntax.ReturnType)),
		}
		invoke.Parameters = c.bindParameters(path, td.decl.Field(syntax.ParameterList), invoke)
		sym.Members = append(sym.Members, invoke)
		return
	}

	hasCtor := false
	for m := range td.decl.Field(syntax.Members).Elements() {
		node := m.Node()
		member := func(kind SymbolKind, name string, ident syntax.Cursor) *Symbol {
			s := &Symbol{
				Kind: kind, Name: name, ContainingType: sym, Path: path,
				NameSpan: ident.Span(), Decl: m.Span(),
				IsStatic: hasModifier(node, token.STATIC),
			}
			sym.Members = append(sym.Members, s)
			c.decls[keyOf(path, m)] = s
			c.sourceDecl[s] = m
			return s
		}

		switch m.Kind() {
		case syntax.KindEnumMemberDeclaration:
			ident := m.Field(syntax.Identifier)
			s := member(SymbolEnumMember, ident.Node().TokenText(), ident)
			s.Type, s.IsStatic, s.IsConst = sym, true, true

		case syntax.KindFieldDeclaration, syntax.KindEventFieldDeclaration:
			decl := m.Field(syntax.Declaration)
			typ := c.resolveTypeSyntax(path, decl.Field(syntax.Type))
			kind := SymbolField
			if m.Kind() == syntax.KindEventFieldDeclaration {
				kind = SymbolEvent
			}
			isConst := hasModifier(node, token.CONST)
			for v := range decl.Field(syntax.Variables).Elements() {
				ident := v.Field(syntax.Identifier)
				s := &Symbol{
					Kind: kind, Name: ident.Node().TokenText(), ContainingType: sym, Type: typ,
					IsStatic: isConst || hasModifier(node, token.STATIC), IsConst: isConst,
					Path: path, NameSpan: ident.Span(), Decl: v.Span(),
				}
				sym.Members = append(sym.Members, s)
				c.decls[keyOf(path, v)] = s
				c.sourceDecl[s] = v
			}

		case syntax.KindMethodDeclaration:
			ident := m.Field(syntax.Identifier)
			s := member(SymbolMethod, ident.Node().TokenText(), ident)
			s.Type = c.resolveTypeSyntax(path, m.Field(syntax.ReturnType))
			s.Parameters = c.bindParameters(path, m.Field(syntax.ParameterList), s)

		case syntax.KindConstructorDeclaration:
			hasCtor = hasCtor || !hasModifier(node, token.STATIC)
			s := member(SymbolMethod, sym.Name, m.Field(syntax.Identifier))
			s.MethodKind = MethodConstructor
			if s.IsStatic {
				s.MethodKind = MethodStaticConstructor
			}
			s.Type = c.LookupType("System.Void", 0)
			s.Parameters = c.bindParameters(path, m.Field(syntax.ParameterList), s)

		case syntax.KindDestructorDeclaration:
			s := member(SymbolMethod, "Finalize", m.Field(syntax.Identifier))
			s.MethodKind = MethodDestructor
			s.Type = c.LookupType("System.Void", 0)

		case syntax.KindOperatorDeclaration:
			op := m.Field(syntax.Operator)
			s := member(SymbolMethod, operatorNames[op.Node().TokenKind()], op)
			s.MethodKind, s.IsStatic = MethodOperator, true
			s.Type = c.resolveTypeSyntax(path, m.Field(syntax.ReturnType))
			s.Parameters = c.bindParameters(path, m.Field(syntax.ParameterList), s)

		case syntax.KindConversionOperatorDeclaration:
			which := m.Field(syntax.ImplicitOrExplicit)
			name := "op_Implicit"
			if which.Node().TokenKind() == token.EXPLICIT {
				name = "op_Explicit"
			}
			s := member(SymbolMethod, name, which)
			s.MethodKind, s.IsStatic = MethodConversion, true
			s.Type = c.resolveTypeSyntax(path, m.Field(syntax.Type))
			s.Parameters = c.bindParameters(path, m.Field(syntax.ParameterList), s)

		case syntax.KindPropertyDeclaration:
			ident := m.Field(syntax.Identifier)
			s := member(SymbolProperty, ident.Node().TokenText(), ident)
			s.Type = c.resolveTypeSyntax(path, m.Field(syntax.Type))

		case syntax.KindIndexerDeclaration:
			s := member(SymbolProperty, "this[]", m.Field(syntax.Keyword))
			s.IsIndexer = true
			s.Type = c.resolveTypeSyntax(path, m.Field(syntax.Type))
			s.Parameters = c.bindParameters(path, m.Field(syntax.ParameterList), s)
		}
	}

	if !hasCtor && (sym.TypeKind == TypeClass || sym.TypeKind == TypeStruct) {
		sym.Members = append(sym.Members, &Symbol{
			Kind: SymbolMethod, Name: sym.Name, ContainingType: sym, MethodKind: MethodConstructor,
			Type: c.LookupType("System.Void", 0),
		})
	}
}

func (c *Compilation) bindParameters(path string, list syntax.Cursor, owner *Symbol) []*Symbol {
	var params []*Symbol
	for p := range list.Field(syntax.Parameters).Elements() {
		ident := p.Field(syntax.Identifier)
		s := &Symbol{
			Kind: SymbolParameter, Name: ident.Node().TokenText(), ContainingType: owner.ContainingType,
			Type: c.resolveTypeSyntax(path, p.Field(syntax.Type)),
			Path: path, NameSpan: ident.Span(), Decl: p.Span(),
		}
		params = append(params, s)
		c.decls[keyOf(path, p)] = s
	}
	return params
}

// ---------- Pass 4: constants ----------

func (c *Compilation) bindConstants(td typeDecl) {
	for _, m := range td.sym.Members {
		if (m.IsConst || m.Kind == SymbolEnumMember) && m.IsSource() {
			c.constValue(m)
		}
	}
}

// constValue evaluates the initializer of a const field or enum member once.
// Enum members without initializer take the previous member's value plus one.
func (c *Compilation) constValue(s *Symbol) (any, bool) {
	switch s.constState {
	case constDone:
		return s.ConstValue, s.HasConst
	case constVisiting:
		c.logger.Debug("circular constant", "symbol", s.FullName())
		return nil, false
	}
	s.constState = constVisiting
	decl, ok := c.sourceDecl[s]
	switch {
	case !ok:
	case decl.Field(syntax.Initializer).Valid():
		v, has := c.evalConstant(s.Path, decl.Field(syntax.Initializer).Field(syntax.Value), 0)
		if has && s.Kind == SymbolEnumMember {
			n, isInt := toInt64(v)
			v, has = n, isInt
		}
		s.ConstValue, s.HasConst = v, has
	case s.Kind == SymbolEnumMember:
		s.ConstValue, s.HasConst = int64(0), true
		if prev := previousEnumMember(s); prev != nil {
			v, has := c.constValue(prev)
			n, isInt := toInt64(v)
			s.ConstValue, s.HasConst = n+1, has && isInt
		}
	}
	s.constState = constDone
	return s.ConstValue, s.HasConst
}

func previousEnumMember(s *Symbol) *Symbol {
	var prev *Symbol
	for _, m := range s.ContainingType.Members {
		if m == s {
			return prev
		}
		if m.Kind == SymbolEnumMember {
			prev = m
		}
	}
	return nil
}

// ---------- helpers ----------

func hasModifier(n *syntax.Node, k token.Kind) bool {
	for _, m := range n.Field(syntax.Modifiers).Elements() {
		if m.TokenKind() == k {
			return true
		}
	}
	return false
}

// compactText returns the text of n with all trivia removed.
func compactText(n *syntax.Node) string {
	var sb strings.Builder
	for t := range syntax.Tokens(n) {
		sb.WriteString(t.Node().TokenText())
	}
	return sb.String()
}
