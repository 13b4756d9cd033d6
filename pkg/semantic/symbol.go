// Package semantic binds syntax trees to symbols.
//
// The Model interface is what analyzers consume. Compilation is the
// reference implementation: a symbol table over the documents of one
// project plus a small built-in library of System types.
package semantic

import (
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// SymbolKind classifies symbols.
type SymbolKind int

const (
	SymbolNamespace SymbolKind = iota
	SymbolType
	SymbolMethod
	SymbolProperty
	SymbolField
	SymbolEvent
	SymbolParameter
	SymbolLocal
	SymbolEnumMember
)

var symbolKindNames = [...]string{
	SymbolNamespace:  "namespace",
	SymbolType:       "type",
	SymbolMethod:     "method",
	SymbolProperty:   "property",
	SymbolField:      "field",
	SymbolEvent:      "event",
	SymbolParameter:  "parameter",
	SymbolLocal:      "local",
	SymbolEnumMember: "enum member",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "symbol"
}

// TypeKind classifies type symbols.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
	TypeDelegate
	TypeArray
)

// MethodKind classifies method symbols.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodStaticConstructor
	MethodDestructor
	MethodOperator
	MethodConversion
	MethodPropertyGet
	MethodPropertySet
)

// Symbol is a named semantic entity.
//
// One struct serves every kind; fields that do not apply to a kind stay zero.
type Symbol struct {
	Kind           SymbolKind
	Name           string
	Namespace      string  // containing namespace of top-level types
	ContainingType *Symbol // for members and nested types
	Type           *Symbol // declared type, or return type of methods

	// Types
	TypeKind   TypeKind
	BaseType   *Symbol
	Interfaces []*Symbol
	Members    []*Symbol
	Arity      int     // number of type parameters
	Element    *Symbol // element type of arrays

	// Methods, properties and indexers
	MethodKind MethodKind
	Parameters []*Symbol
	IsIndexer  bool

	IsStatic bool
	IsConst  bool

	// Constant value of const fields, const locals and enum members.
	ConstValue any
	HasConst   bool

	// Source location; Path is empty for built-in symbols.
	Path     string
	NameSpan token.Span // identifier
	Decl     token.Span // whole declaration node

	constState constState
}

type constState uint8

const (
	constPending constState = iota
	constVisiting
	constDone
)

// IsSource reports whether the symbol is declared in a source document.
func (s *Symbol) IsSource() bool {
	return s != nil && s.Path != ""
}

// FullName returns the qualified name: Namespace.Type.Member. Constructors are
// named after their type, so "System.Uri.Uri".
func (s *Symbol) FullName() string {
	if s == nil {
		return ""
	}
	switch s.Kind {
	case SymbolNamespace:
		return s.Name
	case SymbolParameter, SymbolLocal:
		return s.Name
	case SymbolType:
		if s.TypeKind == TypeArray {
			return s.Element.FullName() + "[]"
		}
		if s.ContainingType != nil {
			return s.ContainingType.FullName() + "." + s.Name
		}
		if s.Namespace != "" {
			return s.Namespace + "." + s.Name
		}
		return s.Name
	}
	if s.ContainingType != nil {
		return s.ContainingType.FullName() + "." + s.Name
	}
	return s.Name
}

// keywordAliases maps built-in type names to their C# keywords.
var keywordAliases = map[string]string{
	"System.Object":  "object",
	"System.String":  "string",
	"System.Boolean": "bool",
	"System.Char":    "char",
	"System.Int32":   "int",
	"System.Int64":   "long",
	"System.Double":  "double",
	"System.Void":    "void",
}

// DisplayName renders a type the way C# source spells it: keyword aliases
// for built-in types, full names otherwise.
func (s *Symbol) DisplayName() string {
	if s == nil {
		return "?"
	}
	if s.Kind == SymbolType && s.TypeKind == TypeArray {
		return s.Element.DisplayName() + "[]"
	}
	full := s.FullName()
	if alias, ok := keywordAliases[full]; ok {
		return alias
	}
	return full
}

// Signature renders methods, indexers and properties with parameter types,
// e.g. "System.Net.IPAddress.Parse(string)". Other symbols render their full name.
func (s *Symbol) Signature() string {
	if s == nil {
		return ""
	}
	if s.Kind != SymbolMethod && !s.IsIndexer {
		return s.FullName()
	}
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.Type.DisplayName()
	}
	return s.FullName() + "(" + strings.Join(params, ", ") + ")"
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.Kind.String() + " " + s.Signature()
}

// IsType reports whether s is a type symbol.
func (s *Symbol) IsType() bool {
	return s != nil && s.Kind == SymbolType
}

// BaseTypes iterates the base type chain of a type, nearest first.
func (s *Symbol) BaseTypes() []*Symbol {
	var chain []*Symbol
	for b := s.baseOf(); b != nil; b = b.baseOf() {
		chain = append(chain, b)
		if len(chain) > 64 {
			break // cyclic inheritance in invalid source
		}
	}
	return chain
}

func (s *Symbol) baseOf() *Symbol {
	if s == nil {
		return nil
	}
	return s.BaseType
}

// AllInterfaces returns the interfaces implemented by s or its base types,
// including interfaces inherited by those interfaces.
func (s *Symbol) AllInterfaces() []*Symbol {
	seen := map[*Symbol]bool{}
	var out []*Symbol
	var visit func(*Symbol)
	visit = func(i *Symbol) {
		if i == nil || seen[i] {
			return
		}
		seen[i] = true
		out = append(out, i)
		for _, b := range i.Interfaces {
			visit(b)
		}
	}
	for _, t := range append([]*Symbol{s}, s.BaseTypes()...) {
		for _, i := range t.Interfaces {
			visit(i)
		}
	}
	return out
}

// Implements reports whether type s implements the interface with the given full name.
func (s *Symbol) Implements(fullName string) bool {
	for _, i := range s.AllInterfaces() {
		if i.FullName() == fullName {
			return true
		}
	}
	return false
}

// InheritsFrom reports whether the full name of s or one of its base types is fullName.
func (s *Symbol) InheritsFrom(fullName string) bool {
	if s.FullName() == fullName {
		return true
	}
	for _, b := range s.BaseTypes() {
		if b.FullName() == fullName {
			return true
		}
	}
	return false
}

// MembersNamed returns the members of s named name, own members first,
// then those of base types.
func (s *Symbol) MembersNamed(name string) []*Symbol {
	var out []*Symbol
	for _, t := range append([]*Symbol{s}, s.BaseTypes()...) {
		for _, m := range t.Members {
			if m.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

// Member returns the first member named name that is not a method, or the
// first method when only methods carry that name.
func (s *Symbol) Member(name string) *Symbol {
	ms := s.MembersNamed(name)
	for _, m := range ms {
		if m.Kind != SymbolMethod {
			return m
		}
	}
	if len(ms) > 0 {
		return ms[0]
	}
	return nil
}

// NestedType returns the nested type named name with the given arity.
func (s *Symbol) NestedType(name string, arity int) *Symbol {
	for _, m := range s.MembersNamed(name) {
		if m.Kind == SymbolType && m.Arity == arity {
			return m
		}
	}
	return nil
}
