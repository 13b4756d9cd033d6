package semantic

import (
	"fmt"
	"strings"
)

// Built-in library
//
// The catalog models the parts of the base class library that rules look
// at. Types are declared first and members second so member signatures can
// refer to any type by full name.

// library holds the built-in types by key (see typeKey).
type library struct {
	types      map[string]*Symbol
	namespaces map[string]bool
}

func typeKey(fullName string, arity int) string {
	if arity == 0 {
		return fullName
	}
	return fmt.Sprintf("%s`%d", fullName, arity)
}

type typeDef struct {
	ns, name string
	kind     TypeKind
	arity    int
	base     string
	ifaces   []string
	static   bool
}

var builtinTypes = []typeDef{
	{ns: "System", name: "Object"},
	{ns: "System", name: "String", base: "System.Object"},
	{ns: "System", name: "Boolean", kind: TypeStruct},
	{ns: "System", name: "Char", kind: TypeStruct},
	{ns: "System", name: "Int32", kind: TypeStruct},
	{ns: "System", name: "Int64", kind: TypeStruct},
	{ns: "System", name: "Double", kind: TypeStruct},
	{ns: "System", name: "Void", kind: TypeStruct},
	{ns: "System", name: "Enum", base: "System.Object"},
	{ns: "System", name: "Delegate", base: "System.Object"},
	{ns: "System", name: "MulticastDelegate", base: "System.Delegate"},
	{ns: "System", name: "EventArgs", base: "System.Object"},
	{ns: "System", name: "EventHandler", kind: TypeDelegate, base: "System.MulticastDelegate"},
	{ns: "System", name: "EventHandler", kind: TypeDelegate, arity: 1, base: "System.MulticastDelegate"},
	{ns: "System", name: "Action", kind: TypeDelegate, base: "System.MulticastDelegate"},
	{ns: "System", name: "Exception", base: "System.Object"},
	{ns: "System", name: "ArgumentException", base: "System.Exception"},
	{ns: "System", name: "ArgumentNullException", base: "System.ArgumentException"},
	{ns: "System", name: "ArgumentOutOfRangeException", base: "System.ArgumentException"},
	{ns: "System", name: "InvalidOperationException", base: "System.Exception"},
	{ns: "System", name: "NotImplementedException", base: "System.Exception"},
	{ns: "System", name: "IDisposable", kind: TypeInterface},
	{ns: "System", name: "GC", static: true, base: "System.Object"},
	{ns: "System", name: "Console", static: true, base: "System.Object"},
	{ns: "System", name: "Uri", base: "System.Object"},
	{ns: "System", name: "UriKind", kind: TypeEnum, base: "System.Enum"},
	{ns: "System.Net", name: "IPAddress", base: "System.Object"},
	{ns: "System.Text.RegularExpressions", name: "Regex", base: "System.Object"},
	{ns: "System.Text.RegularExpressions", name: "Match", base: "System.Object"},
	{ns: "System.Text.RegularExpressions", name: "RegexOptions", kind: TypeEnum, base: "System.Enum"},
	{ns: "System.Collections.Generic", name: "List", arity: 1, base: "System.Object"},
}

// builtinMembers lists members per type key, one declaration per line:
//
//	[static] method Name: ReturnType(ParamType, ...)
//	[static] field Name: Type
//	property Name: Type
//	ctor(ParamType, ...)
//	enum Name = value
var builtinMembers = map[string][]string{
	"System.Object": {
		"method ToString: System.String()",
		"method GetHashCode: System.Int32()",
		"method Equals: System.Boolean(System.Object)",
	},
	"System.String": {
		"static field Empty: System.String",
		"property Length: System.Int32",
		"static method Format: System.String(System.String, System.Object)",
		"static method IsNullOrEmpty: System.Boolean(System.String)",
	},
	"System.EventArgs": {
		"ctor()",
		"static field Empty: System.EventArgs",
	},
	"System.EventHandler": {
		"method Invoke: System.Void(System.Object, System.EventArgs)",
	},
	"System.EventHandler`1": {
		"method Invoke: System.Void(System.Object, System.Object)",
	},
	"System.Action": {
		"method Invoke: System.Void()",
	},
	"System.Exception": {
		"ctor()",
		"ctor(System.String)",
		"ctor(System.String, System.Exception)",
		"property Message: System.String",
		"property InnerException: System.Exception",
	},
	"System.ArgumentException": {
		"ctor()",
		"ctor(System.String)",
		"ctor(System.String, System.String)",
		"ctor(System.String, System.Exception)",
		"ctor(System.String, System.String, System.Exception)",
		"property ParamName: System.String",
	},
	"System.ArgumentNullException": {
		"ctor()",
		"ctor(System.String)",
		"ctor(System.String, System.String)",
		"ctor(System.String, System.Exception)",
	},
	"System.ArgumentOutOfRangeException": {
		"ctor()",
		"ctor(System.String)",
		"ctor(System.String, System.String)",
	},
	"System.InvalidOperationException": {
		"ctor()",
		"ctor(System.String)",
		"ctor(System.String, System.Exception)",
	},
	"System.NotImplementedException": {
		"ctor()",
		"ctor(System.String)",
	},
	"System.IDisposable": {
		"method Dispose: System.Void()",
	},
	"System.GC": {
		"static method SuppressFinalize: System.Void(System.Object)",
		"static method Collect: System.Void()",
	},
	"System.Console": {
		"static method WriteLine: System.Void()",
		"static method WriteLine: System.Void(System.String)",
		"static method WriteLine: System.Void(System.Object)",
		"static method Write: System.Void(System.String)",
		"static method Write: System.Void(System.Object)",
	},
	"System.Uri": {
		"ctor(System.String)",
		"ctor(System.String, System.UriKind)",
		"property AbsoluteUri: System.String",
	},
	"System.UriKind": {
		"enum RelativeOrAbsolute = 0",
		"enum Absolute = 1",
		"enum Relative = 2",
	},
	"System.Net.IPAddress": {
		"static method Parse: System.Net.IPAddress(System.String)",
		"static method TryParse: System.Boolean(System.String, System.Net.IPAddress)",
	},
	"System.Text.RegularExpressions.Regex": {
		"ctor(System.String)",
		"ctor(System.String, System.Text.RegularExpressions.RegexOptions)",
		"static method Match: System.Text.RegularExpressions.Match(System.String, System.String)",
		"static method Match: System.Text.RegularExpressions.Match(System.String, System.String, System.Text.RegularExpressions.RegexOptions)",
		"static method IsMatch: System.Boolean(System.String, System.String)",
		"static method IsMatch: System.Boolean(System.String, System.String, System.Text.RegularExpressions.RegexOptions)",
		"method Match: System.Text.RegularExpressions.Match(System.String)",
		"method IsMatch: System.Boolean(System.String)",
	},
	"System.Text.RegularExpressions.Match": {
		"property Success: System.Boolean",
		"property Value: System.String",
	},
	"System.Text.RegularExpressions.RegexOptions": {
		"enum None = 0",
		"enum IgnoreCase = 1",
		"enum Multiline = 2",
		"enum ExplicitCapture = 4",
		"enum Compiled = 8",
		"enum Singleline = 16",
		"enum IgnorePatternWhitespace = 32",
		"enum RightToLeft = 64",
		"enum ECMAScript = 256",
		"enum CultureInvariant = 512",
	},
	"System.Collections.Generic.List`1": {
		"ctor()",
		"method Add: System.Void(System.Object)",
		"property Count: System.Int32",
	},
}

// newLibrary builds the built-in catalog. It panics on a malformed entry,
// which can only be a programming error in the tables above.
func newLibrary() *library {
	lib := &library{types: map[string]*Symbol{}, namespaces: map[string]bool{}}
	for _, def := range builtinTypes {
		t := &Symbol{Kind: SymbolType, Name: def.name, Namespace: def.ns, TypeKind: def.kind, Arity: def.arity, IsStatic: def.static}
		lib.types[typeKey(t.FullName(), def.arity)] = t
		lib.addNamespace(def.ns)
	}
	for _, def := range builtinTypes {
		t := lib.types[typeKey(def.ns+"."+def.name, def.arity)]
		if def.base != "" {
			t.BaseType = lib.mustType(def.base)
		}
		for _, i := range def.ifaces {
			t.Interfaces = append(t.Interfaces, lib.mustType(i))
		}
	}
	for key, lines := range builtinMembers {
		t, ok := lib.types[key]
		if !ok {
			panic("semantic: unknown built-in type " + key)
		}
		for _, line := range lines {
			t.Members = append(t.Members, lib.parseMember(t, line))
		}
	}
	return lib
}

func (l *library) addNamespace(ns string) {
	for ns != "" {
		l.namespaces[ns] = true
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			return
		}
		ns = ns[:i]
	}
}

func (l *library) mustType(full string) *Symbol {
	t, ok := l.types[full]
	if !ok {
		panic("semantic: unknown built-in type " + full)
	}
	return t
}

func (l *library) parseMember(owner *Symbol, line string) *Symbol {
	m := &Symbol{ContainingType: owner}
	rest := line
	if after, ok := strings.CutPrefix(rest, "static "); ok {
		m.IsStatic = true
		rest = after
	}
	word, rest, _ := strings.Cut(rest, " ")
	switch {
	case strings.HasPrefix(line, "ctor("):
		m.Kind, m.MethodKind, m.Name = SymbolMethod, MethodConstructor, owner.Name
		m.Type = l.mustType("System.Void")
		m.Parameters = l.parseParams(strings.TrimSuffix(strings.TrimPrefix(line, "ctor("), ")"))
		return m
	case word == "enum":
		name, value, _ := strings.Cut(rest, " = ")
		var v int64
		if _, err := fmt.Sscan(value, &v); err != nil {
			panic("semantic: bad enum value in " + line)
		}
		m.Kind, m.Name, m.Type, m.IsStatic, m.IsConst = SymbolEnumMember, name, owner, true, true
		m.ConstValue, m.HasConst, m.constState = v, true, constDone
		return m
	}
	name, sig, ok := strings.Cut(rest, ": ")
	if !ok {
		panic("semantic: bad member line " + line)
	}
	m.Name = name
	switch word {
	case "method":
		typ, params, _ := strings.Cut(sig, "(")
		m.Kind = SymbolMethod
		m.Type = l.mustType(typ)
		m.Parameters = l.parseParams(strings.TrimSuffix(params, ")"))
	case "field":
		m.Kind, m.Type = SymbolField, l.mustType(sig)
	case "property":
		m.Kind, m.Type = SymbolProperty, l.mustType(sig)
	default:
		panic("semantic: bad member kind in " + line)
	}
	return m
}

func (l *library) parseParams(list string) []*Symbol {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var params []*Symbol
	for i, typ := range strings.Split(list, ",") {
		params = append(params, &Symbol{
			Kind: SymbolParameter,
			Name: fmt.Sprintf("arg%d", i),
			Type: l.mustType(strings.TrimSpace(typ)),
		})
	}
	return params
}
