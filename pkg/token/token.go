// Package token defines the lexical token kinds of the analyzed C# subset.
//
// Keywords are reserved words only; contextual words such as get, set, value,
// var and nameof are lexed as identifiers and interpreted by the parser or binder.
package token

import "fmt"

// Kind represents the kind of a lexical token.
type Kind int32

const (
	// Special tokens
	EOF Kind = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 4.5, 1e10, 10L
	STRING // "hello", @"verbatim"
	CHAR   // 'c'

	// Operators and punctuation
	PLUS        // +
	MINUS       // -
	STAR        // *
	SLASH       // /
	PERCENT     // %
	AMP         // &
	PIPE        // |
	CARET       // ^
	BANG        // !
	TILDE       // ~
	ASSIGN      // =
	PLUSASSIGN  // +=
	MINUSASSIGN // -=
	STARASSIGN  // *=
	SLASHASSIGN // /=
	EQ          // ==
	NE          // !=
	LT          // <
	GT          // >
	LE          // <=
	GE          // >=
	ANDAND      // &&
	OROR        // ||
	INC         // ++
	DEC         // --
	QUESTION    // ?
	COLON       // :
	ARROW       // =>
	DOT         // .
	COMMA       // ,
	SEMICOLON   // ;
	LPAREN      // (
	RPAREN      // )
	LBRACE      // {
	RBRACE      // }
	LBRACKET    // [
	RBRACKET    // ]

	// Keywords (alphabetical)
	ABSTRACT
	BASE
	BOOL
	CATCH
	CHARKW
	CLASS
	CONST
	DELEGATE
	DOUBLE
	ELSE
	ENUM
	EVENT
	EXPLICIT
	FALSE
	FINALLY
	FOREACH
	IF
	IMPLICIT
	IN
	INT
	INTERFACE
	INTERNAL
	LONG
	NAMESPACE
	NEW
	NULL
	OBJECT
	OPERATOR
	OUT
	OVERRIDE
	PARAMS
	PRIVATE
	PROTECTED
	PUBLIC
	READONLY
	REF
	RETURN
	SEALED
	STATIC
	STRINGKW
	STRUCT
	THIS
	THROW
	TRUE
	TRY
	USING
	VIRTUAL
	VOID
	WHILE

	maxKind
)

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int32(k))
}

// Text returns the fixed source text of punctuation and keyword tokens,
// or the empty string for tokens whose text varies (identifiers, literals).
func (k Kind) Text() string {
	if IsKeyword(k) || IsOperator(k) {
		return kindNames[k]
	}
	return ""
}

// kindNames maps token kinds to their string representations.
var kindNames = map[Kind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",
	CHAR:   "CHAR",

	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	SLASH:       "/",
	PERCENT:     "%",
	AMP:         "&",
	PIPE:        "|",
	CARET:       "^",
	BANG:        "!",
	TILDE:       "~",
	ASSIGN:      "=",
	PLUSASSIGN:  "+=",
	MINUSASSIGN: "-=",
	STARASSIGN:  "*=",
	SLASHASSIGN: "/=",
	EQ:          "==",
	NE:          "!=",
	LT:          "<",
	GT:          ">",
	LE:          "<=",
	GE:          ">=",
	ANDAND:      "&&",
	OROR:        "||",
	INC:         "++",
	DEC:         "--",
	QUESTION:    "?",
	COLON:       ":",
	ARROW:       "=>",
	DOT:         ".",
	COMMA:       ",",
	SEMICOLON:   ";",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	LBRACKET:    "[",
	RBRACKET:    "]",

	ABSTRACT:  "abstract",
	BASE:      "base",
	BOOL:      "bool",
	CATCH:     "catch",
	CHARKW:    "char",
	CLASS:     "class",
	CONST:     "const",
	DELEGATE:  "delegate",
	DOUBLE:    "double",
	ELSE:      "else",
	ENUM:      "enum",
	EVENT:     "event",
	EXPLICIT:  "explicit",
	FALSE:     "false",
	FINALLY:   "finally",
	FOREACH:   "foreach",
	IF:        "if",
	IMPLICIT:  "implicit",
	IN:        "in",
	INT:       "int",
	INTERFACE: "interface",
	INTERNAL:  "internal",
	LONG:      "long",
	NAMESPACE: "namespace",
	NEW:       "new",
	NULL:      "null",
	OBJECT:    "object",
	OPERATOR:  "operator",
	OUT:       "out",
	OVERRIDE:  "override",
	PARAMS:    "params",
	PRIVATE:   "private",
	PROTECTED: "protected",
	PUBLIC:    "public",
	READONLY:  "readonly",
	REF:       "ref",
	RETURN:    "return",
	SEALED:    "sealed",
	STATIC:    "static",
	STRINGKW:  "string",
	STRUCT:    "struct",
	THIS:      "this",
	THROW:     "throw",
	TRUE:      "true",
	TRY:       "try",
	USING:     "using",
	VIRTUAL:   "virtual",
	VOID:      "void",
	WHILE:     "while",
}

// keywords maps keyword strings to their token kinds.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(maxKind-ABSTRACT))
	for k := ABSTRACT; k < maxKind; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// LookupIdent returns the token kind for the given identifier.
// If the identifier is a reserved keyword, the keyword kind is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) Kind {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token kind is a reserved keyword.
func IsKeyword(k Kind) bool {
	return k >= ABSTRACT && k < maxKind
}

// IsOperator returns true if the token kind is an operator or punctuation.
func IsOperator(k Kind) bool {
	return k >= PLUS && k <= RBRACKET
}

// IsPredefinedType returns true for keywords that name built-in types.
func IsPredefinedType(k Kind) bool {
	switch k {
	case BOOL, CHARKW, DOUBLE, INT, LONG, OBJECT, STRINGKW, VOID:
		return true
	}
	return false
}

// IsModifier returns true for declaration modifier keywords.
func IsModifier(k Kind) bool {
	switch k {
	case ABSTRACT, CONST, INTERNAL, NEW, OVERRIDE, PRIVATE, PROTECTED, PUBLIC,
		READONLY, SEALED, STATIC, VIRTUAL:
		return true
	}
	return false
}

// IsAssignment returns true for simple and compound assignment operators.
func IsAssignment(k Kind) bool {
	switch k {
	case ASSIGN, PLUSASSIGN, MINUSASSIGN, STARASSIGN, SLASHASSIGN:
		return true
	}
	return false
}
