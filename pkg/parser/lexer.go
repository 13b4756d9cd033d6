package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Lexer tokenizes C# source text into token leaves with trivia attached.
//
// Trailing trivia of a token is the trivia on the same line up to and
// including the end of line. Everything else is leading trivia of the next
// token, so concatenating all tokens reproduces the input exactly.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	errors []error
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors found so far.
func (l *Lexer) Errors() []error {
	return l.errors
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) addError(pos token.Position, msg string) {
	l.errors = append(l.errors, &LexError{Pos: pos, Message: msg})
}

// NextToken returns the next token including its trivia.
func (l *Lexer) NextToken() Token {
	leading := l.readTrivia(false)
	pos := l.currentPos()
	kind, text := l.readToken(pos)
	var trailing []syntax.Trivia
	if kind != token.EOF {
		trailing = l.readTrivia(true)
	}
	return Token{Node: syntax.NewToken(kind, text, leading, trailing), Pos: pos}
}

// Tokenize returns all tokens from the input, ending with EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind() == token.EOF {
			return tokens
		}
	}
}

// readTrivia collects trivia. In trailing mode it stops after the first
// end of line.
func (l *Lexer) readTrivia(trailing bool) []syntax.Trivia {
	var out []syntax.Trivia
	for !l.atEOF() {
		start := l.pos
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v':
			for l.ch == ' ' || l.ch == '\t' || l.ch == '\f' || l.ch == '\v' {
				l.readChar()
			}
			out = append(out, syntax.Trivia{Kind: token.Whitespace, Text: l.input[start:l.pos]})
		case l.ch == '\r' || l.ch == '\n':
			if l.ch == '\r' && l.peekChar() == '\n' {
				l.readChar()
			}
			l.readChar()
			out = append(out, syntax.Trivia{Kind: token.EndOfLine, Text: l.input[start:l.pos]})
			if trailing {
				return out
			}
		case l.ch == '/' && l.peekChar() == '/':
			kind := token.SingleLineComment
			if l.peekAt(2) == '/' && l.peekAt(3) != '/' {
				kind = token.DocComment
			}
			for !l.atEOF() && l.ch != '\n' && l.ch != '\r' {
				l.readChar()
			}
			out = append(out, syntax.Trivia{Kind: kind, Text: l.input[start:l.pos]})
		case l.ch == '/' && l.peekChar() == '*':
			pos := l.currentPos()
			l.readChar()
			l.readChar()
			for !l.atEOF() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if l.atEOF() {
				l.addError(pos, ErrUnterminatedComment)
			} else {
				l.readChar()
				l.readChar()
			}
			out = append(out, syntax.Trivia{Kind: token.MultiLineComment, Text: l.input[start:l.pos]})
		default:
			return out
		}
	}
	return out
}

func (l *Lexer) readToken(pos token.Position) (token.Kind, string) {
	start := l.pos
	if l.atEOF() {
		return token.EOF, ""
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		ident := l.input[start:l.pos]
		return token.LookupIdent(ident), ident
	case l.ch == '@' && isLetter(l.peekChar()):
		l.readChar()
		for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return token.IDENT, l.input[start:l.pos]
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		l.readNumber(pos)
		return token.NUMBER, l.input[start:l.pos]
	case l.ch == '"':
		l.readString(pos)
		return token.STRING, l.input[start:l.pos]
	case (l.ch == '@' || l.ch == '$') && l.peekChar() == '"':
		l.readChar()
		if l.input[start] == '@' {
			l.readVerbatimString(pos)
		} else {
			l.readString(pos)
		}
		return token.STRING, l.input[start:l.pos]
	case l.ch == '\'':
		l.readCharLiteral(pos)
		return token.CHAR, l.input[start:l.pos]
	}

	kind := l.readOperator()
	if kind == token.ILLEGAL {
		l.addError(pos, fmt.Sprintf(ErrIllegalCharacter, l.ch))
		l.readChar()
	}
	return kind, l.input[start:l.pos]
}

// operators lists multi-character operators before their prefixes.
var operators = []struct {
	text string
	kind token.Kind
}{
	{"=>", token.ARROW}, {"==", token.EQ}, {"!=", token.NE}, {"<=", token.LE}, {">=", token.GE},
	{"&&", token.ANDAND}, {"||", token.OROR}, {"++", token.INC}, {"--", token.DEC},
	{"+=", token.PLUSASSIGN}, {"-=", token.MINUSASSIGN}, {"*=", token.STARASSIGN}, {"/=", token.SLASHASSIGN},
	{"+", token.PLUS}, {"-", token.MINUS}, {"*", token.STAR}, {"/", token.SLASH}, {"%", token.PERCENT},
	{"&", token.AMP}, {"|", token.PIPE}, {"^", token.CARET}, {"!", token.BANG}, {"~", token.TILDE},
	{"=", token.ASSIGN}, {"<", token.LT}, {">", token.GT}, {"?", token.QUESTION}, {":", token.COLON},
	{".", token.DOT}, {",", token.COMMA}, {";", token.SEMICOLON}, {"(", token.LPAREN}, {")", token.RPAREN},
	{"{", token.LBRACE}, {"}", token.RBRACE}, {"[", token.LBRACKET}, {"]", token.RBRACKET},
}

func (l *Lexer) readOperator() token.Kind {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && rest[:len(op.text)] == op.text {
			for range op.text {
				l.readChar()
			}
			return op.kind
		}
	}
	return token.ILLEGAL
}

// readNumber reads integer, real and hex literals with C# suffixes.
func (l *Lexer) readNumber(pos token.Position) {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		if !isHexDigit(l.ch) {
			l.addError(pos, ErrInvalidNumber)
		}
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		l.readSuffix("uUlL")
		return
	}

	// Read integer part
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		if !isDigit(l.ch) {
			l.addError(pos, ErrInvalidNumber)
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	l.readSuffix("uUlLfFdDmM")
	if isLetter(l.ch) {
		l.addError(pos, ErrInvalidNumber)
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
	}
}

func (l *Lexer) readSuffix(allowed string) {
	for i := 0; i < 2; i++ {
		found := false
		for j := 0; j < len(allowed); j++ {
			if l.ch == allowed[j] {
				found = true
			}
		}
		if !found {
			return
		}
		l.readChar()
	}
}

// readString reads a regular string literal including its quotes.
func (l *Lexer) readString(pos token.Position) {
	l.readChar() // skip opening quote
	for l.ch != '"' {
		if l.atEOF() || l.ch == '\n' || l.ch == '\r' {
			l.addError(pos, ErrUnterminatedString)
			return
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar() // skip closing quote
}

// readVerbatimString reads @"..." where "" escapes a quote.
func (l *Lexer) readVerbatimString(pos token.Position) {
	l.readChar() // skip opening quote
	for {
		if l.atEOF() {
			l.addError(pos, ErrUnterminatedString)
			return
		}
		if l.ch == '"' {
			if l.peekChar() != '"' {
				l.readChar()
				return
			}
			l.readChar()
		}
		l.readChar()
	}
}

func (l *Lexer) readCharLiteral(pos token.Position) {
	l.readChar() // skip opening quote
	for l.ch != '\'' {
		if l.atEOF() || l.ch == '\n' {
			l.addError(pos, ErrUnterminatedChar)
			return
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	l.readChar()
}

// isLetter returns true if ch is a letter. Bytes of multi-byte UTF-8
// sequences are treated as letters.
func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= 0x80
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}
