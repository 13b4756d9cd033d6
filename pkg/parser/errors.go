package parser

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ErrorList is the set of errors reported for one input.
type ErrorList []error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	return l
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected token %s, expected %s"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedChar    = "unterminated character literal"
	ErrUnterminatedComment = "unterminated comment"
	ErrInvalidNumber       = "invalid number literal"
	ErrIllegalCharacter    = "illegal character %q"
	ErrInvalidStatement    = "only assignment, call, increment, decrement, and new object expressions can be used as a statement"
	ErrExpectedExpression  = "expected expression, got %s"
	ErrExpectedType        = "expected type, got %s"
	ErrExpectedMember      = "expected member declaration, got %s"
	ErrExpectedAccessor    = "expected get or set accessor, got %q"
)
