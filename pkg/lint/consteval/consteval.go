// Package consteval validates constant arguments of known library calls.
//
// A Method names the library member to match and a Validator that checks
// the folded argument values. The invocation and object-creation drivers
// share one contract: match the simple name first, then the full
// signature of the bound symbol, and bail out without a diagnostic when
// either differs.
package consteval

import (
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// Value is the folded value of one argument. OK is false when the
// argument is not a compile-time constant.
type Value struct {
	Value any
	OK    bool
}

// String returns the value as a string when it is a constant string.
func (v Value) String() (string, bool) {
	s, ok := v.Value.(string)
	return s, v.OK && ok
}

// Validator checks extracted arguments. A non-nil error is reported; the
// innermost wrapped error supplies the message.
type Validator func(args []Value) error

// Method describes a validated library member.
type Method struct {
	// Name is the simple name matched syntactically: the method name for
	// invocations, the type name for object creations.
	Name string
	// Signature is the full signature of the bound symbol, e.g.
	// "System.Net.IPAddress.Parse(string)".
	Signature string
	// ArgumentIndex selects the argument the diagnostic is reported on.
	ArgumentIndex int
	// Descriptor is reported with the error message as its only argument.
	Descriptor *lint.Descriptor
	Validate   Validator
}

// Extract folds every argument of an argument list, in order. Arguments
// that are not constants map to a Value with OK false; none are skipped.
func Extract(model semantic.Model, argList syntax.Cursor) []Value {
	var out []Value
	for arg := range argList.Field(syntax.Arguments).Elements() {
		v, ok := model.ConstantValue(arg.Field(syntax.Expression))
		out = append(out, Value{Value: v, OK: ok})
	}
	return out
}

// Execute runs the validator of m over args and reports its failure at
// the configured argument. It does nothing for an empty argument list.
func Execute(pass *lint.Pass, m Method, args []Value, argList syntax.Cursor) {
	arguments := argList.Field(syntax.Arguments)
	if !arguments.Valid() || arguments.Node().Len() == 0 || m.Validate == nil {
		return
	}
	err := m.Validate(args)
	if err == nil {
		return
	}
	at := argList
	i := 0
	for arg := range arguments.Elements() {
		if i == m.ArgumentIndex {
			at = arg
			break
		}
		i++
	}
	pass.ReportNode(m.Descriptor, at, Innermost(err).Error())
}

// Innermost follows the Unwrap chain of err to its root cause. For errors
// joining several causes the first one is followed.
func Innermost(err error) error {
	for {
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			next := u.Unwrap()
			if next == nil {
				return err
			}
			err = next
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 || errs[0] == nil {
				return err
			}
			err = errs[0]
		default:
			return err
		}
	}
}

// CheckInvocation validates an invocation of m. node must be an
// invocation expression; anything else is a no-match.
func CheckInvocation(pass *lint.Pass, node syntax.Cursor, m Method) {
	if node.Kind() != syntax.KindInvocationExpression || calleeName(node.Node().Field(syntax.Expression)) != m.Name {
		return
	}
	if !matchesSignature(pass.Model.Resolve(node), m.Signature) {
		return
	}
	argList := node.Field(syntax.ArgumentList)
	Execute(pass, m, Extract(pass.Model, argList), argList)
}

// CheckObjectCreation validates a constructor call of m. node must be an
// object creation expression; anything else is a no-match.
func CheckObjectCreation(pass *lint.Pass, node syntax.Cursor, m Method) {
	if node.Kind() != syntax.KindObjectCreationExpression || typeName(node.Node().Field(syntax.Type)) != m.Name {
		return
	}
	if !matchesSignature(pass.Model.Resolve(node), m.Signature) {
		return
	}
	argList := node.Field(syntax.ArgumentList)
	Execute(pass, m, Extract(pass.Model, argList), argList)
}

func matchesSignature(sym *semantic.Symbol, signature string) bool {
	return sym != nil && sym.Signature() == signature
}

// calleeName returns the simple name of an invocation target.
func calleeName(n *syntax.Node) string {
	switch n.Kind() {
	case syntax.KindIdentifierName, syntax.KindGenericName:
		return n.Field(syntax.Identifier).TokenText()
	case syntax.KindMemberAccessExpression:
		return calleeName(n.Field(syntax.Name))
	}
	return ""
}

// typeName returns the rightmost simple name of a type syntax node.
func typeName(n *syntax.Node) string {
	switch n.Kind() {
	case syntax.KindIdentifierName, syntax.KindGenericName:
		return n.Field(syntax.Identifier).TokenText()
	case syntax.KindQualifiedName:
		return typeName(n.Field(syntax.Right))
	}
	return ""
}
