package usage

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(RethrowAnalyzer)
	fix.Register(RethrowFix)
}

// Rethrow flags throw statements rethrowing the caught exception by name.
var Rethrow = lint.MustDescriptor(
	"CC0012",
	"Your throw does nothing",
	"Throwing the same exception that was caught will lose the original stack trace.",
	lint.CategoryUsage,
	core.SeverityWarning,
	true,
	lint.WithDescription("throw ex; resets the stack trace of ex. Use throw; to rethrow, or wrap the exception as the inner exception of a new one."),
)

// Equivalence keys of the two fixes.
const (
	rethrowKey = "CC0012:rethrow"
	wrapKey    = "CC0012:wrap"
)

// RethrowAnalyzer checks throw statements inside catch blocks.
var RethrowAnalyzer = &lint.Analyzer{
	Name:        "usage.rethrow",
	Doc:         "Rethrow the caught exception with throw; to keep its stack trace.",
	Descriptors: []*lint.Descriptor{Rethrow},
	Kinds:       []syntax.Kind{syntax.KindThrowStatement},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		decl, ok := caughtVariable(node)
		if !ok {
			return
		}
		thrown := pass.Model.Resolve(node.Field(syntax.Expression))
		if thrown == nil || thrown != pass.Model.DeclaredSymbol(decl) {
			return
		}
		pass.ReportNode(Rethrow, node)
	},
}

// caughtVariable returns the catch declaration whose variable a throw
// statement names.
func caughtVariable(throw syntax.Cursor) (syntax.Cursor, bool) {
	expr := throw.Field(syntax.Expression)
	if expr.Kind() != syntax.KindIdentifierName {
		return syntax.Cursor{}, false
	}
	catch, ok := throw.FirstAncestorOrSelf(syntax.KindCatchClause)
	if !ok {
		return syntax.Cursor{}, false
	}
	decl := catch.Field(syntax.Declaration)
	if !decl.Field(syntax.Identifier).Valid() || ast.Identifier(decl) != ast.Identifier(expr) {
		return syntax.Cursor{}, false
	}
	return decl, true
}

// RethrowFix offers a plain rethrow and a rethrow wrapping the exception.
var RethrowFix = &fix.Provider{
	Name:    "usage.rethrow",
	RuleIDs: []string{Rethrow.ID()},
	Targets: []syntax.Kind{syntax.KindThrowStatement},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if _, ok := caughtVariable(target); !ok {
			return nil
		}
		return []fix.Action{
			{
				Title:          "Throw original exception",
				EquivalenceKey: rethrowKey,
				Transform: func(target syntax.Cursor) *syntax.Node {
					return fix.Replace(target, syntax.NewThrowStatement(nil))
				},
			},
			{
				Title:          "Rethrow as inner exception",
				EquivalenceKey: wrapKey,
				Transform:      wrapRethrow,
			},
		}
	},
}

func wrapRethrow(target syntax.Cursor) *syntax.Node {
	name := ast.Identifier(target.Field(syntax.Expression))
	typ := syntax.NewQualifiedName(ast.TypeName(target, "System", "Exception"))
	creation := syntax.NewObjectCreation(typ,
		syntax.NewMemberAccess(syntax.NewIdentifierName(name), "Message"),
		syntax.NewIdentifierName(name))
	return fix.Replace(target, syntax.NewThrowStatement(creation))
}
