package design

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(StaticConstructorExceptionAnalyzer)
	fix.Register(StaticConstructorExceptionFix)
}

// StaticConstructorException flags throw statements in static constructors.
var StaticConstructorException = lint.MustDescriptor(
	"CC0024",
	"Don't throw exception inside static constructors.",
	"Don't throw exception inside static constructors.",
	lint.CategoryDesign,
	core.SeverityWarning,
	true,
	lint.WithDescription("An exception thrown from a static constructor surfaces as a TypeInitializationException and leaves the type unusable for the lifetime of the application domain."),
)

// StaticConstructorExceptionAnalyzer checks throw statements.
var StaticConstructorExceptionAnalyzer = &lint.Analyzer{
	Name:        "design.static_constructor_exception",
	Doc:         "Static constructors should not throw.",
	Descriptors: []*lint.Descriptor{StaticConstructorException},
	Kinds:       []syntax.Kind{syntax.KindThrowStatement},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		member, ok := ast.EnclosingMember(node)
		if !ok || member.Kind() != syntax.KindConstructorDeclaration || !ast.HasModifier(member, token.STATIC) {
			return
		}
		pass.ReportNode(StaticConstructorException, node)
	},
}

// StaticConstructorExceptionFix removes the throw statement. Comments on
// its line are kept.
var StaticConstructorExceptionFix = &fix.Provider{
	Name:    "design.static_constructor_exception",
	RuleIDs: []string{StaticConstructorException.ID()},
	Targets: []syntax.Kind{syntax.KindThrowStatement},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if target.Parent().Kind() != syntax.KindList {
			return nil
		}
		return []fix.Action{{
			Title:          "Remove this exception",
			EquivalenceKey: StaticConstructorException.ID(),
			Transform: func(target syntax.Cursor) *syntax.Node {
				return fix.RemoveElement(target, true)
			},
		}}
	},
}
