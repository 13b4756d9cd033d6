package performance

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(EmptyFinalizerAnalyzer)
	fix.Register(EmptyFinalizerFix)
}

// EmptyFinalizer flags finalizers without statements.
var EmptyFinalizer = lint.MustDescriptor(
	"CC0025",
	"Remove Empty Finalizers",
	"Remove Empty Finalizers",
	lint.CategoryPerformance,
	core.SeverityWarning,
	true,
	lint.WithDescription("An empty finalizer does no work but still puts every instance on the finalization queue, delaying its collection."),
	lint.WithTags("Unnecessary"),
)

// EmptyFinalizerAnalyzer checks destructor declarations.
var EmptyFinalizerAnalyzer = &lint.Analyzer{
	Name:        "performance.empty_finalizer",
	Doc:         "Finalizers with an empty body should be removed.",
	Descriptors: []*lint.Descriptor{EmptyFinalizer},
	Kinds:       []syntax.Kind{syntax.KindDestructorDeclaration},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		body := node.Field(syntax.Body)
		if !body.Valid() {
			return
		}
		for range ast.Statements(body) {
			return
		}
		pass.ReportNode(EmptyFinalizer, node)
	},
}

// EmptyFinalizerFix removes the finalizer.
var EmptyFinalizerFix = &fix.Provider{
	Name:    "performance.empty_finalizer",
	RuleIDs: []string{EmptyFinalizer.ID()},
	Targets: []syntax.Kind{syntax.KindDestructorDeclaration},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if target.Parent().Kind() != syntax.KindList {
			return nil
		}
		return []fix.Action{{
			Title:          "Remove finalizer",
			EquivalenceKey: EmptyFinalizer.ID(),
			Transform: func(target syntax.Cursor) *syntax.Node {
				return fix.RemoveElement(target, false)
			},
		}}
	},
}
