package design

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(CatchEmptyAnalyzer)
	fix.Register(CatchEmptyFix)
}

// CatchEmpty flags catch clauses without an exception declaration.
var CatchEmpty = lint.MustDescriptor(
	"CC0003",
	"Your catch should include an Exception",
	"Your catch should include an Exception",
	lint.CategoryDesign,
	core.SeverityWarning,
	true,
	lint.WithDescription("A catch clause without a type catches everything, including exceptions the code cannot handle. Name the exception type."),
)

// CatchEmptyAnalyzer checks catch clauses.
var CatchEmptyAnalyzer = &lint.Analyzer{
	Name:        "design.catch_empty",
	Doc:         "Catch clauses should declare the exception type.",
	Descriptors: []*lint.Descriptor{CatchEmpty},
	Kinds:       []syntax.Kind{syntax.KindCatchClause},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		if node.Field(syntax.Declaration).Valid() {
			return
		}
		pass.Report(CatchEmpty, node.Field(syntax.Keyword).Span())
	},
}

// CatchEmptyFix inserts (Exception ex) after the catch keyword.
var CatchEmptyFix = &fix.Provider{
	Name:    "design.catch_empty",
	RuleIDs: []string{CatchEmpty.ID()},
	Targets: []syntax.Kind{syntax.KindCatchClause},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if target.Field(syntax.Declaration).Valid() {
			return nil
		}
		return []fix.Action{{
			Title:          "Add an Exception class",
			EquivalenceKey: CatchEmpty.ID(),
			Transform:      addCatchDeclaration,
		}}
	},
}

func addCatchDeclaration(target syntax.Cursor) *syntax.Node {
	n := target.Node()
	kw := n.Field(syntax.Keyword)
	decl := syntax.NewCatchDeclaration(ast.TypeName(target, "System", "Exception"), "ex")
	decl = syntax.WithTrailingTrivia(decl, kw.TrailingTrivia())
	n = n.With(syntax.Keyword, kw.WithTrivia(kw.LeadingTrivia(), []syntax.Trivia{syntax.Space}))
	return target.Replace(n.With(syntax.Declaration, decl))
}
