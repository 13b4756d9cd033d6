package usage

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/format"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(SuppressFinalizeAnalyzer)
	fix.Register(SuppressFinalizeFix)
}

// SuppressFinalize flags Dispose methods that do not call GC.SuppressFinalize.
var SuppressFinalize = lint.MustDescriptor(
	"CC0029",
	"Disposables Should Call Suppress Finalize",
	"'{0}' should call GC.SuppressFinalize inside the Dispose method.",
	lint.CategoryUsage,
	core.SeverityWarning,
	true,
	lint.WithDescription("Classes implementing IDisposable should call GC.SuppressFinalize(this) from Dispose so that derived types with finalizers do not need to reimplement it."),
)

const suppressFinalize = "System.GC.SuppressFinalize(object)"

// SuppressFinalizeAnalyzer runs once per declared class.
var SuppressFinalizeAnalyzer = &lint.Analyzer{
	Name:        "usage.suppress_finalize",
	Doc:         "Dispose must call GC.SuppressFinalize.",
	Descriptors: []*lint.Descriptor{SuppressFinalize},
	Type:        checkSuppressFinalize,
}

func checkSuppressFinalize(pass *lint.Pass, typ *semantic.Symbol) {
	if typ.TypeKind != semantic.TypeClass || !typ.Implements("System.IDisposable") {
		return
	}
	dispose := disposeMethod(typ)
	if dispose == nil {
		return
	}
	decl, ok := pass.Model.Declaration(dispose)
	if !ok {
		return
	}
	for c := range decl.Descendants() {
		if c.Kind() == syntax.KindInvocationExpression && pass.Model.Resolve(c).Signature() == suppressFinalize {
			return
		}
	}
	pass.Report(SuppressFinalize, ast.NameSpan(decl), typ.Name)
}

// disposeMethod returns Dispose() when the type declares it, or else
// Dispose(bool).
func disposeMethod(typ *semantic.Symbol) *semantic.Symbol {
	var withBool *semantic.Symbol
	for _, m := range typ.MembersNamed("Dispose") {
		if m.Kind != semantic.SymbolMethod || m.ContainingType != typ || !m.IsSource() {
			continue
		}
		switch {
		case len(m.Parameters) == 0:
			return m
		case len(m.Parameters) == 1 && m.Parameters[0].Type.FullName() == "System.Boolean":
			withBool = m
		}
	}
	return withBool
}

// SuppressFinalizeFix appends GC.SuppressFinalize(this); to the body.
var SuppressFinalizeFix = &fix.Provider{
	Name:    "usage.suppress_finalize",
	RuleIDs: []string{SuppressFinalize.ID()},
	Targets: []syntax.Kind{syntax.KindMethodDeclaration},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if target.Field(syntax.Body).Kind() != syntax.KindBlock {
			return nil
		}
		return []fix.Action{{
			Title:          "Call GC.SuppressFinalize",
			EquivalenceKey: SuppressFinalize.ID(),
			Transform:      appendSuppressFinalize,
		}}
	},
}

func appendSuppressFinalize(target syntax.Cursor) *syntax.Node {
	body := target.Field(syntax.Body)
	call := syntax.NewExpressionStatement(syntax.NewInvocation(
		syntax.NewQualifiedMemberAccess(ast.TypeName(target, "System", "GC")+".SuppressFinalize"),
		syntax.NewKeywordLiteral(token.THIS)))

	indent := format.IndentOf(target.Node())
	open := body.Node().Field(syntax.OpenBrace)
	if containsNewline(open.TrailingTrivia()) {
		inner := indent + format.IndentUnit
		stmts := body.Field(syntax.Statements)
		if n := stmts.Node().Len(); n > 0 {
			inner = format.IndentOf(stmts.Node().Child(n - 1))
		}
		return fix.AppendElement(stmts, format.Line(call, inner))
	}

	// A block on one line is spread over several.
	stmts := append(body.Node().Field(syntax.Statements).Elements(), call)
	block := syntax.WithTrailingTrivia(format.Block(indent, stmts...), syntax.TrailingTrivia(body.Node()))
	params := target.Node().Field(syntax.ParameterList)
	n := target.Node().
		With(syntax.ParameterList, syntax.WithTrailingTrivia(params, []syntax.Trivia{syntax.Newline})).
		With(syntax.Body, block)
	return target.Replace(n)
}

func containsNewline(ts []syntax.Trivia) bool {
	for _, t := range ts {
		if t.Kind == token.EndOfLine {
			return true
		}
	}
	return false
}
