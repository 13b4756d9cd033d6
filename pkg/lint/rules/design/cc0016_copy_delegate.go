package design

import (
	"strconv"
	"unicode"

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
	lint.Register(CopyDelegateAnalyzer)
	fix.Register(CopyDelegateFix)
}

// CopyDelegate flags delegates invoked straight from a field, event or
// property, which may become null between the check and the call.
var CopyDelegate = lint.MustDescriptor(
	"CC0016",
	"Copy Event To Variable Before Fire",
	"Copy the '{0}' event to a variable before fire it.",
	lint.CategoryDesign,
	core.SeverityWarning,
	true,
	lint.WithDescription("Another thread may unsubscribe the last handler between the null check and the invocation. Copy the delegate to a local variable, check the local and invoke it."),
)

// handlerName is the default base name of the local introduced by the
// fix. The handler_name option replaces it; the analyzer passes the
// chosen name to the fix in the "handler" property.
const (
	handlerName   = "handler"
	optionHandler = "handler_name"
	propHandler   = "handler"
)

// CopyDelegateAnalyzer checks invocations of delegate members.
var CopyDelegateAnalyzer = &lint.Analyzer{
	Name:        "design.copy_delegate",
	Doc:         "Delegates stored in members should be copied to a local before invocation.",
	Descriptors: []*lint.Descriptor{CopyDelegate},
	Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
	ConfigKeys:  []string{optionHandler},
	Node:        checkCopyDelegate,
}

func checkCopyDelegate(pass *lint.Pass, node syntax.Cursor) {
	callee := node.Field(syntax.Expression)
	if !callee.Node().Is(syntax.KindIdentifierName, syntax.KindMemberAccessExpression) {
		return
	}
	sym := pass.Model.Resolve(callee)
	if sym == nil {
		return
	}
	switch sym.Kind {
	case semantic.SymbolField, semantic.SymbolEvent, semantic.SymbolProperty:
	default:
		return
	}
	if !ast.IsDelegate(sym.Type) {
		return
	}
	props := map[string]string{propHandler: configuredHandler(pass)}
	pass.ReportWithProperties(CopyDelegate, node.Span(), props, sym.Name)
}

// configuredHandler returns the handler_name option when it is a valid
// identifier, and the default name otherwise.
func configuredHandler(pass *lint.Pass) string {
	name := pass.Options(CopyDelegate.ID()).String(optionHandler, handlerName)
	if !isIdentifier(name) {
		pass.Logger.Warn("ignoring invalid option", "rule", CopyDelegate.ID(), "option", optionHandler, "value", name)
		return handlerName
	}
	return name
}

func isIdentifier(s string) bool {
	if s == "" || token.LookupIdent(s) != token.IDENT {
		return false
	}
	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}

// CopyDelegateFix rewrites a statement invoking a delegate member into a
// copy to a local followed by a guarded invocation of the local.
var CopyDelegateFix = &fix.Provider{
	Name:    "design.copy_delegate",
	RuleIDs: []string{CopyDelegate.ID()},
	Targets: []syntax.Kind{syntax.KindInvocationExpression},
	Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
		stmt := target.Parent()
		if stmt.Kind() != syntax.KindExpressionStatement || stmt.Parent().Kind() != syntax.KindList {
			return nil
		}
		base := d.Property(propHandler)
		if !isIdentifier(base) {
			base = handlerName
		}
		return []fix.Action{{
			Title:          "Copy event reference to a variable",
			EquivalenceKey: CopyDelegate.ID(),
			Transform: func(target syntax.Cursor) *syntax.Node {
				return copyDelegate(target, base)
			},
		}}
	},
}

func copyDelegate(target syntax.Cursor, base string) *syntax.Node {
	stmt := target.Parent()
	member, ok := ast.EnclosingMember(stmt)
	if !ok {
		return nil
	}
	name := unusedName(member.Node(), base)
	n := stmt.Node()

	local := syntax.NewLocalDeclaration(name, syntax.WithoutTrivia(target.Node().Field(syntax.Expression)))
	local = syntax.WithLeadingTrivia(local, syntax.LeadingTrivia(n))
	local = syntax.WithTrailingTrivia(local, []syntax.Trivia{syntax.Newline})

	call := target.Node().With(syntax.Expression, syntax.NewIdentifierName(name))
	guard := syntax.NewIfStatement(
		syntax.NewBinary(syntax.NewIdentifierName(name), token.NE, syntax.NewKeywordLiteral(token.NULL)),
		syntax.NewExpressionStatement(syntax.WithoutTrivia(call)),
	)
	guard = format.Line(syntax.WithTrailingTrivia(guard, syntax.TrailingTrivia(n)), format.IndentOf(n))
	return fix.ReplaceElement(stmt, local, guard)
}

// unusedName returns base, or base followed by the first number that no
// identifier inside scope uses.
func unusedName(scope *syntax.Node, base string) string {
	used := map[string]bool{}
	for tok := range syntax.Tokens(scope) {
		if tok.Node().TokenKind() == token.IDENT {
			used[tok.Node().TokenText()] = true
		}
	}
	name := base
	for i := 1; used[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}
