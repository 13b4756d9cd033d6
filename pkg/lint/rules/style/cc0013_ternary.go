package style

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(TernaryAnalyzer)
	fix.Register(TernaryFix)
}

// TernaryReturn flags if/else statements that return in both branches.
var TernaryReturn = lint.MustDescriptor(
	"CC0013",
	"Use ternary operator",
	"You can use a ternary operator.",
	lint.CategoryStyle,
	core.SeverityWarning,
	true,
	lint.WithDescription("An if/else whose branches only return a value reads better as a single return of a conditional expression."),
)

// TernaryAssignment flags if/else statements that assign the same target in
// both branches.
var TernaryAssignment = lint.MustDescriptor(
	"CC0014",
	"Use ternary operator",
	"You can use a ternary operator.",
	lint.CategoryStyle,
	core.SeverityWarning,
	true,
	lint.WithDescription("An if/else whose branches only assign the same variable reads better as a single assignment of a conditional expression."),
)

// TernaryAnalyzer reports both shapes. They have separate ids so that each
// can be configured on its own.
var TernaryAnalyzer = &lint.Analyzer{
	Name:        "style.ternary",
	Doc:         "if/else with symmetric branches can use the conditional operator.",
	Descriptors: []*lint.Descriptor{TernaryReturn, TernaryAssignment},
	Kinds:       []syntax.Kind{syntax.KindIfStatement},
	Node:        checkTernary,
}

// ternaryShape classifies an if statement.
type ternaryShape int

const (
	shapeNone ternaryShape = iota
	shapeReturn
	shapeAssignment
)

// branches returns the single statements of both branches of an if/else.
// Else-if chains and interior comments disqualify the statement.
func branches(ifStmt syntax.Cursor) (then, els syntax.Cursor, ok bool) {
	elseClause := ifStmt.Field(syntax.Else)
	if !elseClause.Valid() || elseClause.Field(syntax.Statement).Kind() == syntax.KindIfStatement {
		return then, els, false
	}
	if ast.ContainsComments(ifStmt.Node()) {
		return then, els, false
	}
	then, ok = ast.SingleStatement(ifStmt.Field(syntax.Statement))
	if !ok {
		return then, els, false
	}
	els, ok = ast.SingleStatement(elseClause.Field(syntax.Statement))
	return then, els, ok
}

// shapeOf returns the ternary shape of the branches, checked syntactically.
func shapeOf(then, els syntax.Cursor) ternaryShape {
	switch {
	case then.Kind() == syntax.KindReturnStatement && els.Kind() == syntax.KindReturnStatement:
		if then.Field(syntax.Expression).Valid() && els.Field(syntax.Expression).Valid() {
			return shapeReturn
		}
	case then.Kind() == syntax.KindExpressionStatement && els.Kind() == syntax.KindExpressionStatement:
		a, b := then.Field(syntax.Expression), els.Field(syntax.Expression)
		if a.Kind() != syntax.KindAssignmentExpression || b.Kind() != syntax.KindAssignmentExpression {
			return shapeNone
		}
		if a.Node().Field(syntax.Operator).TokenKind() != b.Node().Field(syntax.Operator).TokenKind() {
			return shapeNone
		}
		if !syntax.Equivalent(syntax.WithoutTrivia(a.Node().Field(syntax.Left)), syntax.WithoutTrivia(b.Node().Field(syntax.Left))) {
			return shapeNone
		}
		return shapeAssignment
	}
	return shapeNone
}

func checkTernary(pass *lint.Pass, node syntax.Cursor) {
	then, els, ok := branches(node)
	if !ok {
		return
	}
	switch shapeOf(then, els) {
	case shapeReturn:
		pass.Report(TernaryReturn, node.Field(syntax.Keyword).Span())
	case shapeAssignment:
		// Same spelling is not enough: both targets must bind to the same
		// symbol when they bind at all.
		left := then.Field(syntax.Expression).Field(syntax.Left)
		right := els.Field(syntax.Expression).Field(syntax.Left)
		a, b := pass.Model.Resolve(left), pass.Model.Resolve(right)
		if a != nil && b != nil && a != b {
			return
		}
		pass.Report(TernaryAssignment, node.Field(syntax.Keyword).Span())
	}
}

// TernaryFix replaces the if/else with a return or assignment of a
// conditional expression.
var TernaryFix = &fix.Provider{
	Name:    "style.ternary",
	RuleIDs: []string{TernaryReturn.ID(), TernaryAssignment.ID()},
	Targets: []syntax.Kind{syntax.KindIfStatement},
	Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
		then, els, ok := branches(target)
		if !ok {
			return nil
		}
		want := shapeReturn
		if d.RuleID() == TernaryAssignment.ID() {
			want = shapeAssignment
		}
		if shapeOf(then, els) != want {
			return nil
		}
		return []fix.Action{{
			Title:          "Change to ternary operator",
			EquivalenceKey: d.RuleID(),
			Transform:      toTernary,
		}}
	},
}

func toTernary(target syntax.Cursor) *syntax.Node {
	then, els, ok := branches(target)
	if !ok {
		return nil
	}
	cond := operand(target.Node().Field(syntax.Condition), true)
	var stmt *syntax.Node
	switch shapeOf(then, els) {
	case shapeReturn:
		stmt = syntax.NewReturnStatement(syntax.NewConditional(cond,
			operand(then.Node().Field(syntax.Expression), false),
			operand(els.Node().Field(syntax.Expression), false)))
	case shapeAssignment:
		a, b := then.Node().Field(syntax.Expression), els.Node().Field(syntax.Expression)
		stmt = syntax.NewExpressionStatement(syntax.NewAssignment(
			syntax.WithoutTrivia(a.Field(syntax.Left)),
			a.Field(syntax.Operator).TokenKind(),
			syntax.NewConditional(cond,
				operand(a.Field(syntax.Right), false),
				operand(b.Field(syntax.Right), false))))
	default:
		return nil
	}
	return fix.Replace(target, stmt)
}

// operand strips the trivia of n and parenthesizes it when it binds more
// loosely than a conditional operand allows.
func operand(n *syntax.Node, condition bool) *syntax.Node {
	n = syntax.WithoutTrivia(n)
	if n.Is(syntax.KindAssignmentExpression) || (condition && n.Is(syntax.KindConditionalExpression)) {
		return syntax.NewParenthesized(n)
	}
	return n
}
