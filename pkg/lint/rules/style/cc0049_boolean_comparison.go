package style

import (
	"strconv"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(BooleanComparisonAnalyzer)
	fix.Register(BooleanComparisonFix)
}

// BooleanComparison flags == and != against a boolean constant.
var BooleanComparison = lint.MustDescriptor(
	"CC0049",
	"Simplify redundant boolean comparison",
	"You can remove this comparison.",
	lint.CategoryStyle,
	core.SeverityInfo,
	true,
	lint.WithDescription("Comparing a boolean expression with true or false is redundant. Use the expression, or its negation."),
	lint.WithTags("Unnecessary"),
)

// propNegate tells the fix whether the simplified operand is negated.
const propNegate = "negate"

// BooleanComparisonAnalyzer checks equality comparisons.
var BooleanComparisonAnalyzer = &lint.Analyzer{
	Name:        "style.boolean_comparison",
	Doc:         "Comparisons with true or false can be simplified.",
	Descriptors: []*lint.Descriptor{BooleanComparison},
	Kinds:       []syntax.Kind{syntax.KindBinaryExpression},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		op := node.Node().Field(syntax.Operator).TokenKind()
		if op != token.EQ && op != token.NE {
			return
		}
		v, ok := pass.Model.ConstantValue(node.Field(syntax.Right))
		b, isBool := v.(bool)
		if !ok || !isBool {
			return
		}
		negate := (!b && op == token.EQ) || (b && op == token.NE)
		pass.ReportWithProperties(BooleanComparison, node.Span(),
			map[string]string{propNegate: strconv.FormatBool(negate)})
	},
}

// BooleanComparisonFix keeps the left operand, negated when the truth
// table asks for it.
var BooleanComparisonFix = &fix.Provider{
	Name:    "style.boolean_comparison",
	RuleIDs: []string{BooleanComparison.ID()},
	Targets: []syntax.Kind{syntax.KindBinaryExpression},
	Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
		negate, err := strconv.ParseBool(d.Property(propNegate))
		if err != nil {
			return nil
		}
		return []fix.Action{{
			Title:          "Simplify expression",
			EquivalenceKey: BooleanComparison.ID(),
			Transform: func(target syntax.Cursor) *syntax.Node {
				return simplifyComparison(target, negate)
			},
		}}
	},
}

func simplifyComparison(target syntax.Cursor, negate bool) *syntax.Node {
	left := unparenthesize(syntax.WithoutTrivia(target.Node().Field(syntax.Left)))
	if negate {
		left = syntax.NewPrefixUnary(token.BANG, syntax.ParenthesizeIfNeeded(left))
	}
	// (a == true) needs no parentheses once it is a.
	if parent := target.Parent(); parent.Kind() == syntax.KindParenthesizedExpression &&
		syntax.IsPrimaryExpression(left) && bareParens(parent.Node()) {
		return fix.Replace(parent, left)
	}
	return fix.Replace(target, left)
}

// unparenthesize removes parentheses around primary expressions.
func unparenthesize(n *syntax.Node) *syntax.Node {
	for n.Kind() == syntax.KindParenthesizedExpression && bareParens(n) {
		inner := n.Field(syntax.Expression)
		if !syntax.IsPrimaryExpression(inner) {
			break
		}
		n = syntax.WithoutTrivia(inner)
	}
	return n
}

// bareParens reports whether dropping the parentheses of p loses no
// comment.
func bareParens(p *syntax.Node) bool {
	inner := p.Field(syntax.Expression)
	return !syntax.HasComments(p.Field(syntax.OpenParen).TrailingTrivia()) &&
		!syntax.HasComments(syntax.LeadingTrivia(inner)) &&
		!syntax.HasComments(syntax.TrailingTrivia(inner)) &&
		!syntax.HasComments(p.Field(syntax.CloseParen).LeadingTrivia())
}
