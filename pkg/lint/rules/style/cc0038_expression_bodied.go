package style

import (
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/format"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(ExpressionBodiedAnalyzer)
	fix.Register(ExpressionBodiedFix)
}

// ExpressionBodied flags members whose body is a single return statement.
var ExpressionBodied = lint.MustDescriptor(
	"CC0038",
	"You should use expression bodied members whenever possible.",
	"Use an expression bodied member.",
	lint.CategoryStyle,
	core.SeverityHidden,
	true,
	lint.WithDescription("Methods, operators, conversions and get-only indexers that just return an expression can be written as expression bodied members."),
)

// ExpressionBodiedAnalyzer checks members with block bodies.
var ExpressionBodiedAnalyzer = &lint.Analyzer{
	Name:        "style.expression_bodied",
	Doc:         "Single return bodies can be expression bodies.",
	Descriptors: []*lint.Descriptor{ExpressionBodied},
	Kinds: []syntax.Kind{
		syntax.KindMethodDeclaration,
		syntax.KindOperatorDeclaration,
		syntax.KindConversionOperatorDeclaration,
		syntax.KindIndexerDeclaration,
	},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		var ok bool
		if node.Kind() == syntax.KindIndexerDeclaration {
			_, ok = indexerReturn(node)
		} else {
			_, ok = memberReturn(node)
		}
		if ok {
			pass.Report(ExpressionBodied, ast.NameSpan(node))
		}
	},
}

// singleReturn returns the expression of a block holding only a return
// statement with a value.
func singleReturn(body syntax.Cursor) (syntax.Cursor, bool) {
	if body.Kind() != syntax.KindBlock || ast.ContainsComments(body.Node()) {
		return syntax.Cursor{}, false
	}
	stmt, ok := ast.SingleStatement(body)
	if !ok || stmt.Kind() != syntax.KindReturnStatement {
		return syntax.Cursor{}, false
	}
	expr := stmt.Field(syntax.Expression)
	return expr, expr.Valid()
}

// memberReturn matches methods, operators and conversions.
func memberReturn(member syntax.Cursor) (syntax.Cursor, bool) {
	if member.Field(syntax.ExpressionBody).Valid() {
		return syntax.Cursor{}, false
	}
	return singleReturn(member.Field(syntax.Body))
}

// indexerReturn matches indexers whose only accessor is a getter with a
// single return. It mirrors memberReturn one level down.
func indexerReturn(indexer syntax.Cursor) (syntax.Cursor, bool) {
	if indexer.Field(syntax.ExpressionBody).Valid() {
		return syntax.Cursor{}, false
	}
	accessors := indexer.Field(syntax.AccessorList).Field(syntax.Accessors)
	if !accessors.Valid() || accessors.Node().Len() != 1 {
		return syntax.Cursor{}, false
	}
	get := accessors.Child(0)
	if get.Kind() != syntax.KindGetAccessorDeclaration || get.Field(syntax.Modifiers).Node().Len() > 0 {
		return syntax.Cursor{}, false
	}
	return memberReturn(get)
}

// ExpressionBodiedFix converts the body to => expression;.
var ExpressionBodiedFix = &fix.Provider{
	Name:    "style.expression_bodied",
	RuleIDs: []string{ExpressionBodied.ID()},
	Targets: []syntax.Kind{
		syntax.KindMethodDeclaration,
		syntax.KindOperatorDeclaration,
		syntax.KindConversionOperatorDeclaration,
		syntax.KindIndexerDeclaration,
	},
	Actions: func(_ lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if target.Kind() == syntax.KindIndexerDeclaration {
			if _, ok := indexerReturn(target); !ok {
				return nil
			}
		} else if _, ok := memberReturn(target); !ok {
			return nil
		}
		return []fix.Action{{
			Title:          "Use an expression bodied member",
			EquivalenceKey: ExpressionBodied.ID(),
			Transform:      toExpressionBody,
		}}
	},
}

func toExpressionBody(target syntax.Cursor) *syntax.Node {
	n := target.Node()
	var (
		expr syntax.Cursor
		ok   bool
		body syntax.Role
	)
	if target.Kind() == syntax.KindIndexerDeclaration {
		expr, ok = indexerReturn(target)
		body = syntax.AccessorList
	} else {
		expr, ok = memberReturn(target)
		body = syntax.Body
	}
	if !ok {
		return nil
	}
	params := n.Field(syntax.ParameterList)
	comments := droppedComments(params, n.Field(body))
	trailing := withComments(comments, syntax.TrailingTrivia(n.Field(body)), format.IndentOf(n))
	semi := syntax.NewToken(token.SEMICOLON, ";", nil, trailing)
	n = n.With(syntax.ParameterList, syntax.WithTrailingTrivia(params, nil)).
		With(body, nil).
		With(syntax.ExpressionBody, syntax.NewArrowExpressionClause(syntax.WithoutTrivia(expr.Node()))).
		With(syntax.Semicolon, semi)
	return target.Replace(n)
}

// droppedComments returns the comments that would vanish with the body:
// those after the parameter list and those inside the body, except the
// trailing trivia of its closing token, which moves to the semicolon.
func droppedComments(params, body *syntax.Node) []syntax.Trivia {
	var out []syntax.Trivia
	keep := func(ts []syntax.Trivia) {
		for _, t := range ts {
			if t.Kind.IsComment() {
				out = append(out, t)
			}
		}
	}
	keep(syntax.TrailingTrivia(params))
	last := syntax.LastToken(body)
	for tok := range syntax.Tokens(body) {
		keep(tok.Node().LeadingTrivia())
		if tok.Node() != last {
			keep(tok.Node().TrailingTrivia())
		}
	}
	return out
}

// withComments lays out comments after the semicolon ahead of tail. A line
// comment ends its line, so whatever follows it starts a new one.
func withComments(comments, tail []syntax.Trivia, indent string) []syntax.Trivia {
	if len(comments) == 0 {
		return tail
	}
	var out []syntax.Trivia
	lineOpen := false
	newline := func() {
		out = append(out, syntax.Newline)
		if indent != "" {
			out = append(out, syntax.Trivia{Kind: token.Whitespace, Text: indent})
		}
	}
	for _, c := range comments {
		if lineOpen {
			newline()
		} else {
			out = append(out, syntax.Space)
		}
		out = append(out, c)
		lineOpen = c.Kind != token.MultiLineComment
	}
	rest := tail
	for len(rest) > 0 && rest[0].Kind == token.Whitespace {
		rest = rest[1:]
	}
	switch {
	case len(rest) == 0:
		if lineOpen {
			newline()
		}
		return out
	case rest[0].Kind == token.EndOfLine:
		return append(out, rest...)
	case lineOpen:
		newline()
		return append(out, rest...)
	}
	return append(append(out, syntax.Space), rest...)
}
