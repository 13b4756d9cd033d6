package usage

import (
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(ArgumentExceptionAnalyzer)
	fix.Register(ArgumentExceptionFix)
}

// ArgumentException flags a parameter name argument that names no parameter.
var ArgumentException = lint.MustDescriptor(
	"CC0002",
	"Invalid argument name",
	"Type argument '{0}' is not in the argument list",
	lint.CategoryUsage,
	core.SeverityWarning,
	true,
	lint.WithDescription("The string passed as paramName to an ArgumentException must be the name of a parameter of the enclosing member, or 'value' inside a setter."),
)

// propParams carries the legal names, comma separated, to the fix.
const propParams = "params"

// ArgumentExceptionAnalyzer checks new ArgumentException(message, paramName).
var ArgumentExceptionAnalyzer = &lint.Analyzer{
	Name:        "usage.argument_exception",
	Doc:         "ArgumentException paramName must be a parameter of the enclosing member.",
	Descriptors: []*lint.Descriptor{ArgumentException},
	Kinds:       []syntax.Kind{syntax.KindObjectCreationExpression},
	Node:        checkArgumentException,
}

func checkArgumentException(pass *lint.Pass, node syntax.Cursor) {
	typ := pass.Model.ResolveType(node.Field(syntax.Type))
	if typ.FullName() != "System.ArgumentException" {
		return
	}
	args := ast.Arguments(node)
	if len(args) < 2 {
		return
	}
	literal := args[1].Field(syntax.Expression)
	if !ast.IsStringLiteral(literal) {
		return
	}
	v, ok := pass.Model.ConstantValue(literal)
	name, isString := v.(string)
	if !ok || !isString {
		return
	}
	names, ok := parameterNames(node)
	if !ok {
		return
	}
	for _, n := range names {
		if n == name {
			return
		}
	}
	pass.ReportWithProperties(ArgumentException, literal.Span(),
		map[string]string{propParams: strings.Join(names, ",")}, name)
}

// parameterNames returns the names a paramName argument at c may take. In a
// property setter the only name is "value"; indexer setters add "value" to
// the indexer parameters.
func parameterNames(c syntax.Cursor) ([]string, bool) {
	for anc := range c.Ancestors() {
		switch anc.Kind() {
		case syntax.KindSetAccessorDeclaration, syntax.KindGetAccessorDeclaration:
			owner, ok := anc.FirstAncestorOrSelf(syntax.KindPropertyDeclaration, syntax.KindIndexerDeclaration)
			if !ok {
				return nil, false
			}
			var names []string
			if owner.Kind() == syntax.KindIndexerDeclaration {
				names = parameterList(owner.Field(syntax.ParameterList))
			}
			if anc.Kind() == syntax.KindSetAccessorDeclaration {
				names = append(names, "value")
			}
			return names, true
		case syntax.KindMethodDeclaration, syntax.KindConstructorDeclaration,
			syntax.KindOperatorDeclaration, syntax.KindConversionOperatorDeclaration,
			syntax.KindIndexerDeclaration, syntax.KindDelegateDeclaration,
			syntax.KindDestructorDeclaration:
			return parameterList(anc.Field(syntax.ParameterList)), true
		case syntax.KindPropertyDeclaration:
			return nil, true
		case syntax.KindClassDeclaration, syntax.KindStructDeclaration, syntax.KindInterfaceDeclaration:
			return nil, false
		}
	}
	return nil, false
}

func parameterList(list syntax.Cursor) []string {
	var names []string
	for p := range list.Field(syntax.Parameters).Elements() {
		names = append(names, ast.Identifier(p))
	}
	return names
}

// ArgumentExceptionFix offers one rename per legal parameter name.
var ArgumentExceptionFix = &fix.Provider{
	Name:    "usage.argument_exception",
	RuleIDs: []string{ArgumentException.ID()},
	Targets: []syntax.Kind{syntax.KindLiteralExpression},
	Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
		if !ast.IsStringLiteral(target) || d.Property(propParams) == "" {
			return nil
		}
		var actions []fix.Action
		for _, name := range strings.Split(d.Property(propParams), ",") {
			actions = append(actions, fix.Action{
				Title:          "Use '" + name + "'",
				EquivalenceKey: ArgumentException.ID() + ":" + name,
				Transform: func(target syntax.Cursor) *syntax.Node {
					return fix.Replace(target, syntax.NewStringLiteral(name))
				},
			})
		}
		return actions
	},
}
