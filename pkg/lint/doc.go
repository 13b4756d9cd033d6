// Package lint provides the rule-matching engine of sharplint.
//
// # Architecture
//
// The lint package holds the shared contracts and the traversal engine:
//
//  1. Descriptors (descriptor.go): immutable rule metadata validated at construction
//  2. Analyzers (analyzer.go): data-driven rule modules with node, type and tree triggers
//  3. Engine (engine.go): one traversal per tree, dispatching by node kind
//  4. Config (config.go, severity.go): enabled rules, severities and options
//
// Rule implementations live in pkg/lint/rules/<category> and the constant
// argument evaluator in pkg/lint/consteval.
//
// # Rule Registration
//
// Rules are registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/sharplint/pkg/lint/rules"
//
// # Rule Categories
//
//   - design: type and member design rules (CC0003, CC0016, CC0024)
//   - performance: CC0025
//   - style: readability rules (CC0013, CC0014, CC0037, CC0038, CC0049)
//   - usage: API usage rules (CC0002, CC0010, CC0012, CC0029, CC0061, CC0062, CC0090)
//
// # Creating Custom Rules
//
//	var Rule = lint.MustDescriptor("CC9001", "Title", "Message about {0}",
//		lint.CategoryUsage, core.SeverityWarning, true)
//
//	var Analyzer = &lint.Analyzer{
//		Name:        "usage.my_rule",
//		Descriptors: []*lint.Descriptor{Rule},
//		Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
//		Node:        check,
//	}
//
//	func init() {
//		lint.Register(Analyzer)
//	}
//
// # Configuration
//
//	config := lint.NewConfig()
//	config.Disable("CC0037")
//	config.SetSeverity("CC0049", core.SeverityError)
//	config.SetRuleOptions("CC0016", map[string]any{"handler_name": "h"})
//	engine := lint.NewEngine(nil, lint.WithConfig(config))
//	diags := engine.Analyze(tree, model, "csharp")
package lint
