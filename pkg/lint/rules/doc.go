// Package rules provides the C# analyzers and code fixes shipped with
// sharplint.
//
// Rules are organized by diagnostic category:
//   - design: exception handling and event raising (CC0003, CC0016, CC0024)
//   - performance: members that cost without doing anything (CC0025)
//   - style: simpler spellings of the same code (CC0013, CC0014, CC0037, CC0038, CC0049)
//   - usage: calling library APIs correctly (CC0002, CC0010, CC0012, CC0029, CC0061, CC0062, CC0090)
//
// To register all rules with the global lint and fix registries, import
// this package with a blank identifier:
//
//	import _ "github.com/leapstack-labs/sharplint/pkg/lint/rules"
//
// Individual categories can also be imported:
//
//	import _ "github.com/leapstack-labs/sharplint/pkg/lint/rules/usage"
package rules
