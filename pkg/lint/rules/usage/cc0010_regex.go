package usage

import (
	"github.com/dlclark/regexp2"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/consteval"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

func init() {
	lint.Register(RegexAnalyzer)
}

// Regex flags constant patterns that do not compile.
var Regex = lint.MustDescriptor(
	"CC0010",
	"Your Regex expression is wrong",
	"{0}",
	lint.CategoryUsage,
	core.SeverityError,
	true,
	lint.WithDescription("The constant pattern passed to a Regex API does not compile and will throw ArgumentException at run time."),
)

// .NET RegexOptions bits that regexp2 interprets the same way. The
// remaining bits either do not affect parsing or mean something else to
// regexp2 (CultureInvariant shares its value with regexp2.RE2).
const netParseOptions = regexp2.IgnoreCase | regexp2.Multiline | regexp2.ExplicitCapture |
	regexp2.Singleline | regexp2.IgnorePatternWhitespace | regexp2.RightToLeft | regexp2.ECMAScript

const regexNamespace = "System.Text.RegularExpressions.Regex"

// regexMethods lists the validated overloads. Patterns are argument 1 of
// the static methods and argument 0 of the constructors.
var regexMethods = []consteval.Method{
	{Name: "Match", Signature: regexNamespace + ".Match(string, string)", ArgumentIndex: 1, Descriptor: Regex, Validate: compilePattern(1, -1)},
	{Name: "Match", Signature: regexNamespace + ".Match(string, string, System.Text.RegularExpressions.RegexOptions)", ArgumentIndex: 1, Descriptor: Regex, Validate: compilePattern(1, 2)},
	{Name: "IsMatch", Signature: regexNamespace + ".IsMatch(string, string)", ArgumentIndex: 1, Descriptor: Regex, Validate: compilePattern(1, -1)},
	{Name: "IsMatch", Signature: regexNamespace + ".IsMatch(string, string, System.Text.RegularExpressions.RegexOptions)", ArgumentIndex: 1, Descriptor: Regex, Validate: compilePattern(1, 2)},
}

var regexConstructors = []consteval.Method{
	{Name: "Regex", Signature: regexNamespace + ".Regex(string)", ArgumentIndex: 0, Descriptor: Regex, Validate: compilePattern(0, -1)},
	{Name: "Regex", Signature: regexNamespace + ".Regex(string, System.Text.RegularExpressions.RegexOptions)", ArgumentIndex: 0, Descriptor: Regex, Validate: compilePattern(0, 1)},
}

// RegexAnalyzer compiles constant patterns with a .NET compatible engine.
var RegexAnalyzer = &lint.Analyzer{
	Name:        "usage.regex",
	Doc:         "Constant regular expression patterns must compile.",
	Descriptors: []*lint.Descriptor{Regex},
	Kinds:       []syntax.Kind{syntax.KindInvocationExpression, syntax.KindObjectCreationExpression},
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		if node.Kind() == syntax.KindObjectCreationExpression {
			for _, m := range regexConstructors {
				consteval.CheckObjectCreation(pass, node, m)
			}
			return
		}
		for _, m := range regexMethods {
			consteval.CheckInvocation(pass, node, m)
		}
	},
}

// compilePattern returns a validator compiling the pattern at argument
// pattern with the options at argument options, if any. A non-constant
// options argument compiles with none.
func compilePattern(pattern, options int) consteval.Validator {
	return func(args []consteval.Value) error {
		if pattern >= len(args) {
			return nil
		}
		expr, ok := args[pattern].String()
		if !ok {
			return nil
		}
		opts := regexp2.None
		if options >= 0 && options < len(args) && args[options].OK {
			if v, ok := args[options].Value.(int64); ok {
				opts = regexp2.RegexOptions(v) & netParseOptions
			}
		}
		_, err := regexp2.Compile(expr, opts)
		return err
	}
}
