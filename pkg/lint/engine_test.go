package lint_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/testutil"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/parser"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

const engineSource = `class A
{
    void M()
    {
        Run();
        if (true) { Stop(); }
    }
    void Run() { }
    void Stop() { }
}
class B { }
`

var (
	invocationRule = lint.MustDescriptor("TS0001", "Invocation", "Call to {0}", lint.CategoryUsage, core.SeverityWarning, true)
	ifRule         = lint.MustDescriptor("TS0002", "If", "If statement", lint.CategoryStyle, core.SeverityInfo, true)
	typeRule       = lint.MustDescriptor("TS0003", "Type", "Type {0}", lint.CategoryDesign, core.SeverityInfo, true)
	optInRule      = lint.MustDescriptor("TS0004", "Opt in", "Opt in", lint.CategoryDesign, core.SeverityInfo, false)
)

func invocations() *lint.Analyzer {
	return &lint.Analyzer{
		Name:        "test.invocations",
		Descriptors: []*lint.Descriptor{invocationRule},
		Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
		Node: func(pass *lint.Pass, node syntax.Cursor) {
			pass.ReportNode(invocationRule, node, node.Field(syntax.Expression).Node().Text())
		},
	}
}

func ifs() *lint.Analyzer {
	return &lint.Analyzer{
		Name:        "test.ifs",
		Descriptors: []*lint.Descriptor{ifRule},
		Kinds:       []syntax.Kind{syntax.KindIfStatement},
		Node: func(pass *lint.Pass, node syntax.Cursor) {
			pass.Report(ifRule, node.Field(syntax.Keyword).Span())
		},
	}
}

func analyze(t *testing.T, src string, analyzers []*lint.Analyzer, opts ...lint.EngineOption) []lint.Diagnostic {
	t.Helper()
	tree, err := parser.Parse("test.cs", src)
	require.NoError(t, err)
	comp := semantic.NewCompilation([]*syntax.Tree{tree})
	opts = append(opts, lint.WithLogger(testutil.NewTestLogger(t)))
	return lint.NewEngine(analyzers, opts...).Analyze(tree, comp.Model(tree), "csharp")
}

func ids(diags []lint.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.RuleID() + ":" + d.Message
	}
	return out
}

func TestEngine_DispatchAndSort(t *testing.T) {
	diags := analyze(t, engineSource, []*lint.Analyzer{invocations(), ifs()})

	assert.Equal(t, []string{
		"TS0001:Call to Run",
		"TS0002:If statement",
		"TS0001:Call to Stop",
	}, ids(diags))
	assert.True(t, slices.IsSortedFunc(diags, func(a, b lint.Diagnostic) int {
		return a.Span.Start - b.Span.Start
	}))

	first := diags[0]
	assert.Equal(t, "test.cs", first.Path)
	assert.Equal(t, 5, first.Start.Line)
	assert.Equal(t, 9, first.Start.Column)
	assert.Equal(t, core.SeverityWarning, first.Severity)
	assert.Equal(t, "https://sharplint.dev/rules/TS0001.html", first.HelpLink())
}

func TestEngine_TypeTrigger(t *testing.T) {
	types := &lint.Analyzer{
		Name:        "test.types",
		Descriptors: []*lint.Descriptor{typeRule},
		Type: func(pass *lint.Pass, typ *semantic.Symbol) {
			pass.Report(typeRule, typ.NameSpan, typ.Name)
		},
	}
	diags := analyze(t, engineSource, []*lint.Analyzer{types})
	assert.Equal(t, []string{"TS0003:Type A", "TS0003:Type B"}, ids(diags))
}

func TestEngine_NilModelBindsTree(t *testing.T) {
	resolved := &lint.Analyzer{
		Name:        "test.resolved",
		Descriptors: []*lint.Descriptor{invocationRule, typeRule},
		Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
		Node: func(pass *lint.Pass, node syntax.Cursor) {
			sym := pass.Model.Resolve(node.Field(syntax.Expression))
			require.NotNil(t, sym)
			pass.ReportNode(invocationRule, node, sym.Signature())
		},
		Type: func(pass *lint.Pass, typ *semantic.Symbol) {
			pass.Report(typeRule, typ.NameSpan, typ.Name)
		},
	}
	tree, err := parser.Parse("test.cs", engineSource)
	require.NoError(t, err)

	diags := lint.NewEngine([]*lint.Analyzer{resolved}, lint.WithLogger(testutil.NewTestLogger(t))).Analyze(tree, nil, "csharp")
	assert.Equal(t, []string{
		"TS0003:Type A",
		"TS0001:Call to A.Run()",
		"TS0001:Call to A.Stop()",
		"TS0003:Type B",
	}, ids(diags))
}

func TestEngine_AnalyzerFaulted(t *testing.T) {
	calls := 0
	faulty := &lint.Analyzer{
		Name:        "test.faulty",
		Descriptors: []*lint.Descriptor{invocationRule},
		Kinds:       []syntax.Kind{syntax.KindInvocationExpression},
		Node: func(pass *lint.Pass, node syntax.Cursor) {
			calls++
			var n *syntax.Node
			_ = n.Field(syntax.Expression).Field(syntax.Name).Children()[3] // index out of range
		},
	}

	diags := analyze(t, engineSource, []*lint.Analyzer{faulty, ifs()})

	assert.Equal(t, 1, calls, "faulted analyzer must not run again in the same document")
	require.Len(t, diags, 2)
	assert.Equal(t, "AD0001", diags[0].RuleID())
	assert.Contains(t, diags[0].Message, "test.faulty")
	assert.Equal(t, "TS0002", diags[1].RuleID(), "other analyzers keep running")
}

func TestEngine_Config(t *testing.T) {
	t.Run("disabled rule", func(t *testing.T) {
		cfg := lint.NewConfig().Disable("TS0001")
		diags := analyze(t, engineSource, []*lint.Analyzer{invocations(), ifs()}, lint.WithConfig(cfg))
		assert.Equal(t, []string{"TS0002:If statement"}, ids(diags))
	})

	t.Run("severity override", func(t *testing.T) {
		cfg := lint.NewConfig().SetSeverity("TS0002", core.SeverityError)
		diags := analyze(t, engineSource, []*lint.Analyzer{ifs()}, lint.WithConfig(cfg))
		require.Len(t, diags, 1)
		assert.Equal(t, core.SeverityError, diags[0].Severity)
	})

	t.Run("flavor override wins", func(t *testing.T) {
		cfg := lint.NewConfig().
			SetSeverity("TS0002", core.SeverityError).
			SetFlavorSeverity("csharp", "TS0002", core.SeverityHidden)
		diags := analyze(t, engineSource, []*lint.Analyzer{ifs()}, lint.WithConfig(cfg))
		require.Len(t, diags, 1)
		assert.Equal(t, core.SeverityHidden, diags[0].Severity)
	})

	t.Run("disabled by default", func(t *testing.T) {
		optIn := &lint.Analyzer{
			Name:        "test.optin",
			Descriptors: []*lint.Descriptor{optInRule},
			Kinds:       []syntax.Kind{syntax.KindClassDeclaration},
			Node: func(pass *lint.Pass, node syntax.Cursor) {
				pass.ReportNode(optInRule, node.Field(syntax.Identifier))
			},
		}
		assert.Empty(t, analyze(t, engineSource, []*lint.Analyzer{optIn}))

		cfg := lint.NewConfig().Enable("TS0004")
		assert.Len(t, analyze(t, engineSource, []*lint.Analyzer{optIn}, lint.WithConfig(cfg)), 2)
	})

	t.Run("frozen copy", func(t *testing.T) {
		cfg := lint.NewConfig()
		engine := lint.NewEngine([]*lint.Analyzer{ifs()}, lint.WithConfig(cfg))
		cfg.Disable("TS0002")
		assert.True(t, engine.Config().IsEnabled(ifRule))
	})
}

func TestRegistry(t *testing.T) {
	r := lint.NewRegistry()
	require.NoError(t, r.Add(ifs()))
	require.NoError(t, r.Add(invocations()))

	dup := ifs()
	dup.Descriptors = []*lint.Descriptor{lint.MustDescriptor("TS0002", "Other", "Other", lint.CategoryStyle, core.SeverityInfo, true)}
	assert.Error(t, r.Add(dup))
	assert.Error(t, r.Add(&lint.Analyzer{Name: "empty"}))

	var got []string
	for _, d := range r.Descriptors() {
		got = append(got, d.ID())
	}
	assert.Equal(t, []string{"AD0001", "TS0001", "TS0002"}, got)

	analyzers := r.Analyzers()
	require.Len(t, analyzers, 2)
	assert.Equal(t, "TS0001", analyzers[0].ID())

	d, ok := r.Descriptor("AD0001")
	require.True(t, ok)
	assert.Same(t, lint.AnalyzerFaulted, d)
}

func TestSeverityConfig(t *testing.T) {
	sc := lint.NewSeverityConfig(
		[]*lint.Descriptor{ifRule},
		map[string]core.Severity{"TS0001": core.SeverityError},
		map[string]map[string]core.Severity{"script": {"TS0002": core.SeverityHidden}},
	)
	assert.Equal(t, core.SeverityError, sc.Severity(invocationRule, "csharp"))
	assert.Equal(t, core.SeverityInfo, sc.Severity(ifRule, "csharp"))
	assert.Equal(t, core.SeverityHidden, sc.Severity(ifRule, "script"))
	assert.Equal(t, core.SeverityInfo, sc.Severity(typeRule, "script"))

	sev, ok := sc.Lookup("TS0002", "csharp")
	assert.True(t, ok)
	assert.Equal(t, core.SeverityInfo, sev)
	_, ok = sc.Lookup("TS0009", "csharp")
	assert.False(t, ok)
}

func TestFromLintConfig(t *testing.T) {
	cfg, err := lint.FromLintConfig(core.LintConfig{
		Disabled: []string{"TS0001"},
		Enabled:  []string{"TS0004"},
		Severity: map[string]string{"TS0002": "error"},
		Flavors:  map[string]core.FlavorConfig{"script": {Severity: map[string]string{"TS0002": "hidden"}}},
		Rules:    map[string]map[string]any{"TS0002": {"max": 3}},
	})
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled(invocationRule))
	assert.True(t, cfg.IsEnabled(optInRule))
	assert.Equal(t, core.SeverityError, cfg.Severity(ifRule, "csharp"))
	assert.Equal(t, core.SeverityHidden, cfg.Severity(ifRule, "script"))
	assert.Equal(t, 3, cfg.RuleOptions("TS0002").Int("max", 0))

	_, err = lint.FromLintConfig(core.LintConfig{Severity: map[string]string{"TS0002": "loud"}})
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	opts := lint.Options{"n": float64(4), "s": "x", "b": true, "list": []any{"a", 1, "b"}}
	assert.Equal(t, 4, opts.Int("n", 0))
	assert.Equal(t, 7, opts.Int("missing", 7))
	assert.Equal(t, "x", opts.String("s", ""))
	assert.True(t, opts.Bool("b", false))
	assert.Equal(t, []string{"a", "b"}, opts.Strings("list", nil))
	assert.Equal(t, "d", lint.GetOption(opts, "n", "d"))
}
