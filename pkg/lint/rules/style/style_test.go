package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/testutil"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules
)

const ternarySource = `class A
{
    int x;
    int M(bool c)
    {
        if (c)
            return 1;
        else
            return 2;
    }
    int N(bool c, bool d)
    {
        if (c)
        {
            return 1;
        }
        else if (d)
        {
            return 2;
        }
        return 3;
    }
    void P(bool c)
    {
        if (c) x = 1; else x = 2;
        if (c) { x = 1; } else { Q(); }
        if (c) x += 1; else x = 2;
        if (c) x = 1; // keep
        else x = 2;
    }
    void Q() { }
}
`

func TestCC0013_CC0014_Ternary(t *testing.T) {
	returns := testutil.Analyze(t, ternarySource, "CC0013")
	require.Len(t, returns, 1)
	assert.Equal(t, 6, returns[0].Start.Line)

	assigns := testutil.Analyze(t, ternarySource, "CC0014")
	require.Len(t, assigns, 1)
	assert.Equal(t, 25, assigns[0].Start.Line)
}

func TestCC0013_Fix(t *testing.T) {
	got := testutil.ApplyFix(t, ternarySource, "CC0013", 0)
	assert.Contains(t, got, "    {\n        return c ? 1 : 2;\n    }\n")
	assert.Empty(t, testutil.Analyze(t, got, "CC0013"))
}

func TestCC0014_Fix(t *testing.T) {
	got := testutil.ApplyFix(t, ternarySource, "CC0014", 0)
	assert.Contains(t, got, "    {\n        x = c ? 1 : 2;\n        if (c) { x = 1; }")
	assert.Empty(t, testutil.Analyze(t, got, "CC0014"))
}

func TestCC0014_ParenthesizesAssignments(t *testing.T) {
	src := "class A\n{\n    int x;\n    int y;\n    void M(bool c)\n    {\n        if (c = true) x = y = 1; else x = 2;\n    }\n}\n"
	got := testutil.ApplyFix(t, src, "CC0014", 0)
	assert.Contains(t, got, "        x = (c = true) ? (y = 1) : 2;\n")
}

const expressionBodySource = `class A
{
    int M()
    {
        return 1;
    }
    int N() { return 2; }
    void V() { Run(); }
    int E() => 3;
    int W()
    {
        // why
        return 4;
    }
    int this[int i]
    {
        get
        {
            return i;
        }
    }
    public static A operator +(A a, A b)
    {
        return a;
    }
    public static implicit operator int(A a)
    {
        return 0;
    }
    void Run() { }
}
`

func TestCC0038_ExpressionBodied(t *testing.T) {
	diags := testutil.Analyze(t, expressionBodySource, "CC0038")
	var lines []int
	for _, d := range diags {
		lines = append(lines, d.Start.Line)
	}
	assert.Equal(t, []int{3, 7, 15, 22, 26}, lines)
}

func TestCC0038_Fix(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"method", 0, "    int M() => 1;\n    int N()"},
		{"single line method", 1, "    int N() => 2;\n"},
		{"indexer getter", 2, "    int this[int i] => i;\n"},
		{"operator", 3, "    public static A operator +(A a, A b) => a;\n"},
		{"conversion", 4, "    public static implicit operator int(A a) => 0;\n"},
	}
	doc := testutil.Document(t, expressionBodySource)
	diags := testutil.Diagnostics(t, doc, "CC0038", nil)
	require.Len(t, diags, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testutil.ApplyFixAt(t, doc, diags[tt.index], 0)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestCC0038_FixAll(t *testing.T) {
	got := testutil.FixAll(t, expressionBodySource, "CC0038", "CC0038")
	assert.Empty(t, testutil.Analyze(t, got, "CC0038"))
	assert.Contains(t, got, "        // why\n        return 4;")
	assert.Equal(t, testutil.FixSequentially(t, expressionBodySource, "CC0038", "CC0038"), got)
}

func TestCC0038_FixKeepsComments(t *testing.T) {
	tests := []struct {
		name   string
		member string
		want   string
	}{
		{
			"after parameters",
			"    int M(int a) // c\n    {\n        return a;\n    }\n",
			"    int M(int a) => a; // c\n}\n",
		},
		{
			"before body",
			"    int M(int a)\n    // c\n    {\n        return a;\n    }\n",
			"    int M(int a) => a; // c\n}\n",
		},
		{
			"block comment and closing comment",
			"    int M(int a) /* p */\n    { return a; } // end\n",
			"    int M(int a) => a; /* p */ // end\n}\n",
		},
		{
			"two line comments",
			"    int M(int a) // one\n    // two\n    {\n        return a;\n    }\n",
			"    int M(int a) => a; // one\n    // two\n}\n",
		},
		{
			"indexer accessor list",
			"    int this[int i] // c\n    {\n        get { return i; }\n    }\n",
			"    int this[int i] => i; // c\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "class A\n{\n" + tt.member + "}\n"
			got := testutil.ApplyFix(t, src, "CC0038", 0)
			assert.Equal(t, "class A\n{\n"+tt.want, got)
			assert.Empty(t, testutil.Analyze(t, got, "CC0038"))
			assert.Equal(t, got, testutil.FixAll(t, src, "CC0038", "CC0038"))
		})
	}
}

const commentedSource = `class A
{
    void M()
    {
        // int x = 1;
        // Run();
        // this is prose
        Run(); // Run();
        // TODO: later
        //
    }
    void Run() { }
}
`

func TestCC0037_CommentedCode(t *testing.T) {
	diags := testutil.Analyze(t, commentedSource, "CC0037")
	require.Len(t, diags, 2)
	assert.Equal(t, 5, diags[0].Start.Line)
	assert.Equal(t, 6, diags[0].End.Line)
	assert.Equal(t, "If code is commented, it should be removed.", diags[0].Message)
	assert.Equal(t, 8, diags[1].Start.Line)
}

func TestCC0037_Fix(t *testing.T) {
	got := testutil.ApplyFix(t, commentedSource, "CC0037", 0)
	assert.Contains(t, got, "    {\n        // this is prose\n        Run(); // Run();\n")

	all := testutil.FixAll(t, commentedSource, "CC0037", "")
	assert.Contains(t, all, "    {\n        // this is prose\n        Run();\n        // TODO: later\n")
	assert.Empty(t, testutil.Analyze(t, all, "CC0037"))
}

const booleanSource = `class A
{
    const bool Yes = true;
    bool M(bool a, int n)
    {
        if (a == true) Run();
        if (a == false) Run();
        if (a != true) Run();
        if (a != false) Run();
        if (a == Yes) Run();
        if (n == 1) Run();
        return a && n > 0 == false;
    }
    void Run() { }
}
`

func TestCC0049_BooleanComparison(t *testing.T) {
	diags := testutil.Analyze(t, booleanSource, "CC0049")
	require.Len(t, diags, 6)
	assert.Equal(t, "false", diags[0].Property("negate"))
	assert.Equal(t, "true", diags[1].Property("negate"))
	assert.Equal(t, "true", diags[2].Property("negate"))
	assert.Equal(t, "false", diags[3].Property("negate"))
}

func TestCC0049_Fix(t *testing.T) {
	got := testutil.FixAll(t, booleanSource, "CC0049", "CC0049")
	for _, want := range []string{
		"if (a) Run();\n        if (!a) Run();\n        if (!a) Run();\n        if (a) Run();\n        if (a) Run();\n",
		"if (n == 1) Run();",
		"return a && !(n > 0);",
	} {
		assert.Contains(t, got, want)
	}
	assert.Empty(t, testutil.Analyze(t, got, "CC0049"))
	assert.Equal(t, testutil.FixSequentially(t, booleanSource, "CC0049", "CC0049"), got)
}

func TestCC0049_FixNestedComparisons(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"parenthesized operand", "(a == true) == false", "!a"},
		{"both dropped", "(a != false) != false", "a"},
		{"negation keeps parentheses", "(a == false) == false", "!(!a)"},
		{"comment keeps parentheses", "( /* why */ a == true) == true", "( /* why */ a)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "class A\n{\n    bool M(bool a)\n    {\n        return " + tt.expr + ";\n    }\n}\n"
			want := "        return " + tt.want + ";\n"
			got := testutil.FixAll(t, src, "CC0049", "CC0049")
			assert.Contains(t, got, want)
			assert.Contains(t, testutil.FixSequentially(t, src, "CC0049", "CC0049"), want)
			assert.Empty(t, testutil.Analyze(t, got, "CC0049"))
		})
	}
}
