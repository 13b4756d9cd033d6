package design_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/testutil"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules
)

func TestCC0003_CatchEmpty(t *testing.T) {
	tests := []struct {
		name     string
		catch    string
		wantDiag bool
	}{
		{"bare catch", "catch\n        {\n        }", true},
		{"typed catch", "catch (Exception)\n        {\n        }", false},
		{"typed catch with name", "catch (Exception e)\n        {\n        }", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := testutil.Analyze(t, catchSource(true, tt.catch), "CC0003")
			if tt.wantDiag {
				require.Len(t, diags, 1)
				assert.Equal(t, 10, diags[0].Start.Line)
			} else {
				assert.Empty(t, diags)
			}
		})
	}
}

func catchSource(using bool, catch string) string {
	src := "class A\n{\n    void M()\n    {\n        try\n        {\n            Run();\n        }\n        " + catch + "\n    }\n    void Run() { }\n}\n"
	if using {
		return "using System;\n" + src
	}
	return "namespace N\n{\n}\n" + src
}

func TestCC0003_Fix(t *testing.T) {
	got := testutil.ApplyFix(t, catchSource(true, "catch\n        {\n        }"), "CC0003", 0)
	assert.Contains(t, got, "        catch (Exception ex)\n        {\n        }\n")

	got = testutil.ApplyFix(t, catchSource(false, "catch { }"), "CC0003", 0)
	assert.Contains(t, got, "        catch (System.Exception ex) { }\n")
	assert.Empty(t, testutil.Analyze(t, got, "CC0003"))
}

const eventSource = `using System;
class A
{
    public event EventHandler MyEvent;
    Action callback;
    void Raise(Action local)
    {
        MyEvent(this, EventArgs.Empty); //Some Comment
        callback();
        local();
        EventHandler copy = MyEvent;
        copy(this, EventArgs.Empty);
        Raise(local);
    }
}
`

func TestCC0016_CopyDelegate(t *testing.T) {
	diags := testutil.Analyze(t, eventSource, "CC0016")
	require.Len(t, diags, 2)
	assert.Equal(t, "Copy the 'MyEvent' event to a variable before fire it.", diags[0].Message)
	assert.Equal(t, 8, diags[0].Start.Line)
	assert.Equal(t, "Copy the 'callback' event to a variable before fire it.", diags[1].Message)
}

func TestCC0016_FixKeepsTrailingComment(t *testing.T) {
	got := testutil.ApplyFix(t, eventSource, "CC0016", 0)
	assert.Contains(t, got, "        var handler = MyEvent;\n"+
		"        if (handler != null) handler(this, EventArgs.Empty); //Some Comment\n"+
		"        callback();\n")
}

func TestCC0016_FixAllUsesDistinctLocals(t *testing.T) {
	batch := testutil.FixAll(t, eventSource, "CC0016", "CC0016")
	assert.Contains(t, batch, "var handler = MyEvent;")
	assert.Contains(t, batch, "        var handler1 = callback;\n        if (handler1 != null) handler1();\n")
	assert.Equal(t, testutil.FixSequentially(t, eventSource, "CC0016", "CC0016"), batch)
	assert.Empty(t, testutil.Analyze(t, batch, "CC0016"))
}

func TestCC0016_HandlerNameOption(t *testing.T) {
	doc := testutil.Document(t, eventSource)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"configured", "evt", "evt"},
		{"keyword", "class", "handler"},
		{"not an identifier", "1st", "handler"},
		{"wrong type", 3, "handler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Ids in configuration keys may arrive lower-cased.
			cfg := lint.NewConfig().SetRuleOptions("cc0016", map[string]any{"handler_name": tt.value})
			diags := testutil.Diagnostics(t, doc, "CC0016", cfg)
			require.Len(t, diags, 2)
			assert.Equal(t, tt.want, diags[0].Property("handler"))

			got := testutil.ApplyFixAt(t, doc, diags[0], 0)
			assert.Contains(t, got, "        var "+tt.want+" = MyEvent;\n"+
				"        if ("+tt.want+" != null) "+tt.want+"(this, EventArgs.Empty); //Some Comment\n")
		})
	}

	for _, a := range lint.Analyzers() {
		if a.Reports("CC0016") {
			assert.Equal(t, []string{"handler_name"}, a.ConfigKeys)
		}
	}
}

func TestCC0016_NoFixOutsideStatementList(t *testing.T) {
	src := "delegate int Counter();\nclass A\n{\n    Counter count;\n    int M() { return count(); }\n}\n"
	require.Len(t, testutil.Analyze(t, src, "CC0016"), 1)
	_, actions := testutil.Actions(t, src, "CC0016")
	assert.Empty(t, actions)
}

const staticCtorSource = `using System;
class A
{
    static A()
    {
        // guard
        throw new Exception("boom"); // never
    }
    A()
    {
        throw new Exception("fine");
    }
}
`

func TestCC0024_StaticConstructorException(t *testing.T) {
	diags := testutil.Analyze(t, staticCtorSource, "CC0024")
	require.Len(t, diags, 1)
	assert.Equal(t, 7, diags[0].Start.Line)

	got := testutil.ApplyFix(t, staticCtorSource, "CC0024", 0)
	assert.Contains(t, got, "    static A()\n    {\n        // guard\n        // never\n    }\n")
	assert.Contains(t, got, `throw new Exception("fine");`)
}
