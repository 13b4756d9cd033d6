package performance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/testutil"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules
)

const finalizerSource = `class A
{
    int x;

    ~A()
    {
    }

    void M() { }
}
class B
{
    ~B()
    {
        System.Console.WriteLine();
    }
}
class C
{
    ~C() { }
}
`

func TestCC0025_EmptyFinalizer(t *testing.T) {
	diags := testutil.Analyze(t, finalizerSource, "CC0025")
	require.Len(t, diags, 2)
	assert.Equal(t, 5, diags[0].Start.Line)
	assert.Equal(t, 20, diags[1].Start.Line)
	assert.Equal(t, "Remove Empty Finalizers", diags[0].Message)
}

func TestCC0025_Fix(t *testing.T) {
	got := testutil.ApplyFix(t, finalizerSource, "CC0025", 0)
	assert.Contains(t, got, "    int x;\n\n    void M() { }\n")
	assert.NotContains(t, got, "~A()")
	assert.Contains(t, got, "~B()")
}

func TestCC0025_FixAll(t *testing.T) {
	got := testutil.FixAll(t, finalizerSource, "CC0025", "")
	assert.NotContains(t, got, "~A()")
	assert.NotContains(t, got, "~C()")
	assert.Contains(t, got, "class C\n{\n}\n")
	assert.Equal(t, testutil.FixSequentially(t, finalizerSource, "CC0025", ""), got)
}
