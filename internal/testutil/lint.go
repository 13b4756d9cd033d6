package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/fix/fixall"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// TestPath is the path of documents built by the helpers below.
const TestPath = "Test.cs"

// Document parses src into a document at TestPath.
func Document(t testing.TB, src string) workspace.Document {
	t.Helper()
	doc, err := workspace.NewDocument(TestPath, src)
	require.NoError(t, err)
	return doc
}

// Engine returns an engine over the globally registered analyzers with
// ruleID enabled, so rules that are off by default can be tested.
func Engine(t testing.TB, ruleID string, cfg *lint.Config) *lint.Engine {
	t.Helper()
	if cfg == nil {
		cfg = lint.NewConfig()
	}
	cfg.Enable(ruleID)
	return lint.NewEngine(nil, lint.WithConfig(cfg), lint.WithLogger(NewTestLogger(t)))
}

// Diagnostics analyzes doc and returns the diagnostics of ruleID.
func Diagnostics(t testing.TB, doc workspace.Document, ruleID string, cfg *lint.Config) []lint.Diagnostic {
	t.Helper()
	comp := workspace.NewProject("test", doc).Compilation()
	var out []lint.Diagnostic
	for _, d := range workspace.AnalyzeDocument(comp, doc, Engine(t, ruleID, cfg)).Diagnostics {
		if d.RuleID() == ruleID {
			out = append(out, d)
		}
	}
	return out
}

// Analyze parses src and returns the diagnostics of ruleID.
func Analyze(t testing.TB, src, ruleID string) []lint.Diagnostic {
	t.Helper()
	return Diagnostics(t, Document(t, src), ruleID, nil)
}

// Actions returns the fix actions offered for the first diagnostic of
// ruleID in src, together with the document they apply to.
func Actions(t testing.TB, src, ruleID string) (workspace.Document, []fix.Action) {
	t.Helper()
	doc := Document(t, src)
	diags := Diagnostics(t, doc, ruleID, nil)
	require.NotEmpty(t, diags, "expected a %s diagnostic", ruleID)
	return doc, fix.Fixes(diags[0], doc.Tree.Root)
}

// ApplyFix applies action index of the first diagnostic of ruleID in src
// and returns the new source text.
func ApplyFix(t testing.TB, src, ruleID string, index int) string {
	t.Helper()
	doc, actions := Actions(t, src, ruleID)
	require.Greater(t, len(actions), index, "expected at least %d actions", index+1)
	out, err := fix.Apply(context.Background(), doc, actions[index])
	require.NoError(t, err)
	return out.Text()
}

// ApplyFixAt applies action index of diagnostic d in doc and returns the
// new source text.
func ApplyFixAt(t testing.TB, doc workspace.Document, d lint.Diagnostic, index int) string {
	t.Helper()
	actions := fix.Fixes(d, doc.Tree.Root)
	require.Greater(t, len(actions), index, "expected at least %d actions", index+1)
	out, err := fix.Apply(context.Background(), doc, actions[index])
	require.NoError(t, err)
	return out.Text()
}

// FixAll batch fixes every diagnostic of ruleID in src and returns the new
// source text.
func FixAll(t testing.TB, src, ruleID, key string) string {
	t.Helper()
	doc := Document(t, src)
	sol := workspace.NewSolution(workspace.NewProject("test", doc))
	c := &fixall.Coordinator{Engine: Engine(t, ruleID, nil), Fixes: fix.Global(), Logger: NewTestLogger(t)}
	out, _, err := c.Fix(context.Background(), sol, fixall.Request{Scope: core.ScopeSolution, RuleID: ruleID, EquivalenceKey: key})
	require.NoError(t, err)
	got, _, ok := out.Document(doc.ID)
	require.True(t, ok)
	return got.Text()
}

// FixSequentially fixes the diagnostics of ruleID one at a time,
// re-analyzing after every fix, and returns the final source text.
func FixSequentially(t testing.TB, src, ruleID, key string) string {
	t.Helper()
	doc := Document(t, src)
	for range 100 {
		diags := Diagnostics(t, doc, ruleID, nil)
		if len(diags) == 0 {
			return doc.Text()
		}
		next, err := fix.Global().ApplyFirst(context.Background(), doc, diags[0], key)
		require.NoError(t, err)
		doc = next
	}
	t.Fatalf("fixing %s did not converge", ruleID)
	return ""
}
