package commands

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

func TestFixCommand_Diff(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	before := testutil.ReadFile(t, dir, "src/Program.cs")

	out, _, err := execute(t, NewFixCommand(), dir, "--rule", "CC0012", "--diff", "--format", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "```diff")
	assert.Contains(t, out, "-            throw ex;")
	assert.Contains(t, out, "+            throw;")
	assert.Contains(t, out, "| CC0012 | 1 | 1 | 0 |")
	assert.Contains(t, out, "Would fix 1 issues in 1 files")
	assert.Equal(t, before, testutil.ReadFile(t, dir, "src/Program.cs"), "--diff must not write")
}

func TestFixCommand_Write(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	clean := testutil.ReadFile(t, dir, "src/Clean.cs")
	generated := testutil.ReadFile(t, dir, "bin/Generated.cs")

	out, _, err := execute(t, NewFixCommand(), dir, "--format", "text")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "Fixed 2 issues in 1 files")

	got := testutil.ReadFile(t, dir, "src/Program.cs")
	assert.NotContains(t, got, "~Program")
	assert.Contains(t, got, "            throw;\n")
	assert.Equal(t, clean, testutil.ReadFile(t, dir, "src/Clean.cs"), "hidden rules are below the default threshold")
	assert.Equal(t, generated, testutil.ReadFile(t, dir, "bin/Generated.cs"), "excluded files are not touched")

	// A second run has nothing left to do.
	out, _, err = execute(t, NewFixCommand(), dir, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix")
}

func TestFixCommand_DryRunJSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	before := testutil.ReadFile(t, dir, "src/Program.cs")

	out, _, err := execute(t, NewFixCommand(), dir, "--dry-run", "--format", "json")
	require.NoError(t, err)

	var got output.FixOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	want := output.FixOutput{
		DryRun: true,
		Rules: []output.FixRuleResult{
			{RuleID: "CC0012", Diagnostics: 1, Fixed: 1},
			{RuleID: "CC0025", Diagnostics: 1, Fixed: 1},
		},
		Files: []output.FixFileResult{{Path: filepath.Join(dir, "src", "Program.cs")}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fix output mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, before, testutil.ReadFile(t, dir, "src/Program.cs"))
}

func TestFixCommand_Key(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	_, _, err := execute(t, NewFixCommand(), dir, "--rule", "CC0012", "--key", "CC0012:wrap")
	require.NoError(t, err)
	got := testutil.ReadFile(t, dir, "src/Program.cs")
	assert.Contains(t, got, "            throw new Exception(ex.Message, ex);\n")
	assert.Contains(t, got, "~Program()", "only the selected rule is fixed")
}

func TestFixCommand_Scopes(t *testing.T) {
	var results []string
	for _, scope := range []core.Scope{core.ScopeDocument, core.ScopeProject, core.ScopeSolution} {
		t.Run(string(scope), func(t *testing.T) {
			dir := testutil.SetupTestProject(t)
			_, _, err := execute(t, NewFixCommand(), dir, "--scope", string(scope))
			require.NoError(t, err)
			results = append(results, testutil.ReadFile(t, dir, "src/Program.cs"))
		})
	}
	require.Len(t, results, 3)
	assert.Equal(t, results[0], results[1])
	assert.Equal(t, results[0], results[2])
}

func TestFixCommand_Errors(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"key without rule", []string{"--key", "CC0012:wrap"}, "--key needs exactly one fixable rule"},
		{"unknown scope", []string{"--scope", "galaxy"}, `unknown scope "galaxy"`},
		{"invalid severity", []string{"--severity", "loud"}, "invalid severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewFixCommand(), append([]string{dir}, tt.args...)...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFixRequests(t *testing.T) {
	a, err := workspace.NewDocument("a.cs", "class A { }")
	require.NoError(t, err)
	b, err := workspace.NewDocument("b.cs", "class B { }")
	require.NoError(t, err)
	c, err := workspace.NewDocument("c.cs", "class C { }")
	require.NoError(t, err)
	sol := workspace.NewSolution(
		workspace.NewProject("one", a, b),
		workspace.NewProject("two", c),
		workspace.NewProject("empty"),
	)

	tests := []struct {
		scope core.Scope
		want  []workspace.DocumentID
	}{
		{core.ScopeDocument, []workspace.DocumentID{a.ID, b.ID, c.ID}},
		{core.ScopeProject, []workspace.DocumentID{a.ID, c.ID}},
		{core.ScopeSolution, []workspace.DocumentID{""}},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			reqs := fixRequests(sol, tt.scope, "CC0012", "CC0012:rethrow")
			var got []workspace.DocumentID
			for _, r := range reqs {
				assert.Equal(t, tt.scope, r.Scope)
				assert.Equal(t, "CC0012", r.RuleID)
				assert.Equal(t, "CC0012:rethrow", r.EquivalenceKey)
				got = append(got, r.Document)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
