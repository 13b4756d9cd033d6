package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/commands"
	"github.com/leapstack-labs/sharplint/internal/cli/config"
	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
)

// run executes the root command with args.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"version", "lint", "fix", "rules", "init", "ast", "cache", "lsp", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "project-dir", "verbose", "output", "include", "exclude"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func lintJSON(t *testing.T, args ...string) (output.LintOutput, error) {
	t.Helper()
	out, _, err := run(t, append([]string{"lint", "-o", "json"}, args...)...)
	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	return got, err
}

func ruleIDs(res output.LintOutput) []string {
	var ids []string
	for _, f := range res.Files {
		for _, d := range f.Diagnostics {
			ids = append(ids, d.RuleID)
		}
	}
	return ids
}

func TestLint_ProjectConfig(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sharplint.yaml"), []byte(`lint:
  disabled:
    - CC0012
`), 0o600))

	got, err := lintJSON(t, "--project-dir", dir)
	require.ErrorIs(t, err, commands.ErrIssuesFound)
	assert.Equal(t, []string{"CC0025"}, ruleIDs(got))

	// An explicit config file anchors the project root as well.
	got, err = lintJSON(t, "--config", filepath.Join(dir, "sharplint.yaml"))
	require.ErrorIs(t, err, commands.ErrIssuesFound)
	assert.Equal(t, []string{"CC0025"}, ruleIDs(got))
}

func TestLint_SeverityOverride(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sharplint.yaml"), []byte(`lint:
  severity:
    CC0025: error
`), 0o600))

	got, err := lintJSON(t, "--project-dir", dir, "--severity", "error")
	require.ErrorIs(t, err, commands.ErrIssuesFound)
	assert.Equal(t, []string{"CC0025"}, ruleIDs(got))
	assert.Equal(t, 1, got.Summary.Errors)
}

func TestLint_IncludeExclude(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	got, err := lintJSON(t, dir, "--exclude", "")
	require.ErrorIs(t, err, commands.ErrIssuesFound)
	assert.Equal(t, 3, got.Summary.FilesAnalyzed, "an empty exclude list picks up bin/")

	got, err = lintJSON(t, dir, "--include", "**/Clean.cs")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Summary.FilesAnalyzed)
}

func TestLint_EnvOutput(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Setenv("SHARPLINT_OUTPUT", "json")

	out, _, err := run(t, "lint", filepath.Join(dir, "src", "Clean.cs"))
	require.NoError(t, err)
	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Summary.FilesAnalyzed)
	assert.Empty(t, got.Files)
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sharplint.yaml"), []byte("output: html\n"), 0o600))

	_, _, err := run(t, "rules", "--project-dir", dir)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestRoot_Verbose(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sharplint.yaml"), []byte("output: markdown\n"), 0o600))

	out, errOut, err := run(t, "rules", "CC0012", "--project-dir", dir, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "## CC0012: Your throw does nothing")
	assert.Contains(t, errOut, "using config file")
}

func TestRoot_Completion(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sharplint")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestRoot_RuleOptionsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := "lint:\n  rules:\n    CC0016:\n      handler_name: evt\n"
	src := `using System;
class A
{
    public event EventHandler Changed;
    void Raise()
    {
        Changed(this, EventArgs.Empty);
    }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sharplint.yaml"), []byte(cfg), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A.cs"), []byte(src), 0o600))

	out, _, err := run(t, "fix", "--project-dir", dir, "--rule", "CC0016", "--diff", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "+        var evt = Changed;")
	assert.Contains(t, out, "+        if (evt != null) evt(this, EventArgs.Empty);")
}
