package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/config"
	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

func TestBuildLintConfig(t *testing.T) {
	cc012, _ := lint.GetDescriptor("CC0012")
	cc013, _ := lint.GetDescriptor("CC0013")
	require.NotNil(t, cc012)
	require.NotNil(t, cc013)

	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(config.Default(), nil, nil)
		require.NoError(t, err)
		assert.True(t, cfg.IsEnabled(cc012))
		assert.True(t, cfg.IsEnabled(cc013))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg, err := buildLintConfig(config.Default(), []string{"CC0012", " CC0013"}, nil)
		require.NoError(t, err)
		assert.False(t, cfg.IsEnabled(cc012))
		assert.False(t, cfg.IsEnabled(cc013))
	})

	t.Run("only specific rules", func(t *testing.T) {
		cfg, err := buildLintConfig(config.Default(), nil, []string{"CC0012"})
		require.NoError(t, err)
		assert.True(t, cfg.IsEnabled(cc012))
		assert.False(t, cfg.IsEnabled(cc013))
	})

	t.Run("project config applies first", func(t *testing.T) {
		c := config.Default()
		c.Lint.Disabled = []string{"CC0013"}
		c.Lint.Severity = map[string]string{"CC0012": "error"}
		cfg, err := buildLintConfig(c, nil, nil)
		require.NoError(t, err)
		assert.False(t, cfg.IsEnabled(cc013))
		assert.Equal(t, "error", cfg.Severity(cc012, "").String())
	})

	t.Run("invalid severity", func(t *testing.T) {
		c := config.Default()
		c.Lint.Severity = map[string]string{"CC0012": "loud"}
		_, err := buildLintConfig(c, nil, nil)
		assert.Error(t, err)
	})
}

func TestLintCommand_IssuesPrintNoUsage(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, errOut, err := execute(t, NewLintCommand(), dir, "--format", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.NotContains(t, out, "Usage:")
	assert.NotContains(t, errOut, "Usage:")
	assert.NotContains(t, errOut, ErrIssuesFound.Error())
}

func TestLintCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewLintCommand(), dir, "--format", "json")
	require.ErrorIs(t, err, ErrIssuesFound)

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Summary.FilesAnalyzed, "bin/ is excluded by default")
	assert.Equal(t, 1, got.Summary.FilesWithIssues)
	assert.Equal(t, 2, got.Summary.TotalIssues)
	assert.Equal(t, 2, got.Summary.Warnings)

	require.Len(t, got.Files, 1)
	assert.Equal(t, filepath.Join(dir, "src", "Program.cs"), got.Files[0].Path)
	diags := got.Files[0].Diagnostics
	require.Len(t, diags, 2)
	assert.Equal(t, "CC0025", diags[0].RuleID)
	assert.Equal(t, 4, diags[0].Line)
	assert.Equal(t, "CC0012", diags[1].RuleID)
	assert.Equal(t, 16, diags[1].Line)
	assert.Equal(t, "warning", diags[1].Severity)
	assert.True(t, diags[1].Fixable)
	assert.NotEmpty(t, diags[1].HelpURL)
}

func TestLintCommand_Text(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewLintCommand(), dir, "--format", "text")
	require.ErrorIs(t, err, ErrIssuesFound)
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, filepath.Join(dir, "src", "Program.cs"))
	assert.Contains(t, out, "16:13    warning  CC0012  Throwing the same exception that was caught will lose the original stack trace.")
	assert.Contains(t, out, "Summary: 2 issues, 2 warnings in 1 of 2 files")
}

func TestLintCommand_Markdown(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewLintCommand(), dir, "--format", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "### "+filepath.Join(dir, "src", "Program.cs"))
	assert.Contains(t, out, "- `16:13` **warning** `CC0012`")
}

func TestLintCommand_Filters(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	tests := []struct {
		name    string
		args    []string
		issues  int
		wantErr bool
	}{
		{"only one rule", []string{"--rule", "CC0012"}, 1, true},
		{"disable both", []string{"--disable", "CC0012,CC0025"}, 0, false},
		{"errors only", []string{"--severity", "error"}, 0, false},
		{"clean file", []string{filepath.Join(dir, "src", "Clean.cs")}, 0, false},
		{"hidden included", []string{filepath.Join(dir, "src", "Clean.cs"), "--severity", "hidden"}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--format", "json"}, tt.args...)
			if len(tt.args) == 0 || tt.args[0][0] == '-' {
				args = append(args, dir)
			}
			out, _, err := execute(t, NewLintCommand(), args...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrIssuesFound)
			} else {
				require.NoError(t, err)
			}
			var got output.LintOutput
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.issues, got.Summary.TotalIssues)
		})
	}
}

func TestLintCommand_NoIssuesText(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, _, err := execute(t, NewLintCommand(), filepath.Join(dir, "src", "Clean.cs"), "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found in 1 files")
}

func TestLintCommand_ParseError(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Broken.cs"), []byte("class {\n"), 0o600))

	out, errOut, err := execute(t, NewLintCommand(), filepath.Join(dir, "src"), "--rule", "CC0003", "--format", "json")
	require.ErrorIs(t, err, ErrIssuesFound, "a file that does not parse fails the run")
	assert.Contains(t, errOut, "Broken.cs")

	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Summary.FilesAnalyzed)
	assert.Zero(t, got.Summary.TotalIssues)
}

func TestLintCommand_Errors(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	_, _, err := execute(t, NewLintCommand(), dir, "--severity", "loud")
	assert.ErrorContains(t, err, "invalid severity")

	_, _, err = execute(t, NewLintCommand(), dir, "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = execute(t, NewLintCommand(), filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestWatchDirs(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	dirs := watchDirs([]string{dir}, config.Default().Exclude)
	assert.Contains(t, dirs, dir)
	assert.Contains(t, dirs, filepath.Join(dir, "src"))
	assert.NotContains(t, dirs, filepath.Join(dir, "bin"))

	file := filepath.Join(dir, "src", "Clean.cs")
	assert.Equal(t, []string{filepath.Join(dir, "src")}, watchDirs([]string{file, file}, nil))
}

func TestWatchSources(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cc := &CommandContext{
		Cfg:      config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Renderer: testutil.NewTestRendererText().Renderer,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchSources(ctx, cc, []string{dir}, func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	// Non-source files do not trigger a run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "notes.txt"), []byte("x"), 0o600))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, int32(1), runs.Load())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Added.cs"), []byte("class Added { }\n"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
