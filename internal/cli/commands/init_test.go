package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	path := filepath.Join(dir, intconfig.ConfigFileName)
	assert.Contains(t, out, "Created "+path)

	cfg, err := intconfig.LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "auto", cfg.Output)
	assert.Equal(t, "document", cfg.Fix.Scope)
	assert.Equal(t, intconfig.DefaultExclude, cfg.Exclude)
	assert.Equal(t, "warning", cfg.Lint.Severity["CC0012"])
	assert.Equal(t, "hidden", cfg.Lint.Severity["CC0038"])
	assert.NotContains(t, cfg.Lint.Severity, lint.AnalyzerFaulted.ID())
	assert.Len(t, cfg.Lint.Severity, len(lint.Descriptors())-1)

	// The written file configures the linter without errors.
	_, err = lint.FromLintConfig(cfg.Lint)
	require.NoError(t, err)
}

func TestInitCommand_Exists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, intconfig.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))

	_, _, err := execute(t, NewInitCommand(), dir)
	assert.ErrorContains(t, err, "already exists. Use --force to overwrite")

	_, _, err = execute(t, NewInitCommand(), dir, "--force")
	require.NoError(t, err)
	cfg, err := intconfig.LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Output)
}

func TestInitCommand_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "project")

	_, _, err := execute(t, NewInitCommand(), dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, intconfig.ConfigFileName))
}
