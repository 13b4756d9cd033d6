package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDir(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadFromDir(t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults applied", func(t *testing.T) {
		dir := t.TempDir()
		content := "lint:\n  disabled: [CC0037]\n  severity:\n    CC0013: error\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, []string{"CC0037"}, cfg.Lint.Disabled)
		assert.Equal(t, "error", cfg.Lint.Severity["CC0013"])
		assert.Equal(t, DefaultOutput, cfg.Output)
		assert.Equal(t, string(DefaultScope), cfg.Fix.Scope)
		assert.Equal(t, DefaultExclude, cfg.Exclude)
	})

	t.Run("alternate name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte("fix:\n  scope: solution\n"), 0o600))

		cfg, err := LoadFromDir(dir)
		require.NoError(t, err)
		assert.Equal(t, "solution", cfg.Fix.Scope)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("lint: [\n"), 0o600))

		_, err := LoadFromDir(dir)
		assert.Error(t, err)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), nil, 0o600))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, root, FindProjectRoot(root))
	assert.Empty(t, FindProjectRoot(t.TempDir()))
}
