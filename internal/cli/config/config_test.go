package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), intconfig.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("project-dir", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	flags.StringSlice("include", nil, "")
	flags.StringSlice("exclude", nil, "")
	flags.String("scope", "", "")
	flags.String("format", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	flags := testFlags()
	require.NoError(t, flags.Set("project-dir", t.TempDir()))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, intconfig.DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, string(intconfig.DefaultScope), cfg.Fix.Scope)
	assert.Equal(t, intconfig.DefaultExclude, cfg.Exclude)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, `output: json
include: ["src/**"]
lint:
  disabled: [CC0037]
  severity:
    CC0013: error
  flavors:
    script:
      severity:
        CC0038: hidden
  rules:
    CC0049:
      strict: true
fix:
  scope: project
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, filepath.Dir(path), cfg.ProjectRoot)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, []string{"src/**"}, cfg.Include)
	assert.Equal(t, []string{"CC0037"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["CC0013"])
	assert.Equal(t, "hidden", cfg.Lint.Flavors["script"].Severity["CC0038"])
	assert.Equal(t, true, cfg.Lint.Rules["CC0049"]["strict"])
	assert.Equal(t, "project", cfg.Fix.Scope)
}

func TestLoadConfig_ProjectDirFindsFile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "output: markdown\n")
	flags := testFlags()
	require.NoError(t, flags.Set("project-dir", filepath.Dir(path)))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, "output: markdown\nfix:\n  scope: project\n")

	t.Run("env overrides file", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SHARPLINT_OUTPUT", "json")
		t.Setenv("SHARPLINT_FIX__SCOPE", "solution")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
		assert.Equal(t, "solution", cfg.Fix.Scope)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SHARPLINT_OUTPUT", "json")
		flags := testFlags()
		require.NoError(t, flags.Set("output", "text"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.OutputFormat)
	})

	t.Run("unset flag keeps env", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SHARPLINT_OUTPUT", "json")

		cfg, err := LoadConfig(path, testFlags())
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.OutputFormat)
	})

	t.Run("command options are not config", func(t *testing.T) {
		ResetConfig()
		flags := testFlags()
		require.NoError(t, flags.Set("format", "json"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "markdown", cfg.OutputFormat)
	})

	t.Run("env list", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SHARPLINT_LINT__DISABLED", "CC0013,CC0014")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"CC0013", "CC0014"}, cfg.Lint.Disabled)
	})

	t.Run("env exclude list", func(t *testing.T) {
		ResetConfig()
		t.Setenv("SHARPLINT_EXCLUDE", "bin/**, obj/**")

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"bin/**", "obj/**"}, cfg.Exclude)
	})
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		key   string
		want  any
	}{
		{"SHARPLINT_LINT__DISABLED", "CC0013,CC0014", "lint.disabled", []string{"CC0013", "CC0014"}},
		{"SHARPLINT_LINT__DISABLED", "CC0013", "lint.disabled", []string{"CC0013"}},
		{"SHARPLINT_INCLUDE", "src/**/*.cs,,", "include", []string{"src/**/*.cs"}},
		{"SHARPLINT_OUTPUT", "json", "output", "json"},
		{"SHARPLINT_FIX__SCOPE", "a,b", "fix.scope", "a,b"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			key, got := envValue(tt.name, tt.value)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errSub  string
	}{
		{"output", "output: xml\n", "unknown output format"},
		{"scope", "fix:\n  scope: galaxy\n", "unknown scope"},
		{"severity", "lint:\n  severity:\n    CC0013: loud\n", "lint"},
		{"yaml", "lint: [\n", "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
			assert.Nil(t, GetCurrentConfig())
		})
	}
}

func TestConfig_ValidateDefault(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	buf := &bytes.Buffer{}
	ctx := WithLogger(context.Background(), NewLogger(buf, false))
	GetLogger(ctx).Debug("hidden")
	GetLogger(ctx).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	NewLogger(buf, true).Debug("details", "rule", "CC0012")
	assert.Contains(t, buf.String(), "rule=CC0012")
}

func TestLoadConfig_Cache(t *testing.T) {
	ResetConfig()
	dir := t.TempDir()
	flags := testFlags()
	require.NoError(t, flags.Set("project-dir", dir))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, intconfig.DefaultCachePath), cfg.CachePath())

	ResetConfig()
	t.Setenv("SHARPLINT_CACHE__ENABLED", "true")
	t.Setenv("SHARPLINT_CACHE__PATH", "/tmp/sharplint.db")
	cfg, err = LoadConfig("", flags)
	require.NoError(t, err)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/sharplint.db", cfg.CachePath())

	ResetConfig()
	t.Setenv("SHARPLINT_CACHE__PATH", "")
	_, err = LoadConfig("", flags)
	assert.ErrorContains(t, err, "cache.path")
}
