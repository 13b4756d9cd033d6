package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/config"
)

func TestNewCommands(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{"lint", NewLintCommand(), "lint [path...]", []string{"format", "disable", "rule", "severity", "watch", "cache"}},
		{"fix", NewFixCommand(), "fix [path...]", []string{"format", "rule", "disable", "scope", "key", "severity", "diff", "dry-run"}},
		{"rules", NewRulesCommand(), "rules [rule-id]", []string{"category", "long", "format"}},
		{"init", NewInitCommand(), "init [directory]", []string{"force"}},
		{"ast", NewASTCommand(), "ast <file>", []string{"trivia"}},
		{"version", NewVersionCommand("dev"), "version", nil},
		{"cache", NewCacheCommand(), "cache", nil},
		{"lsp", NewLSPCommand("dev"), "lsp", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

// execute runs cmd with args without a loaded configuration and returns
// its stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	return run(cmd, args...)
}

// executeLoaded is like execute but loads the configuration from the
// environment first, as the root command does.
func executeLoaded(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	_, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	return run(cmd, args...)
}

func run(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if args == nil {
		args = []string{} // a nil slice makes cobra read os.Args
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewCommandContext(t *testing.T) {
	config.ResetConfig()
	cmd := NewLintCommand()

	cc, err := NewCommandContext(cmd, "json")
	require.NoError(t, err)
	assert.Equal(t, "json", string(cc.Renderer.EffectiveMode()))
	assert.NotNil(t, cc.Logger)
	assert.Equal(t, config.Default(), cc.Cfg)

	_, err = NewCommandContext(cmd, "yaml")
	assert.Error(t, err)
}
