// Package commands implements the sharplint subcommands.
package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/config"
	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules and fixes
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// ErrIssuesFound is returned by lint when diagnostics at or above the
// severity threshold were reported. The binary exits with status 1.
var ErrIssuesFound = errors.New("lint issues found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context of cmd. A non-empty format
// overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := getConfig()
	if format == "" {
		format = cfg.OutputFormat
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// getConfig returns the loaded configuration or the defaults when the
// command runs without the root command.
func getConfig() *config.Config {
	if c := config.GetCurrentConfig(); c != nil {
		return c
	}
	return config.Default()
}

// buildLintConfig applies the command line overrides on top of the
// configured lint section. A non-empty only list enables exactly those
// rules.
func buildLintConfig(cfg *config.Config, disable, only []string) (*lint.Config, error) {
	lintCfg, err := lint.FromLintConfig(cfg.Lint)
	if err != nil {
		return nil, err
	}
	for _, id := range disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}
	if len(only) > 0 {
		keep := make(map[string]bool, len(only))
		for _, id := range only {
			keep[strings.TrimSpace(id)] = true
		}
		for _, d := range lint.Descriptors() {
			if keep[d.ID()] {
				lintCfg.Enable(d.ID())
			} else {
				lintCfg.Disable(d.ID())
			}
		}
	}
	return lintCfg, nil
}

func newEngine(lintCfg *lint.Config, logger *slog.Logger) *lint.Engine {
	return lint.NewEngine(lint.Analyzers(), lint.WithConfig(lintCfg), lint.WithLogger(logger))
}

// sourcePaths returns the command arguments, or the project root.
func sourcePaths(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return []string{cfg.ProjectRoot}
}

// loadSolution reads paths into a solution. Files that fail to parse are
// reported as a warning; the other documents are still returned.
func loadSolution(ctx context.Context, cc *CommandContext, paths []string) (workspace.Solution, int, error) {
	sol, err := workspace.Load(ctx, paths, workspace.LoadOptions{
		Include: cc.Cfg.Include,
		Exclude: cc.Cfg.Exclude,
		Logger:  cc.Logger,
	})
	if err == nil {
		return sol, 0, nil
	}
	if len(sol.Projects) == 0 {
		return sol, 0, err
	}
	failed := 1
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		failed = len(joined.Unwrap())
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		cc.Renderer.Warning(line)
	}
	return sol, failed, nil
}
