package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/state"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format   string   // Output format: text, markdown, json
	Disable  []string // Rule IDs to disable
	Rules    []string // Run only specific rules
	Severity string   // Minimum severity reported
	Watch    bool     // Re-run when sources change
	Cache    bool     // Reuse results of an unchanged project
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Analyze C# sources",
		Long: `Analyze .cs and .csx files and report diagnostics.

Paths may be files or directories; without a path the project root is
analyzed. Rules are configured in sharplint.yaml.

The command fails when a diagnostic at or above --severity is reported.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Lint the project
  sharplint lint

  # Lint one directory as JSON
  sharplint lint ./src --format json

  # Disable specific rules
  sharplint lint --disable CC0037,CC0038

  # Only report errors
  sharplint lint --severity error

  # Re-run on every change
  sharplint lint --watch

  # Skip analysis when nothing changed since the last run
  sharplint lint --cache`,
		// Found issues are a result, not a misuse of the command.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity: error, warning, info, hidden")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when source files change")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Reuse the results of an unchanged project (default from config)")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}
	lintCfg, err := buildLintConfig(cc.Cfg, opts.Disable, opts.Rules)
	if err != nil {
		return err
	}
	l := &linter{
		cc:        cc,
		engine:    newEngine(lintCfg, cc.Logger),
		paths:     sourcePaths(args, cc.Cfg),
		threshold: threshold,
		settings:  cacheSettings{Lint: cc.Cfg.Lint, Disable: opts.Disable, Rules: opts.Rules},
	}
	if opts.Cache || cc.Cfg.Cache.Enabled {
		store, err := openCache(cmd.Context(), cc)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		l.cache = store
	}

	if opts.Watch {
		return watchSources(cmd.Context(), cc, l.paths, func(ctx context.Context) error {
			_, err := l.run(ctx)
			return err
		})
	}

	issues, err := l.run(cmd.Context())
	if err != nil {
		return err
	}
	if issues > 0 {
		return ErrIssuesFound
	}
	return nil
}

// linter runs one configured analysis, possibly repeatedly in watch mode.
type linter struct {
	cc        *CommandContext
	engine    *lint.Engine
	paths     []string
	threshold core.Severity
	cache     *state.SQLiteStore // nil when the cache is off
	settings  cacheSettings
}

// run loads, analyzes and renders the paths. It returns the number of
// reported diagnostics plus the number of files that failed to parse.
func (l *linter) run(ctx context.Context) (int, error) {
	sol, failed, err := loadSolution(ctx, l.cc, l.paths)
	if err != nil {
		return 0, err
	}
	results, cached, err := l.analyze(ctx, sol)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, nil
		}
		return 0, fmt.Errorf("analyze: %w", err)
	}
	results = filterBySeverity(results, l.threshold)
	summary := summarize(results, sol.DocumentCount())
	summary.Cached = cached
	return renderLintResults(l.cc.Renderer, results, summary) + failed, nil
}

// analyze runs the engine, or reads the results from the cache when the
// project and settings are unchanged.
func (l *linter) analyze(ctx context.Context, sol workspace.Solution) ([]workspace.Result, bool, error) {
	if l.cache == nil {
		results, err := workspace.Analyze(ctx, sol, l.engine)
		return results, false, err
	}
	return analyzeCached(ctx, l.cc, l.cache, sol, l.engine, l.settings)
}

// filterBySeverity drops diagnostics below threshold.
func filterBySeverity(results []workspace.Result, threshold core.Severity) []workspace.Result {
	out := make([]workspace.Result, 0, len(results))
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity >= threshold {
				diags = append(diags, d)
			}
		}
		out = append(out, workspace.Result{Document: r.Document, Diagnostics: diags})
	}
	return out
}

func summarize(results []workspace.Result, analyzed int) output.LintSummary {
	summary := output.LintSummary{FilesAnalyzed: analyzed}
	for _, res := range results {
		if len(res.Diagnostics) > 0 {
			summary.FilesWithIssues++
		}
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case core.SeverityError:
				summary.Errors++
			case core.SeverityWarning:
				summary.Warnings++
			case core.SeverityInfo:
				summary.Info++
			case core.SeverityHidden:
				summary.Hidden++
			}
		}
	}
	return summary
}

// renderLintResults writes the diagnostics and returns how many there are.
func renderLintResults(r *output.Renderer, results []workspace.Result, summary output.LintSummary) int {
	analyzed := summary.FilesAnalyzed

	if r.EffectiveMode() == output.ModeJSON {
		out := output.LintOutput{Summary: summary, Files: []output.LintFileResult{}}
		for _, res := range results {
			if len(res.Diagnostics) == 0 {
				continue
			}
			file := output.LintFileResult{Path: res.Document.Path}
			for _, d := range res.Diagnostics {
				file.Diagnostics = append(file.Diagnostics, output.LintDiagnostic{
					RuleID:    d.RuleID(),
					Severity:  d.Severity.String(),
					Message:   d.Message,
					Line:      d.Start.Line,
					Column:    d.Start.Column,
					EndLine:   d.End.Line,
					EndColumn: d.End.Column,
					HelpURL:   d.HelpLink(),
					Fixable:   fix.Fixable(d.RuleID()),
					Props:     d.Properties,
				})
			}
			out.Files = append(out.Files, file)
		}
		_ = r.JSON(out)
		return summary.TotalIssues
	}

	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No lint issues found in %d files", analyzed))
		return 0
	}

	markdown := r.EffectiveMode() == output.ModeMarkdown
	styles := r.Styles()
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		if markdown {
			r.Println("### " + res.Document.Path)
			r.Println("")
		} else {
			r.Println(styles.Path.Render(res.Document.Path))
		}
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Start.Line, d.Start.Column)
			if markdown {
				r.Printf("- `%s` **%s** `%s` %s\n", loc, d.Severity, d.RuleID(), d.Message)
				continue
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(r, d.Severity),
				styles.Bold.Render(d.RuleID()),
				d.Message,
			)
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	for _, c := range []struct {
		n    int
		name string
	}{
		{summary.Errors, "errors"},
		{summary.Warnings, "warnings"},
		{summary.Info, "info"},
		{summary.Hidden, "hidden"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.name))
		}
	}
	r.Printf("Summary: %s in %d of %d files\n", strings.Join(parts, ", "), summary.FilesWithIssues, analyzed)
	return summary.TotalIssues
}

func severityStyle(r *output.Renderer, sev core.Severity) string {
	label := fmt.Sprintf("%-7s", sev)
	switch sev {
	case core.SeverityError:
		return r.Styles().Error.Render(label)
	case core.SeverityWarning:
		return r.Styles().Warning.Render(label)
	case core.SeverityInfo:
		return r.Styles().Info.Render(label)
	default:
		return r.Styles().Muted.Render(label)
	}
}
