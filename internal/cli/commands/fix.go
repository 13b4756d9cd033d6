package commands

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/fix/fixall"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	Format   string   // Output format: text, markdown, json
	Rules    []string // Fix only specific rules
	Disable  []string // Rule IDs to skip
	Scope    string   // document, project or solution
	Key      string   // Equivalence key of the action to apply
	Severity string   // Minimum severity of the rules fixed
	Diff     bool     // Print a diff instead of writing
	DryRun   bool     // Report without writing
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [path...]",
		Short: "Apply code fixes",
		Long: `Apply the code fix of every fixable rule to every occurrence.

Each rule is fixed in one batch per scope: document fixes each file on its
own, project and solution fix every file at once. The first action a fix
offers is applied unless --key selects another one.`,
		Example: `  # Fix everything and write the files
  sharplint fix

  # Preview the changes of one rule
  sharplint fix --rule CC0012 --diff

  # Pick the second action of a rule
  sharplint fix --rule CC0012 --key CC0012:wrap

  # Count what would be fixed
  sharplint fix --dry-run`,
		// Found issues are a result, not a misuse of the command.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Fix only specific rules")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to skip")
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Batch scope: document, project, solution (default from config)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "Equivalence key of the action to apply")
	cmd.Flags().StringVar(&opts.Severity, "severity", "info", "Minimum severity of the rules fixed: error, warning, info, hidden")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print a unified diff instead of writing files")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report fixes without writing files")

	_ = cmd.RegisterFlagCompletionFunc("scope", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(core.ScopeDocument), string(core.ScopeProject), string(core.ScopeSolution)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runFix(cmd *cobra.Command, args []string, opts *FixOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	scope := core.Scope(opts.Scope)
	if scope == "" {
		scope = core.Scope(cc.Cfg.Fix.Scope)
	}
	if !scope.Valid() {
		return fmt.Errorf("unknown scope %q", scope)
	}
	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q", opts.Severity)
	}
	lintCfg, err := buildLintConfig(cc.Cfg, opts.Disable, opts.Rules)
	if err != nil {
		return err
	}
	engine := newEngine(lintCfg, cc.Logger)

	ctx := cmd.Context()
	before, _, err := loadSolution(ctx, cc, sourcePaths(args, cc.Cfg))
	if err != nil {
		return err
	}

	ids := fixableRules(lintCfg, threshold)
	if opts.Key != "" && len(ids) != 1 {
		return fmt.Errorf("--key needs exactly one fixable rule, got %d", len(ids))
	}

	coord := fixall.New(engine, cc.Logger)
	after := before
	var rules []output.FixRuleResult
	for _, id := range ids {
		res := output.FixRuleResult{RuleID: id}
		for _, req := range fixRequests(after, scope, id, opts.Key) {
			var rep fixall.Report
			after, rep, err = coord.Fix(ctx, after, req)
			if err != nil {
				return fmt.Errorf("fix %s: %w", id, err)
			}
			res.Diagnostics += rep.Diagnostics
			res.Fixed += rep.Fixed
			res.Skipped += rep.Skipped
		}
		if res.Diagnostics > 0 {
			rules = append(rules, res)
		}
	}

	files := changedFiles(before, after, opts.Diff)
	write := !opts.Diff && !opts.DryRun
	if write {
		for _, f := range files {
			doc, _ := after.DocumentByPath(f.Path)
			if err := writeDocument(doc); err != nil {
				return err
			}
		}
	}

	renderFixResults(cc.Renderer, output.FixOutput{DryRun: !write, Rules: rules, Files: files})
	return nil
}

// fixableRules returns the enabled rules at or above threshold that have a
// registered fix.
func fixableRules(cfg *lint.Config, threshold core.Severity) []string {
	var ids []string
	for _, d := range lint.Descriptors() {
		if fix.Fixable(d.ID()) && cfg.IsEnabled(d) && cfg.Severity(d, "") >= threshold {
			ids = append(ids, d.ID())
		}
	}
	return ids
}

// fixRequests splits a run of rule id into one request per scope unit.
func fixRequests(sol workspace.Solution, scope core.Scope, id, key string) []fixall.Request {
	base := fixall.Request{Scope: scope, RuleID: id, EquivalenceKey: key}
	switch scope {
	case core.ScopeSolution:
		return []fixall.Request{base}
	case core.ScopeProject:
		var reqs []fixall.Request
		for _, p := range sol.Projects {
			if len(p.Documents) > 0 {
				req := base
				req.Document = p.Documents[0].ID
				reqs = append(reqs, req)
			}
		}
		return reqs
	}
	var reqs []fixall.Request
	for _, d := range sol.Documents() {
		req := base
		req.Document = d.ID
		reqs = append(reqs, req)
	}
	return reqs
}

// changedFiles lists the documents whose text differs, in path order.
func changedFiles(before, after workspace.Solution, withDiff bool) []output.FixFileResult {
	var files []output.FixFileResult
	for _, doc := range after.Documents() {
		old, _, ok := before.Document(doc.ID)
		if !ok {
			continue
		}
		oldText, newText := old.Text(), doc.Text()
		if oldText == newText {
			continue
		}
		f := output.FixFileResult{Path: doc.Path}
		if withDiff {
			f.Diff = output.UnifiedDiff(doc.Path, oldText, newText)
		}
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b output.FixFileResult) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

func writeDocument(doc workspace.Document) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(doc.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(doc.Path, []byte(doc.Text()), mode); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}

func renderFixResults(r *output.Renderer, out output.FixOutput) {
	if r.EffectiveMode() == output.ModeJSON {
		if out.Rules == nil {
			out.Rules = []output.FixRuleResult{}
		}
		if out.Files == nil {
			out.Files = []output.FixFileResult{}
		}
		_ = r.JSON(out)
		return
	}

	if len(out.Rules) == 0 {
		r.Success("Nothing to fix")
		return
	}

	rows := make([][]string, 0, len(out.Rules))
	fixed := 0
	for _, res := range out.Rules {
		fixed += res.Fixed
		rows = append(rows, []string{res.RuleID, fmt.Sprint(res.Diagnostics), fmt.Sprint(res.Fixed), fmt.Sprint(res.Skipped)})
	}
	r.Table([]string{"Rule", "Found", "Fixed", "Skipped"}, rows)
	r.Println("")

	for _, f := range out.Files {
		if f.Diff != "" {
			r.Diff(f.Diff)
		}
	}

	verb := "Fixed"
	if out.DryRun {
		verb = "Would fix"
	}
	r.Success(fmt.Sprintf("%s %d issues in %d files", verb, fixed, len(out.Files)))
}
