package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Category string // Filter by category
	Long     bool   // Show descriptions
	Format   string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules.

Rules are grouped by category (design, performance, style, usage). Use
--long to include each rule's description.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  sharplint rules

  # Show details for a specific rule
  sharplint rules CC0012

  # List style rules only
  sharplint rules --category style

  # List usage rules with their descriptions
  sharplint rules --category usage --long

  # Output as JSON
  sharplint rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category")
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "Show descriptions")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, c := range lint.Categories() {
			names = append(names, c.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// ruleInfos returns the catalog sorted by id, with the fields only the
// registries know filled in.
func ruleInfos() []core.RuleInfo {
	descs := lint.Descriptors()
	infos := make([]core.RuleInfo, 0, len(descs))
	for _, d := range descs {
		info := d.Info()
		info.Fixable = fix.Fixable(d.ID())
		for _, a := range lint.Analyzers() {
			if a.Reports(d.ID()) {
				info.Analyzer = a.Name
				info.ConfigKeys = a.ConfigKeys
				break
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	rules := ruleInfos()
	if opts.Category != "" {
		if _, ok := lint.ParseCategory(opts.Category); !ok {
			return fmt.Errorf("unknown category %q", opts.Category)
		}
		var filtered []core.RuleInfo
		for _, rule := range rules {
			if strings.EqualFold(rule.Category, opts.Category) {
				filtered = append(filtered, rule)
			}
		}
		rules = filtered
	}

	if r.EffectiveMode() == output.ModeJSON {
		if rules == nil {
			rules = []core.RuleInfo{}
		}
		return r.JSON(rules)
	}

	r.Header(1, fmt.Sprintf("Lint Rules (%d)", len(rules)))
	if r.EffectiveMode() == output.ModeText {
		r.Println("")
	}
	header := []string{"ID", "Category", "Severity", "Fix", "Title"}
	rows := make([][]string, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, []string{rule.ID, rule.Category, ruleSeverity(rule), yesNo(rule.Fixable), rule.Title})
	}
	r.Table(header, rows)

	if opts.Long {
		for _, rule := range rules {
			r.Println("")
			writeRuleDetails(r, rule)
		}
	}
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	for _, rule := range ruleInfos() {
		if !strings.EqualFold(rule.ID, ruleID) {
			continue
		}
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(rule)
		}
		writeRuleDetails(r, rule)
		return nil
	}
	return fmt.Errorf("rule %q not found", ruleID)
}

func writeRuleDetails(r *output.Renderer, rule core.RuleInfo) {
	markdown := r.EffectiveMode() == output.ModeMarkdown
	r.Header(2, rule.ID+": "+rule.Title)
	fields := [][2]string{
		{"Category", rule.Category},
		{"Severity", ruleSeverity(rule)},
		{"Fixable", yesNo(rule.Fixable)},
		{"Message", rule.Message},
		{"Analyzer", rule.Analyzer},
		{"Help", rule.HelpURL},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if markdown {
			r.Printf("- **%s:** %s\n", f[0], f[1])
		} else {
			r.Printf("  %s %s\n", r.Styles().Muted.Render(fmt.Sprintf("%-9s", f[0]+":")), f[1])
		}
	}
	if rule.Description != "" {
		r.Println("")
		if markdown {
			r.Println(rule.Description)
		} else {
			r.Println("  " + rule.Description)
		}
	}
}

func ruleSeverity(rule core.RuleInfo) string {
	if !rule.EnabledByDefault {
		return rule.DefaultSeverity.String() + " (off)"
	}
	return rule.DefaultSeverity.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
