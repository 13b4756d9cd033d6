package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules and fixes
)

// categoryDescriptions provides human-readable descriptions for rule categories.
var categoryDescriptions = map[string]string{
	"Style":       "Rules that simplify code without changing its behavior.",
	"Usage":       "Rules that catch API misuse, most of which would fail or misbehave at run time.",
	"Performance": "Rules about code that costs more than it needs to.",
	"Design":      "Rules about the shape of types and members.",
	"Reliability": "Findings about the analysis itself.",
}

// ruleDoc is the documented view of one rule.
type ruleDoc struct {
	core.RuleInfo
	Fixes []string // names of the fix providers
}

func ruleDocs() []ruleDoc {
	var docs []ruleDoc
	for _, d := range lint.Descriptors() {
		doc := ruleDoc{RuleInfo: d.Info()}
		doc.Fixable = fix.Fixable(d.ID())
		for _, a := range lint.Analyzers() {
			if a.Reports(d.ID()) {
				doc.Analyzer = a.Name
				doc.ConfigKeys = a.ConfigKeys
				break
			}
		}
		for _, p := range fix.Global().Providers(d.ID()) {
			doc.Fixes = append(doc.Fixes, p.Name)
		}
		docs = append(docs, doc)
	}
	return docs
}

// generateRuleDocs writes the rule index and one page per rule. The page
// names match the rule help links.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := ruleDocs()
	if err := generateRuleIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, rule := range rules {
		if err := generateRulePage(outDir, rule); err != nil {
			return err
		}
	}
	log.Printf("  Generated %d rule pages", len(rules))
	return nil
}

// generateRuleIndex generates the rules overview page.
func generateRuleIndex(outDir string, rules []ruleDoc) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Analyzer rules of sharplint")
	w.GeneratedMarker()

	fixable := 0
	for _, r := range rules {
		if r.Fixable {
			fixable++
		}
	}
	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("sharplint includes **%d rules**, **%d** of which come with a code fix.", len(rules), fixable))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Code that is wrong and will fail or misbehave"},
			{InlineCode("warning"), "Code that is probably wrong"},
			{InlineCode("info"), "A suggestion"},
			{InlineCode("hidden"), "Reported to editors only, never shown by lint"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules are configured in `sharplint.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [CC0037]        # never report
  enabled: [CC0061]         # report even when off by default
  severity:
    CC0012: error           # override the default severity
  flavors:
    script:
      severity:
        CC0029: hidden      # override for .csx files only`)

	for _, category := range categories(rules) {
		w.Header(2, category)
		if desc, ok := categoryDescriptions[category]; ok {
			w.Paragraph(desc)
		}
		var rows [][]string
		for _, r := range rules {
			if r.Category != category {
				continue
			}
			rows = append(rows, []string{
				fmt.Sprintf("[%s](%s)", r.ID, pageName(r.ID)),
				r.Title,
				InlineCode(severityLabel(r.RuleInfo)),
				yesNo(r.Fixable),
			})
		}
		w.Table([]string{"Rule", "Title", "Severity", "Fix"}, rows)
	}

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateRulePage generates the page of one rule.
func generateRulePage(outDir string, rule ruleDoc) error {
	w := NewMarkdownWriter()

	w.Frontmatter(rule.ID+": "+rule.Title, rule.Title)
	w.GeneratedMarker()

	w.Header(1, rule.ID+": "+rule.Title)
	w.Table([]string{"Property", "Value"}, [][]string{
		{"Category", rule.Category},
		{"Severity", InlineCode(severityLabel(rule.RuleInfo))},
		{"Code fix", yesNo(rule.Fixable)},
		{"Analyzer", InlineCode(rule.Analyzer)},
	})

	if rule.Description != "" {
		w.Paragraph(rule.Description)
	}

	w.Header(2, "Message")
	w.CodeBlock("", rule.Message)

	if len(rule.Fixes) > 0 {
		w.Header(2, "How to Fix")
		w.Paragraph("Apply the code fix from your editor or run:")
		w.CodeBlock("bash", fmt.Sprintf("sharplint fix --rule %s", rule.ID))
	}

	if len(rule.ConfigKeys) > 0 {
		w.Header(2, "Options")
		w.Paragraph(fmt.Sprintf("This rule accepts the following options under %s: %s",
			InlineCode("lint.rules."+rule.ID), InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	w.Header(2, "Suppression")
	w.CodeBlock("yaml", fmt.Sprintf("lint:\n  disabled: [%s]", rule.ID))

	return os.WriteFile(filepath.Join(outDir, pageName(rule.ID)), w.Bytes(), 0600)
}

// categories returns the categories of rules in order of first appearance.
func categories(rules []ruleDoc) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range rules {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

func pageName(id string) string {
	return id + ".md"
}

func severityLabel(r core.RuleInfo) string {
	if !r.EnabledByDefault {
		return r.DefaultSeverity.String() + " (off)"
	}
	return r.DefaultSeverity.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
