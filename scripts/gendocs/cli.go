package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/sharplint/internal/cli"
)

// generateCLIDocs generates CLI documentation from Cobra commands.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	return writeCLIDocs(cli.NewRootCmd(), outDir)
}

func writeCLIDocs(rootCmd *cobra.Command, outDir string) error {
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range documented(rootCmd) {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

// documented returns the visible subcommands of cmd.
func documented(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "__complete" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

// generateCLIIndex generates the CLI overview page.
func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for sharplint")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/sharplint/cmd/sharplint@latest")

	w.Header(2, "Basic Usage")
	w.CodeBlock("bash", "sharplint <command> [options]")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documented(rootCmd) {
		link := fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Environment Variables")
	w.Paragraph("Every key of `sharplint.yaml` can be set with a `SHARPLINT_` variable. A double underscore separates nested keys.")
	w.Table([]string{"Variable", "Description"}, [][]string{
		{InlineCode("SHARPLINT_OUTPUT"), "Default output format"},
		{InlineCode("SHARPLINT_FIX__SCOPE"), "Default scope of the fix command"},
		{InlineCode("SHARPLINT_CACHE__ENABLED"), "Reuse the results of an unchanged project"},
		{InlineCode("SHARPLINT_CACHE__PATH"), "Location of the result cache"},
	})
	w.Paragraph("Command-line flags take precedence over environment variables, which take precedence over the config file.")

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success, no issues at or above the severity threshold"},
		{InlineCode("1"), "Issues found, or an error (check stderr for details)"},
	})

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", `# General help
sharplint help
sharplint --help

# Command-specific help
sharplint lint --help`)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateCommandPage generates documentation for a single command.
func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if cmd.HasSubCommands() {
		useLine = fmt.Sprintf("sharplint %s <subcommand> [options]", cmd.Name())
	} else if !strings.HasPrefix(useLine, "sharplint") {
		useLine = "sharplint " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		var aliases []string
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasSubCommands() {
		w.Header(2, "Subcommands")
		for _, sub := range documented(cmd) {
			w.Header(3, sub.Name())
			w.Paragraph(cleanDescription(sub.Short))
			w.CodeBlock("bash", sub.UseLine())
			if sub.HasLocalFlags() {
				writeFlagsTable(w, sub.LocalFlags())
			}
		}
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

// writeFlagsTable writes a table of flags.
func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		switch {
		case defVal == "", defVal == "[]":
			defVal = ""
		case defVal == "false" || defVal == "true":
			// Keep as-is for booleans
		case f.Value.Type() == "string" || f.Value.Type() == "int":
			defVal = InlineCode(defVal)
		}

		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			defVal,
			cleanDescription(f.Usage),
		})
	})

	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	// Find minimum indentation (ignoring empty lines)
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
