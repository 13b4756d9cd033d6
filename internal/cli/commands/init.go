package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

const configHeader = `# sharplint configuration
#
# lint.severity lists every rule at its default severity; change a value
# to error, warning, info or hidden, or add the id to lint.disabled.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a sharplint.yaml",
		Long: `Create a sharplint.yaml configuration listing every rule with its
default severity.`,
		Example: `  # Initialize in current directory
  sharplint init

  # Overwrite an existing configuration
  sharplint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cc, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}
			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			cc.Renderer.Success("Created " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

// defaultConfig returns the configuration written by init.
func defaultConfig() intconfig.ProjectConfig {
	cfg := intconfig.ProjectConfig{}
	cfg.Lint.Severity = map[string]string{}
	for _, d := range lint.Descriptors() {
		if d.ID() == lint.AnalyzerFaulted.ID() {
			continue
		}
		cfg.Lint.Severity[d.ID()] = d.DefaultSeverity().String()
		if !d.EnabledByDefault() {
			cfg.Lint.Disabled = append(cfg.Lint.Disabled, d.ID())
		}
	}
	intconfig.ApplyDefaults(&cfg)
	return cfg
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", existing)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(defaultConfig()); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	path := filepath.Join(dir, intconfig.ConfigFileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
