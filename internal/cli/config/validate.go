package config

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

// Validate checks the values a file or the environment can get wrong.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	if !core.Scope(c.Fix.Scope).Valid() {
		return fmt.Errorf("fix.scope: unknown scope %q (want document, project or solution)", c.Fix.Scope)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path: must be set when the cache is enabled")
	}
	if _, err := lint.FromLintConfig(c.Lint); err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	return nil
}
