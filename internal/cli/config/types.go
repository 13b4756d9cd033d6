// Package config loads the CLI configuration.
//
// Values come, lowest precedence first, from built-in defaults, the
// sharplint.yaml project file, SHARPLINT_ environment variables and
// command line flags.
package config

import (
	"path/filepath"

	intconfig "github.com/leapstack-labs/sharplint/internal/config"
	"github.com/leapstack-labs/sharplint/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool                  `koanf:"verbose"`
	OutputFormat string                `koanf:"output"`
	Include      []string              `koanf:"include"`
	Exclude      []string              `koanf:"exclude"`
	Lint         core.LintConfig       `koanf:"lint"`
	Fix          intconfig.FixConfig   `koanf:"fix"`
	Cache        intconfig.CacheConfig `koanf:"cache"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory.
	ProjectRoot string `koanf:"-"`
}

// CachePath returns the cache database path anchored at the project root.
func (c *Config) CachePath() string {
	if filepath.IsAbs(c.Cache.Path) {
		return c.Cache.Path
	}
	return filepath.Join(c.ProjectRoot, c.Cache.Path)
}

// Default returns the configuration used when nothing was loaded.
func Default() *Config {
	return &Config{
		OutputFormat: intconfig.DefaultOutput,
		Exclude:      append([]string(nil), intconfig.DefaultExclude...),
		Fix:          intconfig.FixConfig{Scope: string(intconfig.DefaultScope)},
		Cache:        intconfig.CacheConfig{Path: intconfig.DefaultCachePath},
		ProjectRoot:  ".",
	}
}
