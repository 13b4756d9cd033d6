// Package config holds the defaults and project file lookup shared by the
// CLI and tests.
package config

import "github.com/leapstack-labs/sharplint/pkg/core"

// Default configuration values.
const (
	// DefaultOutput selects text on a terminal and markdown otherwise.
	DefaultOutput = "auto"
	// DefaultScope is the batch fix scope used when none is configured.
	DefaultScope = core.ScopeDocument
	// DefaultSeverity is the lowest severity lint reports by default.
	DefaultSeverity = core.SeverityInfo
	// DefaultCachePath is the result cache database, relative to the
	// project root.
	DefaultCachePath = ".sharplint/cache.db"
)

// DefaultExclude lists directories no source walk descends into.
var DefaultExclude = []string{"**/bin", "**/obj", "**/.git"}

// ApplyDefaults fills the unset fields of a project config.
func ApplyDefaults(c *ProjectConfig) {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Fix.Scope == "" {
		c.Fix.Scope = string(DefaultScope)
	}
	if c.Cache.Path == "" {
		c.Cache.Path = DefaultCachePath
	}
	if c.Exclude == nil {
		c.Exclude = append([]string(nil), DefaultExclude...)
	}
}
