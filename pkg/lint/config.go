package lint

import (
	"fmt"
	"maps"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
)

// Config controls which rules are enabled, their severity and options.
//
// The setters return the Config for chaining while it is being built.
// Freeze returns the immutable snapshot the engine reads from.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// EnabledRules turns on rules that are disabled by default
	EnabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// FlavorSeverity overrides severities per source flavor
	FlavorSeverity map[string]map[string]core.Severity

	// Options are rule specific settings keyed by rule ID
	Options map[string]Options

	severities *SeverityConfig
}

// NewConfig creates a default configuration: rules report when enabled by default.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		EnabledRules:      make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		FlavorSeverity:    make(map[string]map[string]core.Severity),
		Options:           make(map[string]Options),
	}
}

// FromLintConfig converts the configuration file section into a Config.
func FromLintConfig(lc core.LintConfig) (*Config, error) {
	cfg := NewConfig()
	for _, id := range lc.Disabled {
		cfg.Disable(id)
	}
	for _, id := range lc.Enabled {
		cfg.Enable(id)
	}
	for id, text := range lc.Severity {
		sev, ok := core.ParseSeverity(text)
		if !ok {
			return nil, fmt.Errorf("lint.severity.%s: invalid severity %q", id, text)
		}
		cfg.SetSeverity(id, sev)
	}
	for flavor, fc := range lc.Flavors {
		for id, text := range fc.Severity {
			sev, ok := core.ParseSeverity(text)
			if !ok {
				return nil, fmt.Errorf("lint.flavors.%s.severity.%s: invalid severity %q", flavor, id, text)
			}
			cfg.SetFlavorSeverity(flavor, id, sev)
		}
	}
	for id, opts := range lc.Rules {
		cfg.SetRuleOptions(id, opts)
	}
	return cfg, nil
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	delete(c.EnabledRules, ruleID)
	return c
}

// Enable enables a rule by ID, including rules disabled by default.
func (c *Config) Enable(ruleID string) *Config {
	c.EnabledRules[ruleID] = true
	delete(c.DisabledRules, ruleID)
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetFlavorSeverity overrides the severity for a rule in one source flavor.
func (c *Config) SetFlavorSeverity(flavor, ruleID string, severity core.Severity) *Config {
	if c.FlavorSeverity[flavor] == nil {
		c.FlavorSeverity[flavor] = make(map[string]core.Severity)
	}
	c.FlavorSeverity[flavor][ruleID] = severity
	return c
}

// SetRuleOptions sets the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.Options[strings.ToUpper(ruleID)] = Options(opts)
	return c
}

// Freeze returns an immutable copy with the severity table built. Further
// changes to c do not affect the copy.
func (c *Config) Freeze() *Config {
	if c == nil {
		c = NewConfig()
	}
	frozen := &Config{
		DisabledRules:     maps.Clone(c.DisabledRules),
		EnabledRules:      maps.Clone(c.EnabledRules),
		SeverityOverrides: maps.Clone(c.SeverityOverrides),
		FlavorSeverity:    make(map[string]map[string]core.Severity, len(c.FlavorSeverity)),
		Options:           make(map[string]Options, len(c.Options)),
	}
	for flavor, table := range c.FlavorSeverity {
		frozen.FlavorSeverity[flavor] = maps.Clone(table)
	}
	for id, opts := range c.Options {
		frozen.Options[id] = maps.Clone(opts)
	}
	frozen.severities = NewSeverityConfig(nil, frozen.SeverityOverrides, frozen.FlavorSeverity)
	return frozen
}

// IsDisabled returns true if the rule was explicitly disabled.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// IsEnabled reports whether d reports under this configuration.
func (c *Config) IsEnabled(d *Descriptor) bool {
	if c == nil {
		return d.EnabledByDefault()
	}
	switch {
	case c.DisabledRules[d.ID()]:
		return false
	case c.EnabledRules[d.ID()]:
		return true
	}
	return d.EnabledByDefault()
}

// Severity returns the effective severity of d for a source flavor.
func (c *Config) Severity(d *Descriptor, flavor string) core.Severity {
	if c == nil {
		return d.DefaultSeverity()
	}
	if c.severities != nil {
		return c.severities.Severity(d, flavor)
	}
	return NewSeverityConfig(nil, c.SeverityOverrides, c.FlavorSeverity).Severity(d, flavor)
}

// RuleOptions returns the options for a rule, or nil.
func (c *Config) RuleOptions(ruleID string) Options {
	if c == nil {
		return nil
	}
	return c.Options[strings.ToUpper(ruleID)]
}
