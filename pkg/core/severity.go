package core

import (
	"fmt"
	"strings"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a diagnostic. Values are ordered so
// that a higher severity compares greater.
type Severity int

// Severity levels for diagnostics.
const (
	// SeverityHidden is reported to tools but not shown to users by default.
	SeverityHidden Severity = iota
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityHidden:
		return "hidden"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hidden", "hint", "none":
		return SeverityHidden, true
	case "info", "suggestion":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	default:
		return SeverityWarning, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	v, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q", text)
	}
	*s = v
	return nil
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	Category         string   `json:"category" yaml:"category"`
	Description      string   `json:"description" yaml:"description"`
	Message          string   `json:"message" yaml:"message"`
	DefaultSeverity  Severity `json:"default_severity" yaml:"default_severity"`
	EnabledByDefault bool     `json:"enabled_by_default" yaml:"enabled_by_default"`
	HelpURL          string   `json:"help_url" yaml:"help_url"`
	Tags             []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	ConfigKeys       []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Analyzer         string   `json:"analyzer" yaml:"analyzer"`
	Fixable          bool     `json:"fixable" yaml:"fixable"`
}
