package core

// LintConfig is the user-facing lint section of the configuration file.
// Severity values are strings accepted by ParseSeverity.
type LintConfig struct {
	// Disabled lists rule ids that never report.
	Disabled []string `koanf:"disabled" yaml:"disabled,omitempty"`
	// Enabled lists rule ids that report even when disabled by default.
	Enabled []string `koanf:"enabled" yaml:"enabled,omitempty"`
	// Severity overrides the default severity per rule id.
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`
	// Flavors overrides severities per source flavor ("csharp", "script").
	Flavors map[string]FlavorConfig `koanf:"flavors" yaml:"flavors,omitempty"`
	// Rules holds rule specific options keyed by rule id.
	Rules map[string]map[string]any `koanf:"rules" yaml:"rules,omitempty"`
}

// FlavorConfig holds the overrides for one source flavor.
type FlavorConfig struct {
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`
}

// Scope names the set of documents a batch fix covers.
type Scope string

// Batch fix scopes.
const (
	ScopeDocument Scope = "document"
	ScopeProject  Scope = "project"
	ScopeSolution Scope = "solution"
)

// Valid reports whether s names a known scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeDocument, ScopeProject, ScopeSolution:
		return true
	}
	return false
}
