package lint

import (
	"maps"
	"sync"

	"github.com/leapstack-labs/sharplint/pkg/core"
)

// SeverityConfig maps rule ids to effective severities, with per-flavor
// overrides. It is immutable after construction and safe for concurrent reads.
type SeverityConfig struct {
	base    map[string]core.Severity
	flavors map[string]map[string]core.Severity
}

// NewSeverityConfig seeds the table with the defaults of descriptors and
// applies overrides, then per-flavor overrides. The maps are copied.
func NewSeverityConfig(descriptors []*Descriptor, overrides map[string]core.Severity, flavors map[string]map[string]core.Severity) *SeverityConfig {
	s := &SeverityConfig{
		base:    make(map[string]core.Severity, len(descriptors)+len(overrides)),
		flavors: make(map[string]map[string]core.Severity, len(flavors)),
	}
	for _, d := range descriptors {
		s.base[d.ID()] = d.DefaultSeverity()
	}
	maps.Copy(s.base, overrides)
	for flavor, table := range flavors {
		s.flavors[flavor] = maps.Clone(table)
	}
	return s
}

// defaultSeverities is built from the registry on first use.
var defaultSeverities = sync.OnceValue(func() *SeverityConfig {
	return NewSeverityConfig(Descriptors(), nil, nil)
})

// DefaultSeverities returns the process-wide table of registered defaults.
func DefaultSeverities() *SeverityConfig {
	return defaultSeverities()
}

// Severity returns the effective severity of d for a source flavor.
func (s *SeverityConfig) Severity(d *Descriptor, flavor string) core.Severity {
	if s != nil {
		if sev, ok := s.flavors[flavor][d.ID()]; ok {
			return sev
		}
		if sev, ok := s.base[d.ID()]; ok {
			return sev
		}
	}
	return d.DefaultSeverity()
}

// Lookup returns the configured severity of a rule id without a descriptor.
func (s *SeverityConfig) Lookup(id, flavor string) (core.Severity, bool) {
	if sev, ok := s.flavors[flavor][id]; ok {
		return sev, true
	}
	sev, ok := s.base[id]
	return sev, ok
}
