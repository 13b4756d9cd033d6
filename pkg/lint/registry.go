package lint

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// globalRegistry is the single global registry for all analyzers.
var globalRegistry = NewRegistry()

// Registry stores analyzers and the descriptors they declare.
type Registry struct {
	mu          sync.RWMutex
	analyzers   []*Analyzer
	descriptors map[string]*Descriptor // keyed by ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Register adds an analyzer to the global registry.
// Call this from init() functions in rule packages.
func Register(a *Analyzer) {
	if err := globalRegistry.Add(a); err != nil {
		panic(err)
	}
}

// Add adds an analyzer. Descriptor ids must be unique across the registry.
func (r *Registry) Add(a *Analyzer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(a.Descriptors) == 0 {
		return fmt.Errorf("analyzer %q declares no descriptors", a.Name)
	}
	for _, d := range a.Descriptors {
		if prev, ok := r.descriptors[d.ID()]; ok && prev != d {
			return fmt.Errorf("duplicate rule id %s (analyzer %q)", d.ID(), a.Name)
		}
	}
	for _, d := range a.Descriptors {
		r.descriptors[d.ID()] = d
	}
	r.analyzers = append(r.analyzers, a)
	return nil
}

// Analyzers returns the registered analyzers ordered by their first rule id.
func (r *Registry) Analyzers() []*Analyzer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.analyzers)
	slices.SortStableFunc(out, func(a, b *Analyzer) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// Descriptors returns all declared descriptors ordered by id, including
// the engine's AnalyzerFaulted.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, len(r.descriptors)+1)
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	if _, ok := r.descriptors[AnalyzerFaulted.ID()]; !ok {
		out = append(out, AnalyzerFaulted)
	}
	slices.SortFunc(out, func(a, b *Descriptor) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// Descriptor returns a descriptor by id.
func (r *Registry) Descriptor(id string) (*Descriptor, bool) {
	if id == AnalyzerFaulted.ID() {
		return AnalyzerFaulted, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// Analyzers returns all globally registered analyzers.
func Analyzers() []*Analyzer { return globalRegistry.Analyzers() }

// Descriptors returns all globally declared descriptors.
func Descriptors() []*Descriptor { return globalRegistry.Descriptors() }

// GetDescriptor returns a globally declared descriptor by id.
func GetDescriptor(id string) (*Descriptor, bool) { return globalRegistry.Descriptor(id) }

// Count returns the number of registered analyzers.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.analyzers)
}
