package fix

import (
	"fmt"
	"slices"
	"sync"

	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// globalRegistry holds the providers registered by rule packages.
var globalRegistry = NewRegistry()

// Registry maps rule ids to fix providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string][]*Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string][]*Provider)}
}

// Register adds a provider to the global registry.
// Call this from init() functions in rule packages.
func Register(p *Provider) {
	if err := globalRegistry.Add(p); err != nil {
		panic(err)
	}
}

// Global returns the registry Register adds to.
func Global() *Registry { return globalRegistry }

// Add adds a provider for each of its rule ids.
func (r *Registry) Add(p *Provider) error {
	if len(p.RuleIDs) == 0 {
		return fmt.Errorf("fix provider %q names no rules", p.Name)
	}
	if len(p.Targets) == 0 || p.Actions == nil {
		return fmt.Errorf("fix provider %q needs targets and an actions function", p.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range p.RuleIDs {
		if slices.Contains(r.providers[id], p) {
			return fmt.Errorf("fix provider %q registered twice for %s", p.Name, id)
		}
		r.providers[id] = append(r.providers[id], p)
	}
	return nil
}

// Providers returns the providers registered for rule id.
func (r *Registry) Providers(id string) []*Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.providers[id])
}

// Fixable reports whether some provider handles rule id.
func (r *Registry) Fixable(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers[id]) > 0
}

// RuleIDs returns the ids of all fixable rules, sorted.
func (r *Registry) RuleIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Fixes returns every action offered for d on the tree rooted at root.
func (r *Registry) Fixes(d lint.Diagnostic, root *syntax.Node) []Action {
	var out []Action
	for _, p := range r.Providers(d.RuleID()) {
		out = append(out, p.Fixes(d, root)...)
	}
	return out
}

// Fixes returns the actions of the globally registered providers.
func Fixes(d lint.Diagnostic, root *syntax.Node) []Action {
	return globalRegistry.Fixes(d, root)
}

// Fixable reports whether a globally registered provider handles rule id.
func Fixable(id string) bool {
	return globalRegistry.Fixable(id)
}
