package lint

import (
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

// Analyzer is a data-driven rule module. The engine dispatches to it by
// trigger: Node runs for every node whose kind is in Kinds, Type runs once
// per type declared in the tree, and Tree runs once per tree.
//
// Callbacks are stateless relative to each other and must report a
// no-match rather than panic on unexpected shapes.
type Analyzer struct {
	Name        string        // e.g. "usage.argument_exception"
	Doc         string        // Human-readable description of the module
	Descriptors []*Descriptor // Rules this analyzer can report
	Kinds       []syntax.Kind // Node triggers
	ConfigKeys  []string      // Rule specific option keys

	Node func(pass *Pass, node syntax.Cursor)
	Type func(pass *Pass, typ *semantic.Symbol)
	Tree func(pass *Pass)
}

// Reports reports whether the analyzer declares descriptor id.
func (a *Analyzer) Reports(id string) bool {
	for _, d := range a.Descriptors {
		if d.ID() == id {
			return true
		}
	}
	return false
}

// ID returns the id of the analyzer's first descriptor.
func (a *Analyzer) ID() string {
	if len(a.Descriptors) == 0 {
		return ""
	}
	return a.Descriptors[0].ID()
}
