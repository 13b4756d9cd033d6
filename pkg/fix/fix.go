// Package fix turns diagnostics into tree rewrites.
//
// A Provider is registered for one or more rule ids. Given a diagnostic, the
// registry locates the node the diagnostic was raised on and asks the
// provider for the actions that apply to it. Every action is a pure
// transformation from that node to a new document root; applying it never
// mutates the original tree.
package fix

import (
	"errors"

	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

var (
	// ErrNoTarget is returned when the node a diagnostic refers to cannot
	// be found in the tree.
	ErrNoTarget = errors.New("fix: target node not found")
	// ErrNotApplicable is returned when an action declines to rewrite its
	// target.
	ErrNotApplicable = errors.New("fix: action not applicable")
	// ErrStale is returned when an action is applied to a document other
	// than the one it was computed for.
	ErrStale = errors.New("fix: action computed for another tree")
)

// Transform rewrites the tree around target and returns the new root, or
// nil when the rewrite does not apply.
type Transform func(target syntax.Cursor) *syntax.Node

// Action is one proposed rewrite for a diagnostic.
type Action struct {
	Title string
	// EquivalenceKey identifies actions that do the same thing for
	// different diagnostics. Batch fixing selects actions by it.
	EquivalenceKey string
	Transform      Transform

	target syntax.Cursor
}

// Target returns the node the action was computed for.
func (a Action) Target() syntax.Cursor { return a.target }

// Run applies the transform to the target and returns the new root.
func (a Action) Run() (*syntax.Node, error) {
	if !a.target.Valid() {
		return nil, ErrNoTarget
	}
	root := a.Transform(a.target)
	if root == nil {
		return nil, ErrNotApplicable
	}
	return root, nil
}

// Provider offers fixes for the diagnostics of some rules.
type Provider struct {
	// Name identifies the provider in logs.
	Name string
	// RuleIDs lists the rules the provider fixes.
	RuleIDs []string
	// Targets are the node kinds a diagnostic is located on. The innermost
	// node of one of these kinds containing the start of the diagnostic
	// span is the target.
	Targets []syntax.Kind
	// Actions returns the actions that apply to the diagnostic. Providers
	// that offer alternatives decide between them by the diagnostic's
	// properties and must only return the applicable ones.
	Actions func(d lint.Diagnostic, target syntax.Cursor) []Action
	// NoBatch excludes the provider from fix-all runs.
	NoBatch bool
}

// Fixes returns the actions p offers for d on the tree rooted at root.
// A diagnostic whose target cannot be located yields no actions.
func (p *Provider) Fixes(d lint.Diagnostic, root *syntax.Node) []Action {
	target, ok := Locate(root, d.Span, p.Targets...)
	if !ok {
		return nil
	}
	return p.actions(d, target)
}

func (p *Provider) actions(d lint.Diagnostic, target syntax.Cursor) []Action {
	actions := p.Actions(d, target)
	for i := range actions {
		actions[i].target = target
	}
	return actions
}

// FixesAt is like Fixes but uses an already located target.
func (p *Provider) FixesAt(d lint.Diagnostic, target syntax.Cursor) []Action {
	if !target.Valid() || !target.Node().Is(p.Targets...) {
		return nil
	}
	return p.actions(d, target)
}
