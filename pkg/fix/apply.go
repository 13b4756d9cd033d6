package fix

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// Apply runs action against doc and returns the rewritten document. The
// action must have been computed on doc's current tree. On cancellation or
// failure doc is returned unchanged together with the error.
func Apply(ctx context.Context, doc workspace.Document, action Action) (workspace.Document, error) {
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	if action.target.Valid() && action.target.RootCursor().Node() != doc.Tree.Root {
		return doc, ErrStale
	}
	root, err := action.Run()
	if err != nil {
		return doc, fmt.Errorf("%s: %w", action.Title, err)
	}
	if err := ctx.Err(); err != nil {
		return doc, err
	}
	return doc.WithRoot(root), nil
}

// ApplyFirst applies the first action the registry offers for d whose
// equivalence key matches key; an empty key selects the first action.
func (r *Registry) ApplyFirst(ctx context.Context, doc workspace.Document, d lint.Diagnostic, key string) (workspace.Document, error) {
	for _, a := range r.Fixes(d, doc.Tree.Root) {
		if key == "" || a.EquivalenceKey == key {
			return Apply(ctx, doc, a)
		}
	}
	return doc, fmt.Errorf("%s at %s: %w", d.RuleID(), d.Start, ErrNoTarget)
}
