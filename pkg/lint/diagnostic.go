package lint

import (
	"cmp"
	"maps"
	"slices"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Diagnostic is one located rule violation. Diagnostics are created by
// analyzers through Pass.Report and never mutated afterwards.
type Diagnostic struct {
	Descriptor *Descriptor
	Path       string
	Span       token.Span
	Start      token.Position
	End        token.Position
	Message    string
	Severity   core.Severity

	// Properties disambiguate fix branches, e.g. "kind" = "missingDoc".
	Properties map[string]string
}

// RuleID returns the id of the diagnostic's descriptor.
func (d Diagnostic) RuleID() string {
	if d.Descriptor == nil {
		return ""
	}
	return d.Descriptor.ID()
}

// Property returns a property value, or "" when absent.
func (d Diagnostic) Property(key string) string {
	return d.Properties[key]
}

// HelpLink returns the documentation URL of the rule.
func (d Diagnostic) HelpLink() string {
	return HelpLink(d.RuleID())
}

// compareDiagnostics orders by path, start, end, then rule id.
func compareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Path, b.Path),
		cmp.Compare(a.Span.Start, b.Span.Start),
		cmp.Compare(a.Span.End, b.Span.End),
		cmp.Compare(a.RuleID(), b.RuleID()),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortDiagnostics sorts diagnostics by source position, stably.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, compareDiagnostics)
}

func cloneProperties(props map[string]string) map[string]string {
	if len(props) == 0 {
		return nil
	}
	return maps.Clone(props)
}
