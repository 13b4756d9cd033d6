package state

import (
	"fmt"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// FromDiagnostics converts lint diagnostics to their stored form.
func FromDiagnostics(diags []lint.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, Diagnostic{
			RuleID:     d.RuleID(),
			Message:    d.Message,
			Severity:   d.Severity.String(),
			SpanStart:  d.Span.Start,
			SpanEnd:    d.Span.End,
			Start:      Position(d.Start),
			End:        Position(d.End),
			Properties: d.Properties,
		})
	}
	return out
}

// ToDiagnostics converts stored diagnostics of the document at path back
// to lint diagnostics. Every rule id must be registered.
func ToDiagnostics(path string, stored []Diagnostic) ([]lint.Diagnostic, error) {
	out := make([]lint.Diagnostic, 0, len(stored))
	for _, s := range stored {
		desc, ok := lint.GetDescriptor(s.RuleID)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q in cache", s.RuleID)
		}
		sev, ok := core.ParseSeverity(s.Severity)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q in cache", s.Severity)
		}
		out = append(out, lint.Diagnostic{
			Descriptor: desc,
			Path:       path,
			Span:       token.Span{Start: s.SpanStart, End: s.SpanEnd},
			Start:      token.Position(s.Start),
			End:        token.Position(s.End),
			Message:    s.Message,
			Severity:   sev,
			Properties: s.Properties,
		})
	}
	return out, nil
}
