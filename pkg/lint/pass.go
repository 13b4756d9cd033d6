package lint

import (
	"log/slog"

	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Pass is the context handed to analyzer callbacks for one tree.
type Pass struct {
	Tree   *syntax.Tree
	Model  semantic.Model
	Flavor string
	Logger *slog.Logger

	analyzer *Analyzer
	config   *Config
	report   func(Diagnostic)
}

// Analyzer returns the analyzer the pass runs.
func (p *Pass) Analyzer() *Analyzer { return p.analyzer }

// Options returns the configured options of rule id.
func (p *Pass) Options(id string) Options {
	return p.config.RuleOptions(id)
}

// Enabled reports whether descriptor d reports under the current configuration.
func (p *Pass) Enabled(d *Descriptor) bool {
	return p.config.IsEnabled(d)
}

// Report records a diagnostic for d at span with message args.
func (p *Pass) Report(d *Descriptor, span token.Span, args ...any) {
	p.ReportWithProperties(d, span, nil, args...)
}

// ReportWithProperties records a diagnostic carrying a property bag.
func (p *Pass) ReportWithProperties(d *Descriptor, span token.Span, props map[string]string, args ...any) {
	if !p.config.IsEnabled(d) {
		return
	}
	p.report(Diagnostic{
		Descriptor: d,
		Path:       p.Tree.Path,
		Span:       span,
		Start:      p.Tree.Position(span.Start),
		End:        p.Tree.Position(span.End),
		Message:    d.FormatMessage(args...),
		Severity:   p.config.Severity(d, p.Flavor),
		Properties: cloneProperties(props),
	})
}

// ReportNode reports d at the span of node, trivia excluded.
func (p *Pass) ReportNode(d *Descriptor, node syntax.Cursor, args ...any) {
	p.Report(d, node.Span(), args...)
}
