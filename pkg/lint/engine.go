package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

// AnalyzerFaulted is reported when an analyzer callback panics. The engine
// stops running that analyzer for the rest of the tree.
var AnalyzerFaulted = MustDescriptor(
	"AD0001",
	"Analyzer faulted",
	"Analyzer '{0}' failed and was disabled for this document: {1}",
	CategoryReliability,
	core.SeverityWarning,
	true,
	WithDescription("An analyzer raised an unexpected error while visiting the document. "+
		"Its remaining checks were skipped; other analyzers were not affected."),
)

// Engine runs analyzers over trees. It is immutable and safe for concurrent
// use by multiple goroutines analyzing different trees.
type Engine struct {
	analyzers []*Analyzer
	byKind    [syntax.KindCount][]int // kind -> indexes into analyzers
	config    *Config
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConfig sets the rule configuration. The engine keeps a frozen copy.
func WithConfig(cfg *Config) EngineOption {
	return func(e *Engine) { e.config = cfg.Freeze() }
}

// WithLogger sets the logger used for analyzer faults.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine builds an engine over analyzers. A nil slice selects every
// globally registered analyzer. Analyzers whose rules are all disabled by
// the configuration are dropped.
func NewEngine(analyzers []*Analyzer, opts ...EngineOption) *Engine {
	e := &Engine{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	if e.config == nil {
		e.config = NewConfig().Freeze()
	}
	if analyzers == nil {
		analyzers = Analyzers()
	}
	for _, a := range analyzers {
		if !e.anyEnabled(a) {
			continue
		}
		idx := len(e.analyzers)
		e.analyzers = append(e.analyzers, a)
		if a.Node == nil {
			continue
		}
		for _, k := range a.Kinds {
			if int(k) < syntax.KindCount {
				e.byKind[k] = append(e.byKind[k], idx)
			}
		}
	}
	return e
}

func (e *Engine) anyEnabled(a *Analyzer) bool {
	for _, d := range a.Descriptors {
		if e.config.IsEnabled(d) {
			return true
		}
	}
	return false
}

// Analyzers returns the active analyzers.
func (e *Engine) Analyzers() []*Analyzer { return e.analyzers }

// Config returns the frozen configuration.
func (e *Engine) Config() *Config { return e.config }

// Descriptors returns the descriptors of the active analyzers plus AnalyzerFaulted.
func (e *Engine) Descriptors() []*Descriptor {
	var out []*Descriptor
	for _, a := range e.analyzers {
		out = append(out, a.Descriptors...)
	}
	return append(out, AnalyzerFaulted)
}

// run is the state of one Analyze call.
type run struct {
	engine  *Engine
	tree    *syntax.Tree
	passes  []*Pass
	faulted []bool
	diags   []Diagnostic
}

// Analyze runs the active analyzers over tree and returns the diagnostics
// sorted by position. A nil model binds tree on its own, without the other
// documents of its project.
func (e *Engine) Analyze(tree *syntax.Tree, model semantic.Model, flavor string) []Diagnostic {
	if tree == nil || tree.Root == nil {
		return nil
	}
	if model == nil {
		model = semantic.NewCompilation([]*syntax.Tree{tree}, semantic.WithLogger(e.logger)).Model(tree)
	}
	r := &run{
		engine:  e,
		tree:    tree,
		passes:  make([]*Pass, len(e.analyzers)),
		faulted: make([]bool, len(e.analyzers)),
	}
	for i, a := range e.analyzers {
		r.passes[i] = &Pass{
			Tree:     tree,
			Model:    model,
			Flavor:   flavor,
			Logger:   e.logger.With("analyzer", a.Name),
			analyzer: a,
			config:   e.config,
			report:   func(d Diagnostic) { r.diags = append(r.diags, d) },
		}
	}

	for i, a := range e.analyzers {
		if a.Tree != nil {
			r.call(i, token.Span{}, func(p *Pass) { a.Tree(p) })
		}
	}
	for _, typ := range model.DeclaredTypes() {
		for i, a := range e.analyzers {
			if a.Type != nil && !r.faulted[i] {
				r.call(i, typ.NameSpan, func(p *Pass) { a.Type(p, typ) })
			}
		}
	}
	for node := range syntax.Preorder(tree.Root) {
		for _, i := range e.byKind[node.Kind()] {
			if r.faulted[i] {
				continue
			}
			a := e.analyzers[i]
			r.call(i, node.Span(), func(p *Pass) { a.Node(p, node) })
		}
	}

	SortDiagnostics(r.diags)
	return r.diags
}

// call runs fn for analyzer i, converting a panic into AnalyzerFaulted.
func (r *run) call(i int, at token.Span, fn func(*Pass)) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		r.faulted[i] = true
		a := r.engine.analyzers[i]
		r.engine.logger.Error("analyzer faulted",
			"analyzer", a.Name, "rule", a.ID(), "path", r.tree.Path, "panic", v)
		r.passes[i].Report(AnalyzerFaulted, at, a.Name, fmt.Sprint(v))
	}()
	fn(r.passes[i])
}
