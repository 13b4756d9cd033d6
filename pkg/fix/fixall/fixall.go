// Package fixall applies the fix of one rule to every occurrence in a
// document, project or solution.
//
// A run goes through four steps. Scan collects the diagnostics of the rule
// in scope. Annotate marks the target node of each diagnostic with a marker
// unique to the run. FixEach finds every marked node again, by marker and
// not by position since earlier edits move text, and applies the same
// action the single fix path would. Strip removes the markers.
package fixall

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// MarkerPrefix starts the annotation kind of every batch marker.
const MarkerPrefix = "fixall:"

var (
	// ErrUnannotatable is returned when the target node of a diagnostic in
	// scope cannot be found. The run is abandoned and nothing is changed.
	ErrUnannotatable = errors.New("fixall: diagnostic target cannot be annotated")
	// ErrNoDocument is returned when the request names an unknown document.
	ErrNoDocument = errors.New("fixall: document not in solution")
)

// Request selects what a run fixes.
type Request struct {
	Scope core.Scope
	// Document anchors document and project scope.
	Document workspace.DocumentID
	RuleID   string
	// EquivalenceKey selects the action among those a provider offers. An
	// empty key selects the first action of every diagnostic.
	EquivalenceKey string
}

// Report summarizes a run.
type Report struct {
	Diagnostics int
	Fixed       int
	Skipped     int
	Documents   []workspace.DocumentID // changed documents
}

// Coordinator drives batch fixes.
type Coordinator struct {
	Engine *lint.Engine
	Fixes  *fix.Registry
	Logger *slog.Logger
}

// New returns a coordinator using the global fix registry.
func New(engine *lint.Engine, logger *slog.Logger) *Coordinator {
	return &Coordinator{Engine: engine, Fixes: fix.Global(), Logger: logger}
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Coordinator) registry() *fix.Registry {
	if c.Fixes == nil {
		return fix.Global()
	}
	return c.Fixes
}

// marked is one annotated diagnostic.
type marked struct {
	diag       lint.Diagnostic
	provider   *fix.Provider
	annotation syntax.Annotation
}

// pending is the annotated state of one document.
type pending struct {
	doc     workspace.Document
	root    *syntax.Node
	markers []marked
}

// Fix runs req against sol and returns the updated solution. On error or
// cancellation sol is returned unchanged.
func (c *Coordinator) Fix(ctx context.Context, sol workspace.Solution, req Request) (workspace.Solution, Report, error) {
	if !req.Scope.Valid() {
		return sol, Report{}, fmt.Errorf("fixall: unknown scope %q", req.Scope)
	}
	docs, err := scope(sol, req)
	if err != nil {
		return sol, Report{}, err
	}
	kind := MarkerPrefix + uuid.NewString()
	log := c.logger().With(slog.String("rule", req.RuleID), slog.String("scope", string(req.Scope)))

	// Scan and annotate every document before fixing any, so that all
	// diagnostics come from the same snapshot.
	var work []pending
	var report Report
	for _, p := range sol.Projects {
		var comp *semantic.Compilation
		for _, d := range p.Documents {
			if !docs[d.ID] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return sol, Report{}, err
			}
			if comp == nil {
				comp = p.Compilation()
			}
			diags := c.scan(comp, d, req.RuleID)
			if len(diags) == 0 {
				continue
			}
			report.Diagnostics += len(diags)
			pd, err := c.annotate(d, diags, kind)
			if err != nil {
				log.Debug("batch abandoned", slog.Any("error", err))
				return sol, Report{}, err
			}
			work = append(work, pd)
		}
	}

	out := sol
	for _, pd := range work {
		if err := ctx.Err(); err != nil {
			return sol, Report{}, err
		}
		root, fixed, skipped := c.fixEach(pd, req.EquivalenceKey, log)
		report.Fixed += fixed
		report.Skipped += skipped
		root = syntax.StripAnnotations(root, kind)
		if fixed == 0 {
			continue
		}
		out = out.WithDocument(pd.doc.WithRoot(root))
		report.Documents = append(report.Documents, pd.doc.ID)
	}
	if err := ctx.Err(); err != nil {
		return sol, Report{}, err
	}
	log.Debug("batch fixed", slog.Int("fixed", report.Fixed), slog.Int("skipped", report.Skipped))
	return out, report, nil
}

func scope(sol workspace.Solution, req Request) (map[workspace.DocumentID]bool, error) {
	in := map[workspace.DocumentID]bool{}
	if req.Scope == core.ScopeSolution {
		for _, d := range sol.Documents() {
			in[d.ID] = true
		}
		return in, nil
	}
	_, project, ok := sol.Document(req.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDocument, req.Document)
	}
	if req.Scope == core.ScopeDocument {
		in[req.Document] = true
		return in, nil
	}
	for _, d := range project.Documents {
		in[d.ID] = true
	}
	return in, nil
}

// scan returns the diagnostics of rule id in doc.
func (c *Coordinator) scan(comp *semantic.Compilation, doc workspace.Document, id string) []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, d := range workspace.AnalyzeDocument(comp, doc, c.Engine).Diagnostics {
		if d.RuleID() == id {
			out = append(out, d)
		}
	}
	return out
}

// annotate marks the target node of every diagnostic.
func (c *Coordinator) annotate(doc workspace.Document, diags []lint.Diagnostic, kind string) (pending, error) {
	pd := pending{doc: doc, root: doc.Tree.Root}
	providers := c.registry().Providers(diags[0].RuleID())
	for i, d := range diags {
		p, target, ok := locate(providers, pd.root, d)
		if !ok {
			return pending{}, fmt.Errorf("%w: %s at %s:%s", ErrUnannotatable, d.RuleID(), d.Path, d.Start)
		}
		a := syntax.NewAnnotation(kind, strconv.Itoa(i))
		pd.root = target.Replace(target.Node().WithAnnotations(a))
		pd.markers = append(pd.markers, marked{diag: d, provider: p, annotation: a})
	}
	return pd, nil
}

func locate(providers []*fix.Provider, root *syntax.Node, d lint.Diagnostic) (*fix.Provider, syntax.Cursor, bool) {
	for _, p := range providers {
		if p.NoBatch {
			continue
		}
		if target, ok := fix.Locate(root, d.Span, p.Targets...); ok {
			return p, target, true
		}
	}
	return nil, syntax.Cursor{}, false
}

// fixEach applies one action per marker, finding each node by its marker.
func (c *Coordinator) fixEach(pd pending, key string, log *slog.Logger) (*syntax.Node, int, int) {
	root := pd.root
	fixed, skipped := 0, 0
	for _, m := range pd.markers {
		target, ok := first(syntax.Annotated(root, m.annotation))
		if !ok {
			log.Debug("marker not found", slog.String("path", pd.doc.Path), slog.String("marker", m.annotation.Data))
			skipped++
			continue
		}
		action, ok := choose(m.provider.FixesAt(m.diag, target), key)
		if !ok {
			log.Debug("no matching action", slog.String("path", pd.doc.Path), slog.String("key", key))
			skipped++
			continue
		}
		next, err := action.Run()
		if err != nil {
			log.Debug("action failed", slog.String("path", pd.doc.Path), slog.Any("error", err))
			skipped++
			continue
		}
		root = next
		fixed++
	}
	return root, fixed, skipped
}

func first(seq iter.Seq[syntax.Cursor]) (syntax.Cursor, bool) {
	for c := range seq {
		return c, true
	}
	return syntax.Cursor{}, false
}

func choose(actions []fix.Action, key string) (fix.Action, bool) {
	for _, a := range actions {
		if key == "" || a.EquivalenceKey == key {
			return a, true
		}
	}
	return fix.Action{}, false
}
