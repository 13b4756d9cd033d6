package workspace

import (
	"context"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/semantic"
)

// Result holds the diagnostics of one document.
type Result struct {
	Document    Document
	Diagnostics []lint.Diagnostic
}

// Analyze runs engine over every document of the solution. Documents are
// analyzed concurrently; each project is bound once. The results are in
// document path order and each diagnostic list is sorted by position.
func Analyze(ctx context.Context, sol Solution, engine *lint.Engine) ([]Result, error) {
	var jobs []func() Result
	for _, p := range sol.Projects {
		comp := p.Compilation()
		for _, d := range p.Documents {
			jobs = append(jobs, func() Result {
				return AnalyzeDocument(comp, d, engine)
			})
		}
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = job()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		return strings.Compare(a.Document.Path, b.Document.Path)
	})
	return results, nil
}

// AnalyzeDocument runs engine over one document bound in comp.
func AnalyzeDocument(comp *semantic.Compilation, doc Document, engine *lint.Engine) Result {
	diags := engine.Analyze(doc.Tree, comp.Model(doc.Tree), doc.Flavor)
	return Result{Document: doc, Diagnostics: diags}
}

// Flatten concatenates the diagnostics of results.
func Flatten(results []Result) []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, r := range results {
		out = append(out, r.Diagnostics...)
	}
	return out
}
