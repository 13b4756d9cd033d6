package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/state"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// cacheSettings are the inputs besides the sources that change what lint
// reports.
type cacheSettings struct {
	Lint    core.LintConfig `json:"lint"`
	Disable []string        `json:"disable,omitempty"`
	Rules   []string        `json:"rules,omitempty"`
}

func openCache(ctx context.Context, cc *CommandContext) (*state.SQLiteStore, error) {
	store, err := state.Open(ctx, cc.Cfg.CachePath(), cc.Logger)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return store, nil
}

// analyzeCached returns the stored results when the fingerprint of sol is
// known and analyzes and stores them otherwise. Every call is recorded
// as a run. A broken cache only costs a fresh analysis.
func analyzeCached(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, sol workspace.Solution, engine *lint.Engine, settings cacheSettings) ([]workspace.Result, bool, error) {
	hashes := make(map[string]string, sol.DocumentCount())
	for _, doc := range sol.Documents() {
		hashes[doc.Path] = state.ContentHash(doc.Text())
	}
	var ids []string
	for _, d := range lint.Descriptors() {
		ids = append(ids, d.ID())
	}
	fp, err := state.Fingerprint(ids, settings, hashes)
	if err != nil {
		return nil, false, fmt.Errorf("cache fingerprint: %w", err)
	}

	run, err := store.CreateRun(ctx, "lint", fp)
	if err != nil {
		cc.Logger.Warn("cache unavailable", slog.Any("error", err))
		results, err := workspace.Analyze(ctx, sol, engine)
		return results, false, err
	}

	results, cached := cachedResults(ctx, cc, store, sol, fp, hashes)
	if !cached {
		results, err = workspace.Analyze(ctx, sol, engine)
		if err != nil {
			_ = store.CompleteRun(context.WithoutCancel(ctx), run, err.Error())
			return nil, false, err
		}
		if err := store.Save(ctx, fp, storedResults(results, hashes)); err != nil {
			cc.Logger.Warn("could not save lint results", slog.Any("error", err))
		}
	}

	run.Cached = cached
	run.Files = len(results)
	for _, r := range results {
		run.Issues += len(r.Diagnostics)
	}
	if err := store.CompleteRun(ctx, run, ""); err != nil {
		cc.Logger.Warn("could not record run", slog.Any("error", err))
	}
	return results, cached, nil
}

// cachedResults rebuilds the results stored under fp. It reports a miss
// unless every document of sol is stored with its current content.
func cachedResults(ctx context.Context, cc *CommandContext, store *state.SQLiteStore, sol workspace.Solution, fp string, hashes map[string]string) ([]workspace.Result, bool) {
	stored, ok, err := store.Lookup(ctx, fp)
	if err != nil {
		cc.Logger.Warn("cache lookup failed", slog.Any("error", err))
		return nil, false
	}
	if !ok || len(stored) != len(hashes) {
		return nil, false
	}
	results := make([]workspace.Result, 0, len(stored))
	for _, s := range stored {
		doc, ok := sol.DocumentByPath(s.Path)
		if !ok || hashes[s.Path] != s.ContentHash {
			return nil, false
		}
		diags, err := state.ToDiagnostics(s.Path, s.Diagnostics)
		if err != nil {
			cc.Logger.Warn("discarding cached results", slog.Any("error", err))
			return nil, false
		}
		results = append(results, workspace.Result{Document: doc, Diagnostics: diags})
	}
	cc.Logger.Debug("using cached lint results", slog.Int("documents", len(results)))
	return results, true
}

func storedResults(results []workspace.Result, hashes map[string]string) []state.DocumentResult {
	out := make([]state.DocumentResult, 0, len(results))
	for _, r := range results {
		out = append(out, state.DocumentResult{
			Path:        r.Document.Path,
			ContentHash: hashes[r.Document.Path],
			Diagnostics: state.FromDiagnostics(r.Diagnostics),
		})
	}
	return out
}

// CacheOptions holds options for the cache commands.
type CacheOptions struct {
	Format string
	Limit  int
}

// NewCacheCommand creates the cache command.
func NewCacheCommand() *cobra.Command {
	opts := &CacheOptions{}
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lint result cache",
		Long: `The result cache stores the diagnostics of the last lint run with
--cache (or cache.enabled in sharplint.yaml). When neither the sources nor
the settings changed, lint reads the results instead of analyzing again.`,
	}

	runs := &cobra.Command{
		Use:   "runs",
		Short: "List recent lint runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRuns(cmd, opts)
		},
	}
	runs.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	runs.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of runs to show")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cache database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}
			path := cc.Cfg.CachePath()
			for _, p := range []string{path, path + "-wal", path + "-shm"} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("remove %s: %w", p, err)
				}
			}
			cc.Renderer.Success("Cleared " + path)
			return nil
		},
	}

	cmd.AddCommand(runs, clearCmd)
	return cmd
}

func listRuns(cmd *cobra.Command, opts *CacheOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	var runs []*state.Run
	if _, err := os.Stat(cc.Cfg.CachePath()); err == nil {
		store, err := openCache(cmd.Context(), cc)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if runs, err = store.ListRuns(cmd.Context(), opts.Limit); err != nil {
			return err
		}
	}

	out := make([]output.CacheRun, 0, len(runs))
	for _, run := range runs {
		out = append(out, output.CacheRun{
			ID:         run.ID,
			Command:    run.Command,
			Status:     string(run.Status),
			Cached:     run.Cached,
			Files:      run.Files,
			Issues:     run.Issues,
			StartedAt:  run.StartedAt.Local().Format(time.DateTime),
			DurationMS: run.Duration().Milliseconds(),
			Error:      run.Error,
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}
	if len(out) == 0 {
		r.Println("No runs recorded")
		return nil
	}
	rows := make([][]string, 0, len(out))
	for _, run := range out {
		rows = append(rows, []string{
			run.ID[:8], run.StartedAt, run.Status, yesNo(run.Cached),
			fmt.Sprint(run.Files), fmt.Sprint(run.Issues), fmt.Sprintf("%dms", run.DurationMS),
		})
	}
	r.Table([]string{"Run", "Started", "Status", "Cached", "Files", "Issues", "Duration"}, rows)
	return nil
}
