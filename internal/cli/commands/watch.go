package commands

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// watchDebounce groups the events of one save into a single run.
const watchDebounce = 200 * time.Millisecond

// watchSources runs fn once and again after every change to a source file
// under paths, until ctx is done.
func watchSources(ctx context.Context, cc *CommandContext, paths []string, fn func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for _, dir := range watchDirs(paths, cc.Cfg.Exclude) {
		if err := w.Add(dir); err != nil {
			return err
		}
		cc.Logger.Debug("watching", slog.String("dir", dir))
	}

	if err := fn(ctx); err != nil {
		return err
	}
	cc.Renderer.Println("Watching for changes (Ctrl+C to stop)")

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if workspace.FlavorForPath(ev.Name) == "" {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				cc.Logger.Debug("source changed", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
				timer.Reset(watchDebounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watch error", slog.Any("error", err))
		case <-timer.C:
			if err := fn(ctx); err != nil {
				return err
			}
		}
	}
}

// watchDirs lists the directories to watch: every directory below the
// directory arguments that is not excluded, and the parent of each file
// argument.
func watchDirs(paths []string, exclude []string) []string {
	seen := map[string]bool{}
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(p))
			continue
		}
		_ = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			rel, _ := filepath.Rel(p, file)
			if rel != "." && workspace.MatchAny(exclude, filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			add(file)
			return nil
		})
	}
	return dirs
}
