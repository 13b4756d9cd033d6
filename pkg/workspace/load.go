package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadOptions controls which files Load picks up.
type LoadOptions struct {
	// Project names the single project that receives every document.
	// Defaults to the base name of the first path.
	Project string
	// Include and Exclude are slash separated glob patterns matched
	// against paths relative to the walked directory. "**" matches any
	// number of segments. An empty Include accepts every source file.
	Include []string
	Exclude []string
	Logger  *slog.Logger
}

// Load walks paths, which may be files or directories, parses every
// source file and returns a solution with one project. Files that fail
// to parse are reported together in the returned error; the documents
// that parsed are still returned.
func Load(ctx context.Context, paths []string, opts LoadOptions) (Solution, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	files, err := collect(paths, opts)
	if err != nil {
		return Solution{}, err
	}
	logger.Debug("loading documents", slog.Int("files", len(files)))

	docs := make([]Document, len(files))
	var (
		mu   sync.Mutex
		errs []error
	)
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := ReadDocument(file)
			if err != nil {
				logger.Warn("skipping document", slog.String("path", file), slog.Any("error", err))
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Solution{}, err
	}
	docs = slices.DeleteFunc(docs, func(d Document) bool { return d.Tree == nil })

	name := opts.Project
	if name == "" && len(paths) > 0 {
		name = filepath.Base(filepath.Clean(paths[0]))
	}
	return NewSolution(NewProject(name, docs...)), errors.Join(errs...)
}

// ReadDocument reads and parses one file. A UTF-8 or UTF-16 byte order
// mark selects the decoding; text without one is taken as UTF-8.
func ReadDocument(file string) (Document, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return Document{}, err
	}
	text, err := decode(raw)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", file, err)
	}
	doc, err := NewDocument(file, text)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", file, err)
	}
	return doc, nil
}

func decode(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// collect expands paths into a sorted, de-duplicated file list.
func collect(paths []string, opts LoadOptions) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(p, file)
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if rel != "." && MatchAny(opts.Exclude, rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if FlavorForPath(file) == "" || MatchAny(opts.Exclude, rel) {
				return nil
			}
			if len(opts.Include) > 0 && !MatchAny(opts.Include, rel) {
				return nil
			}
			add(file)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(files)
	return files, nil
}

// MatchAny reports whether name matches one of the glob patterns.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}

// Match matches a slash separated path against pattern. Segments are
// matched with path.Match; a "**" segment matches zero or more segments.
// A pattern without a slash matches the base name at any depth.
func Match(pattern, name string) bool {
	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(name))
		return ok
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pat, name []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			for i := len(name); i >= 0; i-- {
				if matchSegments(pat[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pat[0], name[0]); !ok {
			return false
		}
		pat, name = pat[1:], name[1:]
	}
	return len(name) == 0
}
