package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/output"
	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
	intconfig "github.com/leapstack-labs/sharplint/internal/config"
)

// useCacheIn points the default cache path into dir for the commands run
// without the root command.
func useCacheIn(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, intconfig.DefaultCachePath)
	t.Setenv("SHARPLINT_CACHE__PATH", path)
	return path
}

// lintCached runs lint with the cache through a loaded configuration.
func lintCached(t *testing.T, args ...string) output.LintOutput {
	t.Helper()
	out, _, _ := executeLoaded(t, NewLintCommand(), append([]string{"--cache", "--format", "json"}, args...)...)
	var got output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestLintCommand_Cache(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	cachePath := useCacheIn(t, dir)

	first := lintCached(t, dir)
	assert.False(t, first.Summary.Cached)
	assert.Equal(t, 2, first.Summary.TotalIssues)
	assert.FileExists(t, cachePath)

	second := lintCached(t, dir)
	assert.True(t, second.Summary.Cached)
	second.Summary.Cached = false
	assert.Equal(t, first, second, "cached results render like fresh ones")

	// Other settings miss the cache.
	only := lintCached(t, dir, "--rule", "CC0012")
	assert.False(t, only.Summary.Cached)
	assert.Equal(t, 1, only.Summary.TotalIssues)

	// So does an edit.
	lintCached(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "Clean.cs"), []byte("class Clean { ~Clean() { } }\n"), 0o600))
	edited := lintCached(t, dir)
	assert.False(t, edited.Summary.Cached)
	assert.Equal(t, 3, edited.Summary.TotalIssues)

	out, _, err := executeLoaded(t, NewCacheCommand(), "runs", "--format", "json")
	require.NoError(t, err)
	var runs []output.CacheRun
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 5)
	for i, run := range runs {
		assert.Equal(t, i == 3, run.Cached, "run %d", i)
		assert.Equal(t, "completed", run.Status)
	}
	assert.GreaterOrEqual(t, runs[0].Issues, 3, "newest first")

	out, _, err = executeLoaded(t, NewCacheCommand(), "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared "+cachePath)
	assert.NoFileExists(t, cachePath)

	out, _, err = executeLoaded(t, NewCacheCommand(), "runs", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}
