package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(context.Background(), MemoryPath, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".sharplint", "cache.db")

	store, err := Open(ctx, path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	version, err := store.MigrationVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	require.NoError(t, store.Save(ctx, "fp", []DocumentResult{{Path: "a.cs", ContentHash: "h"}}))
	require.NoError(t, store.Close())

	// Reopening keeps the data and does not migrate twice.
	store, err = Open(ctx, path, nil)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	got, ok, err := store.Lookup(ctx, "fp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got, 1)
}

func TestSQLiteStore_Results(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, ok, err := store.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	results := []DocumentResult{
		{Path: "b.cs", ContentHash: "hb"},
		{Path: "a.cs", ContentHash: "ha", Diagnostics: []Diagnostic{{
			RuleID:     "CC0090",
			Message:    "XML documentation of 'Add' has missing parameters: b",
			Severity:   "warning",
			SpanStart:  10,
			SpanEnd:    13,
			Start:      Position{Line: 2, Column: 5, Offset: 10},
			End:        Position{Line: 2, Column: 8, Offset: 13},
			Properties: map[string]string{"kind": "missingDoc"},
		}}},
	}
	require.NoError(t, store.Save(ctx, "one", results))

	got, ok, err := store.Lookup(ctx, "one")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "a.cs", got[0].Path, "results come back in path order")
	assert.Equal(t, results[1], got[0])
	assert.Equal(t, "b.cs", got[1].Path)
	assert.Empty(t, got[1].Diagnostics)

	// Saving under a new fingerprint drops the old one.
	require.NoError(t, store.Save(ctx, "two", results[:1]))
	_, ok, err = store.Lookup(ctx, "one")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Lookup(ctx, "two")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	tests := []struct {
		name       string
		errMsg     string
		wantStatus RunStatus
	}{
		{name: "completed", wantStatus: RunStatusCompleted},
		{name: "failed", errMsg: "analyze: boom", wantStatus: RunStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := setupTestStore(t)

			run, err := store.CreateRun(ctx, "lint", "fp")
			require.NoError(t, err)
			assert.NotEmpty(t, run.ID)
			assert.Equal(t, RunStatusRunning, run.Status)
			assert.Zero(t, run.Duration())

			run.Files, run.Issues, run.Cached = 3, 2, true
			require.NoError(t, store.CompleteRun(ctx, run, tt.errMsg))

			got, err := store.GetRun(ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, "lint", got.Command)
			assert.Equal(t, "fp", got.Fingerprint)
			assert.True(t, got.Cached)
			assert.Equal(t, 3, got.Files)
			assert.Equal(t, 2, got.Issues)
			assert.Equal(t, tt.errMsg, got.Error)
			require.NotNil(t, got.CompletedAt)
		})
	}
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	var ids []string
	for range 3 {
		run, err := store.CreateRun(ctx, "lint", "fp")
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID, "newest first")
	assert.Equal(t, ids[1], runs[1].ID)

	_, err = store.GetRun(ctx, "nope")
	assert.ErrorContains(t, err, "run not found")
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	store := &SQLiteStore{}

	assert.NoError(t, store.Close())
	_, _, err := store.Lookup(ctx, "fp")
	assert.ErrorContains(t, err, "database not opened")
	assert.ErrorContains(t, store.Save(ctx, "fp", nil), "database not opened")
	_, err = store.CreateRun(ctx, "lint", "fp")
	assert.ErrorContains(t, err, "database not opened")
}
