package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Lookup returns the results stored under fingerprint, in path order.
// The second result is false when nothing is stored.
func (s *SQLiteStore) Lookup(ctx context.Context, fingerprint string) ([]DocumentResult, bool, error) {
	if s.db == nil {
		return nil, false, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, content_hash, diagnostics FROM results WHERE fingerprint = ? ORDER BY path`,
		fingerprint)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []DocumentResult
	for rows.Next() {
		var (
			r   DocumentResult
			raw string
		)
		if err := rows.Scan(&r.Path, &r.ContentHash, &raw); err != nil {
			return nil, false, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &r.Diagnostics); err != nil {
			return nil, false, fmt.Errorf("failed to decode diagnostics of %s: %w", r.Path, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	s.logger.Debug("cache lookup", slog.String("fingerprint", fingerprint), slog.Bool("hit", len(results) > 0))
	return results, len(results) > 0, nil
}

// Save replaces the stored results with results under fingerprint. Only
// one fingerprint is kept: an older one can never match again once the
// sources or the configuration changed.
func (s *SQLiteStore) Save(ctx context.Context, fingerprint string, results []DocumentResult) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("failed to clear results: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (fingerprint, path, content_hash, diagnostics, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, r := range results {
		diags := r.Diagnostics
		if diags == nil {
			diags = []Diagnostic{}
		}
		raw, err := json.Marshal(diags)
		if err != nil {
			return fmt.Errorf("failed to encode diagnostics of %s: %w", r.Path, err)
		}
		if _, err := stmt.ExecContext(ctx, fingerprint, r.Path, r.ContentHash, string(raw), now); err != nil {
			return fmt.Errorf("failed to store result of %s: %w", r.Path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit results: %w", err)
	}
	s.logger.Debug("cache saved", slog.String("fingerprint", fingerprint), slog.Int("documents", len(results)))
	return nil
}

// Clear removes every stored result and run.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	for _, table := range []string{"results", "runs"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
