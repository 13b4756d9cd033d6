package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// CreateRun records the start of a run.
func (s *SQLiteStore) CreateRun(ctx context.Context, command, fingerprint string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &Run{
		ID:          generateID(),
		Command:     command,
		Fingerprint: fingerprint,
		Status:      RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("command", command))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, fingerprint, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.Fingerprint, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// CompleteRun stores the outcome of a run. A non-empty errMsg marks it
// failed.
func (s *SQLiteStore) CompleteRun(ctx context.Context, run *Run, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	run.CompletedAt = &now
	run.Status = RunStatusCompleted
	run.Error = errMsg
	if errMsg != "" {
		run.Status = RunStatusFailed
	}
	var errValue sql.NullString
	if errMsg != "" {
		errValue = sql.NullString{String: errMsg, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, cached = ?, files = ?, issues = ?, completed_at = ?, error = ? WHERE id = ?`,
		string(run.Status), run.Cached, run.Files, run.Issues, now, errValue, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first, up to limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const runColumns = `id, command, fingerprint, status, cached, files, issues, started_at, completed_at, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run         Run
		status      string
		completedAt sql.NullTime
		errMsg      sql.NullString
	)
	err := row.Scan(&run.ID, &run.Command, &run.Fingerprint, &status, &run.Cached,
		&run.Files, &run.Issues, &run.StartedAt, &completedAt, &errMsg)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	run.Error = errMsg.String
	return &run, nil
}
