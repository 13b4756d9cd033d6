// Package testutil provides helpers shared by sharplint's package tests.
package testutil

import (
	"log/slog"
	"testing"
)

// LoggerOption configures a test logger.
type LoggerOption func(*slog.HandlerOptions)

// WithLevel sets the minimum level the logger records. The default is debug,
// so analyzer faults and skipped documents show up in verbose runs.
func WithLevel(level slog.Level) LoggerOption {
	return func(o *slog.HandlerOptions) { o.Level = level }
}

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB, opts ...LoggerOption) *slog.Logger {
	t.Helper()
	ho := &slog.HandlerOptions{Level: slog.LevelDebug}
	for _, opt := range opts {
		opt(ho)
	}
	return slog.New(slog.NewTextHandler(testWriter{t}, ho))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
