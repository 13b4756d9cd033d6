// Package state persists lint results and run history in SQLite so that
// an unchanged project is not analyzed twice.
package state

import (
	"time"
)

// RunStatus is the outcome of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded invocation of a command.
type Run struct {
	ID          string
	Command     string
	Fingerprint string
	Status      RunStatus
	// Cached is set when the results were read from the cache.
	Cached      bool
	Files       int
	Issues      int
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// DocumentResult is the cached analysis of one document.
type DocumentResult struct {
	Path        string
	ContentHash string
	Diagnostics []Diagnostic
}

// Diagnostic is the stored form of a lint diagnostic.
type Diagnostic struct {
	RuleID     string            `json:"rule_id"`
	Message    string            `json:"message"`
	Severity   string            `json:"severity"`
	SpanStart  int               `json:"span_start"`
	SpanEnd    int               `json:"span_end"`
	Start      Position          `json:"start"`
	End        Position          `json:"end"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Position is a stored source position.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}
