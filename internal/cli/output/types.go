package output

// LintOutput is the JSON document of the lint command.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}

// LintSummary counts the reported diagnostics.
type LintSummary struct {
	FilesAnalyzed   int `json:"files_analyzed"`
	FilesWithIssues int `json:"files_with_issues"`
	TotalIssues     int `json:"total_issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
	Hidden          int `json:"hidden"`
	// Cached is set when the results were read from the result cache.
	Cached bool `json:"cached,omitempty"`
}

// LintFileResult holds the diagnostics of one file.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintDiagnostic is one reported diagnostic. Lines and columns are 1-based.
type LintDiagnostic struct {
	RuleID    string            `json:"rule_id"`
	Severity  string            `json:"severity"`
	Message   string            `json:"message"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"end_line"`
	EndColumn int               `json:"end_column"`
	HelpURL   string            `json:"help_url,omitempty"`
	Fixable   bool              `json:"fixable"`
	Props     map[string]string `json:"properties,omitempty"`
}

// FixOutput is the JSON document of the fix command.
type FixOutput struct {
	DryRun bool            `json:"dry_run"`
	Rules  []FixRuleResult `json:"rules"`
	Files  []FixFileResult `json:"files"`
}

// FixRuleResult summarizes the batch run of one rule.
type FixRuleResult struct {
	RuleID      string `json:"rule_id"`
	Diagnostics int    `json:"diagnostics"`
	Fixed       int    `json:"fixed"`
	Skipped     int    `json:"skipped"`
}

// FixFileResult names a changed file and, when requested, its diff.
type FixFileResult struct {
	Path string `json:"path"`
	Diff string `json:"diff,omitempty"`
}

// CacheRun is one recorded lint run.
type CacheRun struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	Status     string `json:"status"`
	Cached     bool   `json:"cached"`
	Files      int    `json:"files"`
	Issues     int    `json:"issues"`
	StartedAt  string `json:"started_at"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}
