// Package core defines the shared language of the sharplint system.
//
// This package contains:
//   - Severity levels and their text form
//   - RuleInfo, the catalog entry shown by tooling
//   - LintConfig, the lint section of the configuration file
//   - Scope, the batch fix scopes
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
