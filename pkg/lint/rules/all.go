package rules

// Importing the category packages runs their init functions, which add
// every analyzer and code fix to the global registries.
import (
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules/design"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules/performance"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules/style"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules/usage"
)
