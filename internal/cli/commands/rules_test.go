package commands

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

func TestRulesCommand_List(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "--format", "text")
	require.NoError(t, err)
	testutil.AssertNoANSI(t, out)

	assert.Contains(t, out, fmt.Sprintf("Lint Rules (%d)", len(lint.Descriptors())))
	assert.Contains(t, out, "CC0012")
	assert.Contains(t, out, "AD0001")
	assert.Contains(t, out, "Your throw does nothing")
}

func TestRulesCommand_Category(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "--category", "style", "--format", "json")
	require.NoError(t, err)

	var rules []core.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.Equal(t, "Style", r.Category, r.ID)
	}

	// A known category without rules lists nothing.
	out, _, err = execute(t, NewRulesCommand(), "--category", "security", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, _, err = execute(t, NewRulesCommand(), "--category", "bogus")
	assert.ErrorContains(t, err, `unknown category "bogus"`)
}

func TestRulesCommand_Long(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "--category", "usage", "--long", "--format", "markdown")
	require.NoError(t, err)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "## CC0012: Your throw does nothing")
	assert.Contains(t, out, "- **Analyzer:** usage.rethrow")
	assert.NotContains(t, out, "## CC0038")
}

func TestRulesCommand_Show(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), "cc0012", "--format", "json")
	require.NoError(t, err)

	var rule core.RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rule))
	assert.Equal(t, "CC0012", rule.ID)
	assert.Equal(t, "Usage", rule.Category)
	assert.Equal(t, core.SeverityWarning, rule.DefaultSeverity)
	assert.True(t, rule.EnabledByDefault)
	assert.True(t, rule.Fixable)
	assert.Equal(t, "usage.rethrow", rule.Analyzer)

	out, _, err = execute(t, NewRulesCommand(), "CC0012", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## CC0012: Your throw does nothing")
	assert.Contains(t, out, "- **Fixable:** yes")

	_, _, err = execute(t, NewRulesCommand(), "CC9999")
	assert.ErrorContains(t, err, `rule "CC9999" not found`)
}

func TestRuleInfos(t *testing.T) {
	infos := ruleInfos()
	require.Len(t, infos, len(lint.Descriptors()))
	byID := make(map[string]core.RuleInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}

	assert.False(t, byID["CC0010"].Fixable, "regex errors have no fix")
	assert.True(t, byID["CC0025"].Fixable)
	assert.Equal(t, core.SeverityHidden, byID["CC0038"].DefaultSeverity)
	assert.Equal(t, "info (off)", ruleSeverity(core.RuleInfo{DefaultSeverity: core.SeverityInfo}))
}
