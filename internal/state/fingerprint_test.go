package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	_ "github.com/leapstack-labs/sharplint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(""))
	assert.NotEqual(t, ContentHash("class A { }"), ContentHash("class B { }"))
}

func TestFingerprint(t *testing.T) {
	rules := []string{"CC0012", "CC0025"}
	settings := core.LintConfig{Disabled: []string{"CC0037"}}
	hashes := map[string]string{"a.cs": "1", "b.cs": "2"}

	base, err := Fingerprint(rules, settings, hashes)
	require.NoError(t, err)
	again, err := Fingerprint(rules, settings, map[string]string{"b.cs": "2", "a.cs": "1"})
	require.NoError(t, err)
	assert.Equal(t, base, again, "map order does not matter")

	variants := []struct {
		name     string
		rules    []string
		settings any
		hashes   map[string]string
	}{
		{"rule set", []string{"CC0012"}, settings, hashes},
		{"settings", rules, core.LintConfig{}, hashes},
		{"content", rules, settings, map[string]string{"a.cs": "1", "b.cs": "3"}},
		{"added file", rules, settings, map[string]string{"a.cs": "1", "b.cs": "2", "c.cs": "3"}},
	}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			got, err := Fingerprint(v.rules, v.settings, v.hashes)
			require.NoError(t, err)
			assert.NotEqual(t, base, got)
		})
	}

	_, err = Fingerprint(rules, func() {}, hashes)
	assert.Error(t, err)
}

func TestDiagnosticsRoundTrip(t *testing.T) {
	desc, ok := lint.GetDescriptor("CC0012")
	require.True(t, ok)
	diags := []lint.Diagnostic{{
		Descriptor: desc,
		Path:       "a.cs",
		Span:       token.Span{Start: 40, End: 49},
		Start:      token.Position{Line: 3, Column: 9, Offset: 40},
		End:        token.Position{Line: 3, Column: 18, Offset: 49},
		Message:    desc.FormatMessage(),
		Severity:   core.SeverityError,
	}}

	stored := FromDiagnostics(diags)
	require.Len(t, stored, 1)
	assert.Equal(t, "CC0012", stored[0].RuleID)
	assert.Equal(t, "error", stored[0].Severity)

	back, err := ToDiagnostics("a.cs", stored)
	require.NoError(t, err)
	assert.Equal(t, diags, back)

	_, err = ToDiagnostics("a.cs", []Diagnostic{{RuleID: "XX9999", Severity: "warning"}})
	assert.ErrorContains(t, err, "unknown rule")
	_, err = ToDiagnostics("a.cs", []Diagnostic{{RuleID: "CC0012", Severity: "loud"}})
	assert.ErrorContains(t, err, "invalid severity")
}
