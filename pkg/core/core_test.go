package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sharplint/pkg/core"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want core.Severity
		ok   bool
	}{
		{"error", core.SeverityError, true},
		{"Warning", core.SeverityWarning, true},
		{" info ", core.SeverityInfo, true},
		{"hidden", core.SeverityHidden, true},
		{"hint", core.SeverityHidden, true},
		{"fatal", core.SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := core.ParseSeverity(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	assert.Less(t, core.SeverityHidden, core.SeverityInfo)
	assert.Less(t, core.SeverityInfo, core.SeverityWarning)
	assert.Less(t, core.SeverityWarning, core.SeverityError)
}

func TestSeverityText(t *testing.T) {
	var v struct {
		Level core.Severity `yaml:"level"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("level: error\n"), &v))
	assert.Equal(t, core.SeverityError, v.Level)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "level: error\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("level: loud\n"), &v))
}

func TestScopeValid(t *testing.T) {
	assert.True(t, core.ScopeProject.Valid())
	assert.False(t, core.Scope("workspace").Valid())
}
