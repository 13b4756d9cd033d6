package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli/testutil"
)

func TestASTCommand(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	file := filepath.Join(dir, "src", "Clean.cs")

	out, _, err := execute(t, NewASTCommand(), file)
	require.NoError(t, err)
	assert.Contains(t, out, "(CompilationUnit")
	assert.Contains(t, out, "ClassDeclaration")

	withTrivia, _, err := execute(t, NewASTCommand(), file, "--trivia")
	require.NoError(t, err)
	assert.Greater(t, len(withTrivia), len(out))

	_, _, err = execute(t, NewASTCommand())
	assert.Error(t, err, "a file argument is required")

	_, _, err = execute(t, NewASTCommand(), filepath.Join(dir, "missing.cs"))
	assert.Error(t, err)
}
