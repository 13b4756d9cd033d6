package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/internal/cli"
	"github.com/leapstack-labs/sharplint/pkg/lint"
)

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeCLIDocs(cli.NewRootCmd(), dir))

	index := read(t, filepath.Join(dir, "index.md"))
	assert.True(t, strings.HasPrefix(index, "---\ntitle: \"CLI Reference\"\n"))
	assert.Contains(t, index, "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->")
	assert.Contains(t, index, "[`lint`](/cli/lint)")
	assert.Contains(t, index, "`--project-dir`")
	assert.NotContains(t, index, "[`help`]")

	for _, name := range []string{"lint", "fix", "rules", "init", "ast", "cache", "lsp", "version", "completion"} {
		assert.FileExists(t, filepath.Join(dir, name+".md"))
	}

	lintPage := read(t, filepath.Join(dir, "lint.md"))
	assert.Contains(t, lintPage, "# lint")
	assert.Contains(t, lintPage, "sharplint lint [path...]")
	assert.Contains(t, lintPage, "`--severity`")
	assert.Contains(t, lintPage, "## Global Options")

	cachePage := read(t, filepath.Join(dir, "cache.md"))
	assert.Contains(t, cachePage, "sharplint cache <subcommand> [options]")
	assert.Contains(t, cachePage, "### runs")
	assert.Contains(t, cachePage, "### clear")
}

func TestGenerateRuleDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRuleDocs(dir))

	descs := lint.Descriptors()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(descs)+1)

	for _, d := range descs {
		// Help links point at the hosted build of these pages.
		assert.True(t, strings.HasSuffix(d.HelpLink(), "/"+strings.TrimSuffix(pageName(d.ID()), ".md")+".html"))
		assert.FileExists(t, filepath.Join(dir, pageName(d.ID())))
	}

	index := read(t, filepath.Join(dir, "index.md"))
	assert.Contains(t, index, "## Usage")
	assert.Contains(t, index, "[CC0012](CC0012.md)")

	page := read(t, filepath.Join(dir, "CC0012.md"))
	assert.Contains(t, page, "# CC0012: Your throw does nothing")
	assert.Contains(t, page, "Throwing the same exception that was caught will lose the original stack trace.")
	assert.Contains(t, page, "sharplint fix --rule CC0012")
	assert.Contains(t, page, "`usage.rethrow`")

	noFix := read(t, filepath.Join(dir, "CC0010.md"))
	assert.NotContains(t, noFix, "## How to Fix")
}

func TestCleanExample(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  sharplint lint\n  sharplint lint src", "sharplint lint\nsharplint lint src"},
		{"sharplint lint", "sharplint lint"},
		{"    # comment\n      sharplint fix\n", "# comment\n  sharplint fix"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanExample(tt.in))
	}
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Title")
	w.Table([]string{"A", "B"}, [][]string{{"1", "2"}})
	w.Table([]string{"Empty"}, nil)
	w.BulletList([]string{Bold("x"), InlineCode("y")})

	got := string(w.Bytes())
	assert.Contains(t, got, "## Title\n\n")
	assert.Contains(t, got, "| 1 | 2 |")
	assert.NotContains(t, got, "Empty")
	assert.Contains(t, got, "- **x**\n- `y`\n")
	assert.Equal(t, "a b c", cleanDescription(" a\n  b\tc "))
}
