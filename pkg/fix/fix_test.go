package fix_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

const source = `class A
{
    void M()
    {
        // first
        Run(); // trailing
        Stop();
    }
}
`

var callRule = lint.MustDescriptor("TS0201", "Call", "Call", lint.CategoryUsage, core.SeverityWarning, true)

// renameProvider renames the invoked identifier to each of names.
func renameProvider(names ...string) *fix.Provider {
	return &fix.Provider{
		Name:    "test.rename",
		RuleIDs: []string{callRule.ID()},
		Targets: []syntax.Kind{syntax.KindInvocationExpression},
		Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
			callee := target.Field(syntax.Expression)
			if callee.Kind() != syntax.KindIdentifierName {
				return nil
			}
			var out []fix.Action
			for _, name := range names {
				out = append(out, fix.Action{
					Title:          "Rename to " + name,
					EquivalenceKey: "rename:" + name,
					Transform: func(target syntax.Cursor) *syntax.Node {
						return fix.Replace(target.Field(syntax.Expression), syntax.NewIdentifierName(name))
					},
				})
			}
			return out
		},
	}
}

func newDoc(t *testing.T, src string) workspace.Document {
	t.Helper()
	doc, err := workspace.NewDocument("a.cs", src)
	require.NoError(t, err)
	return doc
}

func diagAt(doc workspace.Document, text string) lint.Diagnostic {
	start := strings.Index(doc.Text(), text)
	return lint.Diagnostic{
		Descriptor: callRule,
		Path:       doc.Path,
		Span:       token.Span{Start: start, End: start + len(text)},
	}
}

func TestLocate(t *testing.T) {
	doc := newDoc(t, source)
	root := doc.Tree.Root
	start := strings.Index(source, "Run")

	call, ok := fix.Locate(root, token.Span{Start: start, End: start + 5}, syntax.KindInvocationExpression)
	require.True(t, ok)
	assert.Equal(t, "Run()", call.Node().Text())

	stmt, ok := fix.Locate(root, token.Span{Start: start}, syntax.KindExpressionStatement)
	require.True(t, ok)
	assert.Equal(t, "Run();", stmt.Node().Text())

	_, ok = fix.Locate(root, token.Span{Start: start}, syntax.KindCatchClause)
	assert.False(t, ok)
	_, ok = fix.Locate(root, token.Span{Start: len(source) + 10}, syntax.KindBlock)
	assert.False(t, ok)
}

func TestActionsPerCandidate(t *testing.T) {
	doc := newDoc(t, source)
	d := diagAt(doc, "Run()")
	actions := renameProvider("Go", "Walk").Fixes(d, doc.Tree.Root)
	require.Len(t, actions, 2)
	assert.Equal(t, "Rename to Go", actions[0].Title)

	for i, want := range []string{"Go(); // trailing", "Walk(); // trailing"} {
		out, err := fix.Apply(context.Background(), doc, actions[i])
		require.NoError(t, err)
		assert.Contains(t, out.Text(), want)
		assert.Equal(t, doc.ID, out.ID)
	}
	assert.Contains(t, doc.Text(), "Run();", "original document is untouched")
}

func TestNoTargetYieldsNoActions(t *testing.T) {
	doc := newDoc(t, source)
	d := diagAt(doc, "class")
	assert.Empty(t, renameProvider("Go").Fixes(d, doc.Tree.Root))

	d.Span = token.Span{Start: -1}
	assert.Empty(t, renameProvider("Go").Fixes(d, doc.Tree.Root))
}

func TestApplyCancelled(t *testing.T) {
	doc := newDoc(t, source)
	actions := renameProvider("Go").Fixes(diagAt(doc, "Run()"), doc.Tree.Root)
	require.Len(t, actions, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := fix.Apply(ctx, doc, actions[0])
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, doc.Text(), out.Text())
}

func TestApplyStale(t *testing.T) {
	doc := newDoc(t, source)
	other := newDoc(t, source)
	actions := renameProvider("Go").Fixes(diagAt(doc, "Run()"), doc.Tree.Root)
	require.Len(t, actions, 1)

	_, err := fix.Apply(context.Background(), other, actions[0])
	assert.ErrorIs(t, err, fix.ErrStale)
}

func TestApplyNotApplicable(t *testing.T) {
	doc := newDoc(t, source)
	p := renameProvider("Go")
	p.Actions = func(lint.Diagnostic, syntax.Cursor) []fix.Action {
		return []fix.Action{{Title: "noop", Transform: func(syntax.Cursor) *syntax.Node { return nil }}}
	}
	actions := p.Fixes(diagAt(doc, "Run()"), doc.Tree.Root)
	require.Len(t, actions, 1)
	out, err := fix.Apply(context.Background(), doc, actions[0])
	assert.ErrorIs(t, err, fix.ErrNotApplicable)
	assert.Equal(t, doc, out)
}

func TestRegistry(t *testing.T) {
	r := fix.NewRegistry()
	p := renameProvider("Go")
	require.NoError(t, r.Add(p))
	assert.Error(t, r.Add(p))
	assert.Error(t, r.Add(&fix.Provider{Name: "empty"}))
	assert.Error(t, r.Add(&fix.Provider{Name: "no targets", RuleIDs: []string{"TS0202"}}))

	assert.True(t, r.Fixable(callRule.ID()))
	assert.False(t, r.Fixable("TS9999"))
	assert.Equal(t, []string{callRule.ID()}, r.RuleIDs())

	doc := newDoc(t, source)
	out, err := r.ApplyFirst(context.Background(), doc, diagAt(doc, "Stop()"), "rename:Go")
	require.NoError(t, err)
	assert.Contains(t, out.Text(), "Go();\n    }")

	_, err = r.ApplyFirst(context.Background(), doc, diagAt(doc, "Stop()"), "rename:Other")
	assert.ErrorIs(t, err, fix.ErrNoTarget)
}

func statement(t *testing.T, doc workspace.Document, text string) syntax.Cursor {
	t.Helper()
	start := strings.Index(doc.Text(), text)
	c, ok := fix.Locate(doc.Tree.Root, token.Span{Start: start}, syntax.KindExpressionStatement)
	require.True(t, ok)
	return c
}

func TestRemoveElement(t *testing.T) {
	doc := newDoc(t, source)

	tests := []struct {
		name         string
		stmt         string
		keepComments bool
		want         string
	}{
		{
			name:         "keep comments before next statement",
			stmt:         "Run()",
			keepComments: true,
			want:         "    {\n        // first\n        // trailing\n        Stop();\n    }",
		},
		{
			name: "drop comments",
			stmt: "Run()",
			want: "    {\n        Stop();\n    }",
		},
		{
			name:         "last statement",
			stmt:         "Stop()",
			keepComments: true,
			want:         "        Run(); // trailing\n    }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := fix.RemoveElement(statement(t, doc, tt.stmt), tt.keepComments)
			require.NotNil(t, root)
			assert.Contains(t, root.FullString(), tt.want)
		})
	}

	t.Run("comment on last statement moves before brace", func(t *testing.T) {
		d := newDoc(t, "class A\n{\n    void M()\n    {\n        Run(); // gone\n    }\n}\n")
		root := fix.RemoveElement(statement(t, d, "Run()"), true)
		assert.Contains(t, root.FullString(), "    {\n        // gone\n    }\n")
	})

	t.Run("not an element", func(t *testing.T) {
		assert.Nil(t, fix.RemoveElement(syntax.Root(doc.Tree.Root), false))
	})
}

func TestReplaceAndAppendElement(t *testing.T) {
	doc := newDoc(t, source)
	stop := statement(t, doc, "Stop()")

	a := syntax.WithLeadingTrivia(syntax.NewExpressionStatement(syntax.NewInvocation(syntax.NewIdentifierName("A"))), []syntax.Trivia{syntax.Spaces(8)})
	a = syntax.WithTrailingTrivia(a, []syntax.Trivia{syntax.Newline})
	root := fix.ReplaceElement(stop, a, a)
	assert.Contains(t, root.FullString(), "        A();\n        A();\n    }")

	list := stop.Parent()
	root = fix.AppendElement(list, a)
	assert.Contains(t, root.FullString(), "        Stop();\n        A();\n    }")

	assert.Nil(t, fix.AppendElement(stop, a))
}
