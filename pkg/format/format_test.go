package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/pkg/parser"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func TestDump(t *testing.T) {
	root, err := parser.ParseExpression("a + 1")
	require.NoError(t, err)

	expected := `(BinaryExpression
  Left: (IdentifierName
    Identifier: IDENT "a"
  )
  Operator: "+"
  Right: (LiteralExpression
    Token: NUMBER "1"
  )
)
`
	assert.Equal(t, expected, Dump(root, false))
}

func TestDumpTrivia(t *testing.T) {
	root, err := parser.ParseExpression("x // c")
	require.NoError(t, err)
	out := Dump(root, true)
	assert.Contains(t, out, `IDENT "x" trail[Whitespace:" " SingleLineComment:"// c"]`)
}

func TestDumpAnnotations(t *testing.T) {
	root, err := parser.ParseExpression("x")
	require.NoError(t, err)
	root = root.WithAnnotations(syntax.NewAnnotation("mark", ""))
	assert.Contains(t, Dump(root, false), "(IdentifierName @mark")
	assert.Equal(t, "<nil>\n", Dump(nil, false))
}

func TestEndLine(t *testing.T) {
	tests := []struct {
		name string
		in   []syntax.Trivia
		want string
	}{
		{"empty", nil, "\n"},
		{"spaces", []syntax.Trivia{syntax.Spaces(3)}, "\n"},
		{"comment", []syntax.Trivia{syntax.Space, {Kind: token.SingleLineComment, Text: "// c"}, syntax.Newline}, " // c\n"},
		{"double", []syntax.Trivia{syntax.Newline, syntax.Newline}, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, syntax.TriviaText(EndLine(tt.in)))
		})
	}
}

func TestLineAndBlock(t *testing.T) {
	stmts, err := parser.ParseStatements("a(); // keep\n")
	require.NoError(t, err)
	stmt := stmts.Elements()[0]

	line := Line(stmt, "        ")
	assert.Equal(t, "        a(); // keep\n", line.FullString())
	assert.Equal(t, "        ", IndentOf(line))

	block := Block("    ", syntax.NewExpressionStatement(syntax.NewInvocation(syntax.NewIdentifierName("b"))))
	assert.Equal(t, "    {\n        b();\n    }\n", block.FullString())
}

func TestLineKeepingLeading(t *testing.T) {
	stmts, err := parser.ParseStatements("  // note\n  a();\n")
	require.NoError(t, err)
	got := LineKeepingLeading(stmts.Elements()[0], "    ")
	assert.Equal(t, "    // note\n    a();\n", got.FullString())
}

func TestNormalize(t *testing.T) {
	a, err := parser.ParseExpression("x  +\n  y")
	require.NoError(t, err)
	b, err := parser.ParseExpression("x+y")
	require.NoError(t, err)
	assert.Equal(t, Normalize(a), Normalize(b))
	assert.Equal(t, "x + y", Normalize(b))
}
