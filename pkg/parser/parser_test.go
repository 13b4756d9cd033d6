package parser

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

const sampleProgram = `using System;
using System.Text.RegularExpressions;

namespace Acme.Tools
{
    /// <summary>Does things.</summary>
    /// <param name="a">first</param>
    public class Foo : Base, IDisposable
    {
        private const int Max = 10, Min = -1;
        public event EventHandler MyEvent;
        private string name = "x"; // trailing

        static Foo() { }
        public Foo(int a) : base(a) { }
        ~Foo() { }

        public string Name { get { return name; } set { name = value; } }
        public int Auto { get; private set; } = 3;
        public int Twice => Max * 2;
        public int this[int i] { get { return i; } }

        public static Foo operator +(Foo a, Foo b) => a;
        public static implicit operator int(Foo f) { return 0; }

        public void Run(int a, ref List<string> b)
        {
            /* block */
            var x = a > 0 ? a : -a;
            System.Collections.Generic.List<int> items = new List<int>();
            x += 1;
            x++;
            if (x == 1 && !flag) return; else { Console.WriteLine(@"verbatim ""q"""); }
            try { Run(1, ref b); }
            catch (ArgumentException ex) { throw; }
            catch { }
            finally { }
            while (x < 10) x++;
            foreach (var item in items) Console.Write(item);
            MyEvent(this, EventArgs.Empty);
        }
    }

    public enum Color { Red, Green = 2, }
    public delegate void Handler(object sender);
    interface IThing { void Do(); int Value { get; } }
    struct Point { public int X; }
}
`

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"only comment", "// c\n"},
		{"program", sampleProgram},
		{"crlf", "class A\r\n{\r\n    void M() { }\r\n}\r\n"},
		{"trailing trivia at eof", "class A { }   /* end */"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse("a.cs", tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.src, tree.Root.FullString())
		})
	}
}

func TestParseStructure(t *testing.T) {
	tree := MustParse("a.cs", sampleProgram)
	root := tree.Root

	assert.Len(t, root.Field(syntax.Usings).Elements(), 2)
	ns := root.Field(syntax.Members).Elements()[0]
	require.Equal(t, syntax.KindNamespaceDeclaration, ns.Kind())
	assert.Equal(t, "Acme.Tools", ns.Field(syntax.Name).Text())

	var kinds []syntax.Kind
	class := ns.Field(syntax.Members).Elements()[0]
	for _, m := range class.Field(syntax.Members).Elements() {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.KindFieldDeclaration,
		syntax.KindEventFieldDeclaration,
		syntax.KindFieldDeclaration,
		syntax.KindConstructorDeclaration,
		syntax.KindConstructorDeclaration,
		syntax.KindDestructorDeclaration,
		syntax.KindPropertyDeclaration,
		syntax.KindPropertyDeclaration,
		syntax.KindPropertyDeclaration,
		syntax.KindIndexerDeclaration,
		syntax.KindOperatorDeclaration,
		syntax.KindConversionOperatorDeclaration,
		syntax.KindMethodDeclaration,
	}, kinds)

	stmts := slices.Collect(syntax.Preorder(root, syntax.KindLocalDeclarationStatement))
	require.Len(t, stmts, 2)
	assert.Equal(t, "var x = a > 0 ? a : -a;", stmts[0].Node().Text())
	generic := stmts[1].Node().Field(syntax.Declaration).Field(syntax.Type)
	assert.Equal(t, syntax.KindQualifiedName, generic.Kind())
	assert.Equal(t, syntax.KindGenericName, generic.Field(syntax.Right).Kind())

	trailing := syntax.TrailingTrivia(class.Field(syntax.Members).Elements()[2])
	assert.True(t, syntax.HasComments(trailing))
	assert.Equal(t, token.EndOfLine, trailing[len(trailing)-1].Kind)

	docs := syntax.LeadingTrivia(class)
	var docLines int
	for _, tr := range docs {
		if tr.Kind == token.DocComment {
			docLines++
		}
	}
	assert.Equal(t, 2, docLines)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a || b && c", "(Binary a || (Binary b && c))"},
		{"a == b + c * d", "(Binary a == (Binary b + (Binary c * d)))"},
		{"!a == b", "(Binary (Prefix ! a) == b)"},
		{"x = y = z", "(Assign x = (Assign y = z))"},
		{"a ? b : c ? d : e", "(Cond a b (Cond c d e))"},
		{"a.b(c)[d]++", "(Postfix (Element (Invoke (Member a b))) ++)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := ParseExpression(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape(expr))
			assert.Equal(t, tt.src, expr.FullString())
		})
	}
}

// shape renders the operator structure of an expression.
func shape(n *syntax.Node) string {
	switch n.Kind() {
	case syntax.KindBinaryExpression:
		return "(Binary " + shape(n.Field(syntax.Left)) + " " + n.Field(syntax.Operator).TokenText() + " " + shape(n.Field(syntax.Right)) + ")"
	case syntax.KindAssignmentExpression:
		return "(Assign " + shape(n.Field(syntax.Left)) + " " + n.Field(syntax.Operator).TokenText() + " " + shape(n.Field(syntax.Right)) + ")"
	case syntax.KindPrefixUnaryExpression:
		return "(Prefix " + n.Field(syntax.Operator).TokenText() + " " + shape(n.Field(syntax.Operand)) + ")"
	case syntax.KindPostfixUnaryExpression:
		return "(Postfix " + shape(n.Field(syntax.Operand)) + " " + n.Field(syntax.Operator).TokenText() + ")"
	case syntax.KindConditionalExpression:
		return "(Cond " + shape(n.Field(syntax.Condition)) + " " + shape(n.Field(syntax.WhenTrue)) + " " + shape(n.Field(syntax.WhenFalse)) + ")"
	case syntax.KindMemberAccessExpression:
		return "(Member " + shape(n.Field(syntax.Expression)) + " " + n.Field(syntax.Name).Text() + ")"
	case syntax.KindInvocationExpression:
		return "(Invoke " + shape(n.Field(syntax.Expression)) + ")"
	case syntax.KindElementAccessExpression:
		return "(Element " + shape(n.Field(syntax.Expression)) + ")"
	}
	return n.Text()
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"missing semicolon", "class A { int x }", "unexpected token }"},
		{"unterminated string", `class A { string s = "abc; }`, ErrUnterminatedString},
		{"bad member", "class A { 42 }", "expected member declaration"},
		{"try without handlers", "class A { void M() { try { } } }", "expected catch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse("a.cs", tt.src)
			require.Error(t, err)
			assert.Nil(t, tree)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseStatements(t *testing.T) {
	list, err := ParseStatements("int x = 1;\nFoo(x);")
	require.NoError(t, err)
	assert.Len(t, list.Elements(), 2)

	_, err = ParseStatements("this is not code")
	require.Error(t, err)

	_, err = ParseStatements("a + b;")
	require.Error(t, err)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrInvalidStatement, pe.Message)
	assert.Equal(t, 1, pe.Pos.Line)

	members, err := ParseMembers("public void M() { }")
	require.NoError(t, err)
	assert.Equal(t, syntax.KindMethodDeclaration, members.Elements()[0].Kind())
}

func TestLexerPositions(t *testing.T) {
	toks := NewLexer("a\n  bb // c\n").Tokenize()
	require.Len(t, toks, 3)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 4}, toks[1].Pos)
	assert.Equal(t, "bb", toks[1].Literal())
	assert.Len(t, toks[0].Node.TrailingTrivia(), 1, "newline belongs to the first token")
	assert.Equal(t, token.EOF, toks[2].Kind())
}
