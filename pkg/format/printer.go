package format

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/syntax"
)

const indentSize = 2

// Printer writes an indented S-expression rendering of a syntax tree.
type Printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
	trivia      bool
}

func newPrinter(trivia bool) *Printer {
	return &Printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
		trivia:      trivia,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return strings.TrimRight(p.output.String(), "\n") + "\n"
}

func (p *Printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *Printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// node prints n, labelled with the slot role it occupies in its parent.
func (p *Printer) node(role syntax.Role, n *syntax.Node) {
	if role != syntax.RoleNone {
		p.write(role.String() + ":")
		p.space()
	}
	if n.IsToken() {
		p.token(n)
		p.writeln()
		return
	}
	p.write("(" + n.Kind().String())
	for _, a := range n.Annotations() {
		p.write(" @" + a.Kind)
	}
	layout := syntax.Layout(n.Kind())
	printed := false
	for i, c := range n.Children() {
		if c == nil {
			continue
		}
		if !printed {
			p.writeln()
			p.indent()
			printed = true
		}
		r := syntax.RoleNone
		if i < len(layout) {
			r = layout[i]
		}
		p.node(r, c)
	}
	if printed {
		p.dedent()
	}
	p.write(")")
	p.writeln()
}

func (p *Printer) token(n *syntax.Node) {
	text := strconv.Quote(n.TokenText())
	if kind := n.TokenKind().String(); kind != n.TokenText() {
		text = kind + " " + text
	}
	p.write(text)
	if !p.trivia {
		return
	}
	p.triviaList("lead", n.LeadingTrivia())
	p.triviaList("trail", n.TrailingTrivia())
}

func (p *Printer) triviaList(label string, ts []syntax.Trivia) {
	if len(ts) == 0 {
		return
	}
	p.space()
	p.write(label + "[")
	for i, t := range ts {
		if i > 0 {
			p.space()
		}
		p.write(t.Kind.String() + ":" + strconv.Quote(t.Text))
	}
	p.write("]")
}
