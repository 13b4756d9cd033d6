package syntax

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Trivia is a piece of source text without syntactic meaning attached to a token.
type Trivia struct {
	Kind token.TriviaKind
	Text string
}

// Node is an immutable syntax tree node.
//
// A node is either a token (a leaf holding text and trivia) or a composite
// whose children occupy the slots listed by Layout, or a list. Nodes never
// change after construction; every With* method returns a fresh node.
type Node struct {
	kind        Kind
	tok         token.Kind
	text        string
	leading     []Trivia
	trailing    []Trivia
	children    []*Node
	annotations []Annotation
	width       int  // full width including trivia
	annotated   bool // this node or a descendant carries annotations
}

// NewToken creates a token leaf.
func NewToken(tok token.Kind, text string, leading, trailing []Trivia) *Node {
	n := &Node{kind: KindToken, tok: tok, text: text, leading: leading, trailing: trailing}
	n.width = triviaWidth(leading) + len(text) + triviaWidth(trailing)
	return n
}

// Tok creates a trivia-free token with the fixed text of k.
func Tok(k token.Kind) *Node {
	return NewToken(k, k.Text(), nil, nil)
}

// NewNode creates a composite node. The number of children must match the
// kind's layout; absent optional slots are passed as nil.
func NewNode(kind Kind, children ...*Node) *Node {
	if want := len(Layout(kind)); want != len(children) || want == 0 {
		panic(fmt.Sprintf("syntax: %s takes %d children, got %d", kind, want, len(children)))
	}
	return build(kind, children, nil)
}

// NewList creates a plain list node.
func NewList(items ...*Node) *Node {
	return build(KindList, items, nil)
}

// NewSeparatedList creates a separated list from alternating items and
// separator tokens. len(parts) must be odd or zero.
func NewSeparatedList(parts ...*Node) *Node {
	return build(KindSeparatedList, parts, nil)
}

func build(kind Kind, children []*Node, annotations []Annotation) *Node {
	n := &Node{kind: kind, children: children, annotations: annotations, annotated: len(annotations) > 0}
	for _, c := range children {
		if c == nil {
			continue
		}
		n.width += c.width
		n.annotated = n.annotated || c.annotated
	}
	return n
}

// Kind returns the syntax kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// Is reports whether n is non-nil and of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.kind == k {
			return true
		}
	}
	return false
}

// IsToken reports whether n is a token leaf.
func (n *Node) IsToken() bool { return n != nil && n.kind == KindToken }

// TokenKind returns the token kind of a leaf, or token.ILLEGAL for composites.
func (n *Node) TokenKind() token.Kind {
	if !n.IsToken() {
		return token.ILLEGAL
	}
	return n.tok
}

// TokenText returns the text of a token leaf without trivia.
func (n *Node) TokenText() string {
	if !n.IsToken() {
		return ""
	}
	return n.text
}

// LeadingTrivia of a token leaf.
func (n *Node) LeadingTrivia() []Trivia {
	if !n.IsToken() {
		return nil
	}
	return n.leading
}

// TrailingTrivia of a token leaf.
func (n *Node) TrailingTrivia() []Trivia {
	if !n.IsToken() {
		return nil
	}
	return n.trailing
}

// Width returns the full width of n in bytes, trivia included.
func (n *Node) Width() int {
	if n == nil {
		return 0
	}
	return n.width
}

// Len returns the number of child slots.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child slot, which may be nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the child slots. The slice must not be modified.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Field returns the child in slot r, or nil when the slot is absent or the
// kind has no such slot.
func (n *Node) Field(r Role) *Node {
	if n == nil {
		return nil
	}
	return n.Child(slotIndex(n.kind, r))
}

// Has reports whether slot r is present.
func (n *Node) Has(r Role) bool {
	return n.Field(r) != nil
}

// With returns a copy of n with slot r replaced by child.
func (n *Node) With(r Role, child *Node) *Node {
	i := slotIndex(n.kind, r)
	if i < 0 {
		panic(fmt.Sprintf("syntax: %s has no %s slot", n.kind, r))
	}
	return n.WithChild(i, child)
}

// WithChild returns a copy of n with child slot i replaced.
func (n *Node) WithChild(i int, child *Node) *Node {
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	children[i] = child
	return build(n.kind, children, n.annotations)
}

// WithChildren returns a copy of n holding children instead of its own.
// It is meant for lists; composites must keep their layout length.
func (n *Node) WithChildren(children []*Node) *Node {
	if n.kind != KindList && n.kind != KindSeparatedList && len(children) != len(n.children) {
		panic(fmt.Sprintf("syntax: %s takes %d children, got %d", n.kind, len(n.children), len(children)))
	}
	return build(n.kind, children, n.annotations)
}

// WithTrivia returns a copy of token n with new leading and trailing trivia.
func (n *Node) WithTrivia(leading, trailing []Trivia) *Node {
	if !n.IsToken() {
		panic("syntax: WithTrivia on composite node")
	}
	t := NewToken(n.tok, n.text, leading, trailing)
	t.annotations = n.annotations
	t.annotated = len(n.annotations) > 0
	return t
}

// Elements returns the items of a list, skipping separators.
func (n *Node) Elements() []*Node {
	switch n.Kind() {
	case KindList:
		return n.children
	case KindSeparatedList:
		items := make([]*Node, 0, (len(n.children)+1)/2)
		for i := 0; i < len(n.children); i += 2 {
			items = append(items, n.children[i])
		}
		return items
	}
	return nil
}

// FullString returns the exact source text of n, trivia included.
func (n *Node) FullString() string {
	var sb strings.Builder
	sb.Grow(n.Width())
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.kind == KindToken {
		for _, t := range n.leading {
			sb.WriteString(t.Text)
		}
		sb.WriteString(n.text)
		for _, t := range n.trailing {
			sb.WriteString(t.Text)
		}
		return
	}
	for _, c := range n.children {
		c.write(sb)
	}
}

// Text returns the source text of n without the leading trivia of its first
// token and the trailing trivia of its last token.
func (n *Node) Text() string {
	full := n.FullString()
	lead, trail := n.outerTriviaWidths()
	return full[lead : len(full)-trail]
}

func (n *Node) outerTriviaWidths() (lead, trail int) {
	if first := FirstToken(n); first != nil {
		lead = triviaWidth(first.leading)
	}
	if last := LastToken(n); last != nil {
		trail = triviaWidth(last.trailing)
	}
	return lead, trail
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.kind == KindToken {
		return fmt.Sprintf("%s %q", n.tok, n.text)
	}
	return fmt.Sprintf("%s %q", n.kind, n.Text())
}

func triviaWidth(ts []Trivia) int {
	w := 0
	for _, t := range ts {
		w += len(t.Text)
	}
	return w
}

// Equal reports whether a and b are structurally identical, trivia included.
// Annotations are ignored.
func Equal(a, b *Node) bool {
	return equal(a, b, true)
}

// Equivalent reports whether a and b have the same structure and token text,
// ignoring trivia and annotations.
func Equivalent(a, b *Node) bool {
	return equal(a, b, false)
}

func equal(a, b *Node, trivia bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind || len(a.children) != len(b.children) {
		return false
	}
	if a.kind == KindToken {
		if a.tok != b.tok || a.text != b.text {
			return false
		}
		return !trivia || (triviaEqual(a.leading, b.leading) && triviaEqual(a.trailing, b.trailing))
	}
	for i := range a.children {
		if !equal(a.children[i], b.children[i], trivia) {
			return false
		}
	}
	return true
}

func triviaEqual(a, b []Trivia) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
