package syntax

import (
	"iter"
	"slices"
	"sync/atomic"
)

// Annotation is an opaque marker attached to a node. Annotations do not
// contribute to the source text and survive rewrites of other parts of
// the tree, so they can be used to find a node again after edits.
type Annotation struct {
	Kind string
	Data string
	id   uint64
}

var annotationIDs atomic.Uint64

// NewAnnotation returns an annotation distinct from every other annotation
// created in this process.
func NewAnnotation(kind, data string) Annotation {
	return Annotation{Kind: kind, Data: data, id: annotationIDs.Add(1)}
}

// Annotations returns the annotations attached directly to n.
func (n *Node) Annotations() []Annotation {
	if n == nil {
		return nil
	}
	return n.annotations
}

// HasAnnotation reports whether a is attached directly to n.
func (n *Node) HasAnnotation(a Annotation) bool {
	return n != nil && slices.Contains(n.annotations, a)
}

// HasAnnotationKind reports whether any annotation of kind is attached to n.
func (n *Node) HasAnnotationKind(kind string) bool {
	if n == nil {
		return false
	}
	return slices.ContainsFunc(n.annotations, func(a Annotation) bool { return a.Kind == kind })
}

// WithAnnotations returns a copy of n carrying the additional annotations.
func (n *Node) WithAnnotations(as ...Annotation) *Node {
	merged := slices.Clone(n.annotations)
	for _, a := range as {
		if !slices.Contains(merged, a) {
			merged = append(merged, a)
		}
	}
	return n.withOwnAnnotations(merged)
}

// WithoutAnnotationKind returns a copy of n without its own annotations of kind.
func (n *Node) WithoutAnnotationKind(kind string) *Node {
	if !n.HasAnnotationKind(kind) {
		return n
	}
	kept := slices.DeleteFunc(slices.Clone(n.annotations), func(a Annotation) bool { return a.Kind == kind })
	if len(kept) == 0 {
		kept = nil
	}
	return n.withOwnAnnotations(kept)
}

func (n *Node) withOwnAnnotations(as []Annotation) *Node {
	if n.kind == KindToken {
		t := NewToken(n.tok, n.text, n.leading, n.trailing)
		t.annotations = as
		t.annotated = len(as) > 0
		return t
	}
	return build(n.kind, n.children, as)
}

// Annotated iterates over the nodes of root carrying a, in source order.
func Annotated(root *Node, a Annotation) iter.Seq[Cursor] {
	return annotatedBy(root, func(n *Node) bool { return n.HasAnnotation(a) })
}

// AnnotatedKind iterates over the nodes of root carrying an annotation of kind.
func AnnotatedKind(root *Node, kind string) iter.Seq[Cursor] {
	return annotatedBy(root, func(n *Node) bool { return n.HasAnnotationKind(kind) })
}

func annotatedBy(root *Node, match func(*Node) bool) iter.Seq[Cursor] {
	return func(yield func(Cursor) bool) {
		inspect(Root(root),
			func(c Cursor) bool { return c.node.annotated },
			func(c Cursor) bool {
				if len(c.node.annotations) > 0 && match(c.node) {
					return yield(c)
				}
				return true
			})
	}
}

// StripAnnotations removes every annotation of kind from the tree, leaving
// other annotations in place. Unannotated subtrees are shared.
func StripAnnotations(root *Node, kind string) *Node {
	if root == nil || !root.annotated {
		return root
	}
	n := root.WithoutAnnotationKind(kind)
	if n.kind == KindToken {
		return n
	}
	var children []*Node
	for i, c := range n.children {
		stripped := StripAnnotations(c, kind)
		if stripped != c {
			if children == nil {
				children = slices.Clone(n.children)
			}
			children[i] = stripped
		}
	}
	if children == nil {
		return n
	}
	return build(n.kind, children, n.annotations)
}
