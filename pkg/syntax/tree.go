package syntax

import (
	"sync"

	"github.com/leapstack-labs/sharplint/pkg/token"
)

// Tree is a parsed document: a root node plus the path it came from.
type Tree struct {
	Path  string
	Root  *Node
	lines func() *token.LineMap
}

// NewTree wraps root.
func NewTree(path string, root *Node) *Tree {
	return &Tree{
		Path: path,
		Root: root,
		lines: sync.OnceValue(func() *token.LineMap {
			return token.NewLineMap(root.FullString())
		}),
	}
}

// WithRoot returns a tree with the same path and a new root.
func (t *Tree) WithRoot(root *Node) *Tree {
	return NewTree(t.Path, root)
}

// Cursor returns a cursor at the root.
func (t *Tree) Cursor() Cursor {
	return Root(t.Root)
}

// Text returns the full source text.
func (t *Tree) Text() string {
	return t.Root.FullString()
}

// Position converts a byte offset into a line/column position.
func (t *Tree) Position(offset int) token.Position {
	return t.lines().Position(offset)
}
