package lsp

import (
	"testing"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/Program.cs"
	content := "class Program { }"

	store.Open(uri, content, 1)

	doc := store.Get(uri)
	if doc == nil {
		t.Fatal("expected document to exist")
	}
	if doc.URI != uri {
		t.Errorf("expected URI %s, got %s", uri, doc.URI)
	}
	if doc.Content != content {
		t.Errorf("expected content %q, got %q", content, doc.Content)
	}
	if doc.Version != 1 {
		t.Errorf("expected version 1, got %d", doc.Version)
	}

	store.Close(uri)
	if doc := store.Get(uri); doc != nil {
		t.Error("expected document to be nil after close")
	}
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	uri := "file:///test/Program.cs"
	store.Open(uri, "class A { }", 1)
	before := store.Get(uri)

	store.Update(uri, "class B { }", 2)

	doc := store.Get(uri)
	if doc.Content != "class B { }" {
		t.Errorf("expected content 'class B { }', got %q", doc.Content)
	}
	if doc.Version != 2 {
		t.Errorf("expected version 2, got %d", doc.Version)
	}
	if before.Content != "class A { }" {
		t.Errorf("expected earlier snapshot to keep its content, got %q", before.Content)
	}

	store.Update("file:///test/Closed.cs", "class C { }", 1)
	if store.Get("file:///test/Closed.cs") != nil {
		t.Error("expected update of a closed document to be ignored")
	}
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()

	store.Open("file:///c.cs", "class C { }", 1)
	store.Open("file:///a.cs", "class A { }", 1)
	store.Open("file:///b.cs", "class B { }", 1)

	uris := store.List()
	want := []string{"file:///a.cs", "file:///b.cs", "file:///c.cs"}
	if len(uris) != len(want) {
		t.Fatalf("expected %d URIs, got %d", len(want), len(uris))
	}
	for i := range want {
		if uris[i] != want[i] {
			t.Errorf("uris[%d]: expected %s, got %s", i, want[i], uris[i])
		}
	}
}

func TestComputeLineOffsets(t *testing.T) {
	tests := []struct {
		content  string
		expected []int
	}{
		{"", []int{0}},
		{"abc", []int{0}},
		{"a\nb", []int{0, 2}},
		{"a\nb\nc", []int{0, 2, 4}},
		{"\n\n\n", []int{0, 1, 2, 3}},
		{"line1\r\nline2", []int{0, 7}},
	}

	for _, tt := range tests {
		offsets := computeLineOffsets(tt.content)
		if len(offsets) != len(tt.expected) {
			t.Errorf("content %q: expected %d offsets, got %d", tt.content, len(tt.expected), len(offsets))
			continue
		}
		for i, exp := range tt.expected {
			if offsets[i] != exp {
				t.Errorf("content %q: offset[%d] expected %d, got %d", tt.content, i, exp, offsets[i])
			}
		}
	}
}

func TestDocument_PositionToOffset(t *testing.T) {
	content := "line0\nline1\r\nline2"
	doc := newDocument("file:///x.cs", content, 1)

	tests := []struct {
		pos      Position
		expected int
	}{
		{Position{Line: 0, Character: 0}, 0},
		{Position{Line: 0, Character: 3}, 3},
		{Position{Line: 0, Character: 5}, 5},
		{Position{Line: 1, Character: 0}, 6},
		{Position{Line: 1, Character: 4}, 10},
		{Position{Line: 2, Character: 0}, 13},
		{Position{Line: 2, Character: 5}, 18},
		// Edge cases
		{Position{Line: 100, Character: 0}, len(content)}, // Line beyond document
		{Position{Line: 0, Character: 100}, 5},            // Character beyond line
		{Position{Line: 1, Character: 100}, 11},           // Stops before \r\n
	}

	for _, tt := range tests {
		if got := doc.PositionToOffset(tt.pos); got != tt.expected {
			t.Errorf("PositionToOffset(%+v): expected %d, got %d", tt.pos, tt.expected, got)
		}
	}
}

func TestDocument_OffsetToPosition(t *testing.T) {
	content := "line0\nline1\nline2"
	doc := newDocument("file:///x.cs", content, 1)

	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{Line: 0, Character: 0}},
		{3, Position{Line: 0, Character: 3}},
		{5, Position{Line: 0, Character: 5}},
		{6, Position{Line: 1, Character: 0}},
		{10, Position{Line: 1, Character: 4}},
		{12, Position{Line: 2, Character: 0}},
		{17, Position{Line: 2, Character: 5}},
		{-1, Position{Line: 0, Character: 0}},
		{100, Position{Line: 2, Character: 5}},
	}

	for _, tt := range tests {
		if got := doc.OffsetToPosition(tt.offset); got != tt.expected {
			t.Errorf("OffsetToPosition(%d): expected %+v, got %+v", tt.offset, tt.expected, got)
		}
	}
}

func TestDocument_UTF16(t *testing.T) {
	// é is two bytes and one UTF-16 unit; 😀 is four bytes and two units.
	content := "var s = \"é😀\"; x"
	doc := newDocument("file:///x.cs", content, 1)

	x := len(content) - 1
	pos := doc.OffsetToPosition(x)
	if pos != (Position{Line: 0, Character: 15}) {
		t.Errorf("OffsetToPosition: expected character 15, got %+v", pos)
	}
	if got := doc.PositionToOffset(pos); got != x {
		t.Errorf("PositionToOffset: expected %d, got %d", x, got)
	}
	// A position inside a surrogate pair stays before the rune.
	if got := doc.PositionToOffset(Position{Character: 11}); got != 11 {
		t.Errorf("PositionToOffset inside surrogate pair: expected 11, got %d", got)
	}
}

func TestDocument_GetLine(t *testing.T) {
	doc := newDocument("file:///x.cs", "first\r\nsecond\nthird", 1)

	tests := []struct {
		line     int
		expected string
	}{
		{0, "first"},
		{1, "second"},
		{2, "third"},
		{3, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := doc.GetLine(tt.line); got != tt.expected {
			t.Errorf("GetLine(%d): expected %q, got %q", tt.line, tt.expected, got)
		}
	}
}

func TestDocument_GetTextInRange(t *testing.T) {
	doc := newDocument("file:///x.cs", "class A\n{\n}\n", 1)

	got := doc.GetTextInRange(Range{Start: Position{Line: 0, Character: 6}, End: Position{Line: 1, Character: 1}})
	if got != "A\n{" {
		t.Errorf("expected %q, got %q", "A\n{", got)
	}
	if got := doc.GetTextInRange(Range{Start: Position{Line: 1}, End: Position{Line: 0}}); got != "" {
		t.Errorf("expected empty text for inverted range, got %q", got)
	}
}

func TestURIConversion(t *testing.T) {
	tests := []struct {
		uri  string
		path string
	}{
		{"file:///home/user/Program.cs", "/home/user/Program.cs"},
		{"file:///home/user/My%20App/Program.cs", "/home/user/My App/Program.cs"},
	}
	for _, tt := range tests {
		if got := URIToPath(tt.uri); got != tt.path {
			t.Errorf("URIToPath(%q): expected %q, got %q", tt.uri, tt.path, got)
		}
		if got := PathToURI(tt.path); got != tt.uri {
			t.Errorf("PathToURI(%q): expected %q, got %q", tt.path, tt.uri, got)
		}
	}
	if got := URIToPath("untitled:Untitled-1"); got != "untitled:Untitled-1" {
		t.Errorf("expected non-file URI unchanged, got %q", got)
	}
}
