package lsp

import (
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

// Document represents an open text document in the editor.
type Document struct {
	URI     string // Document URI (file:///path/to/File.cs)
	Content string // Full document content
	Version int    // Version number, incremented on each change
	Lines   []int  // Byte offsets of line starts for fast position lookups
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store.
func (s *DocumentStore) Open(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI. The returned document is a snapshot;
// later updates do not change it.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces the content of an open document. Updates of documents
// that are not open are ignored.
func (s *DocumentStore) Update(uri string, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[uri]; ok {
		s.documents[uri] = newDocument(uri, content, version)
	}
}

// List returns all open document URIs in sorted order.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// computeLineOffsets calculates byte offsets for each line start.
func computeLineOffsets(content string) []int {
	offsets := []int{0} // First line starts at offset 0

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return offsets
}

// lineEnd returns the offset of the end of line, before its line break.
func (d *Document) lineEnd(line int) int {
	end := len(d.Content)
	if line+1 < len(d.Lines) {
		end = d.Lines[line+1] - 1
	}
	if end > d.Lines[line] && d.Content[end-1] == '\r' {
		end--
	}
	return max(end, d.Lines[line])
}

// PositionToOffset converts a Position to a byte offset in the document.
// Characters beyond the end of the line clamp to it.
func (d *Document) PositionToOffset(pos Position) int {
	if d == nil || len(d.Lines) == 0 {
		return 0
	}

	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	offset, end := d.Lines[line], d.lineEnd(line)
	units := int(pos.Character)
	for offset < end && units > 0 {
		r, size := utf8.DecodeRuneInString(d.Content[offset:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if n > units {
			break
		}
		units -= n
		offset += size
	}
	return offset
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	if d == nil || len(d.Lines) == 0 {
		return Position{}
	}

	offset = min(max(offset, 0), len(d.Content))
	line := sort.Search(len(d.Lines), func(i int) bool { return d.Lines[i] > offset }) - 1

	return Position{
		Line:      uint32(line),                                      //nolint:gosec // G115: line is never negative
		Character: uint32(utf16Len(d.Content[d.Lines[line]:offset])), //nolint:gosec // G115: length is never negative
	}
}

// Range converts a byte range to a Range.
func (d *Document) Range(start, end int) Range {
	return Range{Start: d.OffsetToPosition(start), End: d.OffsetToPosition(end)}
}

// GetLine returns the content of a specific line.
func (d *Document) GetLine(line int) string {
	if d == nil || line < 0 || line >= len(d.Lines) {
		return ""
	}
	return d.Content[d.Lines[line]:d.lineEnd(line)]
}

// GetTextInRange returns the text within a range.
func (d *Document) GetTextInRange(r Range) string {
	start := d.PositionToOffset(r.Start)
	end := d.PositionToOffset(r.End)
	if start >= end {
		return ""
	}
	return d.Content[start:end]
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if k := utf16.RuneLen(r); k > 0 {
			n += k
		} else {
			n++
		}
	}
	return n
}

// URIToPath converts a file:// URI to a file system path.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return filepath.FromSlash(u.Path)
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
