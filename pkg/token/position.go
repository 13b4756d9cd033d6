package token

import (
	"sort"
	"strconv"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Span is a half-open byte range [Start, End) in a source text.
type Span struct {
	Start int
	End   int
}

// Len returns the width of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Covers returns true if o lies entirely inside s.
func (s Span) Covers(o Span) bool {
	return o.Start >= s.Start && o.End <= s.End
}

// Overlaps returns true if the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// IsValid returns true if the span is well formed.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// LineMap converts byte offsets of a text into line/column positions.
type LineMap struct {
	starts []int
}

// NewLineMap indexes the line starts of text.
func NewLineMap(text string) *LineMap {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineMap{starts: starts}
}

// Position returns the 1-based line and column of offset.
func (m *LineMap) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > offset }) - 1
	return Position{
		Line:   line + 1,
		Column: offset - m.starts[line] + 1,
		Offset: offset,
	}
}

// LineCount returns the number of lines in the indexed text.
func (m *LineMap) LineCount() int {
	return len(m.starts)
}
