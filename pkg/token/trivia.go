package token

// TriviaKind classifies source text that carries no syntactic meaning.
type TriviaKind int

const (
	Whitespace TriviaKind = iota
	EndOfLine
	SingleLineComment // // ...
	MultiLineComment  // /* ... */
	DocComment        // /// ...
)

var triviaNames = [...]string{
	Whitespace:        "Whitespace",
	EndOfLine:         "EndOfLine",
	SingleLineComment: "SingleLineComment",
	MultiLineComment:  "MultiLineComment",
	DocComment:        "DocComment",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) {
		return triviaNames[k]
	}
	return "Trivia"
}

// IsComment returns true for any comment trivia.
func (k TriviaKind) IsComment() bool {
	return k == SingleLineComment || k == MultiLineComment || k == DocComment
}
