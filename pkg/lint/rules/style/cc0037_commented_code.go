package style

import (
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(CommentedCodeAnalyzer)
	fix.Register(CommentedCodeFix)
}

// CommentedCode flags single-line comments whose text is valid code.
var CommentedCode = lint.MustDescriptor(
	"CC0037",
	"Remove commented code.",
	"If code is commented, it should be removed.",
	lint.CategoryStyle,
	core.SeverityInfo,
	true,
	lint.WithDescription("Commented-out code rots quickly and confuses readers. Version control keeps old code; remove it from the source."),
	lint.WithTags("Unnecessary"),
)

// Properties that let the fix find the comments again within the trivia
// of one token.
const (
	propFirst    = "first"    // text of the first comment
	propCount    = "count"    // number of comments
	propTrailing = "trailing" // "true" for trailing trivia
)

// CommentedCodeAnalyzer scans the trivia of every token.
var CommentedCodeAnalyzer = &lint.Analyzer{
	Name:        "style.commented_code",
	Doc:         "Comments holding compilable code should be removed.",
	Descriptors: []*lint.Descriptor{CommentedCode},
	Tree:        checkCommentedCode,
}

// commentRun is a sequence of single-line comments on consecutive lines.
type commentRun struct {
	comments []syntax.Trivia
	spans    []token.Span
}

func checkCommentedCode(pass *lint.Pass) {
	for tok := range syntax.Tokens(pass.Tree.Root) {
		n := tok.Node()
		start := tok.FullSpan().Start
		for _, run := range commentRuns(n.LeadingTrivia(), start) {
			reportCode(pass, run, false)
		}
		for _, run := range commentRuns(n.TrailingTrivia(), tok.Span().End) {
			reportCode(pass, run, true)
		}
	}
}

// commentRuns groups the single-line comments of ts. A comment run breaks
// at a blank line or at any other trivia than whitespace between lines.
func commentRuns(ts []syntax.Trivia, offset int) []commentRun {
	var (
		runs  []commentRun
		cur   commentRun
		lines int // end of lines seen since the last comment
	)
	flush := func() {
		if len(cur.comments) > 0 {
			runs = append(runs, cur)
		}
		cur = commentRun{}
	}
	for _, t := range ts {
		switch t.Kind {
		case token.SingleLineComment:
			if lines > 1 {
				flush()
			}
			cur.comments = append(cur.comments, t)
			cur.spans = append(cur.spans, token.Span{Start: offset, End: offset + len(t.Text)})
			lines = 0
		case token.EndOfLine:
			lines++
		case token.Whitespace:
		default:
			flush()
		}
		offset += len(t.Text)
	}
	flush()
	return runs
}

// reportCode reports the longest prefixes of run that compile, starting
// from each comment not already part of a report.
func reportCode(pass *lint.Pass, run commentRun, trailing bool) {
	for i := 0; i < len(run.comments); {
		j := longestCode(pass, run.comments[i:])
		if j == 0 {
			i++
			continue
		}
		span := token.Span{Start: run.spans[i].Start, End: run.spans[i+j-1].End}
		pass.ReportWithProperties(CommentedCode, span, map[string]string{
			propFirst:    run.comments[i].Text,
			propCount:    strconv.Itoa(j),
			propTrailing: strconv.FormatBool(trailing),
		})
		i += j
	}
}

// longestCode returns the length of the longest prefix of comments whose
// joined text is code, or 0.
func longestCode(pass *lint.Pass, comments []syntax.Trivia) int {
	for j := len(comments); j > 0; j-- {
		lines := make([]string, j)
		for k, c := range comments[:j] {
			lines[k] = strings.TrimPrefix(c.Text, "//")
		}
		text := strings.Join(lines, "\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if pass.Model.Diagnostics(text) == nil {
			return j
		}
	}
	return 0
}

// CommentedCodeFix removes the comment lines.
var CommentedCodeFix = &fix.Provider{
	Name:    "style.commented_code",
	RuleIDs: []string{CommentedCode.ID()},
	Targets: []syntax.Kind{syntax.KindToken},
	Actions: func(d lint.Diagnostic, target syntax.Cursor) []fix.Action {
		first := d.Property(propFirst)
		count, err := strconv.Atoi(d.Property(propCount))
		if first == "" || err != nil || count < 1 {
			return nil
		}
		trailing := d.Property(propTrailing) == "true"
		if _, ok := removeComments(target.Node(), first, count, trailing); !ok {
			return nil
		}
		return []fix.Action{{
			Title:          "Remove commented code",
			EquivalenceKey: CommentedCode.ID(),
			Transform: func(target syntax.Cursor) *syntax.Node {
				tok, ok := removeComments(target.Node(), first, count, trailing)
				if !ok {
					return nil
				}
				return target.Replace(tok)
			},
		}}
	},
}

// removeComments drops count comments starting at the one whose text is
// first from the trivia of tok. Leading comments take their indentation
// and end of line with them; a trailing comment leaves the end of line.
func removeComments(tok *syntax.Node, first string, count int, trailing bool) (*syntax.Node, bool) {
	ts := tok.LeadingTrivia()
	if trailing {
		ts = tok.TrailingTrivia()
	}
	start := slices.IndexFunc(ts, func(t syntax.Trivia) bool {
		return t.Kind == token.SingleLineComment && t.Text == first
	})
	if start < 0 {
		return nil, false
	}
	end, seen := start, 0
	for end < len(ts) && seen < count {
		if ts[end].Kind == token.SingleLineComment {
			seen++
		}
		end++
	}
	if seen < count {
		return nil, false
	}
	if start > 0 && ts[start-1].Kind == token.Whitespace {
		start--
	}
	if !trailing && end < len(ts) && ts[end].Kind == token.EndOfLine {
		end++
	}
	out := slices.Delete(slices.Clone(ts), start, end)
	if trailing {
		return tok.WithTrivia(tok.LeadingTrivia(), out), true
	}
	return tok.WithTrivia(out, tok.TrailingTrivia()), true
}
