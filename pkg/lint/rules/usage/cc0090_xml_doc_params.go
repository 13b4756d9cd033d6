package usage

import (
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/format"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/lint/internal/ast"
	"github.com/leapstack-labs/sharplint/pkg/syntax"
	"github.com/leapstack-labs/sharplint/pkg/token"
)

func init() {
	lint.Register(XMLDocParamsAnalyzer)
	fix.Register(XMLDocParamsFix)
}

// XMLDocParams flags documentation comments whose param tags do not match
// the parameter list.
var XMLDocParams = lint.MustDescriptor(
	"CC0090",
	"XML documentation param tags do not match the parameters",
	"XML documentation of '{0}' has {1} parameters: {2}",
	lint.CategoryUsage,
	core.SeverityWarning,
	true,
	lint.WithDescription("Every parameter should have a <param> tag in the documentation comment and every <param> tag should name a parameter."),
)

// Values of the "kind" property.
const (
	propKind         = "kind"
	missingDoc       = "missingDoc"
	nonexistentParam = "nonexistentParam"
)

var docKinds = []syntax.Kind{
	syntax.KindMethodDeclaration,
	syntax.KindConstructorDeclaration,
	syntax.KindDelegateDeclaration,
	syntax.KindIndexerDeclaration,
	syntax.KindOperatorDeclaration,
	syntax.KindConversionOperatorDeclaration,
}

var (
	paramTag   = regexp.MustCompile(`<param\s+name\s*=\s*"([^"]*)"\s*(/?)>`)
	paramClose = regexp.MustCompile(`</param\s*>`)
)

// XMLDocParamsAnalyzer compares param tags with parameter names.
var XMLDocParamsAnalyzer = &lint.Analyzer{
	Name:        "usage.xml_doc_params",
	Doc:         "Documentation param tags must match the parameters.",
	Descriptors: []*lint.Descriptor{XMLDocParams},
	Kinds:       docKinds,
	Node: func(pass *lint.Pass, node syntax.Cursor) {
		lines := docLines(syntax.LeadingTrivia(node.Node()))
		if len(lines) == 0 {
			return
		}
		missing, extra := compareParams(node, lines)
		name := memberName(node)
		span := ast.NameSpan(node)
		if len(missing) > 0 {
			pass.ReportWithProperties(XMLDocParams, span, map[string]string{propKind: missingDoc},
				name, "missing", strings.Join(missing, ", "))
		}
		if len(extra) > 0 {
			pass.ReportWithProperties(XMLDocParams, span, map[string]string{propKind: nonexistentParam},
				name, "nonexistent", strings.Join(extra, ", "))
		}
	},
}

// docLine is one /// line of a leading trivia list. The trivia in
// [start, end) include its indentation and end-of-line.
type docLine struct {
	start, end int
	text       string
}

func docLines(ts []syntax.Trivia) []docLine {
	var out []docLine
	lineStart := 0
	for i, t := range ts {
		if t.Kind == token.EndOfLine {
			lineStart = i + 1
			continue
		}
		if t.Kind != token.DocComment {
			continue
		}
		end := i + 1
		if end < len(ts) && ts[end].Kind == token.EndOfLine {
			end++
		}
		out = append(out, docLine{start: lineStart, end: end, text: t.Text})
	}
	return out
}

// compareParams returns the parameters without a tag and the tag names
// that are not parameters, each in source order.
func compareParams(member syntax.Cursor, lines []docLine) (missing, extra []string) {
	params := ast.ParameterNames(member)
	var tagged []string
	for _, l := range lines {
		for _, m := range paramTag.FindAllStringSubmatch(l.text, -1) {
			tagged = append(tagged, m[1])
		}
	}
	for _, p := range params {
		if !slices.Contains(tagged, p) {
			missing = append(missing, p)
		}
	}
	for _, t := range tagged {
		if !slices.Contains(params, t) && !slices.Contains(extra, t) {
			extra = append(extra, t)
		}
	}
	return missing, extra
}

func memberName(member syntax.Cursor) string {
	if id := ast.Identifier(member); id != "" {
		return id
	}
	return member.Node().Field(syntax.Keyword).TokenText()
}

// XMLDocParamsFix adds missing tags or removes tags of unknown parameters,
// depending on the kind of the diagnostic.
var XMLDocParamsFix = &fix.Provider{
	Name:    "usage.xml_doc_params",
	RuleIDs: []string{XMLDocParams.ID()},
	Targets: docKinds,
	Actions: func(d lint.Diagnostic, _ syntax.Cursor) []fix.Action {
		switch d.Property(propKind) {
		case missingDoc:
			return []fix.Action{{
				Title:          "Add missing parameters to the XML documentation",
				EquivalenceKey: XMLDocParams.ID() + ":" + missingDoc,
				Transform:      addParamTags,
			}}
		case nonexistentParam:
			return []fix.Action{{
				Title:          "Remove nonexistent parameters from the XML documentation",
				EquivalenceKey: XMLDocParams.ID() + ":" + nonexistentParam,
				Transform:      removeParamTags,
			}}
		}
		return nil
	},
}

// addParamTags inserts one empty param tag line per missing parameter
// after the last param tag, or after the last documentation line.
func addParamTags(target syntax.Cursor) *syntax.Node {
	n := target.Node()
	ts := syntax.LeadingTrivia(n)
	lines := docLines(ts)
	missing, _ := compareParams(target, lines)
	if len(lines) == 0 || len(missing) == 0 {
		return nil
	}
	at := lines[len(lines)-1].end
	for _, l := range lines {
		if paramTag.MatchString(l.text) || paramClose.MatchString(l.text) {
			at = l.end
		}
	}
	indent := format.IndentOf(n)
	var insert []syntax.Trivia
	for _, p := range missing {
		if indent != "" {
			insert = append(insert, syntax.Trivia{Kind: token.Whitespace, Text: indent})
		}
		insert = append(insert,
			syntax.Trivia{Kind: token.DocComment, Text: `/// <param name="` + p + `"></param>`},
			syntax.Newline)
	}
	out := slices.Insert(slices.Clone(ts), at, insert...)
	return target.Replace(syntax.WithLeadingTrivia(n, out))
}

// removeParamTags deletes the lines of param tags naming no parameter,
// through the line closing each tag.
func removeParamTags(target syntax.Cursor) *syntax.Node {
	n := target.Node()
	ts := syntax.LeadingTrivia(n)
	lines := docLines(ts)
	_, extra := compareParams(target, lines)
	if len(extra) == 0 {
		return nil
	}
	drop := make([]bool, len(ts))
	for i := 0; i < len(lines); i++ {
		m := paramTag.FindStringSubmatchIndex(lines[i].text)
		if m == nil || !slices.Contains(extra, lines[i].text[m[2]:m[3]]) {
			continue
		}
		last := i
		selfClosing := m[5] > m[4]
		if !selfClosing && !paramClose.MatchString(lines[i].text[m[1]:]) {
			for last < len(lines)-1 && !paramClose.MatchString(lines[last].text) {
				last++
			}
		}
		for j := lines[i].start; j < lines[last].end; j++ {
			drop[j] = true
		}
		i = last
	}
	var out []syntax.Trivia
	for i, t := range ts {
		if !drop[i] {
			out = append(out, t)
		}
	}
	return target.Replace(syntax.WithLeadingTrivia(n, out))
}
