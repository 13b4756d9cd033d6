package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// UnifiedDiff returns a line diff of before and after in unified format,
// or "" when they are equal.
func UnifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		for _, l := range splitLines(d.Text) {
			all = append(all, diffLine{op: d.Type, text: l})
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range hunks(all) {
		writeHunk(&sb, all, h)
	}
	return sb.String()
}

// splitLines splits text after each newline, keeping the newline.
func splitLines(text string) []string {
	var out []string
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, text)
			break
		}
		out = append(out, text[:i+1])
		text = text[i+1:]
	}
	return out
}

type hunk struct{ start, end int }

// hunks groups changed lines with their context; hunks whose context
// overlaps are merged.
func hunks(lines []diffLine) []hunk {
	var out []hunk
	for i, l := range lines {
		if l.op == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(0, i-diffContext)
		end := min(len(lines), i+diffContext+1)
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, hunk{start, end})
	}
	return out
}

func writeHunk(sb *strings.Builder, lines []diffLine, h hunk) {
	// Line numbers of the hunk start in the old and new text.
	oldLine, newLine := 1, 1
	for _, l := range lines[:h.start] {
		if l.op != diffmatchpatch.DiffInsert {
			oldLine++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newLine++
		}
	}
	var oldCount, newCount int
	var body strings.Builder
	for _, l := range lines[h.start:h.end] {
		prefix := " "
		switch l.op {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
			oldCount++
		case diffmatchpatch.DiffInsert:
			prefix = "+"
			newCount++
		default:
			oldCount++
			newCount++
		}
		body.WriteString(prefix + l.text)
		if !strings.HasSuffix(l.text, "\n") {
			body.WriteString("\n\\ No newline at end of file\n")
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldLine, oldCount, newLine, newCount)
	sb.WriteString(body.String())
}

// Diff writes a unified diff, coloring added and removed lines in text mode.
func (r *Renderer) Diff(diff string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("```diff\n%s```\n", diff)
		return
	}
	for _, l := range splitLines(diff) {
		line := strings.TrimSuffix(l, "\n")
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			r.Println(r.styles.Bold.Render(line))
		case strings.HasPrefix(line, "+"):
			r.Println(r.styles.Added.Render(line))
		case strings.HasPrefix(line, "-"):
			r.Println(r.styles.Removed.Render(line))
		case strings.HasPrefix(line, "@@"):
			r.Println(r.styles.Info.Render(line))
		default:
			r.Println(line)
		}
	}
}
