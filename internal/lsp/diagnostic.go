package lsp

import (
	"errors"
	"path/filepath"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/lint"
	"github.com/leapstack-labs/sharplint/pkg/parser"
	"github.com/leapstack-labs/sharplint/pkg/token"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

const diagnosticSource = "sharplint"

// snapshot is the analysis of one version of an open document. Code
// actions are computed from it so that fixes apply to the tree the
// diagnostics were reported on.
type snapshot struct {
	doc      *Document
	parsed   workspace.Document // zero when the text does not parse
	project  workspace.Project  // the project parsed was bound in
	diags    []lint.Diagnostic
	parseErr error
}

// publishDiagnostics analyzes an open document and publishes the result.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	snap := s.analyze(doc)
	s.snapMu.Lock()
	s.snapshots[uri] = snap
	s.snapMu.Unlock()

	diagnostics := snap.lspDiagnostics()
	s.logger.Debug("Publishing diagnostics", "uri", uri, "count", len(diagnostics))
	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// analyze parses doc and runs the engine over it. The document is bound
// together with the project on disk, in which other open documents
// replace their saved versions.
func (s *Server) analyze(doc *Document) *snapshot {
	snap := &snapshot{doc: doc}
	path := URIToPath(doc.URI)
	parsed, err := workspace.NewDocument(path, doc.Content)
	if err != nil {
		snap.parseErr = err
		return snap
	}
	if old, ok := s.projectDocument(path); ok {
		parsed.ID = old.ID
	}
	snap.parsed = parsed
	snap.project = s.overlay(parsed)
	snap.diags = workspace.AnalyzeDocument(snap.project.Compilation(), parsed, s.engine).Diagnostics
	return snap
}

func (s *Server) projectDocument(path string) (workspace.Document, bool) {
	for _, d := range s.project.Documents {
		if samePath(d.Path, path) {
			return d, true
		}
	}
	return workspace.Document{}, false
}

// overlay returns the project with doc and the parsed versions of the
// other open documents in place of their files.
func (s *Server) overlay(doc workspace.Document) workspace.Project {
	open := map[string]workspace.Document{filepath.Clean(doc.Path): doc}
	s.snapMu.Lock()
	for _, snap := range s.snapshots {
		if snap.parsed.Tree == nil {
			continue
		}
		key := filepath.Clean(snap.parsed.Path)
		if _, ok := open[key]; !ok {
			open[key] = snap.parsed
		}
	}
	s.snapMu.Unlock()

	project := workspace.NewProject(s.project.Name)
	for _, d := range s.project.Documents {
		key := filepath.Clean(d.Path)
		if o, ok := open[key]; ok {
			d = o
			delete(open, key)
		}
		project.Documents = append(project.Documents, d)
	}
	if o, ok := open[filepath.Clean(doc.Path)]; ok {
		project.Documents = append(project.Documents, o)
		delete(open, filepath.Clean(doc.Path))
	}
	for _, o := range open {
		project.Documents = append(project.Documents, o)
	}
	return project
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// lspDiagnostics converts the snapshot's findings. A document that does
// not parse reports its syntax errors instead.
func (snap *snapshot) lspDiagnostics() []Diagnostic {
	if snap.parseErr != nil {
		return parseErrorDiagnostics(snap.doc, snap.parseErr)
	}
	out := make([]Diagnostic, 0, len(snap.diags))
	for _, d := range snap.diags {
		out = append(out, toLSPDiagnostic(snap.doc, d))
	}
	return out
}

// toLSPDiagnostic converts a lint diagnostic to an LSP diagnostic.
func toLSPDiagnostic(doc *Document, d lint.Diagnostic) Diagnostic {
	out := Diagnostic{
		Range:    doc.Range(d.Span.Start, d.Span.End),
		Severity: toLSPSeverity(d.Severity),
		Code:     d.RuleID(),
		Source:   diagnosticSource,
		Message:  d.Message,
	}
	if link := d.HelpLink(); link != "" {
		out.CodeDescription = &CodeDescription{Href: link}
	}
	return out
}

// toLSPSeverity converts core.Severity to LSP DiagnosticSeverity.
func toLSPSeverity(s core.Severity) DiagnosticSeverity {
	switch s {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	case core.SeverityInfo:
		return DiagnosticSeverityInformation
	default:
		return DiagnosticSeverityHint
	}
}

// parseErrorDiagnostics converts syntax errors to LSP diagnostics. Each
// covers the character at the error position.
func parseErrorDiagnostics(doc *Document, err error) []Diagnostic {
	var errs []error
	var list parser.ErrorList
	if errors.As(err, &list) {
		errs = list
	} else {
		errs = []error{err}
	}

	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		pos, msg := errorPosition(e)
		start := doc.OffsetToPosition(pos.Offset)
		end := start
		if int(start.Character) < utf16Len(doc.GetLine(int(start.Line))) {
			end.Character++
		}
		out = append(out, Diagnostic{
			Range:    Range{Start: start, End: end},
			Severity: DiagnosticSeverityError,
			Source:   diagnosticSource,
			Message:  msg,
		})
	}
	return out
}

func errorPosition(err error) (token.Position, string) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Pos, pe.Message
	}
	var le *parser.LexError
	if errors.As(err, &le) {
		return le.Pos, le.Message
	}
	return token.Position{}, err.Error()
}
