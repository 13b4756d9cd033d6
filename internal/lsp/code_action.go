package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/leapstack-labs/sharplint/pkg/core"
	"github.com/leapstack-labs/sharplint/pkg/fix"
	"github.com/leapstack-labs/sharplint/pkg/fix/fixall"
	"github.com/leapstack-labs/sharplint/pkg/workspace"
)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(ctx context.Context, msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(ctx, params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions returns one quick fix per fix action of every diagnostic
// in the requested range, a quick fix per rule fixing the whole document
// when the rule is reported more than once, and a source action fixing
// every fixable diagnostic of the document.
func (s *Server) getCodeActions(ctx context.Context, params CodeActionParams) []CodeAction {
	s.snapMu.Lock()
	snap := s.snapshots[params.TextDocument.URI]
	s.snapMu.Unlock()
	actions := []CodeAction{}
	if snap == nil || snap.parseErr != nil {
		return actions
	}
	uri := params.TextDocument.URI

	if requested(params.Context.Only, CodeActionKindQuickFix) {
		fixAllOffered := map[string]bool{}
		for _, d := range snap.diags {
			diag := toLSPDiagnostic(snap.doc, d)
			if !diag.Range.Overlaps(params.Range) {
				continue
			}
			fixes := fix.Fixes(d, snap.parsed.Tree.Root)
			for _, a := range fixes {
				out, err := fix.Apply(ctx, snap.parsed, a)
				if err != nil {
					s.logger.Debug("Fix failed", "rule", d.RuleID(), "title", a.Title, "error", err)
					continue
				}
				actions = append(actions, CodeAction{
					Title:       a.Title,
					Kind:        CodeActionKindQuickFix,
					Diagnostics: []Diagnostic{diag},
					IsPreferred: len(fixes) == 1,
					Edit:        snap.edit(uri, out.Text()),
				})
			}

			id := d.RuleID()
			if len(fixes) == 0 || fixAllOffered[id] || snap.count(id) < 2 {
				continue
			}
			fixAllOffered[id] = true
			if text, ok := s.fixAll(ctx, snap, id); ok {
				actions = append(actions, CodeAction{
					Title:       fmt.Sprintf("Fix all %s issues in this document", id),
					Kind:        CodeActionKindQuickFix,
					Diagnostics: []Diagnostic{diag},
					Edit:        snap.edit(uri, text),
				})
			}
		}
	}

	if requested(params.Context.Only, CodeActionKindSourceFixAll) {
		if text, ok := s.fixAll(ctx, snap, snap.fixableRules()...); ok {
			actions = append(actions, CodeAction{
				Title: "Fix all sharplint issues",
				Kind:  CodeActionKindSourceFixAll,
				Edit:  snap.edit(uri, text),
			})
		}
	}
	return actions
}

// requested reports whether kind passes the client's filter.
func requested(only []CodeActionKind, kind CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, o := range only {
		if kind == o || strings.HasPrefix(string(kind), string(o)+".") {
			return true
		}
	}
	return false
}

func (snap *snapshot) count(ruleID string) int {
	n := 0
	for _, d := range snap.diags {
		if d.RuleID() == ruleID {
			n++
		}
	}
	return n
}

// fixableRules returns the ids of the reported rules that have a fix, in
// order of first report.
func (snap *snapshot) fixableRules() []string {
	var ids []string
	for _, d := range snap.diags {
		if id := d.RuleID(); fix.Fixable(id) && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// fixAll runs the batch fixer over the snapshot's document for each rule
// in turn and returns the resulting text. It reports false when nothing
// changed.
func (s *Server) fixAll(ctx context.Context, snap *snapshot, ruleIDs ...string) (string, bool) {
	coord := fixall.New(s.engine, s.logger)
	sol := workspace.NewSolution(snap.project)
	for _, id := range ruleIDs {
		out, _, err := coord.Fix(ctx, sol, fixall.Request{
			Scope:    core.ScopeDocument,
			Document: snap.parsed.ID,
			RuleID:   id,
		})
		if err != nil {
			s.logger.Debug("Fix all failed", "rule", id, "error", err)
			continue
		}
		sol = out
	}
	doc, _, ok := sol.Document(snap.parsed.ID)
	if !ok {
		return "", false
	}
	text := doc.Text()
	return text, text != snap.doc.Content
}

// edit returns a workspace edit turning the snapshot's text into text.
func (snap *snapshot) edit(uri, text string) *WorkspaceEdit {
	return &WorkspaceEdit{Changes: map[string][]TextEdit{uri: textEdits(snap.doc, text)}}
}

// textEdits diffs the document content against text and returns the
// changed regions as edits on the original content.
func textEdits(doc *Document, text string) []TextEdit {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(doc.Content, text, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	edits := []TextEdit{}
	offset := 0
	var pending *TextEdit
	pendingStart := 0
	flush := func() {
		if pending != nil {
			pending.Range = doc.Range(pendingStart, offset)
			edits = append(edits, *pending)
			pending = nil
		}
	}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			offset += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if pending == nil {
				pending, pendingStart = &TextEdit{}, offset
			}
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			if pending == nil {
				pending, pendingStart = &TextEdit{}, offset
			}
			pending.NewText += d.Text
		}
	}
	flush()
	return edits
}
