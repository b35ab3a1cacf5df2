// CLAUDE:SUMMARY Editor — performs forward mutations through the backend, captures before-state, records history, executes synthesized undo.
// Package docsedit is the tool layer over a Google-Docs-style editing API.
//
// The backend exposes only forward mutations (insert, delete, replace,
// format, structural inserts) and no undo primitive. Each Editor operation
// therefore captures whatever "before" state it can, performs the mutation,
// and records it with the history registry; Undo asks the registry for the
// synthesized reverse operation, executes it against the backend, and only
// then confirms with MarkUndone.
//
// Capture must happen before the mutation: once text is deleted from the
// remote document there is no way to recover it here.
package docsedit

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/hazyhaar/redline/audit"
	"github.com/hazyhaar/redline/history"
)

// Editor wraps a Backend and a history registry.
type Editor struct {
	backend  Backend
	registry *history.Registry
	logger   *slog.Logger
	audit    *audit.Logger
}

// Option customises an Editor.
type Option func(*Editor)

// WithLogger sets the operational logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// WithAudit attaches an audit trail. Nil disables auditing.
func WithAudit(a *audit.Logger) Option {
	return func(e *Editor) { e.audit = a }
}

// New creates an Editor.
func New(backend Backend, registry *history.Registry, opts ...Option) *Editor {
	e := &Editor{
		backend:  backend,
		registry: registry,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Registry exposes the underlying history registry (inspection surfaces,
// tests).
func (e *Editor) Registry() *history.Registry {
	return e.registry
}

// InsertText inserts text at index and records the operation.
func (e *Editor) InsertText(ctx context.Context, documentID string, index int, text string) (history.Record, error) {
	if index < 0 {
		return history.Record{}, &ErrInvalidArgument{Field: "index", Reason: "must be >= 0"}
	}
	if text == "" {
		return history.Record{}, &ErrInvalidArgument{Field: "text", Reason: "must not be empty"}
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{InsertTextRequest(index, text)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "insert", Cause: err}
	}

	rec := e.registry.Record(history.Op{
		DocumentID:    documentID,
		Kind:          history.KindInsert,
		Params:        map[string]any{"index": index, "text": text},
		StartIndex:    index,
		PositionShift: utf8.RuneCountInString(text),
	})
	e.auditRecord(ctx, rec)
	return rec, nil
}

// DeleteRange deletes [startIndex, endIndex) and records the operation. The
// text about to be deleted is read first so the delete can be undone; when
// the backend cannot serve the read, the delete still proceeds but the
// record is marked irreversible.
func (e *Editor) DeleteRange(ctx context.Context, documentID string, startIndex, endIndex int) (history.Record, error) {
	if err := validateRange(startIndex, endIndex); err != nil {
		return history.Record{}, err
	}

	op := history.Op{
		DocumentID:    documentID,
		Kind:          history.KindDelete,
		Params:        map[string]any{"start_index": startIndex, "end_index": endIndex},
		StartIndex:    startIndex,
		EndIndex:      &endIndex,
		PositionShift: -(endIndex - startIndex),
	}

	if deleted, ok := e.readRange(ctx, documentID, startIndex, endIndex); ok {
		op.DeletedText = &deleted
	} else {
		op.Reversibility = history.ReversibilityNone
		op.Note = "deleted text could not be captured before deletion"
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{DeleteRangeRequest(startIndex, endIndex)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "delete", Cause: err}
	}

	rec := e.registry.Record(op)
	e.auditRecord(ctx, rec)
	return rec, nil
}

// ReplaceRange replaces [startIndex, endIndex) with text and records the
// operation. The forward mutation is assembled the way the API expects:
// delete the range, then insert the new text at its start.
func (e *Editor) ReplaceRange(ctx context.Context, documentID string, startIndex, endIndex int, text string) (history.Record, error) {
	if err := validateRange(startIndex, endIndex); err != nil {
		return history.Record{}, err
	}

	op := history.Op{
		DocumentID: documentID,
		Kind:       history.KindReplace,
		Params:     map[string]any{"start_index": startIndex, "end_index": endIndex, "text": text},
		StartIndex: startIndex,
		EndIndex:   &endIndex,
	}

	if original, ok := e.readRange(ctx, documentID, startIndex, endIndex); ok {
		op.OriginalText = &original
		op.PositionShift = utf8.RuneCountInString(text) - utf8.RuneCountInString(original)
	} else {
		op.Reversibility = history.ReversibilityNone
		op.Note = "original text could not be captured before replacement"
		op.PositionShift = utf8.RuneCountInString(text) - (endIndex - startIndex)
	}

	reqs := []Request{
		DeleteRangeRequest(startIndex, endIndex),
		InsertTextRequest(startIndex, text),
	}
	if err := e.backend.BatchUpdate(ctx, documentID, reqs); err != nil {
		return history.Record{}, &ErrBackend{Op: "replace", Cause: err}
	}

	rec := e.registry.Record(op)
	e.auditRecord(ctx, rec)
	return rec, nil
}

// FormatText applies a text style over [startIndex, endIndex) and records
// the operation. The backend offers no way to read formatting back, so the
// caller may pass the original formatting it knows about; without it, the
// record is only partially reversible (the style change cannot be restored,
// and undo will report missing information).
func (e *Editor) FormatText(ctx context.Context, documentID string, startIndex, endIndex int, style, originalStyle map[string]any) (history.Record, error) {
	if err := validateRange(startIndex, endIndex); err != nil {
		return history.Record{}, err
	}
	if len(style) == 0 {
		return history.Record{}, &ErrInvalidArgument{Field: "style", Reason: "must set at least one style field"}
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{UpdateTextStyleRequest(startIndex, endIndex, style)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "format", Cause: err}
	}

	op := history.Op{
		DocumentID:         documentID,
		Kind:               history.KindFormat,
		Params:             map[string]any{"start_index": startIndex, "end_index": endIndex, "style": style},
		StartIndex:         startIndex,
		EndIndex:           &endIndex,
		OriginalFormatting: originalStyle,
	}
	if originalStyle == nil {
		op.Reversibility = history.ReversibilityPartial
		op.Note = "original formatting was not captured; undo cannot restore it"
	}

	rec := e.registry.Record(op)
	e.auditRecord(ctx, rec)
	return rec, nil
}

// InsertTable inserts a rows×columns table at index. Removing a table spans
// multiple structural elements, so the record is marked irreversible.
func (e *Editor) InsertTable(ctx context.Context, documentID string, index, rows, columns int) (history.Record, error) {
	if index < 0 {
		return history.Record{}, &ErrInvalidArgument{Field: "index", Reason: "must be >= 0"}
	}
	if rows < 1 || columns < 1 {
		return history.Record{}, &ErrInvalidArgument{Field: "rows/columns", Reason: "must be >= 1"}
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{InsertTableRequest(index, rows, columns)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "insert_table", Cause: err}
	}

	rec := e.registry.Record(history.Op{
		DocumentID:    documentID,
		Kind:          history.KindInsertTable,
		Params:        map[string]any{"index": index, "rows": rows, "columns": columns},
		StartIndex:    index,
		Reversibility: history.ReversibilityNone,
		Note:          "removing an inserted table is not supported; delete it manually",
	})
	e.auditRecord(ctx, rec)
	return rec, nil
}

// InsertPageBreak inserts a page break at index. Page breaks occupy a single
// position, so the record is fully reversible.
func (e *Editor) InsertPageBreak(ctx context.Context, documentID string, index int) (history.Record, error) {
	if index < 0 {
		return history.Record{}, &ErrInvalidArgument{Field: "index", Reason: "must be >= 0"}
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{InsertPageBreakRequest(index)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "insert_page_break", Cause: err}
	}

	rec := e.registry.Record(history.Op{
		DocumentID:    documentID,
		Kind:          history.KindInsertPageBreak,
		Params:        map[string]any{"index": index},
		StartIndex:    index,
		PositionShift: 1,
	})
	e.auditRecord(ctx, rec)
	return rec, nil
}

// FindReplace replaces all occurrences of findText with replaceText. The
// matched locations are not reported by the API, so the record is marked
// irreversible.
func (e *Editor) FindReplace(ctx context.Context, documentID, findText, replaceText string, matchCase bool) (history.Record, error) {
	if findText == "" {
		return history.Record{}, &ErrInvalidArgument{Field: "find_text", Reason: "must not be empty"}
	}

	if err := e.backend.BatchUpdate(ctx, documentID, []Request{ReplaceAllTextRequest(findText, replaceText, matchCase)}); err != nil {
		return history.Record{}, &ErrBackend{Op: "find_replace", Cause: err}
	}

	rec := e.registry.Record(history.Op{
		DocumentID:    documentID,
		Kind:          history.KindFindReplace,
		Params:        map[string]any{"find_text": findText, "replace_text": replaceText, "match_case": matchCase},
		Reversibility: history.ReversibilityNone,
		Note:          "global find-and-replace touches untracked locations and cannot be undone",
	})
	e.auditRecord(ctx, rec)
	return rec, nil
}

// Undo reverses the most recent undoable operation on the document. The
// registry synthesizes the reverse op; the editor executes it against the
// backend and confirms with MarkUndone. Registry-level failures (no history,
// nothing undoable, missing capture data) come back as an unsuccessful
// result; only backend execution failures surface as errors, leaving the
// record not-undone so the caller may retry.
func (e *Editor) Undo(ctx context.Context, documentID string) (history.UndoResult, error) {
	res := e.registry.Undo(documentID)
	if !res.Success {
		return res, nil
	}

	reqs, err := requestsForReverse(res.Reverse)
	if err != nil {
		return history.UndoResult{}, err
	}
	if err := e.backend.BatchUpdate(ctx, documentID, reqs); err != nil {
		e.auditEvent(ctx, documentID, res.OperationID, "undo", string(res.Reverse.Kind), false)
		return history.UndoResult{}, &ErrBackend{Op: "undo", Cause: err}
	}

	e.registry.MarkUndone(documentID, res.OperationID)
	e.auditEvent(ctx, documentID, res.OperationID, "undo", string(res.Reverse.Kind), true)
	return res, nil
}

// ClearHistory drops the tracked history for a document, making undo
// unavailable for its past operations.
func (e *Editor) ClearHistory(ctx context.Context, documentID string) bool {
	cleared := e.registry.Clear(documentID)
	if cleared {
		e.auditEvent(ctx, documentID, "", "clear", "", true)
	}
	return cleared
}

// requestsForReverse translates a synthesized reverse operation into the
// batchUpdate requests that execute it. Replace follows the same
// delete-then-insert assembly as the forward path.
func requestsForReverse(rev *history.ReverseOp) ([]Request, error) {
	switch rev.Kind {
	case history.KindInsert:
		return []Request{InsertTextRequest(rev.StartIndex, rev.Text)}, nil
	case history.KindDelete:
		if rev.EndIndex == nil {
			return nil, fmt.Errorf("docsedit: reverse delete without end index")
		}
		return []Request{DeleteRangeRequest(rev.StartIndex, *rev.EndIndex)}, nil
	case history.KindReplace:
		if rev.EndIndex == nil {
			return nil, fmt.Errorf("docsedit: reverse replace without end index")
		}
		return []Request{
			DeleteRangeRequest(rev.StartIndex, *rev.EndIndex),
			InsertTextRequest(rev.StartIndex, rev.Text),
		}, nil
	case history.KindFormat:
		if rev.EndIndex == nil {
			return nil, fmt.Errorf("docsedit: reverse format without end index")
		}
		return []Request{UpdateTextStyleRequest(rev.StartIndex, *rev.EndIndex, rev.Formatting)}, nil
	default:
		return nil, fmt.Errorf("docsedit: unknown reverse operation kind %q", rev.Kind)
	}
}

// readRange captures the text currently in a range, reporting false when the
// backend cannot serve reads or the read fails.
func (e *Editor) readRange(ctx context.Context, documentID string, startIndex, endIndex int) (string, bool) {
	rr, ok := e.backend.(RangeReader)
	if !ok {
		return "", false
	}
	text, err := rr.ReadRange(ctx, documentID, startIndex, endIndex)
	if err != nil {
		e.logger.Warn("docsedit: before-state capture failed",
			"document_id", documentID, "start_index", startIndex, "end_index", endIndex, "error", err)
		return "", false
	}
	return text, true
}

func validateRange(startIndex, endIndex int) error {
	if startIndex < 0 {
		return &ErrInvalidArgument{Field: "start_index", Reason: "must be >= 0"}
	}
	if endIndex < startIndex {
		return &ErrInvalidArgument{Field: "end_index", Reason: "must be >= start_index"}
	}
	return nil
}

func (e *Editor) auditRecord(ctx context.Context, rec history.Record) {
	e.auditEvent(ctx, rec.DocumentID, rec.ID, "record", string(rec.Kind), true)
}

func (e *Editor) auditEvent(ctx context.Context, documentID, operationID, action, kind string, success bool) {
	e.audit.LogEvent(ctx, audit.Event{
		DocumentID:  documentID,
		OperationID: operationID,
		Action:      action,
		Kind:        kind,
		Success:     success,
	})
}
