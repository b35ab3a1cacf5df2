// CLAUDE:SUMMARY HistoryRegistry orchestrator — per-document logs, record/undo/mark-undone/history/clear/stats.
// Package history tracks forward mutations applied to remote documents and
// synthesizes the reverse operations needed to undo them.
//
// The underlying editing API exposes only forward mutations and no undo
// primitive, so undo here works by compensation: the tool layer captures
// "before" state, performs the mutation, then records it; later it asks the
// registry for the reverse operation, executes that against the backend, and
// confirms with MarkUndone. The registry itself never talks to the backend
// and never computes diffs from document content.
//
// History is in-memory and per-process. It is lost on restart, and edits
// made outside the recording tool layer are invisible to it.
//
// Usage:
//
//	reg := history.NewRegistry(history.Config{})
//	rec := reg.Record(history.Op{DocumentID: doc, Kind: history.KindInsert, ...})
//	res := reg.Undo(doc)           // returns the reverse op, does not execute it
//	reg.MarkUndone(doc, res.OperationID) // after the caller executed it
package history

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hazyhaar/redline/idgen"
)

// DefaultMaxPerDocument is the retention cap applied to each document's log
// when the config does not set one.
const DefaultMaxPerDocument = 50

// Config configures a Registry.
type Config struct {
	// MaxPerDocument caps how many records are retained per document;
	// older records are evicted FIFO (default: 50).
	MaxPerDocument int `json:"max_per_document" yaml:"max_per_document"`

	// Logger for operational messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxPerDocument <= 0 {
		c.MaxPerDocument = DefaultMaxPerDocument
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Registry owns one bounded operation log per document and is the single
// point all callers interact with. Safe for concurrent use: the document map
// is guarded by an RWMutex, each log by its own mutex, and ID allocation is
// atomic, so operations on different documents do not block each other.
//
// There is no ambient singleton: construct one Registry at process start and
// thread it through; test isolation is simply a fresh instance.
type Registry struct {
	mu   sync.RWMutex
	logs map[string]*documentLog

	newID     idgen.Generator
	maxPerDoc int
	logger    *slog.Logger
}

// Option customises a Registry.
type Option func(*Registry)

// WithIDGenerator overrides the operation ID generator (tests mostly).
func WithIDGenerator(gen idgen.Generator) Option {
	return func(r *Registry) { r.newID = gen }
}

// NewRegistry creates a Registry. IDs carry a timestamp prefix for human
// readability plus a monotonic counter that keeps them unique even across
// calls within the same second.
func NewRegistry(cfg Config, opts ...Option) *Registry {
	cfg.defaults()
	r := &Registry{
		logs:      make(map[string]*documentLog),
		newID:     idgen.Sequential("op_"),
		maxPerDoc: cfg.MaxPerDocument,
		logger:    cfg.Logger,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// lookup returns the document's log, or nil if none was ever created.
func (r *Registry) lookup(documentID string) *documentLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logs[documentID]
}

// getOrCreate returns the document's log, creating it lazily on first use.
func (r *Registry) getOrCreate(documentID string) *documentLog {
	if l := r.lookup(documentID); l != nil {
		return l
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.logs[documentID]; ok {
		return l
	}
	l := newDocumentLog(r.maxPerDoc)
	r.logs[documentID] = l
	return l
}

// Record captures one applied mutation and appends it to the document's log,
// creating the log if absent. It always succeeds and returns a value
// snapshot of the new record; later mark-undone calls do not alter the
// returned copy.
func (r *Registry) Record(op Op) Record {
	rev := op.Reversibility
	if rev == "" {
		rev = ReversibilityFull
	}

	rec := &Record{
		ID:                 r.newID(),
		DocumentID:         op.DocumentID,
		CreatedAt:          time.Now().UTC(),
		Kind:               op.Kind,
		Params:             op.Params,
		StartIndex:         op.StartIndex,
		EndIndex:           op.EndIndex,
		PositionShift:      op.PositionShift,
		DeletedText:        op.DeletedText,
		OriginalText:       op.OriginalText,
		OriginalFormatting: op.OriginalFormatting,
		Reversibility:      rev,
		Note:               op.Note,
	}

	r.getOrCreate(op.DocumentID).append(rec)
	r.logger.Info("history: recorded operation",
		"operation_id", rec.ID, "kind", rec.Kind, "document_id", op.DocumentID)
	return rec.clone()
}

// Undo locates the most recent undoable record for the document, synthesizes
// its reverse operation and returns it. The registry does not mark the
// record undone: it has not executed anything. The caller runs the reverse
// op against the backend and only then calls MarkUndone.
func (r *Registry) Undo(documentID string) UndoResult {
	l := r.lookup(documentID)
	if l == nil {
		return UndoResult{
			Success: false,
			Message: "no history found for this document",
			Err:     "no operations have been tracked for this document",
		}
	}

	rec := l.lastUndoable()
	if rec == nil {
		return UndoResult{
			Success: false,
			Message: "no undoable operations found",
			Err:     "all operations have been undone or cannot be undone",
		}
	}

	// lastUndoable skips irreversible records; this guard stays for the
	// contract's sake should the scan ever change.
	if rec.Reversibility == ReversibilityNone {
		errMsg := rec.Note
		if errMsg == "" {
			errMsg = "this operation type does not support undo"
		}
		return UndoResult{
			Success:     false,
			Message:     fmt.Sprintf("operation %s cannot be undone", rec.ID),
			OperationID: rec.ID,
			Err:         errMsg,
		}
	}

	reverse, ok := Reverse(rec)
	if !ok {
		return UndoResult{
			Success:     false,
			Message:     fmt.Sprintf("could not generate undo for operation %s", rec.ID),
			OperationID: rec.ID,
			Err:         "missing information required for undo",
		}
	}

	res := UndoResult{
		Success:     true,
		Message:     fmt.Sprintf("generated undo for %s", rec.Kind),
		OperationID: rec.ID,
		Reverse:     reverse,
	}
	if rec.Reversibility == ReversibilityPartial {
		res.Note = rec.Note
		if res.Note == "" {
			res.Note = "partial undo: some aspects may not be reversed"
		}
	}
	return res
}

// MarkUndone records that the reverse operation for the given record was
// executed against the backend. Returns false when the document or the ID is
// unknown; that is an outcome, not an error. Idempotent: marking twice
// re-confirms without touching state.
func (r *Registry) MarkUndone(documentID, operationID string) bool {
	l := r.lookup(documentID)
	if l == nil {
		return false
	}
	if !l.markUndone(operationID, time.Now().UTC()) {
		return false
	}
	r.logger.Info("history: marked operation undone",
		"operation_id", operationID, "document_id", documentID)
	return true
}

// History returns up to limit records for the document, most recent first.
// A limit of zero or less falls back to 10. When includeUndone is false,
// undone records are filtered out of the already-limited window, matching
// the log's recency semantics: the limit applies before the filter.
func (r *Registry) History(documentID string, limit int, includeUndone bool) []Record {
	if limit <= 0 {
		limit = 10
	}
	l := r.lookup(documentID)
	if l == nil {
		return []Record{}
	}

	records := l.recent(limit)
	if includeUndone {
		return records
	}
	kept := records[:0]
	for _, rec := range records {
		if !rec.Undone {
			kept = append(kept, rec)
		}
	}
	return kept
}

// Clear empties the document's log and reports whether one existed. The log
// itself stays registered for the registry's lifetime.
func (r *Registry) Clear(documentID string) bool {
	l := r.lookup(documentID)
	if l == nil {
		return false
	}
	l.clear()
	r.logger.Info("history: cleared document history", "document_id", documentID)
	return true
}

// Stats reports aggregate counts over all tracked documents. Purely derived,
// no side effects.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		DocumentsTracked:      len(r.logs),
		OperationsPerDocument: make(map[string]int, len(r.logs)),
	}
	for id, l := range r.logs {
		n := l.len()
		stats.TotalOperations += n
		stats.UndoneOperations += l.countUndone()
		stats.OperationsPerDocument[id] = n
	}
	return stats
}
