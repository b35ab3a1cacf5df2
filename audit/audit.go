// CLAUDE:SUMMARY SQLite audit trail for document-edit events — record/undo/clear rows, non-blocking writes.
// Package audit records document-edit events to SQLite. The trail is an
// observability surface, not a source of truth: the history registry never
// reads it back, and a failing audit store must never block editing.
package audit

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hazyhaar/redline/dbopen"
	"github.com/hazyhaar/redline/idgen"
)

const schema = `
CREATE TABLE IF NOT EXISTS edit_audit_log (
	event_id     TEXT PRIMARY KEY,
	document_id  TEXT NOT NULL,
	operation_id TEXT,
	action       TEXT NOT NULL,
	kind         TEXT,
	details      TEXT,
	success      INTEGER NOT NULL,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edit_audit_doc ON edit_audit_log(document_id, created_at);
`

// Event is one document-edit event to record.
type Event struct {
	DocumentID  string
	OperationID string
	Action      string // "record", "undo", "clear"
	Kind        string
	Details     string // optional JSON
	Success     bool
}

// Logger writes edit events to the audit database.
type Logger struct {
	db    *sql.DB
	newID idgen.Generator
}

// Option configures a Logger.
type Option func(*Logger)

// WithIDGenerator sets a custom ID generator for event IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(l *Logger) { l.newID = gen }
}

// NewLogger creates a Logger backed by the given database.
func NewLogger(db *sql.DB, opts ...Option) *Logger {
	l := &Logger{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Init creates the audit schema. Idempotent.
func (l *Logger) Init() error {
	_, err := l.db.Exec(schema)
	return err
}

// LogEvent records an edit event. Non-blocking: errors are logged via slog
// but do not propagate.
func (l *Logger) LogEvent(ctx context.Context, e Event) {
	if l == nil {
		return
	}
	_, err := dbopen.Exec(ctx, l.db, `
		INSERT INTO edit_audit_log (
			event_id, document_id, operation_id, action, kind, details, success, created_at
		) VALUES (?,?,?,?,?,?,?,?)`,
		l.newID(), e.DocumentID, e.OperationID, e.Action, e.Kind, e.Details, e.Success, time.Now().Unix())
	if err != nil {
		slog.Warn("audit: event log failed", "error", err, "action", e.Action, "document_id", e.DocumentID)
	}
}

// CountByDocument returns how many events exist for a document.
func (l *Logger) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM edit_audit_log WHERE document_id = ?", documentID).Scan(&n)
	return n, err
}
