package history

import (
	"sync"
	"time"
)

// documentLog is the ordered, size-bounded record sequence for one document.
// Insertion order is chronological order: the registry trusts the caller to
// record mutations in the order they were applied to the document.
type documentLog struct {
	mu      sync.Mutex
	records []*Record
	maxSize int
}

func newDocumentLog(maxSize int) *documentLog {
	return &documentLog{maxSize: maxSize}
}

// append adds a record to the end of the log. When the cap is exceeded the
// oldest records are discarded; losing old history is an expected outcome,
// not an error, so append always succeeds.
func (l *documentLog) append(r *Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, r)
	if len(l.records) > l.maxSize {
		excess := len(l.records) - l.maxSize
		l.records = l.records[excess:]
	}
}

// lastUndoable returns the most recent record that has not been undone and
// is not marked irreversible, or nil. Linear scan bounded by the cap.
func (l *documentLog) lastUndoable() *Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if !r.Undone && r.Reversibility != ReversibilityNone {
			return r
		}
	}
	return nil
}

// recent returns value copies of the last limit records, most recent first.
func (l *documentLog) recent(limit int) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit > len(l.records) {
		limit = len(l.records)
	}
	out := make([]Record, 0, limit)
	for i := len(l.records) - 1; i >= len(l.records)-limit; i-- {
		out = append(out, l.records[i].clone())
	}
	return out
}

// markUndone flips the undone flag on the record with the given ID. The
// flag is monotonic: marking an already-undone record is a no-op that still
// reports success.
func (l *documentLog) markUndone(operationID string, at time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.records {
		if r.ID != operationID {
			continue
		}
		if !r.Undone {
			r.Undone = true
			r.UndoneAt = &at
		}
		return true
	}
	return false
}

// clear empties the log. Idempotent.
func (l *documentLog) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// len returns the current record count.
func (l *documentLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// countUndone returns how many records have been undone.
func (l *documentLog) countUndone() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if r.Undone {
			n++
		}
	}
	return n
}
