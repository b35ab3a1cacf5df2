package history

import "time"

// Kind identifies a forward mutation type. The set is closed: adding a new
// kind is a decision about reversibility and requires a case in Reverse.
type Kind string

const (
	KindInsert          Kind = "insert"
	KindDelete          Kind = "delete"
	KindReplace         Kind = "replace"
	KindFormat          Kind = "format"
	KindInsertTable     Kind = "insert_table"
	KindInsertPageBreak Kind = "insert_page_break"
	KindFindReplace     Kind = "find_replace"
)

// Reversibility indicates how well a recorded operation can be undone. It is
// set at record time by the caller, based on what "before" data it captured.
type Reversibility string

const (
	// ReversibilityFull means the operation can be fully reversed.
	ReversibilityFull Reversibility = "full"
	// ReversibilityPartial means some aspects will not be restored
	// (for example text but not formatting).
	ReversibilityPartial Reversibility = "partial"
	// ReversibilityNone means the operation cannot be undone.
	ReversibilityNone Reversibility = "none"
)

// Record is a snapshot of one applied mutation plus the side information
// required to reverse it. It is immutable after creation except for the
// Undone/UndoneAt pair, which the registry sets exactly once when the caller
// confirms the reverse operation was executed.
//
// Timestamps marshal as RFC 3339 and absent optional fields are omitted from
// the JSON form; that view is the interchange format with the tool layer.
type Record struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
	Kind       Kind      `json:"kind"`

	// Params holds the arguments the forward mutation was invoked with.
	// The payload is kind-specific and opaque to the registry; the
	// synthesizer only reads params["text"].
	Params map[string]any `json:"params,omitempty"`

	// Position range touched by the mutation, 0-based, end exclusive, in
	// the document's native addressing.
	StartIndex int  `json:"start_index"`
	EndIndex   *int `json:"end_index,omitempty"`

	// PositionShift is the net change in document length caused by the
	// mutation. Informational: callers use it to re-anchor later
	// operations, the synthesizer never reads it.
	PositionShift int `json:"position_shift"`

	// Before-state captured by the caller prior to the mutation. Presence
	// of these fields is the sole determinant of whether delete, replace
	// and format records can be reversed.
	DeletedText        *string        `json:"deleted_text,omitempty"`
	OriginalText       *string        `json:"original_text,omitempty"`
	OriginalFormatting map[string]any `json:"original_formatting,omitempty"`

	Reversibility Reversibility `json:"reversibility"`
	Note          string        `json:"reversibility_note,omitempty"`

	Undone   bool       `json:"undone"`
	UndoneAt *time.Time `json:"undone_at,omitempty"`
}

// clone returns a value copy of the record. Map and pointer payloads are
// shared; they are never mutated after creation.
func (r *Record) clone() Record {
	return *r
}

// Op is the input to Registry.Record: one applied mutation and whatever
// before-state the caller managed to capture. Optional fields are pointers
// so that absence is distinguishable from the zero value. A zero
// Reversibility means full.
type Op struct {
	DocumentID string
	Kind       Kind
	Params     map[string]any

	StartIndex    int
	EndIndex      *int
	PositionShift int

	DeletedText        *string
	OriginalText       *string
	OriginalFormatting map[string]any

	Reversibility Reversibility
	Note          string
}

// ReverseOp describes the mutation that would undo a recorded operation.
// The registry never executes it; the caller runs it against the backend
// and then confirms with MarkUndone.
type ReverseOp struct {
	Kind        Kind           `json:"kind"`
	StartIndex  int            `json:"start_index"`
	EndIndex    *int           `json:"end_index,omitempty"`
	Text        string         `json:"text,omitempty"`
	Formatting  map[string]any `json:"formatting,omitempty"`
	Description string         `json:"description"`
}

// UndoResult is the structured outcome of an undo request. Every failure
// mode lands here as an unsuccessful result; nothing escalates to an error.
type UndoResult struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	OperationID string     `json:"operation_id,omitempty"`
	Reverse     *ReverseOp `json:"reverse_operation,omitempty"`
	Note        string     `json:"note,omitempty"`
	Err         string     `json:"error,omitempty"`
}

// Stats summarises tracked history across all documents.
type Stats struct {
	DocumentsTracked      int            `json:"documents_tracked"`
	TotalOperations       int            `json:"total_operations"`
	UndoneOperations      int            `json:"undone_operations"`
	OperationsPerDocument map[string]int `json:"operations_per_document"`
}
