package docsedit

import "context"

// Request is one entry of a batchUpdate request body for a Google-Docs-style
// editing API, assembled by the builders in request.go.
type Request map[string]any

// Backend is the remote document-editing API. It only exposes forward
// mutations; undo is synthesized locally from recorded history.
type Backend interface {
	// BatchUpdate applies the requests to the document in order.
	BatchUpdate(ctx context.Context, documentID string, reqs []Request) error
}

// RangeReader is an optional backend capability: reading the text currently
// in a range. The editor uses it to capture "before" state ahead of deletes
// and replaces; without it, those operations are recorded as irreversible,
// since the text cannot be recovered after the fact.
type RangeReader interface {
	ReadRange(ctx context.Context, documentID string, startIndex, endIndex int) (string, error)
}
