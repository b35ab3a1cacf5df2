package docsedit

import "fmt"

// ErrInvalidArgument is returned when a caller-supplied parameter fails
// validation before anything is sent to the backend.
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("docsedit: invalid %s: %s", e.Field, e.Reason)
}

// ErrBackend is returned when the remote editing API rejects or fails a
// batch update.
type ErrBackend struct {
	Op    string
	Cause error
}

func (e *ErrBackend) Error() string {
	return fmt.Sprintf("docsedit: backend %s failed: %v", e.Op, e.Cause)
}

func (e *ErrBackend) Unwrap() error { return e.Cause }
