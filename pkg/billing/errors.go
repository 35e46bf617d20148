// Package billing owns the quotation lifecycle: document numbering, edits,
// status transitions, and the project/invoice pair derived when a quotation
// is accepted. All storage access goes through an injected *gorm.DB; the
// package keeps no process-wide state.
package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers translate into HTTP status codes.
var (
	// ErrNotFound: the referenced document is absent or outside the
	// acting user's scope. Nothing was persisted.
	ErrNotFound = errors.New("document not found")

	// ErrConflict: a concurrent writer got there first (stale update or
	// duplicate materialization). Callers should refetch and retry.
	ErrConflict = errors.New("document changed concurrently")
)

// ValidationError reports bad input. Nothing was persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransientError wraps infrastructure failures (begin/commit, counter
// increment). The whole operation is safe to retry; no partial state
// survives a transient failure.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func transientf(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransient reports whether err is safe to retry wholesale.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
