package domain

import (
	"errors"
	"fmt"
)

// Expected outcomes callers must branch on. Checked with errors.Is.
var (
	// ErrNotFound covers both "document absent" and "document inactive"
	// wherever reads are activity-gated.
	ErrNotFound = errors.New("record not found")

	// ErrRoutineEntryNotFound: the routine exists but holds no entry with
	// the given exercise id.
	ErrRoutineEntryNotFound = errors.New("exercise entry not found in routine")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCredentialNotFound = errors.New("credential not found")
)

// StoreError wraps an unexpected fault from the document store or a
// credential provider. It is terminal: callers propagate it, they do not
// branch on it.
type StoreError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store: %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError keeps call sites short.
func NewStoreError(op, collection, id string, err error) *StoreError {
	return &StoreError{Op: op, Collection: collection, ID: id, Err: err}
}
