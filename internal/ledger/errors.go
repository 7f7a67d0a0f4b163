package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the facade. Each maps to a distinct
// user-facing message at the dispatcher boundary.
var (
	// ErrNotFound reports an edit whose target id is absent.
	ErrNotFound = errors.New("expense not found")
	// ErrNotOwner reports an edit by anyone but the record's submitter.
	ErrNotOwner = errors.New("expense belongs to another user")
	// ErrNothingPending reports a category selection with no draft open.
	ErrNothingPending = errors.New("no pending operation")
)

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
