package ledger

import (
	"errors"
	"fmt"
)

// StoreError wraps an underlying store/bbolt I/O failure. It is returned
// from Process/Rollback/Prune as the error value, distinct from the
// VerdictCode carried by ProcessResult: a StoreError means the transaction
// itself could not be trusted, not that the candidate block was rejected.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("ledger store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

var (
	ErrNotInitialized  = errors.New("ledger: store not initialized, genesis bootstrap required")
	ErrUnknownVersion  = errors.New("ledger: store schema version unknown or newer than supported")
	ErrUnknownBlockKind = errors.New("ledger: unknown block kind")
)
