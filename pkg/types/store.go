package types

import "errors"

// Store defines backend-agnostic access to the TestData table.
// Callers attach to a backend, obtain the table, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, TestData returns ErrStoreDetached.
	Detach() error

	// TestData returns the accessor for the TestData table.
	TestData() (TestDataTable, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
