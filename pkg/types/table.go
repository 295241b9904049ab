package types

import (
	"context"
	"errors"
	"time"
)

// TableTestData is the name of the single table datebug exercises.
const TableTestData = "TestData"

// TestDataTable provides the CRUD operations the round-trip runner needs.
// Every call blocks until the backend has answered.
type TestDataTable interface {
	// Create inserts a new record holding date and returns the stored record.
	// The ID is generated by the store.
	Create(ctx context.Context, date time.Time) (*TestData, error)

	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(ctx context.Context, id string) (*TestData, error)

	// Update replaces the date of an existing record and returns the stored
	// record. Returns ErrNotFound if no record exists with that ID.
	Update(ctx context.Context, id string, date time.Time) (*TestData, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(ctx context.Context, id string) error

	// Count returns the number of records in the table.
	Count(ctx context.Context) (int, error)
}

// Table operation errors.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrInvalidDate = errors.New("invalid date")
)
