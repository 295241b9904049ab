// Package memstore implements an in-memory TestDataTable. It backs the
// "memory" backend and stands in for a real database in tests.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Compile-time interface check.
var _ types.TestDataTable = (*Table)(nil)

// Codec transforms a date on its way into storage. The identity codec is a
// faithful store; tests install lossy codecs to simulate driver bugs.
type Codec func(time.Time) time.Time

// Table is a map-backed TestDataTable. The zero value is not usable; call New.
type Table struct {
	mu      sync.Mutex
	records map[string]time.Time

	encode Codec
	fail   map[string]error
}

// Option configures a Table.
type Option func(*Table)

// WithCodec installs a codec applied by Create and Update.
func WithCodec(c Codec) Option {
	return func(t *Table) { t.encode = c }
}

// WithFailure makes the named operation ("create", "get", "update",
// "delete", "count") return err.
func WithFailure(op string, err error) Option {
	return func(t *Table) { t.fail[op] = err }
}

// New creates an empty Table.
func New(opts ...Option) *Table {
	t := &Table{
		records: make(map[string]time.Time),
		encode:  func(d time.Time) time.Time { return d },
		fail:    make(map[string]error),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Create stores date under a fresh UUID v7.
func (t *Table) Create(ctx context.Context, date time.Time) (*types.TestData, error) {
	if err := t.check(ctx, "create"); err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating UUID v7: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	stored := t.encode(date)
	t.records[id.String()] = stored
	return &types.TestData{ID: id.String(), Date: stored}, nil
}

// Get returns the record with the given ID.
func (t *Table) Get(ctx context.Context, id string) (*types.TestData, error) {
	if err := t.check(ctx, "get"); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.records[id]
	if !ok {
		return nil, fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
	}
	return &types.TestData{ID: id, Date: d}, nil
}

// Update replaces the stored date of an existing record.
func (t *Table) Update(ctx context.Context, id string, date time.Time) (*types.TestData, error) {
	if err := t.check(ctx, "update"); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.records[id]; !ok {
		return nil, fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
	}
	stored := t.encode(date)
	t.records[id] = stored
	return &types.TestData{ID: id, Date: stored}, nil
}

// Delete removes the record with the given ID.
func (t *Table) Delete(ctx context.Context, id string) error {
	if err := t.check(ctx, "delete"); err != nil {
		return err
	}
	if id == "" {
		return types.ErrInvalidID
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.records[id]; !ok {
		return fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
	}
	delete(t.records, id)
	return nil
}

// Count returns the number of stored records.
func (t *Table) Count(ctx context.Context) (int, error) {
	if err := t.check(ctx, "count"); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records), nil
}

// check returns the context error or the injected failure for op.
func (t *Table) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.fail[op]
}
