package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Compile-time interface check.
var _ types.TestDataTable = (*testDataTable)(nil)

// Statements against the TestData table, written with ? placeholders and
// rebound per dialect. Identifiers are quoted so the mixed-case table name
// survives Postgres case folding.
const (
	insertTestData = `INSERT INTO "TestData" ("id", "date") VALUES (?, ?) RETURNING "id", "date"`
	selectTestData = `SELECT "id", "date" FROM "TestData" WHERE "id" = ?`
	updateTestData = `UPDATE "TestData" SET "date" = ? WHERE "id" = ? RETURNING "id", "date"`
	deleteTestData = `DELETE FROM "TestData" WHERE "id" = ?`
	countTestData  = `SELECT COUNT(*) FROM "TestData"`
)

// testDataTable implements TestDataTable over database/sql. Each operation is
// a single statement; no transaction spans more than one.
type testDataTable struct {
	db      *sql.DB
	dialect *dialect
	logger  *zap.Logger
}

// Create inserts a record under a new UUID v7 and returns the row as stored.
func (t *testDataTable) Create(ctx context.Context, date time.Time) (*types.TestData, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating UUID v7: %w", err)
	}

	row := t.db.QueryRowContext(ctx, t.dialect.bind(insertTestData), id.String(), t.dialect.encode(date))
	rec, err := scanTestData(row)
	if err != nil {
		return nil, fmt.Errorf("inserting test data: %w", err)
	}
	t.logger.Debug("created", zap.String("id", rec.ID), zap.Time("input", date), zap.Time("stored", rec.Date))
	return rec, nil
}

// Get retrieves a record by ID.
func (t *testDataTable) Get(ctx context.Context, id string) (*types.TestData, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := t.db.QueryRowContext(ctx, t.dialect.bind(selectTestData), id)
	rec, err := scanTestData(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting test data %s: %w", id, err)
	}
	t.logger.Debug("retrieved", zap.String("id", rec.ID), zap.Time("stored", rec.Date))
	return rec, nil
}

// Update replaces the date of an existing record.
func (t *testDataTable) Update(ctx context.Context, id string, date time.Time) (*types.TestData, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := t.db.QueryRowContext(ctx, t.dialect.bind(updateTestData), t.dialect.encode(date), id)
	rec, err := scanTestData(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("updating test data %s: %w", id, err)
	}
	t.logger.Debug("updated", zap.String("id", rec.ID), zap.Time("input", date), zap.Time("stored", rec.Date))
	return rec, nil
}

// Delete removes a record by ID.
func (t *testDataTable) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	res, err := t.db.ExecContext(ctx, t.dialect.bind(deleteTestData), id)
	if err != nil {
		return fmt.Errorf("deleting test data %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting test data %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("test data %s: %w", id, types.ErrNotFound)
	}
	t.logger.Debug("deleted", zap.String("id", id))
	return nil
}

// Count returns the number of rows in the table.
func (t *testDataTable) Count(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, countTestData).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting test data: %w", err)
	}
	return n, nil
}

// scanTestData hydrates a single id/date row.
func scanTestData(row *sql.Row) (*types.TestData, error) {
	var (
		id  string
		raw any
	)
	if err := row.Scan(&id, &raw); err != nil {
		return nil, err
	}
	date, err := decodeDate(raw)
	if err != nil {
		return nil, err
	}
	return &types.TestData{ID: id, Date: date}, nil
}
