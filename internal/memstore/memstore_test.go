package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ancient = time.Date(31, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestTableLifecycle(t *testing.T) {
	ctx := context.Background()
	tbl := New()

	rec, err := tbl.Create(ctx, ancient)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.True(t, ancient.Equal(rec.Date))

	n, err := tbl.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := tbl.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	later := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	updated, err := tbl.Update(ctx, rec.ID, later)
	require.NoError(t, err)
	assert.True(t, later.Equal(updated.Date))

	require.NoError(t, tbl.Delete(ctx, rec.ID))

	n, err = tbl.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTableNotFound(t *testing.T) {
	ctx := context.Background()
	tbl := New()

	_, err := tbl.Get(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = tbl.Update(ctx, "missing", ancient)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, tbl.Delete(ctx, "missing"), types.ErrNotFound)
}

func TestTableInvalidID(t *testing.T) {
	ctx := context.Background()
	tbl := New()

	_, err := tbl.Get(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	_, err = tbl.Update(ctx, "", ancient)
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, tbl.Delete(ctx, ""), types.ErrInvalidID)
}

func TestTableCodec(t *testing.T) {
	ctx := context.Background()
	twoDigitYears := func(d time.Time) time.Time {
		if d.Year() < 100 {
			return d.AddDate(1900, 0, 0)
		}
		return d
	}
	tbl := New(WithCodec(twoDigitYears))

	rec, err := tbl.Create(ctx, ancient)
	require.NoError(t, err)
	assert.Equal(t, 1931, rec.Date.Year())

	got, err := tbl.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 1931, got.Date.Year())
}

func TestTableFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	tbl := New(WithFailure("get", boom))

	rec, err := tbl.Create(ctx, ancient)
	require.NoError(t, err)

	_, err = tbl.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, boom)
}

func TestTableCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Create(ctx, ancient)
	assert.ErrorIs(t, err, context.Canceled)
}
