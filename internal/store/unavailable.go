package store

import (
	"context"
	"time"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// Unavailable returns a TestDataTable whose every operation fails with err.
// The CLI uses it when the backend cannot be attached, so each case still
// reports the failure on its own line.
func Unavailable(err error) types.TestDataTable {
	return unavailableTable{err: err}
}

type unavailableTable struct {
	err error
}

func (u unavailableTable) Create(context.Context, time.Time) (*types.TestData, error) {
	return nil, u.err
}

func (u unavailableTable) Get(context.Context, string) (*types.TestData, error) {
	return nil, u.err
}

func (u unavailableTable) Update(context.Context, string, time.Time) (*types.TestData, error) {
	return nil, u.err
}

func (u unavailableTable) Delete(context.Context, string) error {
	return u.err
}

func (u unavailableTable) Count(context.Context) (int, error) {
	return 0, u.err
}
