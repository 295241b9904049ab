// Package store provides the public API for the datebug persistence backends.
// It exposes the factory for a Store while keeping the SQL and migration
// details internal.
//
// See docs/ARCHITECTURE.md § Store.
package store

import (
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/store"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// NewBackend creates a new backend instance. The backend is not attached;
// call Attach with a Config to initialize. A nil logger discards log output.
//
// Example:
//
//	backend := store.NewBackend(nil)
//	err := backend.Attach(types.Config{
//	    Backend:     types.BackendPostgres,
//	    DatabaseURL: os.Getenv("DATABASE_URL"),
//	})
//	defer backend.Detach()
func NewBackend(logger *zap.Logger) types.Store {
	return store.NewBackend(logger)
}
