// Package store implements the persistence client for datebug: a Backend that
// attaches to Postgres (pgx), SQLite (modernc), or an in-memory table, and the
// TestData table accessor used by the round-trip runner.
// See docs/ARCHITECTURE.md § Store.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/memstore"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// SQLiteFileName is the database file created inside Config.DataDir.
const SQLiteFileName = "datebug.db"

// Compile-time interface check.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface. It owns a single database handle
// for the whole process lifetime.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB   // nil for the memory backend
	dialect  *dialect  // nil for the memory backend
	table    types.TestDataTable
	logger   *zap.Logger
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger discards all log output.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backend{logger: logger.Named("store")}
}

// Attach initializes the backend with the given configuration.
// For SQL backends the handle is opened lazily: no connection is made until
// the first table operation, so an unreachable database surfaces as an
// operation error rather than an Attach error.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if config.Backend == types.BackendMemory {
		b.table = memstore.New()
	} else {
		d := dialects[config.Backend]
		dsn, err := dataSource(config)
		if err != nil {
			return err
		}

		db, err := sql.Open(d.driver, dsn)
		if err != nil {
			return fmt.Errorf("opening %s: %w", config.Backend, err)
		}
		// One connection, acquired once and reused by every operation.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		b.db = db
		b.dialect = d
		b.table = &testDataTable{db: db, dialect: d, logger: b.logger}
	}

	b.config = config
	b.attached = true
	b.logger.Debug("attached", zap.String("backend", config.Backend))
	return nil
}

// Detach releases all resources held by the backend. After Detach, TestData
// returns ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", b.config.Backend, err)
		}
		b.db = nil
	}

	b.attached = false
	b.table = nil
	b.logger.Debug("detached", zap.String("backend", b.config.Backend))
	return nil
}

// TestData returns the accessor for the TestData table.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) TestData() (types.TestDataTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.table, nil
}

// dataSource returns the driver connection string for config. The Postgres
// URL is passed through untouched, even when empty.
func dataSource(config types.Config) (string, error) {
	if config.Backend != types.BackendSQLite {
		return config.DatabaseURL, nil
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return filepath.Join(dataDir, SQLiteFileName), nil
}
