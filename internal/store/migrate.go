package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// gooseMu serializes access to goose's package-level configuration.
var gooseMu sync.Mutex

// gooseLogger routes goose output to a writer when one is given (status
// tables meant for the user) and to zap otherwise.
type gooseLogger struct {
	w     io.Writer
	sugar *zap.SugaredLogger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	if l.w != nil {
		fmt.Fprintf(l.w, format, v...)
		return
	}
	l.sugar.Infof(format, v...)
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.sugar.Errorf(format, v...)
}

// MigrateUp creates the TestData table. It is a no-op for the memory backend.
func (b *Backend) MigrateUp(ctx context.Context) error {
	return b.migrate(ctx, nil, func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.UpContext(ctx, db, dir)
	})
}

// MigrateDown rolls back the most recent migration.
func (b *Backend) MigrateDown(ctx context.Context) error {
	return b.migrate(ctx, nil, func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.DownContext(ctx, db, dir)
	})
}

// MigrationStatus writes the applied/pending state of every migration to w.
func (b *Backend) MigrationStatus(ctx context.Context, w io.Writer) error {
	return b.migrate(ctx, w, func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.StatusContext(ctx, db, dir)
	})
}

// migrate configures goose for the attached dialect and runs fn.
func (b *Backend) migrate(ctx context.Context, w io.Writer, fn func(context.Context, *sql.DB, string) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if b.db == nil {
		b.logger.Debug("memory backend has no schema to migrate")
		return nil
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{w: w, sugar: b.logger.Named("migrate").Sugar()})
	if err := goose.SetDialect(b.dialect.goose); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := fn(ctx, b.db, path.Join("migrations", b.dialect.name)); err != nil {
		return fmt.Errorf("migrating %s: %w", b.dialect.name, err)
	}
	return nil
}
