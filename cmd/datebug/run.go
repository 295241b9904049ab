package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/report"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/roundtrip"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/store"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every fixture date through the create and update paths",
	Long: `For each fixture date, run the create path (insert, read back, delete)
and the update path (insert a 2000-01-01 placeholder, update it to the
fixture date, read back, delete), printing one line per path.

The exit status is 0 once every fixture has been processed, whether or not
any year changed. Mismatches are reported only in the output.`,
	Args: cobra.NoArgs,
	RunE: runRoundTrips,
}

// runRoundTrips attaches the store, runs the fixture list, and detaches.
// Store failures never fail the command; they are reported per case.
func runRoundTrips(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	config, err := storeConfig()
	if err != nil {
		return err
	}
	rep, err := report.New(cmd.OutOrStdout(), cfg.GetString(cfgKeyFormat))
	if err != nil {
		return err
	}

	backend := store.NewBackend(logger)
	table := attachTable(ctx, backend, config)
	defer func() {
		if err := backend.Detach(); err != nil {
			logger.Warn("detach failed", zap.Error(err))
		}
	}()

	runner := roundtrip.New(table, rep,
		roundtrip.WithLogger(logger),
		roundtrip.WithTimeout(config.Timeout),
		roundtrip.WithCleanupCheck(cfg.GetBool(cfgKeyVerifyCleanup)),
	)

	results, err := runner.RunFixtures(ctx)
	if err != nil {
		logger.Warn("report incomplete", zap.Error(err))
	}

	passed, failed := types.Tally(results)
	logger.Info("run complete",
		zap.String("backend", config.Backend),
		zap.Int("passed", passed),
		zap.Int("failed", failed))
	return nil
}

// attachTable attaches backend and returns its table. If the backend cannot
// be attached, the returned table fails every operation with that error so
// the run still reports each case.
func attachTable(ctx context.Context, backend *store.Backend, config types.Config) types.TestDataTable {
	if err := backend.Attach(config); err != nil {
		logger.Error("attach failed", zap.String("backend", config.Backend), zap.Error(err))
		return store.Unavailable(fmt.Errorf("attach %s: %w", config.Backend, err))
	}

	if cfg.GetBool(cfgKeyAutoMigrate) {
		if err := backend.MigrateUp(ctx); err != nil {
			logger.Warn("auto-migrate failed", zap.Error(err))
		}
	}

	table, err := backend.TestData()
	if err != nil {
		return store.Unavailable(err)
	}
	return table
}
