package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the TestData table",
	Long: `The round-trip run assumes the TestData table exists. These commands
create it, drop it, or show which migrations have been applied.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create the TestData table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *store.Backend) error {
			if err := b.MigrateUp(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TestData table is up to date")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the TestData table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *store.Backend) error {
			if err := b.MigrateDown(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "TestData table dropped")
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b *store.Backend) error {
			return b.MigrationStatus(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// withBackend attaches a backend for the duration of fn. Unlike a run,
// migration commands fail with a non-zero exit when the store does.
func withBackend(fn func(*store.Backend) error) error {
	config, err := storeConfig()
	if err != nil {
		return err
	}

	b := store.NewBackend(logger)
	if err := b.Attach(config); err != nil {
		return fmt.Errorf("attach %s: %w", config.Backend, err)
	}
	defer func() {
		if err := b.Detach(); err != nil {
			logger.Warn("detach failed", zap.Error(err))
		}
	}()

	return fn(b)
}
