package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/paths"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

// exitUserError is the exit code for usage and config errors. A completed run
// always exits 0, however many cases failed.
const exitUserError = 1

// Global flag values that are not routed through viper.
var (
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
)

var (
	// cfg holds the merged configuration, set by PersistentPreRunE.
	cfg = viper.New()

	// logger is replaced by PersistentPreRunE for commands that load config.
	logger = zap.NewNop()
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"backend":        cfgKeyBackend,
	"database-url":   cfgKeyDatabaseURL,
	"log-level":      cfgKeyLogLevel,
	"format":         cfgKeyFormat,
	"timeout":        cfgKeyTimeout,
	"verify-cleanup": cfgKeyVerifyCleanup,
	"auto-migrate":   cfgKeyAutoMigrate,
}

var rootCmd = &cobra.Command{
	Use:   "datebug",
	Short: "Reproduce date round-trip mismatches against a database",
	Long: `datebug writes a fixed list of ancient dates (years 31 to 120) into a
single-column table through two code paths, insert and update, reads
each one back, and prints whether the calendar year survived.

Run without a subcommand to execute the full fixture list.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version and fixtures need neither config nor a logger.
		if cmd.Name() == "version" || cmd.Name() == "fixtures" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := bindFlags(v, cmd.Flags()); err != nil {
			return err
		}

		l, err := newLogger(v.GetString(cfgKeyLogLevel), flagVerbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg = v
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Args: cobra.NoArgs,
	RunE: runRoundTrips,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/datebug)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "SQLite data directory (default: $XDG_DATA_HOME/datebug)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().String("backend", "", "backend: postgres, sqlite, or memory (default: postgres)")
	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string (default: $DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: warn)")

	addRunFlags(rootCmd.Flags())
	addRunFlags(runCmd.Flags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(versionCmd)
}

// addRunFlags registers the flags that shape a round-trip run.
func addRunFlags(fs *pflag.FlagSet) {
	fs.String("format", "", "output format: text, json, or yaml (default: text)")
	fs.Duration("timeout", 0, "per-case timeout, 0 for none")
	fs.Bool("verify-cleanup", false, "count rows around each case and report leftovers")
	fs.Bool("auto-migrate", false, "create the TestData table before running")
}

// bindFlags lets every flag the command knows override its config key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// storeConfig assembles the backend configuration from the merged config.
func storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	config := types.Config{
		Backend:     cfg.GetString(cfgKeyBackend),
		DatabaseURL: cfg.GetString(cfgKeyDatabaseURL),
		DataDir:     dataDir,
		Timeout:     cfg.GetDuration(cfgKeyTimeout),
	}
	if err := config.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config (backend %q): %w", config.Backend, err)
	}
	return config, nil
}
