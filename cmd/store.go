package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/timeline-detective/core"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/iostore"
	"github.com/huangsam/timeline-detective/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfigSetup resolves the store backend without opening it.
// Clear and migrate use it so they can run against a missing or broken database.
func storeConfigSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup resolves and opens the store.
func storeSetup() error {
	if err := storeConfigSetup(); err != nil {
		return err
	}
	if err := iostore.InitStores(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize segment store: %w", err)
	}
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeConfigSetupWrapper wraps storeConfigSetup to provide PreRunE for clear and migrate.
func storeConfigSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeConfigSetup()
}

// storeCmd focused on segment store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the stored timeline export",
	Long: `Manage the segment store that keeps an imported export between runs.

Once an export is imported, analyze, summary, serve and mcp can run without a file argument.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  import  - Save an export into the store
  status  - Show what is stored
  export  - Export stored segments to Parquet
  clear   - Remove all stored data
  migrate - Run database schema migrations`,
}

// storeImportCmd saves an export into the store.
var storeImportCmd = &cobra.Command{
	Use:   "import <timeline.json>",
	Short: "Save a Timeline export into the segment store",
	Long: `Load a Google Timeline export and replace the stored import with it.

Examples:
  detective store import Timeline.json
  DETECTIVE_STORE_BACKEND=postgresql detective store import Timeline.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if cfg.StoreBackend == schema.NoneBackend {
			contract.LogFatal("Cannot import timeline", errors.New("--import needs a store backend other than none"))
		}
		cfg.TimelinePath = args[0]
		if err := core.ExecuteImport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot import timeline", err)
		}
	},
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the stored import and connection details",
	Long: `Show the backend, connection state, current import and segment counts per kind.

Examples:
  detective store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetSegmentStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored import",
	Long: `Delete the stored export and its schema.

For SQLite the database file is removed. For MySQL and PostgreSQL the store tables are dropped.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  detective store export --output-file backup
  detective store clear`,
	PreRunE: storeConfigSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearStore(cfg.StoreBackend, cfg.StoreDBConnect, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear segment store", err)
		}
		fmt.Println("Segment store cleared successfully.")
	},
}

// storeExportCmd exports stored segments to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored segments to Parquet for analytics",
	Long: `Write every stored segment to <output-file>.segments.parquet.

Requires: --output-file parameter

Examples:
  detective store export --output-file timeline
  duckdb -c "SELECT kind, COUNT(*) FROM read_parquet('timeline.segments.parquet') GROUP BY kind"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteStoreExport(rootCtx, storeManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export segments", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the segment store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the segment store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest
  detective store migrate

  # Roll back everything
  detective store migrate --target-version 0`,
	PreRunE: storeConfigSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
