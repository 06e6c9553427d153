package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foodexpress/delivery-api/internal/infrastructure/config"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/migration"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/postgres"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the SQL user store schema",
	Long: `Apply or roll back the embedded migrations of the SQL user store
selected by USER_STORE (postgres or sqlite). MongoDB needs no migrations.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Runner) error {
			if err := m.Up(); err != nil {
				return err
			}
			return printVersion(cmd, m)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (all when steps is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}
		return withMigrator(cmd.Context(), func(m *migration.Runner) error {
			if err := m.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd, m)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Runner) error {
			return printVersion(cmd, m)
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}

func printVersion(cmd *cobra.Command, m *migration.Runner) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	cmd.Printf("version: %d, dirty: %v\n", v, dirty)
	return nil
}

// withMigrator opens the configured SQL store, runs fn and closes the store.
func withMigrator(ctx context.Context, fn func(*migration.Runner) error) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return err
		}
		defer pool.Close()
		m, err := postgres.NewMigrator(pool)
		if err != nil {
			return err
		}
		return fn(m)

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		m, err := sqlite.NewMigrator(db)
		if err != nil {
			return err
		}
		return fn(m)

	default:
		return fmt.Errorf("USER_STORE=%s has no SQL schema to migrate", cfg.UserStore)
	}
}
