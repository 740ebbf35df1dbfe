package main

import (
	"database/sql"
	"fmt"

	"paquexpress/internal/adapters/out/postgres/migrations"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withDatabase(func(cmd *cobra.Command, db *sql.DB) error {
			if err := migrations.Up(cmd.Context(), db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		}),
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: withDatabase(func(cmd *cobra.Command, db *sql.DB) error {
			if err := migrations.Down(cmd.Context(), db); err != nil {
				return err
			}
			return printVersion(cmd, db)
		}),
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: withDatabase(func(cmd *cobra.Command, db *sql.DB) error {
			return migrations.Status(cmd.Context(), db, cmd.OutOrStdout())
		}),
	})

	return migrate
}

func withDatabase(run func(cmd *cobra.Command, db *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		return run(cmd, db)
	}
}

func printVersion(cmd *cobra.Command, db *sql.DB) error {
	version, err := migrations.Version(cmd.Context(), db)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return err
}
