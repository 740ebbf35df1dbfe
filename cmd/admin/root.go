package main

import (
	"database/sql"
	"fmt"

	"paquexpress/cmd"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the admin CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "admin",
		Short: "Paquexpress administration",
		Long:  `Operator tools for the Paquexpress API: database migrations, password hashes and seed data.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file with the service configuration")

	root.AddCommand(NewMigrateCmd())
	root.AddCommand(NewHashPasswordCmd())
	root.AddCommand(NewSeedCmd())

	return root
}

func loadConfig() (cmd.Config, error) {
	return cmd.LoadConfig(envFile)
}

// openDatabase uses the lib/pq driver, which COPY FROM STDIN requires.
func openDatabase(cfg cmd.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
