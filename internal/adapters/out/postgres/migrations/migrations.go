// Package migrations embeds the goose SQL migrations of the PostgreSQL schema
// and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

// goose keeps its dialect and filesystem in package state.
var setupOnce sync.Once

func setup() {
	setupOnce.Do(func() {
		goose.SetBaseFS(files)
		if err := goose.SetDialect("postgres"); err != nil {
			panic(err)
		}
	})
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	setup()
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	setup()
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}

// Reset rolls back every applied migration.
func Reset(ctx context.Context, db *sql.DB) error {
	setup()
	if err := goose.ResetContext(ctx, db, "."); err != nil {
		return fmt.Errorf("reset migrations: %w", err)
	}
	return nil
}

// Status writes the state of every migration to out.
func Status(ctx context.Context, db *sql.DB, out io.Writer) error {
	setup()

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	all, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("collect migrations: %w", err)
	}

	for _, m := range all {
		state := "pending"
		if m.Version <= current {
			state = "applied"
		}
		if _, err = fmt.Fprintf(out, "%05d %-40s %s\n", m.Version, path.Base(m.Source), state); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the current schema version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	setup()
	return goose.GetDBVersionContext(ctx, db)
}
