package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paquexpress/cmd"
	"paquexpress/internal/adapters/out/postgres/migrations"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

// run returns instead of exiting so every deferred teardown step runs:
// jobs stop, then the signal context is released, then the pool closes.
func run() error {
	configs, err := getConfigs()
	if err != nil {
		return err
	}
	logger := newLogger(configs)

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer sqlDB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		return fmt.Errorf("error building application: %w", err)
	}

	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("error creating HTTP router: %w", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return fmt.Errorf("error creating jobs: %w", err)
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return serve(ctx, e, configs.HTTPAddress(), logger)
}

func getConfigs() (cmd.Config, error) {
	config, err := cmd.LoadConfig()
	if err != nil {
		return cmd.Config{}, fmt.Errorf("error loading configuration: %w", err)
	}
	if err = config.Validate(); err != nil {
		return cmd.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func newLogger(configs cmd.Config) *slog.Logger {
	level, _ := configs.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// serve runs e until ctx is cancelled, then shuts it down within
// shutdownTimeout. A listener failure is returned as is.
func serve(ctx context.Context, e *echo.Echo, address string, logger *slog.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server started", "address", address)
		serverErr <- e.Start(address)
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
