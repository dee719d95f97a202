package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/techjobs/internal/config"
	"github.com/JonMunkholm/techjobs/internal/datasource"
	"github.com/JonMunkholm/techjobs/internal/jobs"
	"github.com/JonMunkholm/techjobs/internal/logging"
	"github.com/JonMunkholm/techjobs/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Data.Source,
		"preload", cfg.Data.Preload,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()
	src, closeSource, err := datasource.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open job data source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	store := jobs.NewStore(src, jobs.WithLogger(logger), jobs.WithLoadTimeout(cfg.Data.LoadTimeout))

	// A failed preload is not fatal; the next query retries.
	if cfg.Data.Preload {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.Data.LoadTimeout)
		if err := store.Load(loadCtx); err != nil {
			logger.Warn("preload failed, will retry on first query", "error", err)
		}
		cancel()
	}

	server := web.NewServer(store, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		closeSource()
		os.Exit(1)
	}
	<-done
	logger.Info("server stopped")
}
