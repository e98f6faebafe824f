package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tinoosan/costapi/internal/config"
	httpapi "github.com/tinoosan/costapi/internal/httpapi/v1"
	"github.com/tinoosan/costapi/internal/storage/devseed"
	"github.com/tinoosan/costapi/internal/storage/memory"
	pgstore "github.com/tinoosan/costapi/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	var repo httpapi.Repository
	var closeFn func()

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL, pgstore.Options{
			MaxConns:         cfg.DBMaxConns,
			MaxConnLifetime:  cfg.DBMaxConnLifetime,
			ConnectTimeout:   cfg.DBConnectTimeout,
			StatementTimeout: cfg.DBStatementTimeout,
		})
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		closeFn = pg.Close
		// Optional dev seed for compose/local
		if cfg.DevSeed {
			f := devseed.Default()
			if err := pg.SeedDev(ctx, f); err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logDevSeed(logger, "postgres", f)
			}
		}
		repo = pg
		logger.Info("storage backend: postgres")
	} else {
		// Without a database the memory store always carries the dev fixture.
		store := memory.New()
		f := devseed.Default()
		store.Load(f)
		logDevSeed(logger, "memory", f)
		repo = store
		logger.Info("storage backend: memory")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.New(repo, logger, httpapi.Config{AllowedOrigins: cfg.CORSOrigins}).Handler(),
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cost api listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// logDevSeed logs the seeded row counts and the ids handy for manual calls.
func logDevSeed(l *slog.Logger, backend string, f devseed.Fixture) {
	l.Info("DEV seed ("+backend+")",
		"clients", len(f.Clients),
		"providers", len(f.Providers),
		"services", len(f.Services),
		"usages", len(f.Usages),
		"invoices", len(f.Invoices),
		"budgets", len(f.Budgets),
	)
	if len(f.Clients) > 0 && len(f.Budgets) > 0 {
		l.Info("DEV seed ids", "client_id", f.Clients[0].ID, "budget_id", f.Budgets[0].ID)
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
