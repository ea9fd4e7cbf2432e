// Package main is the entry point for the Ora catalog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oracatalog/internal/catalog"
	"oracatalog/internal/config"
	"oracatalog/internal/database"
	"oracatalog/internal/handlers"
	"oracatalog/internal/middleware"
	"oracatalog/internal/router"
	"oracatalog/internal/store"
	"oracatalog/internal/valkey"
)

func main() {
	// Bootstrap logger until configuration says otherwise.
	slog.SetDefault(newLogger(os.Stdout, "info", "text"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"log_level", cfg.LogLevel,
	)

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to PostgreSQL.
	pool, err := database.Connect(ctx, cfg.DSN(), int32(cfg.DBMaxConns))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		return err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, pool); err != nil {
			return err
		}
	}

	gateway := store.NewGateway(pool, cfg.DBQueryTimeout)
	svc := catalog.NewService(gateway, cfg.RailFetchConcurrency)
	products := handlers.NewProducts(svc, cfg.IsDev())

	limiter, closeLimiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLimiter()

	r := router.New(products, gateway, router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout:     cfg.RequestTimeout,
		Limiter:            limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newLimiter picks the rate limiter for /api. A Valkey host shares the
// limit across instances; otherwise each process keeps its own window.
// RATE_LIMIT=0 disables limiting and returns a nil Limiter.
func newLimiter(ctx context.Context, cfg *config.Config) (middleware.Limiter, func(), error) {
	if cfg.RateLimit == 0 {
		slog.Warn("rate limiting disabled")
		return nil, func() {}, nil
	}

	if cfg.UseValkey() {
		client, err := valkey.Connect(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, nil, err
		}
		counter := valkey.NewWindowCounter(client, time.Minute)
		return middleware.NewSharedRateLimiter(counter, cfg.RateLimit), func() { client.Close() }, nil
	}

	rl := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	return rl, rl.Stop, nil
}
