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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vambrace/vambrace/internal/cache"
	"github.com/vambrace/vambrace/internal/config"
	"github.com/vambrace/vambrace/internal/server"
	"github.com/vambrace/vambrace/internal/storage/sqlite"
	"github.com/vambrace/vambrace/internal/telemetry"
)

func run(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	slog.Info("starting vambrace", "version", version, "addr", cfg.Server.Addr)

	// Open database
	store, err := sqlite.New(cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	// Bootstrap from config
	ctx := context.Background()
	if err := config.Bootstrap(ctx, cfg, store); err != nil {
		return err
	}

	// Response cache store. The backend is registered by name and the views
	// resolve it through the registry, so alternative stores can be swapped in
	// without touching the server wiring.
	backend, err := newCacheStore(cfg)
	if err != nil {
		return err
	}
	cache.Register(cache.DefaultStore, backend)
	cacheStore, err := cache.GetStore(cache.DefaultStore)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Store:      store,
		Cache:      cacheStore,
		ReadyCheck: store.Ping,
		Views: server.ViewOptions{
			Headline:      cfg.Views.Headline,
			StaticContext: cfg.Views.StaticContext,
			CacheTimeout:  cfg.Views.CacheTimeout,
		},
	}
	if cfg.Telemetry.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		deps.Metrics = telemetry.NewMetrics(reg)
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	if cfg.Telemetry.Tracing.Enabled {
		shutdown, err := telemetry.SetupTracing(ctx, cfg.Telemetry.Tracing.Endpoint, cfg.Telemetry.Tracing.SampleRate)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	// Create HTTP server
	handler, err := server.New(deps)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	slog.Info("vambrace ready", "addr", cfg.Server.Addr)

	// Wait for signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig)
	case err := <-errCh:
		return err
	}

	// Shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	slog.Info("vambrace stopped")
	return nil
}

// newCacheStore builds the response cache backend selected in config.
func newCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemory(cfg.Cache.MaxSize, cfg.Cache.TTL)
	case "redis":
		r := cfg.Cache.Redis
		return cache.NewRedis(r.Addr, r.Password, r.DB, r.Prefix)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
