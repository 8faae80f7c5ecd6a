// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "github.com/tomtom215/vidrec/docs" // generated swagger docs
	"github.com/tomtom215/vidrec/internal/api"
	"github.com/tomtom215/vidrec/internal/cache"
	"github.com/tomtom215/vidrec/internal/config"
	"github.com/tomtom215/vidrec/internal/dataset"
	"github.com/tomtom215/vidrec/internal/logging"
	"github.com/tomtom215/vidrec/internal/metrics"
	"github.com/tomtom215/vidrec/internal/recommend"
	"github.com/tomtom215/vidrec/internal/supervisor"
	"github.com/tomtom215/vidrec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingOptions())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("catalog_source", cfg.Catalog.Source).
		Str("addr", cfg.Server.Addr()).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("Starting vidrec")

	engineLogger := logging.WithComponent("recommend")
	engine, err := recommend.NewEngine(cfg.RecommendOptions(), engineLogger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	source, err := dataset.NewSource(cfg.Catalog, logging.WithComponent("dataset"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure catalog source")
	}

	// The first load must succeed; later failures keep the old catalog.
	if err := loadCatalog(context.Background(), engine, source, cfg); err != nil {
		logging.Fatal().Err(err).Str("source", source.String()).Msg("Failed to load catalog")
	}

	resultCache, err := cache.New(cfg.CacheOptions(), logging.WithComponent("cache"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create result cache")
	}
	if resultCache != nil {
		engine.SetCache(resultCache)
		defer func() {
			if err := resultCache.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing result cache")
			}
		}()
		logging.Info().Str("backend", string(cfg.CacheOptions().Type)).Msg("Result cache enabled")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.TreeOptions())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer: scheduled catalog reloads
	var reloader *services.CatalogReloadService
	if cfg.Catalog.ReloadSchedule != "" {
		reloader, err = services.NewCatalogReloadService(
			engine, source, cfg.Catalog.ReloadSchedule, cfg.Catalog.LoadTimeout,
			logging.WithComponent("catalog-reload"),
		)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create catalog reload service")
		}
		tree.AddDataService(reloader)
		logging.Info().Str("schedule", cfg.Catalog.ReloadSchedule).Msg("Catalog reload service added")
	}

	// API layer
	server := newHTTPServer(cfg, engine)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go watchReloadSignal(ctx, hup, func(ctx context.Context) error {
		if reloader != nil {
			return reloader.Reload(ctx)
		}
		return loadCatalog(ctx, engine, source, cfg)
	})

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadCatalog runs one catalog load bounded by the configured load timeout.
func loadCatalog(ctx context.Context, engine *recommend.Engine, source recommend.Source, cfg *config.Config) error {
	if cfg.Catalog.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
		defer cancel()
	}
	return engine.Load(ctx, source)
}

// newHTTPServer builds the HTTP server around the chi router.
func newHTTPServer(cfg *config.Config, engine api.Recommender) *http.Server {
	handler := api.NewHandler(engine, api.HandlerConfig{
		RequestTimeout:       cfg.Server.RequestTimeout,
		SlowRequestThreshold: cfg.Server.SlowRequestThreshold,
		LatencyWindow:        cfg.Server.LatencyWindow,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

// watchReloadSignal calls reload for every signal received on hup until
// ctx is done.
func watchReloadSignal(ctx context.Context, hup <-chan os.Signal, reload func(context.Context) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			logging.Info().Msg("Received SIGHUP, reloading catalog")
			if err := reload(ctx); err != nil {
				logging.Warn().Err(err).Msg("Catalog reload failed, keeping previous catalog")
			}
		}
	}
}
