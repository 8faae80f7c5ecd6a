// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/vidrec/internal/middleware"
	"github.com/tomtom215/vidrec/internal/recommend"
)

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	Recommend(ctx context.Context, req *recommend.Request) (*recommend.Response, error)
	Config() *recommend.Config
	Stats() recommend.Stats
	Ready() bool
}

// HandlerConfig holds per-request settings for Handler.
type HandlerConfig struct {
	// RequestTimeout bounds each recommendation. Zero disables the bound.
	RequestTimeout time.Duration

	// SlowRequestThreshold logs requests slower than this. Zero disables it.
	SlowRequestThreshold time.Duration

	// LatencyWindow is the number of recent requests kept for latency stats.
	LatencyWindow int
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: GET /recommendations
//   - handlers_health.go: probes, catalog and latency stats
//   - handlers_helpers.go: JSON responses and parameter parsing
type Handler struct {
	engine         Recommender
	limits         recommend.LimitsConfig
	latency        *middleware.LatencyTracker
	requestTimeout time.Duration
	startTime      time.Time
}

// NewHandler creates a handler serving recommendations from engine.
//
//	handler := api.NewHandler(engine, api.HandlerConfig{RequestTimeout: 10 * time.Second})
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(engine Recommender, cfg HandlerConfig) *Handler {
	return &Handler{
		engine:         engine,
		limits:         engine.Config().Limits,
		latency:        middleware.NewLatencyTracker(cfg.LatencyWindow, cfg.SlowRequestThreshold),
		requestTimeout: cfg.RequestTimeout,
		startTime:      time.Now(),
	}
}
