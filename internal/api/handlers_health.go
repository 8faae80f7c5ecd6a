// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/vidrec/internal/middleware"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of catalog state.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "alive",
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK once a catalog is loaded, 503 before that.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /api/v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats := h.engine.Stats()
	if !stats.Ready {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  "catalog not loaded",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"catalog_items":   stats.CatalogItems,
		"catalog_version": stats.CatalogVersion,
		"loaded_at":       stats.LoadedAt,
	})
}

// CatalogStats handles GET /api/v1/catalog/stats.
//
// @Summary Catalog and engine counters
// @Tags Stats
// @Produce json
// @Success 200 {object} recommend.Stats
// @Router /api/v1/catalog/stats [get]
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Stats())
}

// LatencyStats handles GET /api/v1/stats/latency with per-route
// percentiles over the recent request window.
//
// @Summary Per-route latency percentiles
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/v1/stats/latency [get]
func (h *Handler) LatencyStats(w http.ResponseWriter, r *http.Request) {
	stats := h.latency.Stats()
	if stats == nil {
		stats = []middleware.RouteLatency{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"window":  h.latency.Len(),
		"routes":  stats,
		"sampled": time.Now().UTC(),
	})
}
