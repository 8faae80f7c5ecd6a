// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/vidrec/internal/logging"
	"github.com/tomtom215/vidrec/internal/middleware"
	"github.com/tomtom215/vidrec/internal/recommend"
	"github.com/tomtom215/vidrec/internal/validation"
)

const (
	cacheHeader          = "X-Cache"
	catalogVersionHeader = "X-Catalog-Version"
)

// Recommendations handles GET /recommendations.
//
// Query parameters: query, alpha, top_n and the comma-separated ID lists
// played, liked and disliked. The body is a JSON array of scored videos,
// best first. Bad parameters get 400, a missing catalog 503, anything
// else 500, each with {"error": message}.
//
// @Summary Hybrid video recommendations
// @Description Blends popularity with TF-IDF similarity to the query and liked videos. Played videos are excluded.
// @Tags Recommendations
// @Produce json
// @Param query query string false "Free-text query; empty falls back to the configured policy"
// @Param alpha query number false "Popularity weight in [0,1]" default(0.3)
// @Param top_n query int false "Maximum number of results" default(10)
// @Param played query string false "Comma-separated video IDs to exclude"
// @Param liked query string false "Comma-separated video IDs to move toward"
// @Param disliked query string false "Comma-separated video IDs to move away from"
// @Success 200 {array} recommend.ScoredCandidate
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /recommendations [get]
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRecommendationRequest(r.URL.Query())
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_PARAMETER", err.Error(), err)
		return
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		respondJSON(w, http.StatusBadRequest, &errorResponse{
			Error:  apiErr.Message,
			Code:   apiErr.Code,
			Fields: apiErr.Fields,
		})
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("query", logging.SanitizeValue(req.Query)).
		Float64("alpha", req.Alpha).
		Int("top_n", req.TopN).
		Int("played", len(req.Played)).
		Int("liked", len(req.Liked)).
		Int("disliked", len(req.Disliked)).
		Msg("Recommendation request received")

	ctx := r.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	resp, err := h.engine.Recommend(ctx, &recommend.Request{
		Query:     req.Query,
		Alpha:     req.Alpha,
		TopN:      req.TopN,
		Exclude:   req.Played,
		Liked:     req.Liked,
		Disliked:  req.Disliked,
		RequestID: middleware.GetRequestID(r.Context()),
	})
	switch {
	case err == nil:
	case recommend.IsInvalidRequest(err):
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", err.Error(), err)
		return
	default:
		respondError(w, r, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "failed to generate recommendations", err)
		return
	}

	cacheStatus := "MISS"
	if resp.Metadata.CacheHit {
		cacheStatus = "HIT"
	}
	w.Header().Set(cacheHeader, cacheStatus)
	w.Header().Set(catalogVersionHeader, resp.Metadata.CatalogVersion)
	w.Header().Set("Cache-Control", "no-store")

	items := resp.Items
	if items == nil {
		items = []recommend.ScoredCandidate{}
	}
	respondJSON(w, http.StatusOK, items)
}

// parseRecommendationRequest decodes query parameters and fills defaults.
// Range checks happen in validation and the engine.
func (h *Handler) parseRecommendationRequest(q url.Values) (*validation.RecommendationRequest, error) {
	req := &validation.RecommendationRequest{
		Query:    q.Get("query"),
		Alpha:    h.limits.DefaultAlpha,
		TopN:     h.limits.DefaultTopN,
		Played:   parseCommaSeparated(q.Get("played")),
		Liked:    parseCommaSeparated(q.Get("liked")),
		Disliked: parseCommaSeparated(q.Get("disliked")),
	}

	if v := strings.TrimSpace(q.Get("alpha")); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &ParamError{Param: "alpha", Value: v, Want: "a number"}
		}
		req.Alpha = alpha
	}
	if v := strings.TrimSpace(q.Get("top_n")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ParamError{Param: "top_n", Value: v, Want: "an integer"}
		}
		req.TopN = n
	}
	return req, nil
}
