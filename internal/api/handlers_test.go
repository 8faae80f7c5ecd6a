// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/cache"
	"github.com/tomtom215/vidrec/internal/recommend"
)

func testRows() []recommend.Row {
	return []recommend.Row{
		{VideoID: "a", Title: "cat video", Views: 10, CategoryID: "15"},
		{VideoID: "b", Title: "dog video", Views: 100, CategoryID: "15"},
		{VideoID: "c", Title: "cat and dog", Views: 50, CategoryID: "22"},
	}
}

// newTestEngine returns an engine, loaded with testRows when loaded is set.
func newTestEngine(t *testing.T, loaded bool) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if loaded {
		if err := engine.LoadRows(testRows()); err != nil {
			t.Fatalf("LoadRows() error = %v", err)
		}
	}
	return engine
}

// newTestServer builds the full router around engine with rate limiting off.
func newTestServer(t *testing.T, engine Recommender) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	handler := NewHandler(engine, HandlerConfig{RequestTimeout: 5 * time.Second, LatencyWindow: 100})
	return NewRouter(handler, NewChiMiddleware(cfg)).SetupChi()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeItems(t *testing.T, w *httptest.ResponseRecorder) []recommend.ScoredCandidate {
	t.Helper()
	var items []recommend.ScoredCandidate
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return items
}

func itemIDs(items []recommend.ScoredCandidate) string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.VideoID
	}
	return strings.Join(ids, ",")
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newTestEngine(t, true))

	tests := []struct {
		name    string
		target  string
		wantIDs string
	}{
		{name: "query with alpha and top_n", target: "/recommendations?query=cat&alpha=0.5&top_n=2", wantIDs: "c,b"},
		{name: "played excluded", target: "/recommendations?query=cat&alpha=0.5&top_n=2&played=b", wantIDs: "c,a"},
		{name: "liked item kept and boosted", target: "/recommendations?query=cat&alpha=0.5&liked=b", wantIDs: "b,c,a"},
		{name: "disliked excluded", target: "/recommendations?query=cat&alpha=0.5&disliked=b", wantIDs: "c,a"},
		{name: "popularity only", target: "/recommendations?query=cat&alpha=1", wantIDs: "b,c,a"},
		{name: "content only", target: "/recommendations?query=cat&alpha=0", wantIDs: "a,c,b"},
		{name: "defaults use first title as query", target: "/recommendations", wantIDs: "a,b,c"},
		{name: "blank list entries ignored", target: "/recommendations?query=cat&alpha=0.5&played=,b,", wantIDs: "c,a"},
		{name: "everything excluded", target: "/recommendations?played=a,b,c", wantIDs: ""},
		{name: "versioned alias", target: "/api/v1/recommendations?query=cat&alpha=0.5&top_n=2", wantIDs: "c,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := get(t, srv, tt.target)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := itemIDs(decodeItems(t, w)); got != tt.wantIDs {
				t.Errorf("ids = %q, want %q", got, tt.wantIDs)
			}
		})
	}
}

func TestRecommendations_Scores(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newTestEngine(t, true))
	w := get(t, srv, "/recommendations?query=cat&alpha=0.5&top_n=2")
	items := decodeItems(t, w)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	want := []float64{0.7222222, 0.5}
	for i, it := range items {
		if math.Abs(it.Final-want[i]) > 1e-6 {
			t.Errorf("items[%d].final_score = %v, want %v", i, it.Final, want[i])
		}
	}
	if items[0].Title != "cat and dog" || items[0].CategoryID != "22" || items[0].Views != 50 {
		t.Errorf("items[0] = %+v", items[0])
	}
	if !strings.Contains(w.Body.String(), `"popularity_score"`) {
		t.Errorf("body lacks popularity_score: %s", w.Body.String())
	}
	if w.Header().Get(catalogVersionHeader) == "" {
		t.Error("missing catalog version header")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRecommendations_EmptyIsArray(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newTestEngine(t, true))
	w := get(t, srv, "/recommendations?played=a,b,c")
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestRecommendations_BadRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newTestEngine(t, true))

	tests := []struct {
		name      string
		target    string
		wantCode  string
		wantInMsg string
	}{
		{name: "alpha not a number", target: "/recommendations?alpha=high", wantCode: "INVALID_PARAMETER", wantInMsg: "alpha"},
		{name: "top_n not an integer", target: "/recommendations?top_n=1.5", wantCode: "INVALID_PARAMETER", wantInMsg: "top_n"},
		{name: "alpha above one", target: "/recommendations?alpha=1.5", wantCode: "VALIDATION_ERROR", wantInMsg: "alpha"},
		{name: "alpha negative", target: "/recommendations?alpha=-0.1", wantCode: "VALIDATION_ERROR", wantInMsg: "alpha"},
		{name: "alpha NaN", target: "/recommendations?alpha=NaN", wantCode: "VALIDATION_ERROR", wantInMsg: "alpha"},
		{name: "top_n zero", target: "/recommendations?top_n=0", wantCode: "VALIDATION_ERROR", wantInMsg: "top_n"},
		{name: "top_n above ceiling", target: "/recommendations?top_n=501", wantCode: "INVALID_REQUEST", wantInMsg: "top_n"},
		{name: "id too long", target: "/recommendations?liked=" + strings.Repeat("x", 129), wantCode: "VALIDATION_ERROR", wantInMsg: "liked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := get(t, srv, tt.target)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
			}
			var body errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
			if !strings.Contains(body.Error, tt.wantInMsg) {
				t.Errorf("error = %q, want mention of %q", body.Error, tt.wantInMsg)
			}
		})
	}
}

func TestRecommendations_NotReady(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, newTestEngine(t, false))
	w := get(t, srv, "/recommendations?query=cat")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

// failingEngine wraps a real engine and fails every Recommend call.
type failingEngine struct {
	*recommend.Engine
	err error
}

func (f failingEngine) Recommend(context.Context, *recommend.Request) (*recommend.Response, error) {
	return nil, f.err
}

func TestRecommendations_InternalError(t *testing.T) {
	t.Parallel()

	engine := failingEngine{Engine: newTestEngine(t, true), err: errors.New("vectorizer exploded")}
	w := get(t, newTestServer(t, engine), "/recommendations?query=cat")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "exploded") {
		t.Errorf("internal error leaked to client: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("body = %s, want error field", w.Body.String())
	}
}

func TestRecommendations_CacheHeader(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, true)
	mem := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })
	engine.SetCache(mem)
	srv := newTestServer(t, engine)

	first := get(t, srv, "/recommendations?query=cat&liked=c,b")
	second := get(t, srv, "/recommendations?query=cat&liked=b,c,b")

	if got := first.Header().Get(cacheHeader); got != "MISS" {
		t.Errorf("first X-Cache = %q, want MISS", got)
	}
	if got := second.Header().Get(cacheHeader); got != "HIT" {
		t.Errorf("second X-Cache = %q, want HIT", got)
	}
	if itemIDs(decodeItems(t, first)) != itemIDs(decodeItems(t, second)) {
		t.Error("cached response differs from computed one")
	}
}

func TestParseRecommendationRequest_Defaults(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestEngine(t, false), HandlerConfig{})
	req, err := h.parseRecommendationRequest(map[string][]string{"played": {" a , b "}})
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if req.Alpha != 0.3 || req.TopN != 10 {
		t.Errorf("defaults alpha=%v top_n=%d, want 0.3 and 10", req.Alpha, req.TopN)
	}
	if strings.Join(req.Played, "|") != "a|b" {
		t.Errorf("played = %q", req.Played)
	}
	if req.Liked != nil {
		t.Errorf("liked = %q, want nil", req.Liked)
	}
}
