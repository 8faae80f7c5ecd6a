// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/cache"
	"github.com/tomtom215/vidrec/internal/metrics"
)

// Engine serves recommendations from the current catalog snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	current atomic.Pointer[snapshot]
	loadMu  sync.Mutex

	cache    cache.Cacher
	cacheTTL time.Duration

	requestCount atomic.Int64
	errorCount   atomic.Int64
	emptyCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	reloads      atomic.Int64
}

// snapshot is one immutable generation of catalog and ranker.
type snapshot struct {
	ranker *Ranker
	source string
}

// NewEngine creates a new recommendation engine without a catalog.
// Call Load before serving requests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		cacheTTL: cfg.Cache.TTL,
	}, nil
}

// SetCache enables result caching. A nil cacher disables it.
func (e *Engine) SetCache(c cache.Cacher) {
	e.cache = c
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Ready reports whether a catalog has been loaded.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Load reads rows from src, builds a new catalog and swaps it in.
// On failure the previous snapshot, if any, stays in service.
func (e *Engine) Load(ctx context.Context, src Source) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	start := time.Now()
	rows, err := src.Load(ctx)
	if err != nil {
		metrics.RecordCatalogLoad("error", 0, 0)
		return fmt.Errorf("load catalog from %s: %w", src, err)
	}

	if err := e.install(rows, src.String()); err != nil {
		metrics.RecordCatalogLoad("error", 0, 0)
		var empty *EmptyCatalogError
		if errors.As(err, &empty) {
			empty.Source = src.String()
		}
		return err
	}

	snap := e.current.Load()
	e.logger.Info().
		Str("source", src.String()).
		Int("items", snap.ranker.Catalog().Len()).
		Int("vocabulary", snap.ranker.Catalog().Space().Size()).
		Str("version", snap.ranker.Catalog().Version()).
		Dur("duration", time.Since(start)).
		Msg("catalog loaded")

	return nil
}

// LoadRows builds a catalog directly from rows. Intended for tests and
// embedded use.
func (e *Engine) LoadRows(rows []Row) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()
	return e.install(rows, "rows")
}

func (e *Engine) install(rows []Row, source string) error {
	catalog, err := NewCatalog(rows)
	if err != nil {
		return err
	}

	prev := e.current.Swap(&snapshot{
		ranker: NewRanker(catalog, e.config),
		source: source,
	})
	if prev != nil {
		e.reloads.Add(1)
	}

	metrics.RecordCatalogLoad("success", catalog.Len(), catalog.Space().Size())
	return nil
}

// Recommend ranks the current catalog for req.
//
// Invalid parameters yield an *InvalidRequestError; exclusion of every
// item yields an empty Items slice. Results are cached per catalog
// version when a cache is configured.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.current.Load()
	if snap == nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("not_ready", time.Since(start), 0)
		return nil, ErrNotReady
	}

	reqLogger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("catalog_version", snap.ranker.Catalog().Version()).
		Logger()

	version := snap.ranker.Catalog().Version()
	key := e.cacheKey(version, req)

	if cached, ok := e.cacheGet(ctx, key); ok {
		cached.Metadata.RequestID = req.RequestID
		cached.Metadata.CacheHit = true
		cached.Metadata.LatencyMS = time.Since(start).Milliseconds()
		metrics.RecordRecommendation("cache_hit", time.Since(start), cached.TotalCandidates)
		return cached, nil
	}

	result, err := snap.ranker.Rank(ctx, req)
	if err != nil {
		e.errorCount.Add(1)
		outcome := "error"
		if IsInvalidRequest(err) {
			outcome = "invalid"
			reqLogger.Debug().Err(err).Msg("rejected recommendation request")
		} else {
			reqLogger.Error().Err(err).Msg("recommendation failed")
		}
		metrics.RecordRecommendation(outcome, time.Since(start), 0)
		return nil, err
	}

	outcome := "success"
	if len(result.Items) == 0 {
		e.emptyCount.Add(1)
		outcome = "empty"
		reqLogger.Warn().Msg("no candidates available after exclusions")
	}

	resp := &Response{
		Items:           result.Items,
		TotalCandidates: result.Candidates,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			CatalogVersion: version,
			LatencyMS:      time.Since(start).Milliseconds(),
			GeneratedAt:    time.Now(),
		},
	}

	e.cacheSet(ctx, key, resp)

	reqLogger.Debug().
		Int("candidates", result.Candidates).
		Int("returned", len(result.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendations generated")

	metrics.RecordRecommendation(outcome, time.Since(start), result.Candidates)
	return resp, nil
}

// cacheKey canonicalizes req so that ID order and duplicates do not matter.
func (e *Engine) cacheKey(version string, req *Request) string {
	return cache.GenerateKey("recommend:"+version, struct {
		Query    string   `json:"q"`
		Alpha    float64  `json:"a"`
		TopN     int      `json:"n"`
		Exclude  []string `json:"x"`
		Liked    []string `json:"l"`
		Disliked []string `json:"d"`
	}{
		Query:    req.Query,
		Alpha:    req.Alpha,
		TopN:     req.TopN,
		Exclude:  canonicalIDs(req.Exclude),
		Liked:    canonicalIDs(req.Liked),
		Disliked: canonicalIDs(req.Disliked),
	})
}

func (e *Engine) cacheGet(ctx context.Context, key string) (*Response, bool) {
	if e.cache == nil {
		return nil, false
	}

	data, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			e.logger.Debug().Err(err).Msg("result cache read failed")
		}
		e.cacheMisses.Add(1)
		metrics.RecordRecommendCache(false)
		return nil, false
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		e.logger.Warn().Err(err).Msg("discarding undecodable cache entry")
		e.cacheMisses.Add(1)
		metrics.RecordRecommendCache(false)
		return nil, false
	}

	e.cacheHits.Add(1)
	metrics.RecordRecommendCache(true)
	return &resp, true
}

func (e *Engine) cacheSet(ctx context.Context, key string, resp *Response) {
	if e.cache == nil || e.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		e.logger.Warn().Err(err).Msg("failed to encode response for cache")
		return
	}
	if err := e.cache.Set(ctx, key, data, e.cacheTTL); err != nil {
		e.logger.Debug().Err(err).Msg("result cache write failed")
	}
}

// Stats returns a snapshot of engine counters and catalog metadata.
func (e *Engine) Stats() Stats {
	s := Stats{
		Reloads:      e.reloads.Load(),
		Requests:     e.requestCount.Load(),
		Errors:       e.errorCount.Load(),
		EmptyResults: e.emptyCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
	}

	if snap := e.current.Load(); snap != nil {
		c := snap.ranker.Catalog()
		s.Ready = true
		s.CatalogItems = c.Len()
		s.Vocabulary = c.Space().Size()
		s.CatalogVersion = c.Version()
		s.CatalogSource = snap.source
		s.LoadedAt = c.LoadedAt()
	}
	return s
}

func canonicalIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
