// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/vidrec/internal/logging"
)

// RequestSample is one observed request.
type RequestSample struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// RouteLatency contains aggregated latency for one method and route.
type RouteLatency struct {
	Route        string  `json:"route"`
	RequestCount int64   `json:"request_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MaxMS        float64 `json:"max_ms"`
}

// LatencyTracker keeps a fixed window of recent request samples and
// warns about requests slower than a threshold.
type LatencyTracker struct {
	mu      sync.RWMutex
	samples []RequestSample
	next    int
	full    bool
	slow    time.Duration
}

// NewLatencyTracker keeps the last window samples. A zero slow threshold
// disables slow request warnings.
func NewLatencyTracker(window int, slow time.Duration) *LatencyTracker {
	if window <= 0 {
		window = 1000
	}
	return &LatencyTracker{
		samples: make([]RequestSample, window),
		slow:    slow,
	}
}

// Record adds a sample, overwriting the oldest once the window is full.
func (lt *LatencyTracker) Record(s RequestSample) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.samples[lt.next] = s
	lt.next++
	if lt.next == len(lt.samples) {
		lt.next = 0
		lt.full = true
	}
}

// Len returns the number of samples currently held.
func (lt *LatencyTracker) Len() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()
	if lt.full {
		return len(lt.samples)
	}
	return lt.next
}

// Stats aggregates the window per method and route, busiest first.
func (lt *LatencyTracker) Stats() []RouteLatency {
	lt.mu.RLock()
	n := lt.next
	if lt.full {
		n = len(lt.samples)
	}
	byRoute := make(map[string][]time.Duration)
	for _, s := range lt.samples[:n] {
		key := s.Method + " " + s.Route
		byRoute[key] = append(byRoute[key], s.Duration)
	}
	lt.mu.RUnlock()

	stats := make([]RouteLatency, 0, len(byRoute))
	for route, durations := range byRoute {
		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

		var sum time.Duration
		for _, d := range durations {
			sum += d
		}
		stats = append(stats, RouteLatency{
			Route:        route,
			RequestCount: int64(len(durations)),
			AvgMS:        ms(sum) / float64(len(durations)),
			P50MS:        ms(percentile(durations, 0.50)),
			P95MS:        ms(percentile(durations, 0.95)),
			P99MS:        ms(percentile(durations, 0.99)),
			MaxMS:        ms(durations[len(durations)-1]),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Route < stats[j].Route
	})
	return stats
}

// Middleware records every request passing through it.
func (lt *LatencyTracker) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)

		lt.Record(RequestSample{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: status,
			Timestamp:  start,
		})

		if lt.slow > 0 && duration > lt.slow {
			logging.CtxWarn(r.Context()).
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", lt.slow).
				Msg("Slow request detected")
		}
	})
}

// percentile reads the nearest-rank value from a sorted slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
