// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package metrics provides Prometheus instrumentation for vidrec.

All collectors are registered on the default registry with promauto and
exposed by the /metrics endpoint.

# Metric Families

API (recorded by middleware.PrometheusMetrics):

	api_requests_total{method,endpoint,status_code}
	api_request_duration_seconds{method,endpoint}
	api_active_requests
	api_rate_limit_hits_total{endpoint}

Recommendation engine:

	recommend_requests_total{outcome}
	recommend_duration_seconds
	recommend_candidates
	recommend_cache_hits_total
	recommend_cache_misses_total

Catalog:

	catalog_items
	catalog_vocabulary_terms
	catalog_reloads_total{result}
	catalog_last_success_timestamp

Circuit breaker (Redis cache):

	circuit_breaker_state{name}
	circuit_breaker_requests_total{name,result}
	circuit_breaker_state_transitions_total{name,from,to}

# Usage

	start := time.Now()
	resp, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation("success", time.Since(start), resp.TotalCandidates)

Endpoint labels use the chi route pattern, not the raw path, to keep
cardinality bounded.
*/
package metrics
