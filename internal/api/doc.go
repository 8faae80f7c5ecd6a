// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package api exposes the recommendation engine over HTTP using the chi router.

# Endpoints

	GET /recommendations           ranked videos (also /api/v1/recommendations)
	GET /api/v1/health/live        liveness probe
	GET /api/v1/health/ready       readiness probe, 503 until a catalog is loaded
	GET /api/v1/catalog/stats      engine and catalog counters
	GET /api/v1/stats/latency      per-route latency percentiles
	GET /metrics                   Prometheus exposition

# Recommendation parameters

	query     free text, may be empty
	alpha     popularity weight in [0, 1], default 0.3
	top_n     result count, default 10
	played    comma-separated IDs to exclude
	liked     comma-separated IDs to boost
	disliked  comma-separated IDs to exclude and penalize

Example:

	curl 'http://localhost:5000/recommendations?query=cat&alpha=0.5&top_n=2&played=b'

The response is a JSON array of objects with video_id, title,
category_id, views, popularity_score, content_score and final_score.
Errors use {"error": "..."} with 400 for bad parameters, 429 when rate
limited, 503 before the first catalog load and 500 otherwise.

# Middleware

Every route passes through request ID assignment, chi RealIP and
Recoverer, go-chi/cors, Prometheus instrumentation, the latency tracker
and response compression. Recommendation and stats routes share one
go-chi/httprate per-IP limiter; health probes and /metrics are not
limited.
*/
package api
