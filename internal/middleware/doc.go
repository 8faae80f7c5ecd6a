// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package middleware provides HTTP middleware for the vidrec API.

All middleware has the standard func(http.Handler) http.Handler shape and
is mounted on the chi router next to the chi built-ins:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(latency.Middleware)
	r.Use(chimiddleware.Compress(5))

Key Components:

  - RequestID: accepts a well-formed upstream X-Request-ID or generates a
    UUID, and stores it with a correlation ID for logging.Ctx.
  - PrometheusMetrics: request counts, latency and in-flight gauge,
    labelled with the chi route pattern.
  - LatencyTracker: a fixed window of recent requests with per-route
    percentiles and slow request warnings, served by the stats endpoint.
*/
package middleware
