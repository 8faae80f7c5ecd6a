// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

// Package testinfra provides containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/cache/...
//
// # Redis Container
//
//	func TestRedisRoundTrip(t *testing.T) {
//	    redis := testinfra.StartRedis(t)
//	    c, err := cache.NewRedis(cache.RedisConfig{Addr: redis.Addr}, time.Minute, zerolog.Nop())
//	    // ...
//	}
//
// Tests are skipped when Docker is unavailable. The first run pulls the
// image; later runs use the local copy.
package testinfra
