// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package cache provides the ranked-result cache used by the recommendation
engine.

# Backends

All backends implement Cacher and store opaque byte slices:

  - Memory: unbounded TTL map with lazy expiry and a background sweep
  - LRU: capacity-bounded map with least-recently-used eviction
  - Redis: shared cache for multi-instance deployments, guarded by a
    sony/gobreaker circuit breaker
  - Badger: embedded BadgerDB with native TTLs; persists across restarts
    when given a path, in memory otherwise

New picks a backend from Config. TypeNone returns a nil Cacher, which the
engine treats as caching disabled.

# Keys

GenerateKey hashes JSON-encoded parameters under a prefix:

	key := cache.GenerateKey("recommend:"+catalogVersion, params)

The engine embeds the catalog version in the prefix, so a reload makes
earlier entries unreachable without an explicit Clear.

# Failure Handling

Get returns ErrMiss for absent or expired keys. Redis errors open the
breaker after RedisConfig.BreakerFailures consecutive failures; while open,
calls fail immediately with gobreaker.ErrOpenState and the engine treats
them as misses. Error logs are throttled with golang.org/x/time/rate.

# Thread Safety

All backends are safe for concurrent use.
*/
package cache
