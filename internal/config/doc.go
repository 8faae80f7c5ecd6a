// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package config loads and validates vidrec configuration.

# Configuration Sources

Load layers three koanf sources, later layers winning:

 1. built-in defaults (defaultConfig)
 2. an optional YAML file: $CONFIG_PATH, else config.yaml, config.yml,
    /etc/vidrec/config.yaml or /etc/vidrec/config.yml
 3. mapped environment variables

Only variables listed in envMappings are read. Comma-separated values are
split for slice fields such as CORS_ORIGINS.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:5000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - REQUEST_TIMEOUT (default 10s), SHUTDOWN_TIMEOUT (default 15s)
  - SLOW_REQUEST_THRESHOLD (default 1s), LATENCY_WINDOW (default 1000)

Logging:
  - LOG_LEVEL (default info), LOG_FORMAT (json or console), LOG_CALLER

Security:
  - CORS_ORIGINS (default *)
  - RATE_LIMIT_REQUESTS (default 100), RATE_LIMIT_WINDOW (default 1m)
  - DISABLE_RATE_LIMIT

Catalog:
  - CATALOG_SOURCE: csv, sqlite or duckdb (default csv)
  - CATALOG_PATH: CSV file (default USvideos.csv)
  - CATALOG_DSN, CATALOG_QUERY: SQL sources
  - CATALOG_FILTER: CEL expression, e.g. views >= 1000
  - CATALOG_RELOAD_SCHEDULE: cron expression, empty disables reloads
  - CATALOG_LOAD_TIMEOUT (default 2m)

Recommendation:
  - RECOMMEND_DEFAULT_ALPHA (default 0.3), RECOMMEND_DEFAULT_TOP_N (default 10)
  - RECOMMEND_MAX_TOP_N (default 500), RECOMMEND_MAX_FEEDBACK_IDS (default 1000)
  - RECOMMEND_QUERY_WEIGHT, RECOMMEND_LIKED_WEIGHT (default 0.2, 0.8)
  - RECOMMEND_DISLIKE_BASE, RECOMMEND_DISLIKE_STEP, RECOMMEND_MAX_DISLIKE_PENALTY
  - RECOMMEND_ON_EMPTY_QUERY: use_first_item, reject or require_feedback
  - RECOMMEND_ON_NO_CANDIDATES: empty or full_catalog
  - RECOMMEND_DISLIKE_POLICY: both, exclude or penalize
  - RECOMMEND_EPSILON, RECOMMEND_WORKERS, RECOMMEND_PARALLEL_THRESHOLD

Cache:
  - CACHE_ENABLED (default true), CACHE_BACKEND: memory, lru, redis or badger
  - CACHE_TTL (default 5m), CACHE_CAPACITY (lru only)
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, REDIS_KEY_PREFIX
  - REDIS_BREAKER_FAILURES, REDIS_BREAKER_TIMEOUT
  - BADGER_PATH (default cache.badger), BADGER_GC_INTERVAL (default 10m)

Supervisor:
  - SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY
  - SUPERVISOR_FAILURE_BACKOFF, SUPERVISOR_SHUTDOWN_TIMEOUT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingOptions())
	engine, err := recommend.NewEngine(cfg.RecommendOptions(), logging.Logger())
*/
package config
