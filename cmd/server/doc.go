// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package main is the entry point for the vidrec server.

Vidrec serves hybrid video recommendations: a popularity score from view
counts blended with TF-IDF content similarity to a text query and to the
caller's liked and disliked videos.

# Application Architecture

	RootSupervisor ("vidrec")
	├── DataSupervisor ("data-layer")
	│   └── Catalog reload (cron, optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Recommendation engine and catalog source (CSV, SQLite or DuckDB)
 4. Initial catalog load (fatal on failure)
 5. Result cache: memory, LRU, BadgerDB or Redis behind a circuit breaker
 6. Supervisor tree: Suture v4 process supervision
 7. HTTP Server: Chi router with middleware stack

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=5000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	CATALOG_SOURCE=csv           # csv, sqlite or duckdb
	CATALOG_PATH=USvideos.csv
	CATALOG_DSN=                 # database file for sqlite/duckdb
	CATALOG_QUERY=               # must yield video_id, title, views, category_id
	CATALOG_FILTER=              # optional CEL, e.g. views >= 1000.0
	CATALOG_RELOAD_SCHEDULE=     # cron spec, e.g. "@every 15m"

	CACHE_ENABLED=false
	CACHE_BACKEND=memory         # memory, lru, redis or badger

See internal/config for the complete list.

# Signal Handling

SIGINT and SIGTERM stop the supervisor tree; the HTTP server drains
in-flight requests within the shutdown timeout. SIGHUP reloads the catalog
without a restart. A failed reload keeps serving the previous catalog.

# Endpoints

	GET /recommendations
	GET /api/v1/recommendations
	GET /api/v1/health/live
	GET /api/v1/health/ready
	GET /api/v1/catalog/stats
	GET /api/v1/stats/latency
	GET /metrics
*/
package main
