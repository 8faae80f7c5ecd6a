// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/vidrec/internal/cache"
	"github.com/tomtom215/vidrec/internal/logging"
)

// Validate checks that required configuration is present and valid.
// It reports the first problem found.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.RecommendOptions().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	return c.validateSupervisor()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.SlowRequestThreshold < 0 {
		return fmt.Errorf("SLOW_REQUEST_THRESHOLD must be non-negative, got %v", c.Server.SlowRequestThreshold)
	}
	if c.Server.LatencyWindow < 1 {
		return fmt.Errorf("LATENCY_WINDOW must be positive, got %d", c.Server.LatencyWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled (got: %s)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console (got: %s)", c.Logging.Format)
	}
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * to allow all)")
	}
	for _, origin := range c.Security.CORSOrigins {
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case SourceCSV:
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=csv")
		}
	case SourceSQLite, SourceDuckDB:
		if c.Catalog.DSN == "" {
			return fmt.Errorf("CATALOG_DSN is required when CATALOG_SOURCE=%s", c.Catalog.Source)
		}
		if strings.TrimSpace(c.Catalog.Query) == "" {
			return fmt.Errorf("CATALOG_QUERY is required when CATALOG_SOURCE=%s", c.Catalog.Source)
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be csv, sqlite or duckdb (got: %s)", c.Catalog.Source)
	}

	if c.Catalog.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.Catalog.ReloadSchedule); err != nil {
			return fmt.Errorf("CATALOG_RELOAD_SCHEDULE is not a valid cron expression: %w", err)
		}
	}
	if c.Catalog.LoadTimeout <= 0 {
		return fmt.Errorf("CATALOG_LOAD_TIMEOUT must be positive, got %v", c.Catalog.LoadTimeout)
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled, got %v", c.Cache.TTL)
	}

	switch cache.Type(c.Cache.Backend) {
	case cache.TypeMemory:
		return nil
	case cache.TypeLRU:
		if c.Cache.Capacity < 1 {
			return fmt.Errorf("CACHE_CAPACITY must be positive for the lru backend, got %d", c.Cache.Capacity)
		}
		return nil
	case cache.TypeRedis:
		if err := validateHostPort(c.Cache.Redis.Addr, "REDIS_ADDR"); err != nil {
			return err
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("REDIS_DB must be non-negative, got %d", c.Cache.Redis.DB)
		}
		if c.Cache.Redis.BreakerFailures < 1 {
			return fmt.Errorf("REDIS_BREAKER_FAILURES must be positive, got %d", c.Cache.Redis.BreakerFailures)
		}
		return nil
	case cache.TypeBadger:
		if c.Cache.Badger.GCInterval < time.Minute {
			return fmt.Errorf("BADGER_GC_INTERVAL must be at least 1m, got %v", c.Cache.Badger.GCInterval)
		}
		return nil
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory, lru, redis or badger (got: %s)", c.Cache.Backend)
	}
}

func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD must be positive, got %v", c.Supervisor.FailureThreshold)
	}
	if c.Supervisor.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_DECAY must be positive, got %v", c.Supervisor.FailureDecay)
	}
	if c.Supervisor.FailureBackoff < 0 || c.Supervisor.ShutdownTimeout < 0 {
		return fmt.Errorf("supervisor durations must be non-negative")
	}
	return nil
}
