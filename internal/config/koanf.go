// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/vidrec/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vidrec/config.yaml",
	"/etc/vidrec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	rec := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Host:                 "0.0.0.0",
			Port:                 5000,
			ReadTimeout:          10 * time.Second,
			WriteTimeout:         30 * time.Second,
			IdleTimeout:          2 * time.Minute,
			ShutdownTimeout:      15 * time.Second,
			RequestTimeout:       10 * time.Second,
			SlowRequestThreshold: time.Second,
			LatencyWindow:        1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Catalog: CatalogConfig{
			Source:         SourceCSV,
			Path:           "USvideos.csv",
			Query:          "SELECT video_id, title, views, category_id FROM videos",
			ReloadSchedule: "",
			LoadTimeout:    2 * time.Minute,
		},
		Recommend: RecommendConfig{
			QueryWeight:       rec.Blend.QueryWeight,
			LikedWeight:       rec.Blend.LikedWeight,
			DislikeBase:       rec.Blend.DislikeBase,
			DislikeStep:       rec.Blend.DislikeStep,
			MaxDislikePenalty: rec.Blend.MaxDislikePenalty,
			OnEmptyQuery:      string(rec.Policies.OnEmptyQuery),
			OnNoCandidates:    string(rec.Policies.OnNoCandidates),
			DislikePolicy:     string(rec.Policies.Dislike),
			DefaultAlpha:      rec.Limits.DefaultAlpha,
			DefaultTopN:       rec.Limits.DefaultTopN,
			MaxTopN:           rec.Limits.MaxTopN,
			MaxFeedbackIDs:    rec.Limits.MaxFeedbackIDs,
			Epsilon:           rec.Scoring.Epsilon,
			Workers:           rec.Scoring.Workers,
			ParallelThreshold: rec.Scoring.ParallelThreshold,
		},
		Cache: CacheConfig{
			Enabled:  true,
			Backend:  "memory",
			TTL:      5 * time.Minute,
			Capacity: 10000,
			Redis: RedisConfig{
				Addr:            "localhost:6379",
				KeyPrefix:       "vidrec:",
				DialTimeout:     2 * time.Second,
				ReadTimeout:     500 * time.Millisecond,
				WriteTimeout:    500 * time.Millisecond,
				BreakerFailures: 5,
				BreakerTimeout:  30 * time.Second,
			},
			Badger: BadgerConfig{
				Path:       "cache.badger",
				GCInterval: 10 * time.Minute,
			},
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any mapped setting
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// HTTP_PORT -> server.port, CATALOG_PATH -> catalog.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, preferring
// CONFIG_PATH, or "" if none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML values are already slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_host":              "server.host",
	"http_port":              "server.port",
	"http_read_timeout":      "server.read_timeout",
	"http_write_timeout":     "server.write_timeout",
	"http_idle_timeout":      "server.idle_timeout",
	"shutdown_timeout":       "server.shutdown_timeout",
	"request_timeout":        "server.request_timeout",
	"slow_request_threshold": "server.slow_request_threshold",
	"latency_window":         "server.latency_window",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Catalog mappings
	"catalog_source":          "catalog.source",
	"catalog_path":            "catalog.path",
	"catalog_dsn":             "catalog.dsn",
	"catalog_query":           "catalog.query",
	"catalog_filter":          "catalog.filter",
	"catalog_reload_schedule": "catalog.reload_schedule",
	"catalog_load_timeout":    "catalog.load_timeout",

	// Recommendation mappings
	"recommend_query_weight":        "recommend.query_weight",
	"recommend_liked_weight":        "recommend.liked_weight",
	"recommend_dislike_base":        "recommend.dislike_base",
	"recommend_dislike_step":        "recommend.dislike_step",
	"recommend_max_dislike_penalty": "recommend.max_dislike_penalty",
	"recommend_on_empty_query":      "recommend.on_empty_query",
	"recommend_on_no_candidates":    "recommend.on_no_candidates",
	"recommend_dislike_policy":      "recommend.dislike_policy",
	"recommend_default_alpha":       "recommend.default_alpha",
	"recommend_default_top_n":       "recommend.default_top_n",
	"recommend_max_top_n":           "recommend.max_top_n",
	"recommend_max_feedback_ids":    "recommend.max_feedback_ids",
	"recommend_epsilon":             "recommend.epsilon",
	"recommend_workers":             "recommend.workers",
	"recommend_parallel_threshold":  "recommend.parallel_threshold",

	// Cache mappings
	"cache_enabled":          "cache.enabled",
	"cache_backend":          "cache.backend",
	"cache_ttl":              "cache.ttl",
	"cache_capacity":         "cache.capacity",
	"redis_addr":             "cache.redis.addr",
	"redis_password":         "cache.redis.password",
	"redis_db":               "cache.redis.db",
	"redis_key_prefix":       "cache.redis.key_prefix",
	"redis_dial_timeout":     "cache.redis.dial_timeout",
	"redis_read_timeout":     "cache.redis.read_timeout",
	"redis_write_timeout":    "cache.redis.write_timeout",
	"redis_breaker_failures": "cache.redis.breaker_failures",
	"redis_breaker_timeout":  "cache.redis.breaker_timeout",
	"badger_path":            "cache.badger.path",
	"badger_gc_interval":     "cache.badger.gc_interval",

	// Supervisor mappings
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so that unrelated
// environment variables never reach the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
