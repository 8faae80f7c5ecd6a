// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/vidrec/internal/cache"
	"github.com/tomtom215/vidrec/internal/logging"
	"github.com/tomtom215/vidrec/internal/recommend"
	"github.com/tomtom215/vidrec/internal/supervisor"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Cache      CacheConfig      `koanf:"cache"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds the handling of a single API request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// SlowRequestThreshold logs requests slower than this. Zero disables.
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`

	// LatencyWindow is the number of recent requests kept for latency stats.
	LatencyWindow int `koanf:"latency_window"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Catalog source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
	SourceDuckDB = "duckdb"
)

// CatalogConfig selects and configures the catalog source.
type CatalogConfig struct {
	// Source is csv, sqlite or duckdb.
	Source string `koanf:"source"`

	// Path is the CSV file for the csv source.
	Path string `koanf:"path"`

	// DSN is the database file or connection string for SQL sources.
	DSN string `koanf:"dsn"`

	// Query must yield video_id, title, views, category_id.
	Query string `koanf:"query"`

	// Filter is an optional CEL expression over row fields.
	Filter string `koanf:"filter"`

	// ReloadSchedule is a cron expression. Empty disables scheduled reloads.
	ReloadSchedule string `koanf:"reload_schedule"`

	// LoadTimeout bounds a single catalog load.
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// RecommendConfig holds blending weights, policies and request limits.
type RecommendConfig struct {
	QueryWeight       float64 `koanf:"query_weight"`
	LikedWeight       float64 `koanf:"liked_weight"`
	DislikeBase       float64 `koanf:"dislike_base"`
	DislikeStep       float64 `koanf:"dislike_step"`
	MaxDislikePenalty float64 `koanf:"max_dislike_penalty"`

	OnEmptyQuery   string `koanf:"on_empty_query"`
	OnNoCandidates string `koanf:"on_no_candidates"`
	DislikePolicy  string `koanf:"dislike_policy"`

	DefaultAlpha   float64 `koanf:"default_alpha"`
	DefaultTopN    int     `koanf:"default_top_n"`
	MaxTopN        int     `koanf:"max_top_n"`
	MaxFeedbackIDs int     `koanf:"max_feedback_ids"`

	Epsilon           float64 `koanf:"epsilon"`
	Workers           int     `koanf:"workers"`
	ParallelThreshold int     `koanf:"parallel_threshold"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Backend  string        `koanf:"backend"`
	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`
	Redis    RedisConfig   `koanf:"redis"`
	Badger   BadgerConfig  `koanf:"badger"`
}

// RedisConfig holds the Redis backend and its circuit breaker settings.
type RedisConfig struct {
	Addr            string        `koanf:"addr"`
	Password        string        `koanf:"password"`
	DB              int           `koanf:"db"`
	KeyPrefix       string        `koanf:"key_prefix"`
	DialTimeout     time.Duration `koanf:"dial_timeout"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// BadgerConfig holds the embedded BadgerDB backend settings.
type BadgerConfig struct {
	// Path is the database directory. Empty keeps the cache in memory.
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SupervisorConfig holds suture restart settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// LoggingOptions converts the logging section.
func (c *Config) LoggingOptions() logging.Config {
	opts := logging.DefaultConfig()
	opts.Level = c.Logging.Level
	opts.Format = c.Logging.Format
	opts.Caller = c.Logging.Caller
	opts.Service = "vidrec"
	return opts
}

// RecommendOptions converts the recommend section and the cache TTL.
func (c *Config) RecommendOptions() *recommend.Config {
	r := c.Recommend
	cfg := recommend.DefaultConfig()
	cfg.Blend = recommend.BlendConfig{
		QueryWeight:       r.QueryWeight,
		LikedWeight:       r.LikedWeight,
		DislikeBase:       r.DislikeBase,
		DislikeStep:       r.DislikeStep,
		MaxDislikePenalty: r.MaxDislikePenalty,
	}
	cfg.Policies = recommend.PolicyConfig{
		OnEmptyQuery:   recommend.EmptyQueryPolicy(r.OnEmptyQuery),
		OnNoCandidates: recommend.NoCandidatesPolicy(r.OnNoCandidates),
		Dislike:        recommend.DislikePolicy(r.DislikePolicy),
	}
	cfg.Limits = recommend.LimitsConfig{
		DefaultAlpha:   r.DefaultAlpha,
		DefaultTopN:    r.DefaultTopN,
		MaxTopN:        r.MaxTopN,
		MaxFeedbackIDs: r.MaxFeedbackIDs,
	}
	cfg.Scoring = recommend.ScoringConfig{
		Epsilon:           r.Epsilon,
		Workers:           r.Workers,
		ParallelThreshold: r.ParallelThreshold,
	}
	cfg.Cache.TTL = c.Cache.TTL
	return cfg
}

// CacheOptions converts the cache section. A disabled cache maps to
// cache.TypeNone.
func (c *Config) CacheOptions() cache.Config {
	backend := cache.Type(c.Cache.Backend)
	if !c.Cache.Enabled {
		backend = cache.TypeNone
	}
	r := c.Cache.Redis
	return cache.Config{
		Type:     backend,
		TTL:      c.Cache.TTL,
		Capacity: c.Cache.Capacity,
		Redis: cache.RedisConfig{
			Addr:            r.Addr,
			Password:        r.Password,
			DB:              r.DB,
			KeyPrefix:       r.KeyPrefix,
			DialTimeout:     r.DialTimeout,
			ReadTimeout:     r.ReadTimeout,
			WriteTimeout:    r.WriteTimeout,
			BreakerFailures: uint32(r.BreakerFailures), //nolint:gosec // validated non-negative
			BreakerTimeout:  r.BreakerTimeout,
		},
		Badger: cache.BadgerConfig{
			Path:       c.Cache.Badger.Path,
			GCInterval: c.Cache.Badger.GCInterval,
		},
	}
}

// TreeOptions converts the supervisor section.
func (c *Config) TreeOptions() supervisor.TreeConfig {
	return supervisor.TreeConfig{
		FailureThreshold: c.Supervisor.FailureThreshold,
		FailureDecay:     c.Supervisor.FailureDecay,
		FailureBackoff:   c.Supervisor.FailureBackoff,
		ShutdownTimeout:  c.Supervisor.ShutdownTimeout,
	}
}
