// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cacher is a byte-oriented cache shared by the in-process and Redis
// backends. Values are opaque; callers encode and decode them.
//
// Usage:
//
//	c, err := cache.New(cache.Config{Type: cache.TypeMemory, TTL: 5 * time.Minute}, logger)
//	_ = c.Set(ctx, key, data, 0) // 0 uses the default TTL
//	if data, err := c.Get(ctx, key); err == nil {
//	    // use data
//	}
type Cacher interface {
	// Get returns the stored value or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl. A ttl <= 0 uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Stats returns cache statistics.
	Stats() Stats

	// Close releases background goroutines and connections.
	Close() error
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Errors      int64     `json:"errors"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup,omitempty"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// Type selects a cache backend.
type Type string

const (
	// TypeNone disables caching.
	TypeNone Type = "none"

	// TypeMemory is an unbounded TTL map (default).
	TypeMemory Type = "memory"

	// TypeLRU is a capacity-bounded TTL cache with LRU eviction.
	TypeLRU Type = "lru"

	// TypeRedis is a shared Redis cache behind a circuit breaker.
	TypeRedis Type = "redis"

	// TypeBadger is an embedded BadgerDB cache, on disk or in memory.
	TypeBadger Type = "badger"
)

// Config holds configuration for creating a cache.
type Config struct {
	// Type specifies the backend.
	Type Type

	// TTL is the default time-to-live for entries.
	TTL time.Duration

	// Capacity bounds the LRU backend. Default: 10000.
	Capacity int

	// Redis configures the Redis backend.
	Redis RedisConfig

	// Badger configures the BadgerDB backend.
	Badger BadgerConfig
}

// New creates a cache for cfg. TypeNone returns a nil Cacher and no error.
//
//nolint:gocritic // config passed by value at startup only
func New(cfg Config, logger zerolog.Logger) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	switch cfg.Type {
	case TypeNone:
		return nil, nil
	case TypeLRU:
		return NewLRU(cfg.Capacity, cfg.TTL), nil
	case TypeRedis:
		r, err := NewRedis(cfg.Redis, cfg.TTL, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	case TypeBadger:
		b, err := NewBadger(cfg.Badger, cfg.TTL, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case TypeMemory, "":
		return NewMemory(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// GenerateKey creates a cache key from a prefix and parameters.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}

var (
	_ Cacher = (*Memory)(nil)
	_ Cacher = (*LRU)(nil)
	_ Cacher = (*Redis)(nil)
)
