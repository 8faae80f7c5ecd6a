// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vidrec/internal/metrics"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key so Clear only touches this service.
	KeyPrefix string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// BreakerFailures is the consecutive failure count that opens the breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

func (c *RedisConfig) applyDefaults() {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "vidrec:"
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 2 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 500 * time.Millisecond
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 500 * time.Millisecond
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	if c.BreakerTimeout <= 0 {
		c.BreakerTimeout = 30 * time.Second
	}
}

// Redis is a shared cache backed by Redis. Every call goes through a
// circuit breaker so an unavailable Redis degrades to cache misses
// instead of slowing requests down.
type Redis struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	prefix string
	ttl    time.Duration
	logger zerolog.Logger

	// errLog throttles error logging while Redis is down
	errLog rate.Sometimes

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

const breakerName = "redis-cache"

// NewRedis connects to Redis and verifies the connection with PING.
//
//nolint:gocritic // config passed by value at startup only
func NewRedis(cfg RedisConfig, ttl time.Duration, logger zerolog.Logger) (*Redis, error) {
	cfg.applyDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return newRedisWithClient(client, cfg, ttl, logger), nil
}

//nolint:gocritic // config passed by value at startup only
func newRedisWithClient(client *redis.Client, cfg RedisConfig, ttl time.Duration, logger zerolog.Logger) *Redis {
	cfg.applyDefaults()
	log := logger.With().Str("component", "cache").Str("backend", "redis").Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// a miss is a healthy answer
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("cache circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Redis{
		client: client,
		cb:     cb,
		prefix: cfg.KeyPrefix,
		ttl:    ttl,
		logger: log,
		errLog: rate.Sometimes{First: 1, Interval: 30 * time.Second},
	}
}

// Get returns the stored value, ErrMiss, or a Redis/breaker error.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.cb.Execute(func() ([]byte, error) {
		b, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return b, err
	})

	switch {
	case err == nil:
		r.hits.Add(1)
		return data, nil
	case errors.Is(err, ErrMiss):
		r.misses.Add(1)
		return nil, ErrMiss
	default:
		r.misses.Add(1)
		r.fail("get", err)
		return nil, err
	}
}

// Set stores value under key.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	_, err := r.cb.Execute(func() ([]byte, error) {
		return nil, r.client.Set(ctx, r.prefix+key, value, ttl).Err()
	})
	if err != nil {
		r.fail("set", err)
	}
	return err
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	_, err := r.cb.Execute(func() ([]byte, error) {
		return nil, r.client.Del(ctx, r.prefix+key).Err()
	})
	if err != nil {
		r.fail("delete", err)
	}
	return err
}

// Clear deletes every key under the configured prefix using SCAN.
func (r *Redis) Clear(ctx context.Context) error {
	_, err := r.cb.Execute(func() ([]byte, error) {
		iter := r.client.Scan(ctx, 0, r.prefix+"*", 500).Iterator()
		batch := make([]string, 0, 500)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == cap(batch) {
				if err := r.client.Del(ctx, batch...).Err(); err != nil {
					return nil, err
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
		if len(batch) > 0 {
			return nil, r.client.Del(ctx, batch...).Err()
		}
		return nil, nil
	})
	if err != nil {
		r.fail("clear", err)
	}
	return err
}

// Stats returns hit, miss and error counts. Key totals are not tracked
// for Redis.
func (r *Redis) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Errors: r.errs.Load(),
	}
}

// BreakerState reports the circuit breaker state.
func (r *Redis) BreakerState() gobreaker.State {
	return r.cb.State()
}

// Close closes the Redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) fail(op string, err error) {
	r.errs.Add(1)
	result := "failure"
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "rejected"
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, result).Inc()
	r.errLog.Do(func() {
		r.logger.Warn().Err(err).Str("op", op).Str("result", result).Msg("redis cache unavailable")
	})
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
