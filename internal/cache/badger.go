// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// BadgerConfig configures the embedded on-disk backend.
type BadgerConfig struct {
	// Path is the database directory. Empty runs fully in memory.
	Path string

	// GCInterval is how often value log garbage collection runs.
	// Default: 10m. Ignored in memory mode.
	GCInterval time.Duration

	// GCRatio is the discard ratio passed to RunValueLogGC. Default: 0.5.
	GCRatio float64
}

func (c *BadgerConfig) applyDefaults() {
	if c.GCInterval <= 0 {
		c.GCInterval = 10 * time.Minute
	}
	if c.GCRatio <= 0 || c.GCRatio >= 1 {
		c.GCRatio = 0.5
	}
}

// Badger is a cache backed by BadgerDB. Entries expire through Badger's
// native TTL, so results survive a restart of a single instance without
// a Redis deployment.
type Badger struct {
	db     *badger.DB
	ttl    time.Duration
	cfg    BadgerConfig
	logger zerolog.Logger

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

// NewBadger opens (or creates) the database at cfg.Path.
//
//nolint:gocritic // config passed by value at startup only
func NewBadger(cfg BadgerConfig, ttl time.Duration, logger zerolog.Logger) (*Badger, error) {
	cfg.applyDefaults()

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	b := &Badger{
		db:     db,
		ttl:    ttl,
		cfg:    cfg,
		logger: logger.With().Str("component", "cache").Str("backend", "badger").Logger(),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if cfg.Path == "" {
		close(b.done)
	} else {
		go b.gcLoop()
	}

	b.logger.Info().Str("path", cfg.Path).Bool("in_memory", cfg.Path == "").Msg("badger cache opened")
	return b, nil
}

// Get returns the stored value or ErrMiss. Expired entries read as missing.
func (b *Badger) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case err == nil:
		b.hits.Add(1)
		return value, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		b.misses.Add(1)
		return nil, ErrMiss
	default:
		b.misses.Add(1)
		b.errs.Add(1)
		return nil, fmt.Errorf("badger get: %w", err)
	}
}

// Set stores value for ttl, or the default TTL when ttl <= 0.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = b.ttl
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		b.errs.Add(1)
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// Delete removes key.
func (b *Badger) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		b.errs.Add(1)
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// Clear drops every entry.
func (b *Badger) Clear(_ context.Context) error {
	if err := b.db.DropAll(); err != nil {
		b.errs.Add(1)
		return fmt.Errorf("badger clear: %w", err)
	}
	return nil
}

// Stats returns hit, miss and error counts.
func (b *Badger) Stats() Stats {
	return Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Errors: b.errs.Load(),
	}
}

// Close stops garbage collection and closes the database. Safe to call
// more than once.
func (b *Badger) Close() error {
	b.closeOnce.Do(func() {
		close(b.stop)
		<-b.done
		b.closeErr = b.db.Close()
	})
	return b.closeErr
}

func (b *Badger) gcLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.cfg.GCInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stop:
			return
		case <-ticker.C:
			if err := b.runGC(); err != nil {
				b.logger.Warn().Err(err).Msg("badger value log gc failed")
			}
		}
	}
}

// runGC collects until Badger reports nothing left to rewrite.
func (b *Badger) runGC() error {
	for {
		err := b.db.RunValueLogGC(b.cfg.GCRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
