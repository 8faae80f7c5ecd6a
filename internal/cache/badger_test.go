// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestBadger(t *testing.T, path string) *Badger {
	t.Helper()
	b, err := NewBadger(BadgerConfig{Path: path}, time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBadger_InMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBadger(t, "")

	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get before Set = %v, want ErrMiss", err)
	}
	if err := b.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := b.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := b.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get after Delete = %v, want ErrMiss", err)
	}
	if err := b.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}

	stats := b.Stats()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Errors != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBadger_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBadger(t, "")

	// Badger TTLs have one-second resolution.
	if err := b.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(2100 * time.Millisecond)
	if _, err := b.Get(ctx, "short"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get after ttl = %v, want ErrMiss", err)
	}
}

func TestBadger_Clear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBadger(t, "")

	for _, k := range []string{"a", "b", "c"} {
		if err := b.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, err := b.Get(ctx, k); !errors.Is(err, ErrMiss) {
			t.Errorf("Get(%s) after Clear = %v", k, err)
		}
	}
}

func TestBadger_SurvivesReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewBadger(BadgerConfig{Path: dir}, time.Minute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	if err := first.Set(ctx, "k", []byte("persisted"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	second := newTestBadger(t, dir)
	got, err := second.Get(ctx, "k")
	if err != nil || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestBadgerConfig_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		in        BadgerConfig
		wantEvery time.Duration
		wantRatio float64
	}{
		{name: "zero", wantEvery: 10 * time.Minute, wantRatio: 0.5},
		{name: "custom", in: BadgerConfig{GCInterval: time.Minute, GCRatio: 0.7}, wantEvery: time.Minute, wantRatio: 0.7},
		{name: "ratio out of range", in: BadgerConfig{GCRatio: 1.5}, wantEvery: 10 * time.Minute, wantRatio: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.applyDefaults()
			if cfg.GCInterval != tt.wantEvery || cfg.GCRatio != tt.wantRatio {
				t.Errorf("got %v/%v, want %v/%v", cfg.GCInterval, cfg.GCRatio, tt.wantEvery, tt.wantRatio)
			}
		})
	}
}
