// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/recommend"
)

// CatalogLoader is satisfied by *recommend.Engine.
type CatalogLoader interface {
	Load(ctx context.Context, src recommend.Source) error
}

// CatalogReloadService reloads the catalog on a cron schedule. A failed
// reload is logged and the engine keeps serving the previous catalog.
// Runs that would overlap a reload still in progress are skipped.
type CatalogReloadService struct {
	loader   CatalogLoader
	source   recommend.Source
	schedule cron.Schedule
	spec     string
	timeout  time.Duration
	logger   zerolog.Logger

	succeeded atomic.Int64
	failed    atomic.Int64
	running   atomic.Bool
}

// NewCatalogReloadService parses spec, a standard five-field cron
// expression or descriptor such as "@hourly". timeout bounds each load;
// zero means no bound.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(loader CatalogLoader, source recommend.Source, spec string, timeout time.Duration, logger zerolog.Logger) (*CatalogReloadService, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	return &CatalogReloadService{
		loader:   loader,
		source:   source,
		schedule: schedule,
		spec:     spec,
		timeout:  timeout,
		logger:   logger.With().Str("service", "catalog-reload").Str("source", source.String()).Logger(),
	}, nil
}

// Serve implements suture.Service.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	c := cron.New()
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if err := s.Reload(ctx); err != nil && !errors.Is(err, ErrReloadInProgress) {
			s.logger.Warn().Err(err).Msg("Catalog reload failed, keeping previous catalog")
		}
	}))
	c.Start()

	s.logger.Info().
		Str("schedule", s.spec).
		Time("next", s.schedule.Next(time.Now())).
		Msg("Catalog reload scheduled")

	<-ctx.Done()

	// Stop waits for a reload in flight, which ctx already cancels.
	<-c.Stop().Done()
	return ctx.Err()
}

// ErrReloadInProgress is returned by Reload while another reload runs.
var ErrReloadInProgress = errors.New("catalog reload already in progress")

// Reload loads the catalog now. It is used by the schedule and by the
// SIGHUP handler.
func (s *CatalogReloadService) Reload(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug().Msg("Skipping catalog reload, previous run still active")
		return ErrReloadInProgress
	}
	defer s.running.Store(false)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := s.loader.Load(ctx, s.source); err != nil {
		s.failed.Add(1)
		return err
	}
	s.succeeded.Add(1)
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Catalog reloaded")
	return nil
}

// Counts returns the number of successful and failed reloads.
func (s *CatalogReloadService) Counts() (succeeded, failed int64) {
	return s.succeeded.Load(), s.failed.Load()
}

func (s *CatalogReloadService) String() string {
	return "catalog-reload"
}
