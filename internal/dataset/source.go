// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/config"
	"github.com/tomtom215/vidrec/internal/recommend"
)

// NewSource builds the catalog source described by cfg, wrapped in a
// FilteredSource when cfg.Filter is set.
//
//nolint:gocritic // config and logger passed by value at startup only
func NewSource(cfg config.CatalogConfig, logger zerolog.Logger) (recommend.Source, error) {
	var src recommend.Source
	switch cfg.Source {
	case config.SourceCSV:
		src = NewCSVSource(cfg.Path, logger)
	case config.SourceSQLite:
		s, err := NewSQLSource(DriverSQLite, cfg.DSN, cfg.Query, logger)
		if err != nil {
			return nil, err
		}
		src = s
	case config.SourceDuckDB:
		s, err := NewSQLSource(DriverDuckDB, cfg.DSN, cfg.Query, logger)
		if err != nil {
			return nil, err
		}
		src = s
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if cfg.Filter == "" {
		return src, nil
	}
	f, err := CompileFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}
	return NewFilteredSource(src, f, logger), nil
}
