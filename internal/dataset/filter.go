// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/recommend"
)

var (
	filterEnv     *cel.Env
	filterEnvErr  error
	filterEnvOnce sync.Once
)

// rowEnv returns the shared CEL environment. Each catalog column is a
// typed variable.
func rowEnv() (*cel.Env, error) {
	filterEnvOnce.Do(func() {
		filterEnv, filterEnvErr = cel.NewEnv(
			cel.Variable(ColumnVideoID, cel.StringType),
			cel.Variable(ColumnTitle, cel.StringType),
			cel.Variable(ColumnViews, cel.DoubleType),
			cel.Variable(ColumnCategoryID, cel.StringType),
		)
	})
	return filterEnv, filterEnvErr
}

// Filter is a compiled CEL predicate over catalog rows, for example
//
//	views >= 1000.0 && category_id != "29"
//	title.contains("music")
//
// A Filter is safe for concurrent use.
type Filter struct {
	expr string
	prg  cel.Program
}

// CompileFilter parses and type-checks expr. The expression must
// evaluate to a bool.
func CompileFilter(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty filter expression")
	}
	env, err := rowEnv()
	if err != nil {
		return nil, fmt.Errorf("filter environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must return bool, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against r.
//
//nolint:gocritic // Row is small and read-only here
func (f *Filter) Match(r recommend.Row) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		ColumnVideoID:    r.VideoID,
		ColumnTitle:      r.Title,
		ColumnViews:      r.Views,
		ColumnCategoryID: r.CategoryID,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter on %s: %w", r.VideoID, err)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("filter returned %T", out.Value())
	}
	return ok, nil
}

// Apply returns the rows that match, preserving order.
func (f *Filter) Apply(rows []recommend.Row) ([]recommend.Row, error) {
	kept := rows[:0:0]
	for i := range rows {
		ok, err := f.Match(rows[i])
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, rows[i])
		}
	}
	return kept, nil
}

// FilteredSource applies a Filter to every load of the wrapped source.
type FilteredSource struct {
	source recommend.Source
	filter *Filter
	logger zerolog.Logger
}

// NewFilteredSource wraps source with filter.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFilteredSource(source recommend.Source, filter *Filter, logger zerolog.Logger) *FilteredSource {
	return &FilteredSource{source: source, filter: filter, logger: logger}
}

func (s *FilteredSource) String() string {
	return s.source.String()
}

// Load loads the wrapped source and drops rows the filter rejects.
func (s *FilteredSource) Load(ctx context.Context) ([]recommend.Row, error) {
	rows, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	kept, err := s.filter.Apply(rows)
	if err != nil {
		return nil, &SourceError{Source: s.String(), Err: err}
	}
	s.logger.Debug().
		Str("source", s.String()).
		Str("filter", s.filter.String()).
		Int("loaded", len(rows)).
		Int("kept", len(kept)).
		Msg("catalog filter applied")
	return kept, nil
}
