// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	// DuckDB driver, registered as "duckdb". Also reads CSV and Parquet
	// files through read_csv_auto / read_parquet in the catalog query.
	_ "github.com/duckdb/duckdb-go/v2"
	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"

	"github.com/tomtom215/vidrec/internal/recommend"
)

// Driver names accepted by NewSQLSource.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

// SQLSource loads the catalog with a query against SQLite or DuckDB. The
// query must return video_id, title, views and category_id columns, in any
// order. A connection is opened per load so that reloads see fresh data.
type SQLSource struct {
	driver string
	dsn    string
	query  string
	logger zerolog.Logger
}

// NewSQLSource creates a source for driver (sqlite or duckdb).
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSQLSource(driver, dsn, query string, logger zerolog.Logger) (*SQLSource, error) {
	switch driver {
	case DriverSQLite, DriverDuckDB:
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q", driver)
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("catalog query is required")
	}
	if driver == DriverDuckDB && dsn == ":memory:" {
		dsn = ""
	}
	return &SQLSource{driver: driver, dsn: dsn, query: query, logger: logger}, nil
}

func (s *SQLSource) String() string {
	dsn := s.dsn
	if dsn == "" {
		dsn = ":memory:"
	}
	return s.driver + ":" + dsn
}

// Load runs the catalog query and converts every row.
func (s *SQLSource) Load(ctx context.Context) ([]recommend.Row, error) {
	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.driver, err)
	}
	defer db.Close() //nolint:errcheck // read-only connection

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", s, err)
	}

	rows, err := db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s, err)
	}
	defer rows.Close() //nolint:errcheck // checked via rows.Err

	out, dups, err := scanRows(rows, s.String())
	if err != nil {
		return nil, err
	}
	if dups > 0 {
		s.logger.Info().
			Str("source", s.String()).
			Int("duplicates", dups).
			Int("rows", len(out)).
			Msg("skipped repeated video ids, kept first occurrence")
	}
	return out, nil
}

// sqlRows is the subset of *sql.Rows used by scanRows.
type sqlRows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRows(rows sqlRows, name string) ([]recommend.Row, int, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, 0, fmt.Errorf("read columns: %w", err)
	}
	idx, err := locateColumns(cols)
	if err != nil {
		return nil, 0, &SourceError{Source: name, Column: err.Error(), Err: ErrMissingColumn}
	}

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	c := newCollector()
	for n := 1; rows.Next(); n++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, 0, &SourceError{Source: name, Line: n, Err: err}
		}

		id := strings.TrimSpace(asString(values[idx.videoID]))
		if id == "" {
			return nil, 0, &SourceError{Source: name, Line: n, Column: ColumnVideoID, Err: errors.New("empty video id")}
		}
		if c.seenID(id) {
			c.dups++
			continue
		}
		views, err := asViews(values[idx.views])
		if err != nil {
			return nil, 0, &SourceError{Source: name, Line: n, Column: ColumnViews, Err: err}
		}

		c.add(recommend.Row{
			VideoID:    id,
			Title:      asString(values[idx.title]),
			Views:      views,
			CategoryID: strings.TrimSpace(asString(values[idx.categoryID])),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", name, err)
	}
	return c.rows, c.dups, nil
}

// asString renders a driver value as text. NULL is "".
func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// asViews converts a driver value to a view count. NULL is zero.
func asViews(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int64:
		if x < 0 {
			return 0, fmt.Errorf("invalid view count %d", x)
		}
		return float64(x), nil
	case int32:
		return asViews(int64(x))
	case uint64:
		return float64(x), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return 0, fmt.Errorf("invalid view count %v", x)
		}
		return x, nil
	default:
		s := asString(x)
		f, err := parseViews(s)
		if err != nil {
			return 0, fmt.Errorf("invalid view count %q", s)
		}
		return f, nil
	}
}
