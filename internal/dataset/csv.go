// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/recommend"
)

// CSVSource reads a trending-videos style CSV file. Columns are located by
// header name and extra columns are ignored. Repeated video IDs keep the
// first row.
type CSVSource struct {
	path   string
	logger zerolog.Logger
}

// NewCSVSource creates a source for the CSV file at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCSVSource(path string, logger zerolog.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger}
}

func (s *CSVSource) String() string {
	return "csv:" + s.path
}

// Load reads every row of the file.
func (s *CSVSource) Load(ctx context.Context) ([]recommend.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	rows, dups, err := readCSV(ctx, f, s.String())
	if err != nil {
		return nil, err
	}
	if dups > 0 {
		s.logger.Info().
			Str("source", s.String()).
			Int("duplicates", dups).
			Int("rows", len(rows)).
			Msg("skipped repeated video ids, kept first occurrence")
	}
	return rows, nil
}

// readCSV parses r and returns rows plus the number of skipped duplicates.
func readCSV(ctx context.Context, r io.Reader, name string) ([]recommend.Row, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, &SourceError{Source: name, Line: 1, Err: err}
	}

	idx, err := locateColumns(header)
	if err != nil {
		return nil, 0, &SourceError{Source: name, Line: 1, Column: err.Error(), Err: ErrMissingColumn}
	}

	c := newCollector()

	for n := 1; ; n++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			se := &SourceError{Source: name, Err: err}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				se.Line = pe.Line
			}
			return nil, 0, se
		}
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		// Quoted titles may span lines, so report the physical line.
		line, _ := cr.FieldPos(0)

		if len(record) <= idx.max {
			return nil, 0, &SourceError{
				Source: name,
				Line:   line,
				Err:    fmt.Errorf("expected at least %d fields, got %d", idx.max+1, len(record)),
			}
		}

		id := strings.TrimSpace(record[idx.videoID])
		if id == "" {
			return nil, 0, &SourceError{Source: name, Line: line, Column: ColumnVideoID, Err: errors.New("empty video id")}
		}
		if c.seenID(id) {
			c.dups++
			continue
		}

		views, err := parseViews(record[idx.views])
		if err != nil {
			return nil, 0, &SourceError{
				Source: name,
				Line:   line,
				Column: ColumnViews,
				Err:    fmt.Errorf("invalid view count %q", record[idx.views]),
			}
		}

		c.add(recommend.Row{
			VideoID:    id,
			Title:      record[idx.title],
			Views:      views,
			CategoryID: strings.TrimSpace(record[idx.categoryID]),
		})
	}

	return c.rows, c.dups, nil
}

type columnIndex struct {
	videoID, title, views, categoryID int
	max                               int
}

// locateColumns maps required columns to header positions. The error
// text is the comma-separated list of missing columns.
func locateColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := pos[name]; !ok {
			pos[name] = i
		}
	}

	var missing []string
	get := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	idx := columnIndex{
		videoID:    get(ColumnVideoID),
		title:      get(ColumnTitle),
		views:      get(ColumnViews),
		categoryID: get(ColumnCategoryID),
	}
	if len(missing) > 0 {
		return idx, errors.New(strings.Join(missing, ","))
	}
	idx.max = max(idx.videoID, idx.title, idx.views, idx.categoryID)
	return idx, nil
}
