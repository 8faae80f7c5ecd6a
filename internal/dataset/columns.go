// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/vidrec/internal/recommend"
)

// Required catalog columns.
const (
	ColumnVideoID    = "video_id"
	ColumnTitle      = "title"
	ColumnViews      = "views"
	ColumnCategoryID = "category_id"
)

// RequiredColumns lists the columns every source must provide, in row order.
var RequiredColumns = []string{ColumnVideoID, ColumnTitle, ColumnViews, ColumnCategoryID}

// parseViews accepts integer or decimal view counts. Blank cells are zero.
func parseViews(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// collector accumulates rows, keeping the first row for each video ID.
type collector struct {
	rows []recommend.Row
	seen map[string]struct{}
	dups int
}

func newCollector() *collector {
	return &collector{
		rows: make([]recommend.Row, 0, 1024),
		seen: make(map[string]struct{}, 1024),
	}
}

// seenID reports whether id was already collected.
func (c *collector) seenID(id string) bool {
	_, ok := c.seen[id]
	return ok
}

// add appends r unless its ID was already collected.
func (c *collector) add(r recommend.Row) {
	if c.seenID(r.VideoID) {
		c.dups++
		return
	}
	c.seen[r.VideoID] = struct{}{}
	c.rows = append(c.rows, r)
}
