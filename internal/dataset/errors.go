// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is matched by SourceError when a required column is absent.
var ErrMissingColumn = errors.New("required column missing")

// SourceError locates a problem in catalog input. Line is 1-based; for CSV
// files it counts the header, for SQL sources it is the result row number.
// Zero means the error is not tied to a line.
type SourceError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *SourceError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s: line %d, column %s: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %s: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
