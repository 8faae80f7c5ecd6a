// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCatalog is matched by EmptyCatalogError.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrInvalidRequest is matched by InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrNotReady is returned when no catalog has been loaded yet.
	ErrNotReady = errors.New("recommendation engine has no catalog loaded")
)

// EmptyCatalogError reports a source that produced no usable rows.
// It is fatal at startup.
type EmptyCatalogError struct {
	Source string
}

func (e *EmptyCatalogError) Error() string {
	if e.Source == "" {
		return ErrEmptyCatalog.Error()
	}
	return fmt.Sprintf("%s: %s", ErrEmptyCatalog.Error(), e.Source)
}

// Is makes errors.Is(err, ErrEmptyCatalog) succeed.
func (e *EmptyCatalogError) Is(target error) bool {
	return target == ErrEmptyCatalog
}

// InvalidRequestError reports a request parameter outside its domain.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRequest) succeed.
func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// CatalogError reports a row that cannot be admitted into the catalog.
type CatalogError struct {
	Row     int
	VideoID string
	Reason  string
}

func (e *CatalogError) Error() string {
	if e.VideoID == "" {
		return fmt.Sprintf("catalog row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("catalog row %d (%s): %s", e.Row, e.VideoID, e.Reason)
}

// IsInvalidRequest reports whether err is (or wraps) an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
