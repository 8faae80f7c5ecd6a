// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import "fmt"

// ParamError reports a query parameter that could not be parsed.
type ParamError struct {
	Param string
	Value string
	Want  string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s must be %s, got %q", e.Param, e.Want, e.Value)
}
