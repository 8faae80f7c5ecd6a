// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

// Package validation checks decoded API requests with
// go-playground/validator v10.
//
// A single validator instance is built lazily and shared; it caches struct
// metadata and is safe for concurrent use. Field names in messages are the
// JSON names, so a bad alpha is reported as "alpha must be less than or
// equal to 1". The custom "videoid" tag rejects empty identifiers and
// identifiers containing whitespace or control characters.
//
// Structural checks live here. Limits that come from configuration, such
// as the top_n ceiling, are enforced by the recommendation engine.
package validation
