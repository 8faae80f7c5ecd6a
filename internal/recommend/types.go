// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"time"
)

// Row is one raw catalog record as supplied by a data source.
type Row struct {
	// VideoID is the unique, stable item identifier.
	VideoID string `json:"video_id"`

	// Title is the text used to derive content features.
	Title string `json:"title"`

	// Views is the raw popularity metric (non-negative).
	Views float64 `json:"views"`

	// CategoryID is an opaque label carried through to responses.
	CategoryID string `json:"category_id"`
}

// Item is a catalog entry. Items are created once at load and never change.
type Item struct {
	VideoID    string  `json:"video_id"`
	Title      string  `json:"title"`
	Views      float64 `json:"views"`
	CategoryID string  `json:"category_id"`
}

// Source supplies catalog rows. Implementations live in internal/dataset.
type Source interface {
	// Load returns all rows in catalog order.
	Load(ctx context.Context) ([]Row, error)

	// String identifies the source in logs.
	String() string
}

// Request is a validated ranking request.
type Request struct {
	// Query is free text projected into the feature space. May be empty.
	Query string `json:"query"`

	// Alpha is the popularity weight in [0, 1]; content weight is 1-Alpha.
	Alpha float64 `json:"alpha"`

	// TopN is the maximum number of results (positive).
	TopN int `json:"top_n"`

	// Exclude lists already played item identifiers.
	Exclude []string `json:"played,omitempty"`

	// Liked lists item identifiers the user liked.
	Liked []string `json:"liked,omitempty"`

	// Disliked lists item identifiers the user disliked.
	Disliked []string `json:"disliked,omitempty"`

	// RequestID is used for log correlation only and is not part of the cache key.
	RequestID string `json:"-"`
}

// ScoredCandidate is one ranked result. Transient, never persisted.
type ScoredCandidate struct {
	VideoID    string  `json:"video_id"`
	Title      string  `json:"title"`
	CategoryID string  `json:"category_id"`
	Views      float64 `json:"views"`

	// Popularity is the load-time min-max scaled view count in [0, 1].
	Popularity float64 `json:"popularity_score"`

	// Content is the request-time normalized content score in [0, 1].
	Content float64 `json:"content_score"`

	// Final is Alpha*Popularity + (1-Alpha)*Content.
	Final float64 `json:"final_score"`
}

// Response wraps ranked results with request metadata.
type Response struct {
	Items           []ScoredCandidate `json:"items"`
	TotalCandidates int               `json:"total_candidates"`
	Metadata        ResponseMetadata  `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id,omitempty"`
	CatalogVersion string    `json:"catalog_version"`
	CacheHit       bool      `json:"cache_hit"`
	LatencyMS      int64     `json:"latency_ms"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Stats is a point-in-time view of engine state.
type Stats struct {
	Ready          bool      `json:"ready"`
	CatalogItems   int       `json:"catalog_items"`
	Vocabulary     int       `json:"vocabulary_terms"`
	CatalogVersion string    `json:"catalog_version"`
	CatalogSource  string    `json:"catalog_source"`
	LoadedAt       time.Time `json:"loaded_at"`
	Reloads        int64     `json:"reloads"`
	Requests       int64     `json:"requests"`
	Errors         int64     `json:"errors"`
	EmptyResults   int64     `json:"empty_results"`
	CacheHits      int64     `json:"cache_hits"`
	CacheMisses    int64     `json:"cache_misses"`
}
