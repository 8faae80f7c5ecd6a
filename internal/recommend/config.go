// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"fmt"
	"math"
	"time"
)

// EmptyQueryPolicy decides what happens when the query is blank.
type EmptyQueryPolicy string

const (
	// EmptyQueryUseFirstItem substitutes the first catalog title when no
	// liked item resolves.
	EmptyQueryUseFirstItem EmptyQueryPolicy = "use_first_item"
	// EmptyQueryReject rejects every blank query.
	EmptyQueryReject EmptyQueryPolicy = "reject"
	// EmptyQueryRequireFeedback accepts a blank query only when liked items resolve.
	EmptyQueryRequireFeedback EmptyQueryPolicy = "require_feedback"
)

// Valid reports whether p is a known policy.
func (p EmptyQueryPolicy) Valid() bool {
	switch p {
	case EmptyQueryUseFirstItem, EmptyQueryReject, EmptyQueryRequireFeedback:
		return true
	}
	return false
}

// NoCandidatesPolicy decides what happens when exclusion removes every item.
type NoCandidatesPolicy string

const (
	// NoCandidatesEmpty returns an empty result.
	NoCandidatesEmpty NoCandidatesPolicy = "empty"
	// NoCandidatesFullCatalog ranks the whole catalog instead.
	NoCandidatesFullCatalog NoCandidatesPolicy = "full_catalog"
)

// Valid reports whether p is a known policy.
func (p NoCandidatesPolicy) Valid() bool {
	return p == NoCandidatesEmpty || p == NoCandidatesFullCatalog
}

// DislikePolicy decides how disliked items affect ranking.
type DislikePolicy string

const (
	// DislikeBoth removes disliked items and penalizes similar ones.
	DislikeBoth DislikePolicy = "both"
	// DislikeExclude only removes disliked items.
	DislikeExclude DislikePolicy = "exclude"
	// DislikePenalize only penalizes similarity to disliked items.
	DislikePenalize DislikePolicy = "penalize"
)

// Valid reports whether p is a known policy.
func (p DislikePolicy) Valid() bool {
	switch p {
	case DislikeBoth, DislikeExclude, DislikePenalize:
		return true
	}
	return false
}

// Excludes reports whether disliked items leave the candidate pool.
func (p DislikePolicy) Excludes() bool {
	return p == DislikeBoth || p == DislikeExclude
}

// Penalizes reports whether similarity to disliked items is subtracted.
func (p DislikePolicy) Penalizes() bool {
	return p == DislikeBoth || p == DislikePenalize
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Blend holds the content-signal weights.
	Blend BlendConfig `json:"blend"`

	// Policies holds the edge-case policies.
	Policies PolicyConfig `json:"policies"`

	// Limits holds request defaults and bounds.
	Limits LimitsConfig `json:"limits"`

	// Scoring holds numeric and parallelism settings.
	Scoring ScoringConfig `json:"scoring"`

	// Cache holds result cache settings.
	Cache CacheConfig `json:"cache"`
}

// BlendConfig weights the query, liked and disliked signals.
type BlendConfig struct {
	// QueryWeight scales query similarity when liked items resolve.
	QueryWeight float64 `json:"query_weight"`

	// LikedWeight scales similarity to the mean liked vector.
	LikedWeight float64 `json:"liked_weight"`

	// DislikeBase is the penalty weight before any per-dislike growth.
	DislikeBase float64 `json:"dislike_base"`

	// DislikeStep is added to the penalty weight per disliked identifier.
	DislikeStep float64 `json:"dislike_step"`

	// MaxDislikePenalty caps the penalty weight. Zero means uncapped.
	MaxDislikePenalty float64 `json:"max_dislike_penalty"`
}

// PolicyConfig selects behavior for ambiguous inputs.
type PolicyConfig struct {
	OnEmptyQuery   EmptyQueryPolicy   `json:"on_empty_query"`
	OnNoCandidates NoCandidatesPolicy `json:"on_no_candidates"`
	Dislike        DislikePolicy      `json:"dislike"`
}

// LimitsConfig bounds requests.
type LimitsConfig struct {
	// DefaultAlpha is used when a request omits alpha.
	DefaultAlpha float64 `json:"default_alpha"`

	// DefaultTopN is used when a request omits top_n.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN is the largest accepted top_n.
	MaxTopN int `json:"max_top_n"`

	// MaxFeedbackIDs bounds each of played, liked and disliked.
	MaxFeedbackIDs int `json:"max_feedback_ids"`
}

// ScoringConfig controls normalization and parallel similarity.
type ScoringConfig struct {
	// Epsilon guards the content min-max denominator.
	Epsilon float64 `json:"epsilon"`

	// Workers is the parallel similarity fan-out. Zero uses GOMAXPROCS.
	Workers int `json:"workers"`

	// ParallelThreshold is the candidate count at which scoring goes parallel.
	// Zero disables parallel scoring.
	ParallelThreshold int `json:"parallel_threshold"`
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	// TTL is how long a ranked result stays cached.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Blend: BlendConfig{
			QueryWeight:       0.2,
			LikedWeight:       0.8,
			DislikeBase:       1.0,
			DislikeStep:       0.1,
			MaxDislikePenalty: 0,
		},
		Policies: PolicyConfig{
			OnEmptyQuery:   EmptyQueryUseFirstItem,
			OnNoCandidates: NoCandidatesEmpty,
			Dislike:        DislikeBoth,
		},
		Limits: LimitsConfig{
			DefaultAlpha:   0.3,
			DefaultTopN:    10,
			MaxTopN:        500,
			MaxFeedbackIDs: 1000,
		},
		Scoring: ScoringConfig{
			Epsilon:           DefaultEpsilon,
			Workers:           0,
			ParallelThreshold: 20000,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"blend.query_weight", c.Blend.QueryWeight},
		{"blend.liked_weight", c.Blend.LikedWeight},
		{"blend.dislike_base", c.Blend.DislikeBase},
		{"blend.dislike_step", c.Blend.DislikeStep},
		{"blend.max_dislike_penalty", c.Blend.MaxDislikePenalty},
	}
	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) || w.value < 0 {
			return fmt.Errorf("%s must be a non-negative finite number, got %v", w.name, w.value)
		}
	}

	if !c.Policies.OnEmptyQuery.Valid() {
		return fmt.Errorf("policies.on_empty_query must be one of use_first_item, reject, require_feedback, got %q", c.Policies.OnEmptyQuery)
	}
	if !c.Policies.OnNoCandidates.Valid() {
		return fmt.Errorf("policies.on_no_candidates must be one of empty, full_catalog, got %q", c.Policies.OnNoCandidates)
	}
	if !c.Policies.Dislike.Valid() {
		return fmt.Errorf("policies.dislike must be one of both, exclude, penalize, got %q", c.Policies.Dislike)
	}

	if c.Limits.DefaultAlpha < 0 || c.Limits.DefaultAlpha > 1 || math.IsNaN(c.Limits.DefaultAlpha) {
		return fmt.Errorf("limits.default_alpha must be in [0, 1], got %v", c.Limits.DefaultAlpha)
	}
	if c.Limits.DefaultTopN <= 0 {
		return fmt.Errorf("limits.default_top_n must be positive, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits.max_top_n must be >= limits.default_top_n, got %d < %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.MaxFeedbackIDs <= 0 {
		return fmt.Errorf("limits.max_feedback_ids must be positive, got %d", c.Limits.MaxFeedbackIDs)
	}

	if c.Scoring.Epsilon <= 0 || math.IsNaN(c.Scoring.Epsilon) {
		return fmt.Errorf("scoring.epsilon must be positive, got %v", c.Scoring.Epsilon)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("scoring.workers must be non-negative, got %d", c.Scoring.Workers)
	}
	if c.Scoring.ParallelThreshold < 0 {
		return fmt.Errorf("scoring.parallel_threshold must be non-negative, got %d", c.Scoring.ParallelThreshold)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
