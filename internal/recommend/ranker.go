// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Ranker produces the final ordered recommendation list for one catalog.
// It holds no mutable state and is safe for concurrent use.
type Ranker struct {
	catalog  *Catalog
	blender  *Blender
	policies PolicyConfig
	limits   LimitsConfig
	epsilon  float64
}

// NewRanker wires a ranker over catalog using cfg.
func NewRanker(catalog *Catalog, cfg *Config) *Ranker {
	sim := NewSimilarityEngine(cfg.Scoring.Workers, cfg.Scoring.ParallelThreshold)
	return &Ranker{
		catalog:  catalog,
		blender:  NewBlender(catalog, sim, cfg.Blend, cfg.Policies),
		policies: cfg.Policies,
		limits:   cfg.Limits,
		epsilon:  cfg.Scoring.Epsilon,
	}
}

// Catalog returns the catalog the ranker was built over.
func (r *Ranker) Catalog() *Catalog {
	return r.catalog
}

// RankResult is the ranked list plus the candidate count it was drawn from.
type RankResult struct {
	Items      []ScoredCandidate
	Candidates int
}

// Rank scores and orders the catalog for req.
//
// Steps: validate, drop excluded (and, per policy, disliked) items,
// blend content signals, min-max normalize content over the surviving
// candidates, mix with popularity by Alpha, stable sort descending and
// keep the first TopN. Exclusion of every item yields an empty result
// under the default policy, never an error.
func (r *Ranker) Rank(ctx context.Context, req *Request) (*RankResult, error) {
	if err := r.validate(req); err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{}, len(req.Exclude)+len(req.Disliked))
	for _, id := range req.Exclude {
		exclude[id] = struct{}{}
	}
	if r.policies.Dislike.Excludes() {
		for _, id := range req.Disliked {
			exclude[id] = struct{}{}
		}
	}

	candidates := r.catalog.Candidates(exclude)
	if len(candidates) == 0 {
		if r.policies.OnNoCandidates != NoCandidatesFullCatalog {
			return &RankResult{Items: []ScoredCandidate{}}, nil
		}
		candidates = r.catalog.All()
	}

	blend, err := r.blender.Blend(ctx, req.Query, candidates, req.Liked, req.Disliked)
	if err != nil {
		return nil, err
	}

	content := MinMaxNormalize(blend.Scores, r.epsilon)

	scored := make([]ScoredCandidate, len(candidates))
	for k, pos := range candidates {
		it := r.catalog.Item(pos)
		pop := r.catalog.Popularity(pos)
		scored[k] = ScoredCandidate{
			VideoID:    it.VideoID,
			Title:      it.Title,
			CategoryID: it.CategoryID,
			Views:      it.Views,
			Popularity: pop,
			Content:    content[k],
			Final:      req.Alpha*pop + (1-req.Alpha)*content[k],
		}
	}

	// candidates are in catalog order, so a stable sort keeps catalog order on ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Final > scored[j].Final
	})

	if len(scored) > req.TopN {
		scored = scored[:req.TopN]
	}

	return &RankResult{Items: scored, Candidates: len(candidates)}, nil
}

func (r *Ranker) validate(req *Request) error {
	if math.IsNaN(req.Alpha) || req.Alpha < 0 || req.Alpha > 1 {
		return &InvalidRequestError{Field: "alpha", Reason: fmt.Sprintf("must be in [0, 1], got %v", req.Alpha)}
	}
	if req.TopN <= 0 {
		return &InvalidRequestError{Field: "top_n", Reason: fmt.Sprintf("must be positive, got %d", req.TopN)}
	}
	if r.limits.MaxTopN > 0 && req.TopN > r.limits.MaxTopN {
		return &InvalidRequestError{Field: "top_n", Reason: fmt.Sprintf("must be at most %d, got %d", r.limits.MaxTopN, req.TopN)}
	}
	if r.limits.MaxFeedbackIDs > 0 {
		lists := []struct {
			field string
			ids   []string
		}{
			{"played", req.Exclude},
			{"liked", req.Liked},
			{"disliked", req.Disliked},
		}
		for _, l := range lists {
			if len(l.ids) > r.limits.MaxFeedbackIDs {
				return &InvalidRequestError{Field: l.field, Reason: fmt.Sprintf("at most %d identifiers allowed, got %d", r.limits.MaxFeedbackIDs, len(l.ids))}
			}
		}
	}
	return nil
}
