// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"fmt"
	"strings"
)

// Blender merges query, liked and disliked similarity into one raw
// content score per candidate.
type Blender struct {
	catalog       *Catalog
	sim           *SimilarityEngine
	weights       BlendConfig
	onEmptyQuery  EmptyQueryPolicy
	dislikePolicy DislikePolicy
}

// NewBlender creates a blender over catalog.
//
//nolint:gocritic // PolicyConfig is small and copied once
func NewBlender(catalog *Catalog, sim *SimilarityEngine, weights BlendConfig, policies PolicyConfig) *Blender {
	return &Blender{
		catalog:       catalog,
		sim:           sim,
		weights:       weights,
		onEmptyQuery:  policies.OnEmptyQuery,
		dislikePolicy: policies.Dislike,
	}
}

// BlendResult carries the raw content scores plus what was resolved.
type BlendResult struct {
	// Scores holds one raw content score per candidate, in candidate order.
	Scores []float64

	// EffectiveQuery is the text actually vectorized.
	EffectiveQuery string

	// LikedResolved and DislikedResolved count catalog hits.
	LikedResolved    int
	DislikedResolved int

	// Penalty is the dislike weight applied, or 0 when none was applied.
	Penalty float64
}

// DislikePenalty returns the penalty weight for n disliked identifiers:
// DislikeBase + DislikeStep*n, capped by MaxDislikePenalty when set.
func (b *Blender) DislikePenalty(n int) float64 {
	beta := b.weights.DislikeBase + b.weights.DislikeStep*float64(n)
	if b.weights.MaxDislikePenalty > 0 && beta > b.weights.MaxDislikePenalty {
		beta = b.weights.MaxDislikePenalty
	}
	return beta
}

// Blend scores candidates (catalog positions) for one request.
//
// Liked items that resolve switch the score to
// QueryWeight*sim(query) + LikedWeight*sim(mean(liked)). Disliked items
// that resolve subtract DislikePenalty(|disliked|)*sim(mean(disliked))
// unless the dislike policy is exclude-only. Scores are not normalized
// and may be negative.
func (b *Blender) Blend(ctx context.Context, query string, candidates []int, liked, disliked []string) (*BlendResult, error) {
	likedPos := b.catalog.Resolve(liked)

	effective, err := b.effectiveQuery(query, len(likedPos) > 0)
	if err != nil {
		return nil, err
	}

	vectors := b.catalog.VectorsOf(candidates)
	queryVec := b.catalog.Space().Vectorize(effective)

	queryScores, err := b.sim.ToMany(ctx, queryVec, vectors)
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}

	res := &BlendResult{
		Scores:         queryScores,
		EffectiveQuery: effective,
		LikedResolved:  len(likedPos),
	}

	if len(likedPos) > 0 {
		likedScores, err := b.sim.ToMany(ctx, b.catalog.MeanVectorOf(likedPos), vectors)
		if err != nil {
			return nil, fmt.Errorf("liked similarity: %w", err)
		}
		blended := make([]float64, len(candidates))
		for i := range blended {
			blended[i] = b.weights.QueryWeight*queryScores[i] + b.weights.LikedWeight*likedScores[i]
		}
		res.Scores = blended
	}

	if !b.dislikePolicy.Penalizes() {
		return res, nil
	}

	dislikedPos := b.catalog.Resolve(disliked)
	res.DislikedResolved = len(dislikedPos)
	if len(dislikedPos) == 0 {
		return res, nil
	}

	dislikedScores, err := b.sim.ToMany(ctx, b.catalog.MeanVectorOf(dislikedPos), vectors)
	if err != nil {
		return nil, fmt.Errorf("disliked similarity: %w", err)
	}
	beta := b.DislikePenalty(countDistinct(disliked))
	for i := range res.Scores {
		res.Scores[i] -= beta * dislikedScores[i]
	}
	res.Penalty = beta

	return res, nil
}

// effectiveQuery applies the empty-query policy.
func (b *Blender) effectiveQuery(query string, hasLiked bool) (string, error) {
	if strings.TrimSpace(query) != "" {
		return query, nil
	}

	switch b.onEmptyQuery {
	case EmptyQueryReject:
		return "", &InvalidRequestError{Field: "query", Reason: "must not be empty"}
	case EmptyQueryRequireFeedback:
		if !hasLiked {
			return "", &InvalidRequestError{Field: "query", Reason: "must not be empty unless liked items are given"}
		}
		return query, nil
	default:
		if hasLiked {
			return query, nil
		}
		return b.catalog.Item(0).Title, nil
	}
}

func countDistinct(ids []string) int {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
