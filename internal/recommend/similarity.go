// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
// Similarity against a zero vector is 0.
func Cosine(a, b SparseVector) float64 {
	na := a.Norm()
	nb := b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// MeanVector returns the element-wise mean of vs.
// The mean of an empty set is the zero vector.
func MeanVector(vs []SparseVector) SparseVector {
	if len(vs) == 0 {
		return SparseVector{}
	}

	sums := make(map[int]float64)
	for _, v := range vs {
		for k, idx := range v.Indices {
			sums[idx] += v.Values[k]
		}
	}

	indices := make([]int, 0, len(sums))
	for idx := range sums {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	n := float64(len(vs))
	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = sums[idx] / n
	}
	return SparseVector{Indices: indices, Values: values}
}

// SimilarityEngine scores one vector against many.
// Large candidate sets are split into chunks scored in parallel.
type SimilarityEngine struct {
	workers   int
	threshold int
}

// NewSimilarityEngine creates an engine. workers <= 0 uses GOMAXPROCS;
// threshold <= 0 disables parallel scoring.
func NewSimilarityEngine(workers, threshold int) *SimilarityEngine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &SimilarityEngine{
		workers:   workers,
		threshold: threshold,
	}
}

// ToMany returns Cosine(q, vs[i]) for every i, in input order.
// The only error is ctx cancellation.
func (s *SimilarityEngine) ToMany(ctx context.Context, q SparseVector, vs []SparseVector) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scores := make([]float64, len(vs))
	if len(vs) == 0 || q.Norm() == 0 {
		return scores, nil
	}

	if s.threshold <= 0 || len(vs) < s.threshold || s.workers == 1 {
		for i, v := range vs {
			scores[i] = Cosine(q, v)
		}
		return scores, nil
	}

	chunk := (len(vs) + s.workers - 1) / s.workers
	eg, egCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(vs); start += chunk {
		end := min(start+chunk, len(vs))
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%1024 == 0 {
					if err := egCtx.Err(); err != nil {
						return err
					}
				}
				scores[i] = Cosine(q, vs[i])
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
