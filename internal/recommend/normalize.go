// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

// DefaultEpsilon guards the min-max denominator when all scores are equal.
const DefaultEpsilon = 1e-8

// MinMaxNormalize rescales scores into [0, 1] as
// (s - min) / (max - min + eps). Equal inputs map to 0.
// The input slice is not modified.
func MinMaxNormalize(scores []float64, eps float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := minMax(scores)
	denom := hi - lo + eps
	if denom <= 0 {
		return out
	}
	for i, s := range scores {
		out[i] = (s - lo) / denom
	}
	return out
}

// NormalizePopularity scales raw metrics as (v - min) / (max - min).
// A constant metric maps every item to 0.
func NormalizePopularity(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}

	lo, hi := minMax(raw)
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range raw {
		out[i] = (v - lo) / span
	}
	return out
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
