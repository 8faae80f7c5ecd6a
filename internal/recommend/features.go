// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"math"
	"sort"
)

// SparseVector is a vector over FeatureSpace term indices.
// Indices are strictly ascending; Values[i] belongs to Indices[i].
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			dot += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Dense expands the vector to a slice of the given dimension.
func (v SparseVector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for k, idx := range v.Indices {
		if idx < dim {
			out[idx] = v.Values[k]
		}
	}
	return out
}

// FeatureSpace is the fixed vocabulary and IDF weighting derived from all
// catalog titles. It is immutable after BuildFeatureSpace returns.
//
// Weights follow smoothed TF-IDF:
//
//	idf(t)  = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d) = count(t, d) * idf(t), then L2-normalized per document
type FeatureSpace struct {
	vocab map[string]int
	terms []string
	idf   []float64
	docs  int
}

// BuildFeatureSpace derives the vocabulary from documents. Terms are indexed
// in lexical order so the space is independent of document order.
func BuildFeatureSpace(documents []string) *FeatureSpace {
	df := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(documents))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &FeatureSpace{
		vocab: vocab,
		terms: terms,
		idf:   idf,
		docs:  len(documents),
	}
}

// Size returns the vocabulary size.
func (fs *FeatureSpace) Size() int {
	return len(fs.terms)
}

// Documents returns how many documents the space was built from.
func (fs *FeatureSpace) Documents() int {
	return fs.docs
}

// Terms returns a copy of the vocabulary in index order.
func (fs *FeatureSpace) Terms() []string {
	out := make([]string, len(fs.terms))
	copy(out, fs.terms)
	return out
}

// IDF returns the weight of a vocabulary term.
func (fs *FeatureSpace) IDF(term string) (float64, bool) {
	idx, ok := fs.vocab[term]
	if !ok {
		return 0, false
	}
	return fs.idf[idx], true
}

// Vectorize projects text into the space. Out-of-vocabulary terms are
// dropped; text without known terms yields the zero vector.
func (fs *FeatureSpace) Vectorize(text string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if idx, ok := fs.vocab[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var sumSq float64
	for i, idx := range indices {
		w := counts[idx] * fs.idf[idx]
		values[i] = w
		sumSq += w * w
	}

	norm := math.Sqrt(sumSq)
	for i := range values {
		values[i] /= norm
	}

	return SparseVector{Indices: indices, Values: values}
}
