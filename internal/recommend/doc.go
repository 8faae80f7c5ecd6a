// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

// Package recommend implements hybrid popularity and content ranking for a
// video catalog.
//
// # Architecture
//
// A request flows through five components, leaves first:
//
//   - Catalog: immutable items with min-max scaled popularity and one TF-IDF
//     vector per title
//   - FeatureSpace: vocabulary and smoothed IDF weights derived from all titles
//   - SimilarityEngine: cosine similarity of one vector against many
//   - Blender: query, liked and disliked signals merged into one content score
//   - Ranker: content normalization, alpha blending with popularity, stable
//     sort and top-N truncation
//
// The Engine owns the current Ranker snapshot, applies the result cache and
// records metrics. A catalog reload builds a brand new snapshot and swaps it
// in atomically.
//
// # Scoring
//
//	content  = 0.2*sim(query) + 0.8*sim(mean(liked))      (liked resolves)
//	content  = sim(query)                                  (otherwise)
//	content -= beta*sim(mean(disliked)), beta = 1 + 0.1*|disliked|
//	norm     = (content - min) / (max - min + 1e-8)
//	final    = alpha*popularity + (1-alpha)*norm
//
// All weights and policies are configurable via Config.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Load(ctx, source); err != nil {
//	    return err // EmptyCatalogError is fatal at startup
//	}
//
//	resp, err := engine.Recommend(ctx, &recommend.Request{
//	    Query: "cat",
//	    Alpha: 0.3,
//	    TopN:  10,
//	})
//
// # Thread Safety
//
// Catalog, FeatureSpace, Blender and Ranker are never mutated after
// construction and may be shared freely between goroutines. The Engine
// publishes snapshots through an atomic pointer, so in-flight requests keep
// the snapshot they started with while a reload is in progress.
package recommend
