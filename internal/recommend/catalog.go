// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"time"
)

// Catalog is the immutable, ordered item collection with precomputed
// popularity scores and content vectors.
type Catalog struct {
	items      []Item
	index      map[string]int
	popularity []float64
	vectors    []SparseVector
	space      *FeatureSpace
	version    string
	loadedAt   time.Time
}

// NewCatalog builds a catalog from rows in the given order.
//
// Popularity is min-max scaled over Views with min and max fixed here.
// The feature space is derived from all titles. Returns an
// *EmptyCatalogError for no rows and a *CatalogError for an empty or
// duplicate identifier or an invalid view count.
func NewCatalog(rows []Row) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, &EmptyCatalogError{}
	}

	items := make([]Item, len(rows))
	index := make(map[string]int, len(rows))
	raw := make([]float64, len(rows))
	titles := make([]string, len(rows))
	h := sha256.New()

	for i, r := range rows {
		if r.VideoID == "" {
			return nil, &CatalogError{Row: i, Reason: "empty video_id"}
		}
		if _, dup := index[r.VideoID]; dup {
			return nil, &CatalogError{Row: i, VideoID: r.VideoID, Reason: "duplicate video_id"}
		}
		if math.IsNaN(r.Views) || math.IsInf(r.Views, 0) || r.Views < 0 {
			return nil, &CatalogError{Row: i, VideoID: r.VideoID, Reason: "views must be a non-negative finite number"}
		}

		items[i] = Item(r)
		index[r.VideoID] = i
		raw[i] = r.Views
		titles[i] = r.Title

		h.Write([]byte(r.VideoID))
		h.Write([]byte{0})
		h.Write([]byte(r.Title))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(r.Views, 'g', -1, 64)))
		h.Write([]byte{0})
		h.Write([]byte(r.CategoryID))
		h.Write([]byte{0})
	}

	space := BuildFeatureSpace(titles)
	vectors := make([]SparseVector, len(items))
	for i, t := range titles {
		vectors[i] = space.Vectorize(t)
	}

	return &Catalog{
		items:      items,
		index:      index,
		popularity: NormalizePopularity(raw),
		vectors:    vectors,
		space:      space,
		version:    hex.EncodeToString(h.Sum(nil)[:8]),
		loadedAt:   time.Now(),
	}, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at catalog position i.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Popularity returns the normalized popularity of the item at position i.
func (c *Catalog) Popularity(i int) float64 {
	return c.popularity[i]
}

// Vector returns the content vector of the item at position i.
func (c *Catalog) Vector(i int) SparseVector {
	return c.vectors[i]
}

// Space returns the feature space shared by all items.
func (c *Catalog) Space() *FeatureSpace {
	return c.space
}

// Version is a content fingerprint; identical rows give identical versions.
func (c *Catalog) Version() string {
	return c.version
}

// LoadedAt returns when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}

// Lookup returns the position of id.
func (c *Catalog) Lookup(id string) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Resolve maps identifiers to catalog positions, dropping unknown and
// repeated identifiers. Positions are returned in catalog order.
func (c *Catalog) Resolve(ids []string) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if i, ok := c.index[id]; ok {
			seen[i] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	out := make([]int, 0, len(seen))
	for i := range c.items {
		if _, ok := seen[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Candidates returns, in catalog order, the positions of items whose
// identifier is not in exclude.
func (c *Catalog) Candidates(exclude map[string]struct{}) []int {
	out := make([]int, 0, len(c.items))
	for i, it := range c.items {
		if _, skip := exclude[it.VideoID]; skip {
			continue
		}
		out = append(out, i)
	}
	return out
}

// All returns every catalog position in order.
func (c *Catalog) All() []int {
	out := make([]int, len(c.items))
	for i := range out {
		out[i] = i
	}
	return out
}

// MeanVectorOf returns the element-wise mean of the vectors at positions.
func (c *Catalog) MeanVectorOf(positions []int) SparseVector {
	vs := make([]SparseVector, len(positions))
	for k, i := range positions {
		vs[k] = c.vectors[i]
	}
	return MeanVector(vs)
}

// VectorsOf returns the vectors at positions, in the same order.
func (c *Catalog) VectorsOf(positions []int) []SparseVector {
	vs := make([]SparseVector, len(positions))
	for k, i := range positions {
		vs[k] = c.vectors[i]
	}
	return vs
}
