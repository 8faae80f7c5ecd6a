// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/cache"
)

// fakeSource returns fixed rows or an error.
type fakeSource struct {
	rows []Row
	err  error
}

func (f *fakeSource) Load(context.Context) ([]Row, error) { return f.rows, f.err }
func (f *fakeSource) String() string                      { return "fake://catalog" }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.MaxTopN = 0
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Fatal("NewEngine() with invalid config succeeded")
	}
}

func TestEngine_NotReady(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if e.Ready() {
		t.Fatal("Ready() = true before load")
	}
	_, err := e.Recommend(context.Background(), &Request{Query: "cat", Alpha: 0.5, TopN: 1})
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("Recommend() error = %v, want ErrNotReady", err)
	}
	if s := e.Stats(); s.Ready || s.Errors != 1 {
		t.Errorf("Stats() = %+v, want not ready with one error", s)
	}
}

func TestEngine_Load(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.Load(context.Background(), &fakeSource{rows: abcRows()}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := e.Stats()
	if !s.Ready || s.CatalogItems != 3 || s.CatalogSource != "fake://catalog" {
		t.Errorf("Stats() = %+v", s)
	}
	if s.CatalogVersion == "" || s.LoadedAt.IsZero() {
		t.Errorf("catalog version/load time not recorded: %+v", s)
	}

	resp, err := e.Recommend(context.Background(), &Request{Query: "cat", Alpha: 0.5, TopN: 2, RequestID: "r1"})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(resp.Items); !reflect.DeepEqual(got, []string{"c", "b"}) {
		t.Errorf("ids = %v, want [c b]", got)
	}
	if resp.TotalCandidates != 3 {
		t.Errorf("TotalCandidates = %d, want 3", resp.TotalCandidates)
	}
	if resp.Metadata.RequestID != "r1" || resp.Metadata.CatalogVersion != s.CatalogVersion {
		t.Errorf("metadata = %+v", resp.Metadata)
	}
}

func TestEngine_Load_Errors(t *testing.T) {
	t.Parallel()

	t.Run("source error wrapped", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("disk gone")
		e := newTestEngine(t)
		err := e.Load(context.Background(), &fakeSource{err: boom})
		if !errors.Is(err, boom) {
			t.Errorf("Load() error = %v, want wrapping %v", err, boom)
		}
	})

	t.Run("empty source names the source", func(t *testing.T) {
		t.Parallel()
		e := newTestEngine(t)
		err := e.Load(context.Background(), &fakeSource{})

		var empty *EmptyCatalogError
		if !errors.As(err, &empty) {
			t.Fatalf("Load() error = %v, want *EmptyCatalogError", err)
		}
		if empty.Source != "fake://catalog" {
			t.Errorf("Source = %q, want fake://catalog", empty.Source)
		}
		if !errors.Is(err, ErrEmptyCatalog) {
			t.Error("errors.Is(err, ErrEmptyCatalog) = false")
		}
	})
}

func TestEngine_FailedReloadKeepsSnapshot(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.LoadRows(abcRows()); err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	version := e.Stats().CatalogVersion

	dup := []Row{{VideoID: "x", Title: "x"}, {VideoID: "x", Title: "y"}}
	if err := e.LoadRows(dup); err == nil {
		t.Fatal("LoadRows() with duplicate IDs succeeded")
	}

	s := e.Stats()
	if !s.Ready || s.CatalogVersion != version || s.CatalogItems != 3 {
		t.Errorf("failed reload replaced snapshot: %+v", s)
	}
	if s.Reloads != 0 {
		t.Errorf("Reloads = %d, want 0", s.Reloads)
	}

	changed := abcRows()
	changed[0].Views = 11
	if err := e.LoadRows(changed); err != nil {
		t.Fatalf("LoadRows() error = %v", err)
	}
	if s := e.Stats(); s.Reloads != 1 || s.CatalogVersion == version {
		t.Errorf("successful reload not recorded: %+v", s)
	}
}

func TestEngine_InvalidRequest(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.LoadRows(abcRows()); err != nil {
		t.Fatal(err)
	}

	_, err := e.Recommend(context.Background(), &Request{Query: "cat", Alpha: 2, TopN: 1})
	if !IsInvalidRequest(err) {
		t.Errorf("Recommend() error = %v, want invalid request", err)
	}
	if e.Stats().Errors != 1 {
		t.Errorf("Errors = %d, want 1", e.Stats().Errors)
	}
}

func TestEngine_EmptyResultCounted(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.LoadRows(abcRows()); err != nil {
		t.Fatal(err)
	}

	resp, err := e.Recommend(context.Background(), &Request{Query: "cat", Alpha: 0.5, TopN: 3, Exclude: []string{"a", "b", "c"}})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("Items = %v, want empty", ids(resp.Items))
	}
	if e.Stats().EmptyResults != 1 {
		t.Errorf("EmptyResults = %d, want 1", e.Stats().EmptyResults)
	}
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	mem := cache.NewMemory(e.Config().Cache.TTL)
	t.Cleanup(func() { _ = mem.Close() })
	e.SetCache(mem)

	if err := e.LoadRows(abcRows()); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first, err := e.Recommend(ctx, &Request{Query: "cat", Alpha: 0.5, TopN: 2, Liked: []string{"b", "c"}, RequestID: "one"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request reported a cache hit")
	}

	// Same request with IDs reordered and duplicated hits the cache.
	second, err := e.Recommend(ctx, &Request{Query: "cat", Alpha: 0.5, TopN: 2, Liked: []string{"c", "b", "c"}, RequestID: "two"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Metadata.CacheHit {
		t.Error("equivalent request missed the cache")
	}
	if second.Metadata.RequestID != "two" {
		t.Errorf("cached RequestID = %q, want two", second.Metadata.RequestID)
	}
	if !reflect.DeepEqual(ids(first.Items), ids(second.Items)) {
		t.Errorf("cached items %v differ from %v", ids(second.Items), ids(first.Items))
	}

	// A reload changes the catalog version and so the key.
	changed := abcRows()
	changed[1].Views = 5
	if err := e.LoadRows(changed); err != nil {
		t.Fatal(err)
	}
	third, err := e.Recommend(ctx, &Request{Query: "cat", Alpha: 0.5, TopN: 2, Liked: []string{"b", "c"}})
	if err != nil {
		t.Fatal(err)
	}
	if third.Metadata.CacheHit {
		t.Error("request after reload served a stale cache entry")
	}

	// Only the category changes; the response must carry the new one.
	recategorized := abcRows()
	recategorized[1].Views = 5
	recategorized[2].CategoryID = "99"
	if err := e.LoadRows(recategorized); err != nil {
		t.Fatal(err)
	}
	fourth, err := e.Recommend(ctx, &Request{Query: "cat", Alpha: 0.5, TopN: 2})
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Metadata.CacheHit {
		t.Error("category-only reload served a stale cache entry")
	}
	if len(fourth.Items) == 0 || fourth.Items[0].VideoID != "c" {
		t.Fatalf("items = %v, want c first", ids(fourth.Items))
	}
	if got := fourth.Items[0].CategoryID; got != "99" {
		t.Errorf("c category_id = %q, want 99", got)
	}

	s := e.Stats()
	if s.CacheHits != 1 || s.CacheMisses != 3 {
		t.Errorf("cache stats = hits %d misses %d, want 1 and 3", s.CacheHits, s.CacheMisses)
	}
}

func TestEngine_ConcurrentRecommendAndReload(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.LoadRows(abcRows()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				resp, err := e.Recommend(context.Background(), &Request{Query: "dog", Alpha: 0.3, TopN: 3})
				if err != nil {
					t.Errorf("Recommend() error = %v", err)
					return
				}
				if len(resp.Items) != 3 {
					t.Errorf("len(Items) = %d, want 3", len(resp.Items))
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		if err := e.LoadRows(abcRows()); err != nil {
			t.Error(err)
		}
	}
	wg.Wait()

	if got := e.Stats().Requests; got != 400 {
		t.Errorf("Requests = %d, want 400", got)
	}
}
