// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/recommend"
)

func TestCompileFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantIDs string
		wantErr string
	}{
		{name: "views threshold", expr: "views >= 50.0", wantIDs: "b,c"},
		{name: "category", expr: `category_id == "1"`, wantIDs: "a,c"},
		{name: "title contains", expr: `title.contains("dog") && views < 100.0`, wantIDs: "c"},
		{name: "id list", expr: `video_id in ["a", "b"]`, wantIDs: "a,b"},
		{name: "matches nothing", expr: "false", wantIDs: ""},
		{name: "empty", expr: "  ", wantErr: "empty filter"},
		{name: "syntax error", expr: "views >=", wantErr: "compile filter"},
		{name: "unknown variable", expr: "likes > 3.0", wantErr: "compile filter"},
		{name: "not bool", expr: "views * 2.0", wantErr: "must return bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := CompileFilter(tt.expr)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("CompileFilter(%q) error = %v, want %q", tt.expr, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompileFilter(%q) error = %v", tt.expr, err)
			}

			kept, err := f.Apply(catalogRows())
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got := ids(kept); got != tt.wantIDs {
				t.Errorf("kept = %q, want %q", got, tt.wantIDs)
			}
		})
	}
}

func TestFilter_ConcurrentMatch(t *testing.T) {
	t.Parallel()

	f, err := CompileFilter(`title.startsWith("cat")`)
	if err != nil {
		t.Fatal(err)
	}
	rows := catalogRows()
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			ok, err := f.Match(rows[0])
			done <- err == nil && ok
		}()
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Error("concurrent Match failed")
		}
	}
}

type stubSource struct {
	rows []recommend.Row
	err  error
}

func (s stubSource) Load(context.Context) ([]recommend.Row, error) { return s.rows, s.err }
func (s stubSource) String() string                                { return "stub" }

func TestFilteredSource(t *testing.T) {
	t.Parallel()

	f, err := CompileFilter("views > 20.0")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("filters rows", func(t *testing.T) {
		t.Parallel()
		src := NewFilteredSource(stubSource{rows: catalogRows()}, f, zerolog.Nop())
		rows, err := src.Load(context.Background())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ids(rows) != "b,c" {
			t.Errorf("ids = %q, want b,c", ids(rows))
		}
		if src.String() != "stub" {
			t.Errorf("String() = %q", src.String())
		}
	})

	t.Run("propagates load error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		src := NewFilteredSource(stubSource{err: boom}, f, zerolog.Nop())
		if _, err := src.Load(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Load() error = %v, want boom", err)
		}
	})
}
