// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package validation

import (
	"strings"
	"sync"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestGetValidator_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ValidateStruct(&RecommendationRequest{Alpha: 0.5, TopN: 1})
		}()
	}
	wg.Wait()
}

// ===================================================================================================
// RecommendationRequest Tests
// ===================================================================================================

func validRequest() RecommendationRequest {
	return RecommendationRequest{
		Query:    "cat",
		Alpha:    0.3,
		TopN:     10,
		Played:   []string{"a"},
		Liked:    []string{"b"},
		Disliked: []string{"c"},
	}
}

func TestValidateStruct_RecommendationRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*RecommendationRequest)
		wantField string
		wantTag   string
	}{
		{name: "valid", modify: func(*RecommendationRequest) {}},
		{name: "alpha zero", modify: func(r *RecommendationRequest) { r.Alpha = 0 }},
		{name: "alpha one", modify: func(r *RecommendationRequest) { r.Alpha = 1 }},
		{name: "empty query", modify: func(r *RecommendationRequest) { r.Query = "" }},
		{name: "no feedback", modify: func(r *RecommendationRequest) { r.Played, r.Liked, r.Disliked = nil, nil, nil }},
		{name: "alpha negative", modify: func(r *RecommendationRequest) { r.Alpha = -0.1 }, wantField: "alpha", wantTag: "gte"},
		{name: "alpha above one", modify: func(r *RecommendationRequest) { r.Alpha = 1.01 }, wantField: "alpha", wantTag: "lte"},
		{name: "top_n zero", modify: func(r *RecommendationRequest) { r.TopN = 0 }, wantField: "top_n", wantTag: "gte"},
		{name: "query too long", modify: func(r *RecommendationRequest) { r.Query = strings.Repeat("q", 1025) }, wantField: "query", wantTag: "max"},
		{name: "empty played id", modify: func(r *RecommendationRequest) { r.Played = []string{"a", ""} }, wantField: "played[1]", wantTag: "videoid"},
		{name: "liked id with space", modify: func(r *RecommendationRequest) { r.Liked = []string{"b c"} }, wantField: "liked[0]", wantTag: "videoid"},
		{name: "disliked id too long", modify: func(r *RecommendationRequest) { r.Disliked = []string{strings.Repeat("x", 129)} }, wantField: "disliked[0]", wantTag: "videoid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := validRequest()
			tt.modify(&req)

			verr := ValidateStruct(&req)
			if tt.wantField == "" {
				if verr != nil {
					t.Errorf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.Alpha = 2
	req.TopN = 0

	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected validation error")
	}

	msg := verr.Error()
	for _, want := range []string{
		"alpha must be less than or equal to 1",
		"top_n must be greater than or equal to 1",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	if len(apiErr.Fields) != 2 || apiErr.Fields[0] != "alpha" || apiErr.Fields[1] != "top_n" {
		t.Errorf("Fields = %v, want [alpha top_n]", apiErr.Fields)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("expected error for non-struct input")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field = %q, want unknown", verr.Errors()[0].Field())
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
}

// ===================================================================================================
// Message Translation Tests
// ===================================================================================================

type boundsStruct struct {
	Name  string `json:"name" validate:"min=2,max=4"`
	Count int    `json:"count" validate:"min=1,max=3"`
	Mode  string `json:"mode" validate:"oneof=csv sqlite duckdb"`
	Must  string `json:"must" validate:"required"`
}

func TestTranslateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input boundsStruct
		want  string
	}{
		{name: "string min", input: boundsStruct{Name: "a", Count: 1, Mode: "csv", Must: "x"}, want: "name must be at least 2 characters"},
		{name: "string max", input: boundsStruct{Name: "abcde", Count: 1, Mode: "csv", Must: "x"}, want: "name must be at most 4 characters"},
		{name: "number min", input: boundsStruct{Name: "ab", Count: 0, Mode: "csv", Must: "x"}, want: "count must be at least 1"},
		{name: "number max", input: boundsStruct{Name: "ab", Count: 9, Mode: "csv", Must: "x"}, want: "count must be at most 3"},
		{name: "oneof", input: boundsStruct{Name: "ab", Count: 1, Mode: "xml", Must: "x"}, want: "mode must be one of: csv sqlite duckdb"},
		{name: "required", input: boundsStruct{Name: "ab", Count: 1, Mode: "csv"}, want: "must is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("expected error")
			}
			if got := verr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
