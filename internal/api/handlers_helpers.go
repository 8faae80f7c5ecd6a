// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

package api

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vidrec/internal/logging"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// respondJSON encodes v with goccy/go-json.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends {"error": message}. err, when set, is logged with
// the request's correlation fields but not returned to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		var event *zerolog.Event
		if status >= http.StatusInternalServerError {
			event = logging.CtxErr(r.Context(), err)
		} else {
			event = logging.CtxWarn(r.Context()).Str("error", logging.SanitizeValue(err.Error()))
		}
		event.
			Str("code", code).
			Int("status", status).
			Str("path", logging.SanitizeValue(r.URL.Path)).
			Msg("API error")
	}

	respondJSON(w, status, &errorResponse{Error: message, Code: code})
}

// parseCommaSeparated splits a list parameter, dropping blank entries.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
