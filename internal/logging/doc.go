// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package logging provides structured logging for vidrec on top of zerolog.

A package-level logger is configured once at startup with Init and used
through the level helpers:

	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
	logging.Info().Int("items", n).Msg("catalog loaded")

# Request Context

The request ID middleware stores a request ID and a short correlation ID
in the request context. Ctx returns a logger carrying both:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("recommendation failed")

# slog Bridge

SlogHandler adapts zerolog to log/slog for libraries that only accept a
*slog.Logger, such as the suture supervisor event hook:

	hook := (&sutureslog.Handler{Logger: logging.NewSlogLogger()}).MustHook()

# Untrusted Input

Values taken from query strings pass through SanitizeValue before they are
logged.
*/
package logging
