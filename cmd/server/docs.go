// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

// General API information for swag. Regenerate docs/ with:
//
//	swag init -g cmd/server/docs.go -o docs
//
// @title Vidrec API
// @version 1.0
// @description Hybrid video recommendations blending popularity with content similarity.
// @description
// @description ## Rate Limiting
// @description
// @description Recommendation and stats endpoints share a per-IP limit (default 100 requests per minute).
// @description Health probes and /metrics are not limited.
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
package main
