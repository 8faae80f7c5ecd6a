// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package services provides suture.Service wrappers for vidrec components.

HTTPServerService runs an *http.Server and shuts it down gracefully when
its context is canceled.

CatalogReloadService reloads the recommendation catalog on a robfig/cron
schedule. Reload can also be called directly, e.g. on SIGHUP:

	svc, err := services.NewCatalogReloadService(engine, source, "@hourly", 2*time.Minute, logger)
	tree.AddDataService(svc)
*/
package services
