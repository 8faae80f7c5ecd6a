// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package supervisor provides process supervision for vidrec using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("vidrec")
	├── DataSupervisor ("data-layer")
	│   └── CatalogReloadService (if catalog.reload_schedule is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure threshold, decay and
backoff. A failing reload never restarts the HTTP server, and the engine
keeps serving the last catalog it loaded.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), cfg.TreeOptions())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

Supervisor events (service failures, backoff, restarts) are written
through sutureslog to the slog adapter in internal/logging, so they land
in the same zerolog stream as everything else.
*/
package supervisor
