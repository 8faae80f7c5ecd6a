// Vidrec - Hybrid Video Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidrec

/*
Package dataset loads the video catalog into recommend.Row values.

Three sources implement recommend.Source:

  - CSVSource reads a trending-videos CSV file (the USvideos.csv layout).
  - SQLSource with the sqlite driver queries a SQLite database.
  - SQLSource with the duckdb driver runs a DuckDB query, which can also
    scan files directly, e.g. SELECT ... FROM read_csv_auto('videos.csv').

Every source needs the columns video_id, title, views and category_id.
Columns are matched by name, extra columns are ignored and repeated video
IDs keep their first row. Blank or NULL views count as zero.

An optional CEL expression drops rows before the catalog is indexed:

	src, err := dataset.NewSource(cfg.Catalog, logger)
	// catalog.filter: views >= 1000.0 && category_id != "29"

Input problems are reported as *SourceError with the offending line and
column; a missing header column matches ErrMissingColumn.
*/
package dataset
