// Package io reads integration problems and writes their solutions.
//
// # Overview
//
// A problem is a list of weighted boxes plus the axis to integrate along.
// Problems can be written as JSON or TOML; solutions are always JSON so
// they can be cached and fed to other tools.
//
// # Problem Format
//
//	{
//	  "axis": 1,
//	  "mode": "coverage",
//	  "boxes": [
//	    {"start": [0, 0], "end": [2, 6], "grad": 1},
//	    {"extent": [[4, 6], [0, 6]], "grad": 2}
//	  ]
//	}
//
// Each box gives its corners either as "start"/"end" arrays or as an
// "extent" list of [start, end] pairs, one per axis. "grad" defaults to 0.
// "axis" defaults to 0 and "mode" to the sweep default. An optional
// "max_cells" caps the partition size for this problem.
//
// The TOML form uses an array of tables:
//
//	axis = 1
//
//	[[boxes]]
//	start = [0, 0]
//	end = [2, 6]
//	grad = 1
//
// # Import
//
// Use [ImportProblem] to read a file (format chosen by extension) or
// [ReadProblem] to read from any io.Reader. Unknown fields are rejected so
// typos surface as INVALID_FORMAT errors instead of silently empty boxes.
// Geometric validation (matching dimensions, positive extents) is left to
// the sweep, which reports the offending box index.
//
// # Export
//
// [WriteSolution] and [ExportSolution] encode a [Solution] as indented JSON.
// [ReadSolution] decodes it again; the pipeline uses this pair to store
// results in its cache.
package io
