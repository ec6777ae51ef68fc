// Package organize moves flat Lightroom exports into a directory tree
// mirroring the catalog's album hierarchy.
//
// A run is two phases: planning pairs every top-level file in the export
// directory with at most one album by filename stem, then execution creates
// the album directories and performs strictly sequential moves. Files that
// match no album, or that match assets in more than one album, are left in
// place and reported in the run summary; per-file move failures never abort
// the run.
package organize
