// Package textutil provides filename and path-segment helpers shared by the
// catalog and organizer packages.
//
// Album names come straight out of the Lightroom catalog and may contain
// characters that are illegal or surprising in directory names; SanitizeDirName
// maps those to safe equivalents. Stem normalizes exported filenames to the
// matching key used to pair files with catalog assets.
package textutil
