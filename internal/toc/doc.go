// Package toc reads a disc's table of contents into per-track frame ranges.
//
// Every track's range ends where the next track (or the lead-out) begins, so
// End-Start is the exact track length and consecutive ranges are contiguous.
// Query failures abort the whole table build and are never retried.
package toc
