// Package ripping drives a rip session over one open drive.
//
// Ripper exposes the two core operations, BuildTrackTable and RipTrack, and
// RipDisc layers the session policy on top: track selection, output naming,
// overwrite protection, continue-on-error, progress reporting, and recording
// each outcome in the catalog. Tracks are ripped strictly one at a time; the
// context is checked only between tracks.
package ripping
