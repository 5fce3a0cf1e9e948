// Package container writes extracted audio to disk as headerless PCM or as a
// RIFF/WAVE file.
//
// The WAVE header is sized from the track range before any audio arrives, so
// the payload is streamed straight from the extractor without buffering a
// whole track. A failure part way leaves the partial file in place.
package container
