// Package extract streams a track's audio from the drive in bounded chunks.
//
// The extractor walks a track's range with an MSF cursor, requesting at most
// ChunkFrames frames per read and advancing by the number of frames the
// device actually returned. The first failed read ends the sequence with a
// ReadError; nothing is retried or skipped, so output length always matches
// the frames delivered.
package extract
