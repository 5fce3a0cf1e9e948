package extract

import (
	"errors"
	"fmt"
	"iter"

	"audiorip/internal/msf"
	"audiorip/internal/services"
	"audiorip/internal/toc"
)

// DefaultChunkFrames is one second of audio, the drive's native request size.
const DefaultChunkFrames = msf.FramesPerSecond

// Reader is the audio-read subset of disc.Device.
type Reader interface {
	ReadAudio(start msf.Timecode, frames int, buf []byte) (int, error)
}

// Chunk is one successful read. Data aliases the extractor's buffer and is
// only valid until the next iteration.
type Chunk struct {
	Data []byte
	// Frames is the number of frames in Data.
	Frames int
	// Offset is the chunk's first frame relative to the track start.
	Offset int
}

// ReadError reports the failed chunk read that ended a track's extraction.
type ReadError struct {
	Track  int
	Offset int
	Cursor msf.Timecode
	Frames int
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read track %d at frame offset %d (%s, %d frames): %v",
		e.Track, e.Offset, e.Cursor, e.Frames, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is matches services.ErrRead.
func (e *ReadError) Is(target error) bool { return target == services.ErrRead }

var (
	errNoFrames = errors.New("device returned no frames")
	errOverlong = errors.New("device returned more frames than requested")
)

// Extractor reads tracks from a single device. It is not safe for concurrent
// use; the device handle is shared across tracks.
type Extractor struct {
	Reader      Reader
	ChunkFrames int

	buf []byte
}

// New returns an extractor reading chunkFrames per request; values below one
// select DefaultChunkFrames.
func New(r Reader, chunkFrames int) *Extractor {
	if chunkFrames < 1 {
		chunkFrames = DefaultChunkFrames
	}
	return &Extractor{Reader: r, ChunkFrames: chunkFrames}
}

func (e *Extractor) chunkFrames() int {
	if e.ChunkFrames < 1 {
		return DefaultChunkFrames
	}
	return e.ChunkFrames
}

func (e *Extractor) buffer(frames int) []byte {
	size := frames * msf.BytesPerFrame
	if cap(e.buf) < size {
		e.buf = make([]byte, size)
	}
	return e.buf[:size]
}

// Extract returns the lazy chunk sequence for r. Each range over the result
// starts again at r.Start. On failure the sequence yields a zero Chunk with a
// *ReadError and stops.
func (e *Extractor) Extract(r toc.Range) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		total := r.Frames()
		chunkFrames := e.chunkFrames()
		buf := e.buffer(min(chunkFrames, max(total, 0)))
		cursor := r.StartTimecode
		offset := 0

		for offset < total {
			want := min(chunkFrames, total-offset)
			got, err := e.Reader.ReadAudio(cursor, want, buf[:want*msf.BytesPerFrame])
			switch {
			case err != nil:
			case got <= 0:
				err = errNoFrames
			case got > want:
				err = fmt.Errorf("%w: got %d, asked %d", errOverlong, got, want)
			}
			if err != nil {
				yield(Chunk{}, &ReadError{Track: r.Track, Offset: offset, Cursor: cursor, Frames: want, Err: err})
				return
			}

			chunk := Chunk{Data: buf[:got*msf.BytesPerFrame], Frames: got, Offset: offset}
			offset += got
			cursor = msf.Advance(cursor, got)
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
