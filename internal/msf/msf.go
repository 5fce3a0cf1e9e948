package msf

import "fmt"

const (
	// FramesPerSecond is the number of frames (sectors) in one second of audio.
	FramesPerSecond = 75
	// SecondsPerMinute is the carry modulus for the seconds field.
	SecondsPerMinute = 60
	// Offset is the two-second lead-in reserved before frame zero (00:02:00).
	Offset = 2 * FramesPerSecond
	// BytesPerFrame is the size of one raw CD-DA frame: 588 stereo samples of
	// 16 bits each.
	BytesPerFrame = 2352
)

// Timecode is a disc address in minutes, seconds and frames.
type Timecode struct {
	Minute int
	Second int
	Frame  int
}

// Frame is a flat frame index relative to Offset.
type Frame int

// Bytes returns the raw PCM size of n frames.
func (f Frame) Bytes() int64 {
	return int64(f) * BytesPerFrame
}

// Valid reports whether the seconds and frame fields are within range.
func (t Timecode) Valid() bool {
	return t.Minute >= 0 &&
		t.Second >= 0 && t.Second < SecondsPerMinute &&
		t.Frame >= 0 && t.Frame < FramesPerSecond
}

// String formats the timecode as MM:SS:FF.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Minute, t.Second, t.Frame)
}

func (t Timecode) absolute() int {
	return (t.Minute*SecondsPerMinute+t.Second)*FramesPerSecond + t.Frame
}

// Decode converts a timecode into a flat frame index.
func Decode(t Timecode) Frame {
	return Frame(t.absolute() - Offset)
}

// Advance moves t forward by n frames, carrying overflow from frames into
// seconds and from seconds into minutes. Any number of rollovers is handled.
// A result before 00:00:00 is clamped to 00:00:00.
func Advance(t Timecode, n int) Timecode {
	t.Frame += n
	if t.Frame >= FramesPerSecond || t.Frame < 0 {
		carry := floorDiv(t.Frame, FramesPerSecond)
		t.Second += carry
		t.Frame -= carry * FramesPerSecond
	}
	if t.Second >= SecondsPerMinute || t.Second < 0 {
		carry := floorDiv(t.Second, SecondsPerMinute)
		t.Minute += carry
		t.Second -= carry * SecondsPerMinute
	}
	if t.Minute < 0 {
		return Timecode{}
	}
	return t
}

// FromFrame is the inverse of Decode.
func FromFrame(f Frame) Timecode {
	return Advance(Timecode{}, int(f)+Offset)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
