// Package disctest provides an in-memory disc.Controller for tests.
package disctest

import (
	"errors"
	"fmt"
	"sync"

	"audiorip/internal/disc"
	"audiorip/internal/msf"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("injected device failure")

// Read records one ReadAudio call.
type Read struct {
	Start  msf.Timecode
	Frames int
}

// Disc is a fake drive holding a table of contents and deterministic audio.
// Failure fields may be set directly before use.
type Disc struct {
	mu sync.Mutex

	// Starts holds each track's start address, index 0 for track 1.
	Starts  []msf.Timecode
	LeadOut msf.Timecode

	// CountErr fails TrackCount.
	CountErr error
	// EntryErr fails TrackStart for the given track number (or disc.LeadOut).
	EntryErr map[int]error
	// FailReadAt fails the Nth ReadAudio call (1-based); 0 never fails.
	FailReadAt int
	ReadErr    error
	// ReadFrames, when set, overrides the frame count a successful read
	// reports. It receives the 1-based call number and the requested count.
	ReadFrames func(call, requested int) int

	StopErr  error
	CloseErr error

	Queries []int
	Reads   []Read
	Started int
	Stopped int
	Closed  int
}

// New builds a disc whose tracks have the given lengths in frames, laid out
// contiguously from 00:02:00 (flat frame 0).
func New(lengths ...int) *Disc {
	d := &Disc{}
	var cursor msf.Frame
	for _, length := range lengths {
		d.Starts = append(d.Starts, msf.FromFrame(cursor))
		cursor += msf.Frame(length)
	}
	d.LeadOut = msf.FromFrame(cursor)
	return d
}

// FrameByte is the byte the fake returns at offset i of flat frame f.
func FrameByte(f msf.Frame, i int) byte {
	return byte((int(f)*7 + i) % 251)
}

// Audio returns the bytes the fake yields for frames [start, start+frames).
func Audio(start msf.Frame, frames int) []byte {
	out := make([]byte, frames*msf.BytesPerFrame)
	for n := range frames {
		fillFrame(out[n*msf.BytesPerFrame:(n+1)*msf.BytesPerFrame], start+msf.Frame(n))
	}
	return out
}

func fillFrame(dst []byte, f msf.Frame) {
	for i := range dst {
		dst[i] = FrameByte(f, i)
	}
}

func (d *Disc) TrackCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.CountErr != nil {
		return 0, d.CountErr
	}
	return len(d.Starts), nil
}

func (d *Disc) TrackStart(track int) (msf.Timecode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Queries = append(d.Queries, track)
	if err, ok := d.EntryErr[track]; ok {
		if err == nil {
			err = ErrInjected
		}
		return msf.Timecode{}, err
	}
	if track == disc.LeadOut {
		return d.LeadOut, nil
	}
	if track < 1 || track > len(d.Starts) {
		return msf.Timecode{}, fmt.Errorf("no toc entry for track %d", track)
	}
	return d.Starts[track-1], nil
}

func (d *Disc) ReadAudio(start msf.Timecode, frames int, buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Reads = append(d.Reads, Read{Start: start, Frames: frames})
	call := len(d.Reads)
	if d.FailReadAt > 0 && call == d.FailReadAt {
		if d.ReadErr != nil {
			return 0, d.ReadErr
		}
		return 0, ErrInjected
	}
	if len(buf) < frames*msf.BytesPerFrame {
		return 0, fmt.Errorf("buffer too small: %d < %d", len(buf), frames*msf.BytesPerFrame)
	}
	n := frames
	if d.ReadFrames != nil {
		n = d.ReadFrames(call, frames)
	}
	first := msf.Decode(start)
	for i := range min(n, frames) {
		fillFrame(buf[i*msf.BytesPerFrame:(i+1)*msf.BytesPerFrame], first+msf.Frame(i))
	}
	return n, nil
}

func (d *Disc) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Started++
	return nil
}

func (d *Disc) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Stopped++
	return d.StopErr
}

func (d *Disc) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed++
	return d.CloseErr
}

// ReadLog returns a copy of the recorded reads.
func (d *Disc) ReadLog() []Read {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Read(nil), d.Reads...)
}

// QueryLog returns a copy of the recorded table-of-contents entry queries.
func (d *Disc) QueryLog() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.Queries...)
}

var _ disc.Controller = (*Disc)(nil)
