package disc

import "audiorip/internal/msf"

// LeadOut is the pseudo track number that addresses the lead-out area.
const LeadOut = 0xAA

// MaxReadFrames is the most frames the kernel accepts in one audio read.
const MaxReadFrames = msf.FramesPerSecond

// Device is the subset of drive capabilities the ripping core consumes.
// Implementations are not required to be safe for concurrent use.
type Device interface {
	// TrackCount returns the number of the last track in the table of contents.
	TrackCount() (int, error)
	// TrackStart returns the start address of a 1-based track, or of the
	// lead-out when track is LeadOut.
	TrackStart(track int) (msf.Timecode, error)
	// ReadAudio reads up to frames raw frames starting at start into buf and
	// returns the number of frames read. buf must hold at least
	// frames*msf.BytesPerFrame bytes.
	ReadAudio(start msf.Timecode, frames int, buf []byte) (int, error)
}

// Controller is a Device that can also be spun up, stopped, and released.
type Controller interface {
	Device
	Start() error
	Stop() error
	Close() error
}

// readSpans reads frames frames from start by calling read with at most
// MaxReadFrames frames at a time, advancing the address by what each call
// returned. It stops at the first short read. An error after some frames
// were read is dropped so the caller keeps the data and meets the failure
// again on its next request.
func readSpans(start msf.Timecode, frames int, buf []byte, read func(msf.Timecode, int, []byte) (int, error)) (int, error) {
	done := 0
	for done < frames {
		want := min(frames-done, MaxReadFrames)
		got, err := read(msf.Advance(start, done), want, buf[done*msf.BytesPerFrame:(done+want)*msf.BytesPerFrame])
		if err != nil {
			if done > 0 {
				return done, nil
			}
			return 0, err
		}
		got = min(max(got, 0), want)
		done += got
		if got < want {
			break
		}
	}
	return done, nil
}
