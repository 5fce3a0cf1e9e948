package toc

import (
	"fmt"
	"time"

	"audiorip/internal/disc"
	"audiorip/internal/msf"
	"audiorip/internal/services"
)

// Querier is the table-of-contents subset of disc.Device.
type Querier interface {
	TrackCount() (int, error)
	TrackStart(track int) (msf.Timecode, error)
}

// Range is one track's address range. End is the start of the next track or
// the lead-out, never the track's own last frame.
type Range struct {
	Track         int
	Start         msf.Frame
	End           msf.Frame
	StartTimecode msf.Timecode
}

// Frames returns the track length in frames.
func (r Range) Frames() int {
	return int(r.End - r.Start)
}

// Bytes returns the raw PCM size of the track.
func (r Range) Bytes() int64 {
	return (r.End - r.Start).Bytes()
}

// Duration returns the playing time of the track.
func (r Range) Duration() time.Duration {
	return time.Duration(r.Frames()) * time.Second / msf.FramesPerSecond
}

// QueryError reports a failed table-of-contents query. Track is zero for the
// header (track count) query.
type QueryError struct {
	Track   int
	LeadOut bool
	Err     error
}

func (e *QueryError) Error() string {
	switch {
	case e.LeadOut:
		return fmt.Sprintf("read toc entry for lead-out: %v", e.Err)
	case e.Track == 0:
		return fmt.Sprintf("read toc header: %v", e.Err)
	default:
		return fmt.Sprintf("read toc entry for track %d: %v", e.Track, e.Err)
	}
}

func (e *QueryError) Unwrap() error { return e.Err }

// Is matches services.ErrDeviceQuery.
func (e *QueryError) Is(target error) bool { return target == services.ErrDeviceQuery }

// ReadTrackCount queries the table-of-contents header.
func ReadTrackCount(q Querier) (int, error) {
	count, err := q.TrackCount()
	if err != nil {
		return 0, &QueryError{Err: err}
	}
	if count < 0 {
		return 0, &QueryError{Err: fmt.Errorf("negative track count %d", count)}
	}
	return count, nil
}

// ReadTrackAddresses builds ranges for tracks 1..count. For each track it
// queries the track's own start and then the next track's start, using the
// lead-out for the last track.
func ReadTrackAddresses(q Querier, count int) ([]Range, error) {
	ranges := make([]Range, 0, count)
	for track := 1; track <= count; track++ {
		own, err := q.TrackStart(track)
		if err != nil {
			return nil, &QueryError{Track: track, Err: err}
		}

		next := track + 1
		if track == count {
			next = disc.LeadOut
		}
		end, err := q.TrackStart(next)
		if err != nil {
			return nil, &QueryError{Track: next, LeadOut: next == disc.LeadOut, Err: err}
		}

		ranges = append(ranges, Range{
			Track:         track,
			Start:         msf.Decode(own),
			End:           msf.Decode(end),
			StartTimecode: own,
		})
	}
	return ranges, nil
}

// BuildTrackTable reads the track count and then every track's range. A
// disc reporting zero tracks yields an empty table without entry queries.
func BuildTrackTable(q Querier) ([]Range, error) {
	count, err := ReadTrackCount(q)
	if err != nil {
		return nil, err
	}
	return ReadTrackAddresses(q, count)
}

// TotalFrames sums the lengths of ranges.
func TotalFrames(ranges []Range) int {
	total := 0
	for _, r := range ranges {
		total += r.Frames()
	}
	return total
}
