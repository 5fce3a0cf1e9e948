package catalog

import "time"

// Status is the outcome recorded for a session or a track.
type Status string

const (
	StatusRunning     Status = "running"
	StatusRipped      Status = "ripped"
	StatusReadFailed  Status = "read_failed"
	StatusWriteFailed Status = "write_failed"
	StatusFailed      Status = "failed"
	StatusSkipped     Status = "skipped"
	StatusAborted     Status = "aborted"
)

// IsFailure reports whether the status marks a track or session that did not
// complete.
func (s Status) IsFailure() bool {
	switch s {
	case StatusReadFailed, StatusWriteFailed, StatusFailed, StatusAborted:
		return true
	default:
		return false
	}
}

// Session is one rip command run against a drive.
type Session struct {
	ID         string
	Device     string
	Format     string
	OutputDir  string
	TrackCount int
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
}

// Track is the recorded outcome of ripping one track.
type Track struct {
	SessionID    string
	Track        int
	StartFrame   int64
	EndFrame     int64
	Path         string
	Bytes        int64
	Status       Status
	ErrorMessage string
	Duration     time.Duration
	RecordedAt   time.Time
}

// Frames returns the track's length in frames.
func (t Track) Frames() int64 {
	return t.EndFrame - t.StartFrame
}
