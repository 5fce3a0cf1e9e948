package catalog

import (
	"database/sql"
	"time"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const (
	sessionColumns = "id, device, format, output_dir, track_count, status, started_at, finished_at"
	trackColumns   = "session_id, track, start_frame, end_frame, path, bytes, status, error_message, duration_ms, recorded_at"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(scanner rowScanner) (*Session, error) {
	var (
		session     Session
		statusStr   string
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(
		&session.ID,
		&session.Device,
		&session.Format,
		&session.OutputDir,
		&session.TrackCount,
		&statusStr,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	session.Status = Status(statusStr)
	if started, err := parseTimeString(startedRaw); err == nil {
		session.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			session.FinishedAt = finished
		}
	}
	return &session, nil
}

func scanTrack(scanner rowScanner) (Track, error) {
	var (
		track       Track
		path        sql.NullString
		statusStr   string
		errMessage  sql.NullString
		durationMS  int64
		recordedRaw string
	)
	if err := scanner.Scan(
		&track.SessionID,
		&track.Track,
		&track.StartFrame,
		&track.EndFrame,
		&path,
		&track.Bytes,
		&statusStr,
		&errMessage,
		&durationMS,
		&recordedRaw,
	); err != nil {
		return Track{}, err
	}
	track.Path = path.String
	track.Status = Status(statusStr)
	track.ErrorMessage = errMessage.String
	track.Duration = time.Duration(durationMS) * time.Millisecond
	if recorded, err := parseTimeString(recordedRaw); err == nil {
		track.RecordedAt = recorded
	}
	return track, nil
}

func parseTimeString(value string) (time.Time, error) {
	return time.Parse(timeLayout, value)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
