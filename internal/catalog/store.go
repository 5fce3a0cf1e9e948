package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages rip history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("catalog path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginSession inserts a running session and returns it with a fresh ID.
func (s *Store) BeginSession(ctx context.Context, device, format, outputDir string) (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		Device:    device,
		Format:    format,
		OutputDir: outputDir,
		Status:    StatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO sessions (id, device, format, output_dir, track_count, status, started_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Device,
		session.Format,
		session.OutputDir,
		0,
		session.Status,
		session.StartedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// SetTrackCount records how many tracks the disc's table of contents listed.
func (s *Store) SetTrackCount(ctx context.Context, sessionID string, count int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET track_count = ? WHERE id = ?`, count, sessionID)
	if err != nil {
		return fmt.Errorf("update track count: %w", err)
	}
	return nil
}

// FinishSession stamps the session's final status and completion time.
func (s *Store) FinishSession(ctx context.Context, sessionID string, status Status) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET status = ?, finished_at = ? WHERE id = ?`,
		status,
		time.Now().UTC().Format(timeLayout),
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish session: unknown session %s", sessionID)
	}
	return nil
}

// RecordTrack appends a track outcome to its session.
func (s *Store) RecordTrack(ctx context.Context, track Track) error {
	if track.RecordedAt.IsZero() {
		track.RecordedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO tracks (
            session_id, track, start_frame, end_frame, path, bytes,
            status, error_message, duration_ms, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		track.SessionID,
		track.Track,
		track.StartFrame,
		track.EndFrame,
		nullableString(track.Path),
		track.Bytes,
		track.Status,
		nullableString(track.ErrorMessage),
		track.Duration.Milliseconds(),
		track.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert track: %w", err)
	}
	return nil
}

// GetSession fetches a session by ID. A missing session returns nil, nil.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// ListSessions returns the most recent sessions, newest first. A limit of
// zero or less returns every session.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// Tracks returns the recorded tracks of a session ordered by track number.
func (s *Store) Tracks(ctx context.Context, sessionID string) ([]Track, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+trackColumns+` FROM tracks WHERE session_id = ? ORDER BY track, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// Prune deletes sessions that started before cutoff together with their tracks.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM sessions WHERE started_at < ?`,
		cutoff.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
