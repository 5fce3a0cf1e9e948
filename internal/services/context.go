package services

import "context"

type contextKey string

const (
	sessionIDKey contextKey = "session_id"
	trackKey     contextKey = "track"
	stageKey     contextKey = "stage"
)

// WithSessionID annotates context with the rip session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext extracts the rip session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrack annotates context with the 1-based track number being processed.
func WithTrack(ctx context.Context, track int) context.Context {
	if track <= 0 {
		return ctx
	}
	return context.WithValue(ctx, trackKey, track)
}

// TrackFromContext returns the track number if present.
func TrackFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(trackKey).(int)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// WithStage annotates context with the pipeline stage name (toc, extract, write).
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
