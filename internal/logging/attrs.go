package logging

import (
	"context"
	"log/slog"
	"time"
)

// Attr is the attribute type accepted by every helper in this package.
type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error renders err under the "error" key; a nil error is logged explicitly.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Track tags a line with a 1-based track number.
func Track(n int) Attr { return slog.Int(FieldTrack, n) }

// Device tags a line with a drive path.
func Device(path string) Attr { return slog.String(FieldDevice, path) }

// Hint carries the operator's next step.
func Hint(text string) Attr { return slog.String(FieldErrorHint, text) }

// Impact describes what the warning costs the current rip.
func Impact(text string) Attr { return slog.String(FieldImpact, text) }

func attrsToArgs(attrs []Attr) []any {
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// withDefaults appends any of event_type, error_hint and impact that attrs
// lacks. An empty default is not appended.
func withDefaults(attrs []Attr, eventType, hint, impact string) []Attr {
	defaults := []Attr{
		String(FieldEventType, eventType),
		Hint(hint),
		Impact(impact),
	}
	for _, d := range defaults {
		if d.Value.String() != "" && !hasKey(attrs, d.Key) {
			attrs = append(attrs, d)
		}
	}
	return attrs
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact, so every warning names its cost and a next step.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefaults(attrs, eventType, "check logs for details", "rip continues with reduced output")
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

// ErrorWithContext logs an error that always carries event_type and error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	attrs = withDefaults(attrs, eventType, "check logs for details", "")
	logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}
