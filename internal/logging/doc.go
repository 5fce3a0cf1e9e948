// Package logging assembles structured slog loggers and formatting helpers used
// across audiorip.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so rip code can tag log lines
// with the session ID, track number, and pipeline stage. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
