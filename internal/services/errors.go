package services

import (
	"errors"
	"fmt"
	"strings"

	"audiorip/internal/catalog"
)

var (
	ErrDeviceQuery   = errors.New("device query failed")
	ErrRead          = errors.New("read failed")
	ErrWrite         = errors.New("write failed")
	ErrDevice        = errors.New("device unavailable")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrDevice
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a track error to the status recorded in the rip catalog.
func FailureStatus(err error) catalog.Status {
	switch {
	case err == nil:
		return catalog.StatusFailed
	case errors.Is(err, ErrRead):
		return catalog.StatusReadFailed
	case errors.Is(err, ErrWrite):
		return catalog.StatusWriteFailed
	case errors.Is(err, ErrValidation):
		return catalog.StatusSkipped
	default:
		return catalog.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "rip failure"
	}
	return strings.Join(parts, ": ")
}
