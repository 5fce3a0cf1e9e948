//go:build !linux

package disc

import (
	"context"
	"log/slog"
)

// WaitForMedia polls the drive until it reports a loaded disc or ctx is done.
func WaitForMedia(ctx context.Context, devicePath string, _ *slog.Logger) (DriveStatus, error) {
	return WaitForReady(ctx, devicePath)
}
