package disc

import (
	"context"
	"fmt"
	"time"
)

// DriveStatus is the drive state reported by CDROM_DRIVE_STATUS.
type DriveStatus int

const (
	DriveStatusNoInfo DriveStatus = iota
	DriveStatusNoDisc
	DriveStatusTrayOpen
	DriveStatusNotReady
	DriveStatusDiscOK
)

var driveStatusNames = [...]string{
	DriveStatusNoInfo:   "no_info",
	DriveStatusNoDisc:   "no_disc",
	DriveStatusTrayOpen: "tray_open",
	DriveStatusNotReady: "not_ready",
	DriveStatusDiscOK:   "disc_ok",
}

func (s DriveStatus) String() string {
	if s >= 0 && int(s) < len(driveStatusNames) {
		return driveStatusNames[s]
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Ready reports whether a disc is loaded and readable.
func (s DriveStatus) Ready() bool {
	return s == DriveStatusDiscOK
}

// Swapped out in tests.
var (
	statusQuery  = CheckDriveStatus
	pollInterval = time.Second
)

// WaitForReady polls the drive until a disc is readable or ctx is done. A
// failed query ends the wait immediately.
func WaitForReady(ctx context.Context, devicePath string) (DriveStatus, error) {
	status, err := statusQuery(devicePath)
	if err != nil || status.Ready() {
		return status, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return status, fmt.Errorf("drive %s not ready (last status: %s): %w", devicePath, status, ctx.Err())
		case <-ticker.C:
		}
		if status, err = statusQuery(devicePath); err != nil || status.Ready() {
			return status, err
		}
	}
}
