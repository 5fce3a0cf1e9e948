//go:build linux

package disc

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// CheckDriveStatus queries the drive state using the CDROM_DRIVE_STATUS ioctl.
// Returns an error if the device cannot be opened or the ioctl fails.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return DriveStatusNoInfo, fmt.Errorf("empty device path")
	}

	fd, err := openDevice(devicePath)
	if err != nil {
		return DriveStatusNoInfo, fmt.Errorf("open %s: %w", devicePath, err)
	}
	defer unix.Close(fd) //nolint:errcheck

	r1, err := ioctl(fd, ioctlCDROMDriveStatus, nil)
	if err != nil {
		return DriveStatusNoInfo, fmt.Errorf("ioctl CDROM_DRIVE_STATUS on %s: %w", devicePath, err)
	}

	return DriveStatus(r1), nil
}
