//go:build !linux

package disc

import (
	"errors"

	"audiorip/internal/msf"
)

// ErrClosed is returned by Drive methods after Close.
var ErrClosed = errors.New("drive closed")

var errUnsupported = errors.New("CD-ROM ioctls are only supported on Linux")

// Drive is unavailable on this platform; OpenDrive always fails.
type Drive struct {
	path string
}

// OpenDrive reports that raw CD-ROM access is unsupported.
func OpenDrive(devicePath string) (*Drive, error) {
	return nil, errUnsupported
}

func (d *Drive) Path() string { return d.path }
func (d *Drive) TrackCount() (int, error) { return 0, errUnsupported }
func (d *Drive) TrackStart(int) (msf.Timecode, error) { return msf.Timecode{}, errUnsupported }
func (d *Drive) ReadAudio(msf.Timecode, int, []byte) (int, error) { return 0, errUnsupported }
func (d *Drive) Start() error { return errUnsupported }
func (d *Drive) Stop() error { return errUnsupported }
func (d *Drive) Eject() error { return errUnsupported }
func (d *Drive) Status() (DriveStatus, error) { return DriveStatusNoInfo, errUnsupported }
func (d *Drive) Close() error { return errUnsupported }

// CheckDriveStatus reports that drive status queries are unsupported.
func CheckDriveStatus(devicePath string) (DriveStatus, error) {
	return DriveStatusNoInfo, errUnsupported
}
