//go:build linux

package disc

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"audiorip/internal/msf"
)

// ErrClosed is returned by Drive methods after Close.
var ErrClosed = errors.New("drive closed")

// Drive is an open CD-ROM device node. Every ioctl is serialized so a
// concurrent Stop or Close waits for the in-flight command.
type Drive struct {
	mu     sync.Mutex
	path   string
	fd     int
	closed bool
}

// OpenDrive opens devicePath read-only and non-blocking, which lets the
// drive be queried even when no disc is present.
func OpenDrive(devicePath string) (*Drive, error) {
	devicePath = strings.TrimSpace(devicePath)
	if devicePath == "" {
		return nil, fmt.Errorf("empty device path")
	}
	fd, err := openDevice(devicePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", devicePath, err)
	}
	return &Drive{path: devicePath, fd: fd}, nil
}

// Path returns the device node this drive was opened from.
func (d *Drive) Path() string {
	return d.path
}

func (d *Drive) do(name string, req uintptr, arg unsafe.Pointer) (uintptr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrClosed
	}
	r1, err := ioctl(d.fd, req, arg)
	if err != nil {
		return r1, fmt.Errorf("ioctl %s on %s: %w", name, d.path, err)
	}
	return r1, nil
}

// TrackCount reads the table-of-contents header and returns its last track number.
func (d *Drive) TrackCount() (int, error) {
	var hdr tocHeader
	if _, err := d.do("CDROMREADTOCHDR", ioctlCDROMReadTOCHdr, unsafe.Pointer(&hdr)); err != nil {
		return 0, err
	}
	return int(hdr.last), nil
}

// TrackStart reads one table-of-contents entry in MSF form.
func (d *Drive) TrackStart(track int) (msf.Timecode, error) {
	if track < 1 || track > LeadOut {
		return msf.Timecode{}, fmt.Errorf("track number %d out of range", track)
	}
	entry := tocEntry{track: uint8(track), format: cdromMSF}
	if _, err := d.do("CDROMREADTOCENTRY", ioctlCDROMReadTOCEnt, unsafe.Pointer(&entry)); err != nil {
		return msf.Timecode{}, err
	}
	return msf.Timecode{
		Minute: int(entry.addr[0]),
		Second: int(entry.addr[1]),
		Frame:  int(entry.addr[2]),
	}, nil
}

// ReadAudio reads raw CD-DA frames. Requests longer than MaxReadFrames are
// issued as consecutive kernel reads; a failure after the first read
// returns the frames already read.
func (d *Drive) ReadAudio(start msf.Timecode, frames int, buf []byte) (int, error) {
	if frames <= 0 {
		return 0, fmt.Errorf("frame count %d must be positive", frames)
	}
	if need := frames * msf.BytesPerFrame; len(buf) < need {
		return 0, fmt.Errorf("buffer holds %d bytes, need %d", len(buf), need)
	}
	return readSpans(start, frames, buf, d.readSpan)
}

// readSpan issues one CDROMREADAUDIO. The kernel either fills the whole
// request or fails.
func (d *Drive) readSpan(start msf.Timecode, frames int, buf []byte) (int, error) {
	if !start.Valid() || start.Minute > 0xFF {
		return 0, fmt.Errorf("address %s not addressable", start)
	}
	req := readAudio{
		addr:       [4]byte{byte(start.Minute), byte(start.Second), byte(start.Frame)},
		addrFormat: cdromMSF,
		nframes:    int32(frames),
		buf:        &buf[0],
	}
	_, err := d.do("CDROMREADAUDIO", ioctlCDROMReadAudio, unsafe.Pointer(&req))
	runtime.KeepAlive(buf)
	if err != nil {
		return 0, err
	}
	return frames, nil
}

// Start spins the disc up.
func (d *Drive) Start() error {
	_, err := d.do("CDROMSTART", ioctlCDROMStart, nil)
	return err
}

// Stop spins the disc down.
func (d *Drive) Stop() error {
	_, err := d.do("CDROMSTOP", ioctlCDROMStop, nil)
	return err
}

// Eject opens the tray.
func (d *Drive) Eject() error {
	_, err := d.do("CDROMEJECT", ioctlCDROMEject, nil)
	return err
}

// Status reports the drive state via CDROM_DRIVE_STATUS.
func (d *Drive) Status() (DriveStatus, error) {
	r1, err := d.do("CDROM_DRIVE_STATUS", ioctlCDROMDriveStatus, nil)
	if err != nil {
		return DriveStatusNoInfo, err
	}
	return DriveStatus(r1), nil
}

// Close releases the device node. Subsequent calls return ErrClosed.
func (d *Drive) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	if err := unix.Close(d.fd); err != nil {
		return fmt.Errorf("close %s: %w", d.path, err)
	}
	return nil
}
