//go:build linux

package disc

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux CDROM ioctl requests from <linux/cdrom.h>.
const (
	ioctlCDROMStop        = 0x5307
	ioctlCDROMStart       = 0x5308
	ioctlCDROMEject       = 0x5309
	ioctlCDROMReadTOCHdr  = 0x5305
	ioctlCDROMReadTOCEnt  = 0x5306
	ioctlCDROMReadAudio   = 0x530e
	ioctlCDROMDriveStatus = 0x5326

	cdromMSF = 0x02
)

// tocHeader mirrors struct cdrom_tochdr.
type tocHeader struct {
	first uint8
	last  uint8
}

// tocEntry mirrors struct cdrom_tocentry with the address in MSF form.
type tocEntry struct {
	track    uint8
	adrCtrl  uint8
	format   uint8
	_        uint8
	addr     [4]byte
	dataMode uint8
	_        [3]byte
}

// readAudio mirrors struct cdrom_read_audio.
type readAudio struct {
	addr       [4]byte
	addrFormat uint8
	_          [3]byte
	nframes    int32
	buf        *byte
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) (uintptr, error) {
	r1, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return r1, errno
	}
	return r1, nil
}

func openDevice(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}
