// Package disc interfaces with physical CD-ROM drives.
//
// It wraps the Linux CDROM ioctls (table-of-contents header and entries,
// audio reads, start/stop, eject, drive status) behind the Device interface
// consumed by the toc and extract packages, and owns the per-rip Session that
// locks the drive, spins it up, and guarantees a spin-down on exit or
// interrupt. WaitForMedia blocks until a disc is inserted using udev netlink
// events with an ioctl polling fallback.
package disc
