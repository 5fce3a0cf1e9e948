package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"audiorip/internal/catalog"
	"audiorip/internal/disc"
)

// driveStatus is swapped out in tests.
var driveStatus = disc.CheckDriveStatus

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDevice verifies that path is a device node the current user can open
// for reading.
func CheckDevice(path string) Result {
	const name = "Drive"

	if path == "" {
		return Result{Name: name, Detail: "no device configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.Mode()&os.ModeDevice == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a device node)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v; add the user to the cdrom group)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckDisc verifies that the drive reports a loaded disc.
func CheckDisc(path string) Result {
	const name = "Disc"

	status, err := driveStatus(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("status query failed: %v", err)}
	}
	if !status.Ready() {
		return Result{Name: name, Detail: status.String()}
	}
	return Result{Name: name, Passed: true, Detail: status.String()}
}

// CheckCatalog verifies that the rip history database opens and its schema
// matches.
func CheckCatalog(ctx context.Context, path string) Result {
	const name = "Catalog"

	store, err := catalog.Open(ctx, path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()
	return Result{Name: name, Passed: true, Detail: path}
}
