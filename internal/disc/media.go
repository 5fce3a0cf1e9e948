package disc

import (
	"path/filepath"
	"strings"
)

// sameDevice reports whether two device paths name the same node, resolving
// symlinks such as /dev/cdrom.
func sameDevice(a, b string) bool {
	return resolveDevice(a) == resolveDevice(b)
}

func resolveDevice(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/dev/" + path
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}
