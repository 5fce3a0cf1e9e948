//go:build linux

package disc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"audiorip/internal/logging"
)

// WaitForMedia blocks until devicePath reports a loaded disc or ctx is done.
// It listens for udev media-change events and re-queries the drive on each
// matching event, falling back to status polling when the netlink socket is
// unavailable.
func WaitForMedia(ctx context.Context, devicePath string, logger *slog.Logger) (DriveStatus, error) {
	logger = logging.NewComponentLogger(logger, "media-wait")

	status, err := statusQuery(devicePath)
	if err != nil || status.Ready() {
		return status, err
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		logging.WarnWithContext(logger, "netlink unavailable; polling drive status", "netlink_connect_failed",
			logging.Error(err),
			logging.Hint("check permission to open netlink sockets"),
			logging.Impact("disc detection falls back to polling"),
		)
		return WaitForReady(ctx, devicePath)
	}
	defer conn.Close() //nolint:errcheck

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	quit := conn.Monitor(queue, errs, mediaMatcher())
	defer close(quit)

	logger.Info("waiting for disc",
		logging.String(logging.FieldEventType, "media_wait_started"),
		logging.Device(devicePath),
		logging.String("status", status.String()),
	)

	// Periodic queries cover events lost before the monitor subscribed.
	ticker := time.NewTicker(5 * pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case uevent := <-queue:
			devname := eventDeviceName(uevent)
			if !sameDevice(devname, devicePath) {
				logger.Debug("ignoring event for other device", logging.Device(devname))
				continue
			}
			logger.Debug("media event", logging.String("action", string(uevent.Action)))
		case err := <-errs:
			logger.Debug("netlink monitor error", logging.Error(err))
			continue
		case <-ticker.C:
		}

		status, err = statusQuery(devicePath)
		if err != nil || status.Ready() {
			return status, err
		}
	}
}

// mediaMatcher matches SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1,
// ACTION=change|add.
func mediaMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

// eventDeviceName gets the device path from a uevent.
func eventDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}

	// Fall back to DEVPATH (e.g. /devices/pci.../block/sr0).
	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
