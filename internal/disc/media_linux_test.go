//go:build linux

package disc

import (
	"testing"

	"github.com/pilebones/go-udev/netlink"
)

func TestMediaMatcher(t *testing.T) {
	matcher := mediaMatcher()
	if matcher == nil {
		t.Fatal("expected non-nil matcher")
	}

	discEnv := map[string]string{
		"SUBSYSTEM":      "block",
		"ID_CDROM":       "1",
		"ID_CDROM_MEDIA": "1",
	}

	if !matcher.Evaluate(netlink.UEvent{Action: netlink.CHANGE, Env: discEnv}) {
		t.Error("expected matcher to accept change event with media")
	}
	if !matcher.Evaluate(netlink.UEvent{Action: netlink.ADD, Env: discEnv}) {
		t.Error("expected matcher to accept ADD action")
	}
	if matcher.Evaluate(netlink.UEvent{Action: netlink.REMOVE, Env: discEnv}) {
		t.Error("expected matcher to reject REMOVE action")
	}
	noMedia := netlink.UEvent{
		Action: netlink.CHANGE,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"ID_CDROM":  "1",
		},
	}
	if matcher.Evaluate(noMedia) {
		t.Error("expected matcher to reject event without ID_CDROM_MEDIA")
	}
}

func TestEventDeviceName(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"devname", map[string]string{"DEVNAME": "/dev/sr0"}, "/dev/sr0"},
		{"devpath fallback", map[string]string{"DEVPATH": "/devices/pci0000:00/ata2/block/sr1"}, "/dev/sr1"},
		{"empty", map[string]string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eventDeviceName(netlink.UEvent{Env: tt.env})
			if got != tt.want {
				t.Errorf("eventDeviceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameDevice(t *testing.T) {
	if !sameDevice("sr0", "/dev/sr0") {
		t.Error("bare kernel name should match /dev path")
	}
	if sameDevice("/dev/sr0", "/dev/sr1") {
		t.Error("different devices should not match")
	}
	if sameDevice("", "/dev/sr0") {
		t.Error("empty name should not match")
	}
}
