package disc

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDriveStatusString(t *testing.T) {
	tests := []struct {
		status DriveStatus
		want   string
	}{
		{DriveStatusNoInfo, "no_info"},
		{DriveStatusNoDisc, "no_disc"},
		{DriveStatusTrayOpen, "tray_open"},
		{DriveStatusNotReady, "not_ready"},
		{DriveStatusDiscOK, "disc_ok"},
		{DriveStatus(99), "unknown(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.status.String()
			if got != tt.want {
				t.Errorf("DriveStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
			}
		})
	}
}

func TestDriveStatusReady(t *testing.T) {
	for _, s := range []DriveStatus{DriveStatusNoInfo, DriveStatusNoDisc, DriveStatusTrayOpen, DriveStatusNotReady, -1} {
		if s.Ready() {
			t.Errorf("%s should not be ready", s)
		}
	}
	if !DriveStatusDiscOK.Ready() {
		t.Error("disc_ok should be ready")
	}
}

func TestCheckDriveStatusEmptyPath(t *testing.T) {
	_, err := CheckDriveStatus("")
	if err == nil {
		t.Fatal("expected error for empty device path")
	}
}

func TestCheckDriveStatusInvalidPath(t *testing.T) {
	_, err := CheckDriveStatus("/dev/nonexistent_device_12345")
	if err == nil {
		t.Fatal("expected error for nonexistent device")
	}
}

func stubStatusQuery(t *testing.T, query func(string) (DriveStatus, error)) {
	t.Helper()
	origQuery, origInterval := statusQuery, pollInterval
	statusQuery = query
	pollInterval = time.Millisecond
	t.Cleanup(func() {
		statusQuery = origQuery
		pollInterval = origInterval
	})
}

func TestWaitForReadyReturnsWhenDiscLoads(t *testing.T) {
	calls := 0
	stubStatusQuery(t, func(string) (DriveStatus, error) {
		calls++
		if calls < 3 {
			return DriveStatusTrayOpen, nil
		}
		return DriveStatusDiscOK, nil
	})

	status, err := WaitForReady(context.Background(), "/dev/sr0")
	if err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}
	if status != DriveStatusDiscOK || calls != 3 {
		t.Fatalf("status=%s calls=%d", status, calls)
	}
}

func TestWaitForReadyHonoursDeadline(t *testing.T) {
	stubStatusQuery(t, func(string) (DriveStatus, error) { return DriveStatusNoDisc, nil })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	status, err := WaitForReady(ctx, "/dev/sr0")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if status != DriveStatusNoDisc {
		t.Fatalf("expected last status no_disc, got %s", status)
	}
}

func TestWaitForReadyPropagatesStatusError(t *testing.T) {
	queryErr := errors.New("open failed")
	stubStatusQuery(t, func(string) (DriveStatus, error) { return DriveStatusNoInfo, queryErr })
	if _, err := WaitForReady(context.Background(), "/dev/sr0"); !errors.Is(err, queryErr) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestWaitForMediaReturnsImmediatelyWhenLoaded(t *testing.T) {
	stubStatusQuery(t, func(string) (DriveStatus, error) { return DriveStatusDiscOK, nil })
	status, err := WaitForMedia(context.Background(), "/dev/sr0", nil)
	if err != nil || status != DriveStatusDiscOK {
		t.Fatalf("status=%s err=%v", status, err)
	}
}

func TestWaitForMediaDetectsLaterInsertion(t *testing.T) {
	calls := 0
	stubStatusQuery(t, func(string) (DriveStatus, error) {
		calls++
		if calls < 4 {
			return DriveStatusNoDisc, nil
		}
		return DriveStatusDiscOK, nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	status, err := WaitForMedia(ctx, "/dev/sr0", nil)
	if err != nil || status != DriveStatusDiscOK {
		t.Fatalf("status=%s err=%v", status, err)
	}
}
