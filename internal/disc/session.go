package disc

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"audiorip/internal/logging"
	"audiorip/internal/services"
)

// SessionOptions configures OpenSession.
type SessionOptions struct {
	Device   string
	LockDir  string
	SpinUp   bool
	SpinDown bool
	Logger   *slog.Logger
}

// Session owns one open drive for the duration of a rip. It holds an
// exclusive lock file so two audiorip processes never drive the same device,
// and it guarantees the device is released exactly once through either Close
// or Abort.
type Session struct {
	ctrl     Controller
	lock     *flock.Flock
	logger   *slog.Logger
	spinDown bool

	once sync.Once
	err  error
}

// LockPath returns the lock file used to serialize access to device.
func LockPath(lockDir, device string) string {
	name := strings.Trim(strings.ReplaceAll(filepath.Clean(device), string(filepath.Separator), "-"), "-")
	if name == "" || name == "." {
		name = "default"
	}
	return filepath.Join(lockDir, "audiorip-"+name+".lock")
}

// OpenSession locks and opens the configured drive, optionally spinning it up.
func OpenSession(opts SessionOptions) (*Session, error) {
	logger := logging.NewComponentLogger(opts.Logger, "disc")

	device := strings.TrimSpace(opts.Device)
	if device == "" {
		return nil, services.Wrap(services.ErrConfiguration, "session", "open", "device path is empty", nil)
	}

	var lock *flock.Flock
	if lockDir := strings.TrimSpace(opts.LockDir); lockDir != "" {
		if err := os.MkdirAll(lockDir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "session", "lock", "create lock directory", err)
		}
		lock = flock.New(LockPath(lockDir, device))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, services.Wrap(services.ErrDevice, "session", "lock", lock.Path(), err)
		}
		if !locked {
			return nil, services.Wrap(services.ErrDevice, "session", "lock",
				fmt.Sprintf("%s is in use by another audiorip process", device), nil)
		}
	}

	drive, err := OpenDrive(device)
	if err != nil {
		if lock != nil {
			_ = lock.Unlock()
		}
		return nil, services.Wrap(services.ErrDevice, "session", "open", "", err)
	}

	if opts.SpinUp {
		if err := drive.Start(); err != nil {
			logging.WarnWithContext(logger, "spin-up failed; continuing", "drive_spinup_failed",
				logging.Device(device),
				logging.Error(err),
				logging.Hint("check that an audio CD is inserted"),
				logging.Impact("first reads may be slower or fail"),
			)
		}
	}

	logger.Debug("drive opened", logging.Device(device), logging.Bool("spin_up", opts.SpinUp))
	return NewSession(drive, lock, logger, opts.SpinDown), nil
}

// NewSession wraps an already opened controller. lock may be nil.
func NewSession(ctrl Controller, lock *flock.Flock, logger *slog.Logger, spinDown bool) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{ctrl: ctrl, lock: lock, logger: logger, spinDown: spinDown}
}

// Device returns the drive for table-of-contents queries and audio reads.
func (s *Session) Device() Device {
	return s.ctrl
}

// Close spins the drive down when configured to, then releases it.
func (s *Session) Close() error {
	return s.release(s.spinDown)
}

// Abort always spins the drive down and releases it. It is safe to call
// from a signal handler goroutine while a read is in flight; the stop waits
// for the read to return.
func (s *Session) Abort() error {
	return s.release(true)
}

func (s *Session) release(stop bool) error {
	s.once.Do(func() {
		var errs []error
		if stop {
			if err := s.ctrl.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("spin down: %w", err))
			}
		}
		if err := s.ctrl.Close(); err != nil {
			errs = append(errs, err)
		}
		if s.lock != nil {
			if err := s.lock.Unlock(); err != nil {
				errs = append(errs, fmt.Errorf("unlock: %w", err))
			}
		}
		s.err = errors.Join(errs...)
		if s.err != nil {
			s.logger.Debug("drive release reported errors", logging.Error(s.err))
		} else {
			s.logger.Debug("drive released", logging.Bool("spin_down", stop))
		}
	})
	return s.err
}
