package disc

import (
	"context"
	"fmt"
)

// Ejector defines disc eject operations.
type Ejector interface {
	Eject(ctx context.Context, device string) error
}

type ioctlEjector struct{}

// NewEjector creates an ejector that issues CDROMEJECT on the device node.
func NewEjector() Ejector {
	return ioctlEjector{}
}

func (ioctlEjector) Eject(ctx context.Context, device string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	drive, err := OpenDrive(device)
	if err != nil {
		return fmt.Errorf("eject %s: %w", device, err)
	}
	ejectErr := drive.Eject()
	closeErr := drive.Close()
	if ejectErr != nil {
		return fmt.Errorf("eject %s: %w", device, ejectErr)
	}
	if closeErr != nil {
		return fmt.Errorf("eject %s: %w", device, closeErr)
	}
	return nil
}
