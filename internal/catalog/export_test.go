package catalog

import (
	"context"
	"fmt"
)

// SetUserVersion overwrites the stored schema version.
func (s *Store) SetUserVersion(ctx context.Context, version int) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}
