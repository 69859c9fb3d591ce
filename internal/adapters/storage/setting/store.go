package setting

import (
	"context"

	domain "membo/internal/domain/setting"
)

// Store persists the singleton Settings row.
type Store interface {
	// Get returns the settings row, creating it from defaults when the
	// table is empty.
	Get(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, value domain.Settings) error
}
