package branding

import (
	"context"

	domain "membo/internal/domain/branding"
)

// Store persists branding tenants.
type Store interface {
	GetByKey(ctx context.Context, key string) (domain.Tenant, error)
	Save(ctx context.Context, value domain.Tenant) error
	List(ctx context.Context) ([]domain.Tenant, error)
}
