package award

import (
	"context"

	domain "membo/internal/domain/award"
)

// Store persists Award state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Award, error)
	GetByMonthAndTitle(ctx context.Context, month, title string) (domain.Award, error)
	// GetLatestByMonth returns the newest award for a month regardless of
	// title, joined with its recipient.
	GetLatestByMonth(ctx context.Context, month string) (domain.Detail, error)
	Save(ctx context.Context, value domain.Award) error
	Delete(ctx context.Context, id string) error
	// List returns all awards joined with their recipients, newest month
	// first.
	List(ctx context.Context) ([]domain.Detail, error)
}
