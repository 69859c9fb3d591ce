package projections

import (
	"context"

	"membo/internal/domain/user"
)

// UserListStore defines the user store interface for the admin user list.
type UserListStore interface {
	List(ctx context.Context) ([]user.User, error)
}

// UserWithStats is one row of the admin user list.
type UserWithStats struct {
	user.User
	Stats UserStats `json:"stats"`
}

// ListUsersDeps holds dependencies for the admin user list.
type ListUsersDeps struct {
	UserStore    UserListStore
	BookingStore UserStatsBookingStore
}

// QueryListUsers lists every account with its attendance stats, newest
// first.
func QueryListUsers(ctx context.Context, deps ListUsersDeps) ([]UserWithStats, error) {
	users, err := deps.UserStore.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]UserWithStats, 0, len(users))
	for _, u := range users {
		details, err := deps.BookingStore.ListByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, UserWithStats{User: u, Stats: computeUserStats(details)})
	}
	return rows, nil
}
