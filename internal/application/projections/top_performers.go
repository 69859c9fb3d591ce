package projections

import (
	"context"
	"sort"

	"membo/internal/domain/award"
	"membo/internal/domain/user"
)

// PerformerUserStore defines the user store interface for rankings.
type PerformerUserStore interface {
	ListByRole(ctx context.Context, role string) ([]user.User, error)
}

// PerformerBookingStore counts attended bookings per user in a window.
type PerformerBookingStore interface {
	AttendedCountsByDateRange(ctx context.Context, startDate, endDate string) (map[string]int, error)
}

// Performer is one row of the monthly attendance ranking.
type Performer struct {
	User          user.User `json:"user"`
	AttendedCount int       `json:"attendedCount"`
}

// TopPerformersDeps holds dependencies for the ranking projection.
type TopPerformersDeps struct {
	UserStore    PerformerUserStore
	BookingStore PerformerBookingStore
}

// QueryGetTopPerformers ranks members by attended classes within the
// calendar month, highest first. Ties keep the user-store order, which is
// earliest signup then lowest ID.
// PRE: month is YYYY-MM; limit > 0
// POST: Returns at most limit rows, possibly with zero counts
func QueryGetTopPerformers(ctx context.Context, month string, limit int, deps TopPerformersDeps) ([]Performer, error) {
	start, end, err := award.MonthWindow(month)
	if err != nil {
		return nil, err
	}

	members, err := deps.UserStore.ListByRole(ctx, user.RoleMember)
	if err != nil {
		return nil, err
	}
	counts, err := deps.BookingStore.AttendedCountsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	performers := make([]Performer, 0, len(members))
	for _, m := range members {
		performers = append(performers, Performer{User: m, AttendedCount: counts[m.ID]})
	}
	// Stable sort keeps store order for equal counts.
	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].AttendedCount > performers[j].AttendedCount
	})
	if len(performers) > limit {
		performers = performers[:limit]
	}
	return performers, nil
}
