package projections

import (
	"context"
	"math"

	"membo/internal/domain/booking"
	"membo/internal/domain/user"
)

// UserStatsBookingStore defines the booking store interface for user stats.
type UserStatsBookingStore interface {
	ListByUserID(ctx context.Context, userID string) ([]booking.Detail, error)
}

// UserStatsUserStore defines the user store interface for user stats.
type UserStatsUserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// UserStats summarizes one member's training history.
type UserStats struct {
	TotalBookings   int     `json:"totalBookings"`
	AttendedClasses int     `json:"attendedClasses"`
	CurrentStreak   int     `json:"currentStreak"`
	AttendanceRate  float64 `json:"attendanceRate"` // percent, one decimal
}

// UserStatsDeps holds dependencies for the user stats projection.
type UserStatsDeps struct {
	UserStore    UserStatsUserStore
	BookingStore UserStatsBookingStore
}

// QueryGetUserStats computes booking counts, attendance rate and the
// current day streak for one user. Canceled bookings count toward the
// total but not toward attendance.
// POST: AttendanceRate is 0 when the user has no bookings
func QueryGetUserStats(ctx context.Context, userID string, deps UserStatsDeps) (UserStats, error) {
	if _, err := deps.UserStore.GetByID(ctx, userID); err != nil {
		return UserStats{}, err
	}
	details, err := deps.BookingStore.ListByUserID(ctx, userID)
	if err != nil {
		return UserStats{}, err
	}
	return computeUserStats(details), nil
}

func computeUserStats(details []booking.Detail) UserStats {
	var stats UserStats
	var attendedDates []string
	for _, d := range details {
		stats.TotalBookings++
		if d.Status == booking.StatusAttended {
			stats.AttendedClasses++
			if d.Class != nil {
				attendedDates = append(attendedDates, d.Class.Date)
			}
		}
	}
	stats.CurrentStreak = booking.ComputeStreak(attendedDates)
	if stats.TotalBookings > 0 {
		rate := float64(stats.AttendedClasses) / float64(stats.TotalBookings) * 100
		stats.AttendanceRate = math.Round(rate*10) / 10
	}
	return stats
}

// UserDashboard is the member landing view.
type UserDashboard struct {
	User           user.User        `json:"user"`
	Stats          UserStats        `json:"stats"`
	RecentBookings []booking.Detail `json:"recentBookings"`
}

// QueryGetUserDashboard builds the member landing view: profile, stats
// with a whole-percent attendance rate and the five most recent bookings.
func QueryGetUserDashboard(ctx context.Context, userID string, deps UserStatsDeps) (UserDashboard, error) {
	u, err := deps.UserStore.GetByID(ctx, userID)
	if err != nil {
		return UserDashboard{}, err
	}
	details, err := deps.BookingStore.ListByUserID(ctx, userID)
	if err != nil {
		return UserDashboard{}, err
	}

	stats := computeUserStats(details)
	stats.AttendanceRate = math.Round(stats.AttendanceRate)

	recent := details
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if recent == nil {
		recent = []booking.Detail{}
	}
	return UserDashboard{User: u, Stats: stats, RecentBookings: recent}, nil
}
