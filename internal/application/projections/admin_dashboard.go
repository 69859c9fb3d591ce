package projections

import (
	"context"
	"math"
	"time"

	"membo/internal/adapters/storage/stats"
	"membo/internal/domain/award"
	"membo/internal/domain/booking"
)

// DashboardBookingStore defines the booking store interface for the admin
// dashboard.
type DashboardBookingStore interface {
	List(ctx context.Context, limit int) ([]booking.Detail, error)
	AttendedCountsByDateRange(ctx context.Context, startDate, endDate string) (map[string]int, error)
}

// DashboardStatsStore runs the aggregate counters.
type DashboardStatsStore interface {
	Totals(ctx context.Context) (stats.Totals, error)
}

// AdminDashboardStats are the headline counters.
type AdminDashboardStats struct {
	stats.Totals
	AttendanceRate float64 `json:"attendanceRate"` // percent, one decimal
}

// AdminDashboard is the admin landing view.
type AdminDashboard struct {
	Stats          AdminDashboardStats `json:"stats"`
	RecentBookings []booking.Detail    `json:"recentBookings"`
	TopPerformers  []Performer         `json:"topPerformers"`
}

// AdminDashboardDeps holds dependencies for the admin dashboard.
type AdminDashboardDeps struct {
	StatsStore   DashboardStatsStore
	BookingStore DashboardBookingStore
	UserStore    PerformerUserStore
	Now          func() time.Time
}

// QueryGetAdminDashboard builds the admin landing view: whole-club
// counters, the ten newest bookings and the current month's top five
// performers.
// POST: AttendanceRate is 0 when there are no bookings
func QueryGetAdminDashboard(ctx context.Context, deps AdminDashboardDeps) (AdminDashboard, error) {
	totals, err := deps.StatsStore.Totals(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	dashStats := AdminDashboardStats{Totals: totals}
	if totals.TotalBookings > 0 {
		rate := float64(totals.TotalAttended) / float64(totals.TotalBookings) * 100
		dashStats.AttendanceRate = math.Round(rate*10) / 10
	}

	recent, err := deps.BookingStore.List(ctx, 10)
	if err != nil {
		return AdminDashboard{}, err
	}
	if recent == nil {
		recent = []booking.Detail{}
	}

	month := award.CurrentMonth(deps.Now())
	performers, err := QueryGetTopPerformers(ctx, month, 5, TopPerformersDeps{
		UserStore:    deps.UserStore,
		BookingStore: deps.BookingStore,
	})
	if err != nil {
		return AdminDashboard{}, err
	}

	return AdminDashboard{
		Stats:          dashStats,
		RecentBookings: recent,
		TopPerformers:  performers,
	}, nil
}
