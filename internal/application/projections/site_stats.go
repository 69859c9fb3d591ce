package projections

import (
	"context"
	"errors"
	"math"
	"time"

	"membo/internal/adapters/storage/stats"
	"membo/internal/domain/award"
)

// NotSelectedYet is shown while the current month has no award.
const NotSelectedYet = "Not selected yet"

// SiteStatsStore runs the aggregate counters for the public landing page.
type SiteStatsStore interface {
	Totals(ctx context.Context) (stats.Totals, error)
	CountActiveMembersSince(ctx context.Context, cutoff string) (int, error)
	CountMembersCreatedSince(ctx context.Context, cutoff string) (int, error)
}

// SiteStatsAwardStore looks up the current month's award.
type SiteStatsAwardStore interface {
	GetLatestByMonth(ctx context.Context, month string) (award.Detail, error)
}

// SiteStats is the public landing-page summary.
type SiteStats struct {
	TotalMembers      int    `json:"totalMembers"`
	ActiveMembers     int    `json:"activeMembers"` // booked in the last 30 days
	TotalClasses      int    `json:"totalClasses"`
	AverageAttendance int    `json:"averageAttendance"` // attended bookings per class, percent
	MemberOfMonth     string `json:"memberOfMonth"`
	RecentSignups     int    `json:"recentSignups"` // last 7 days
}

// SiteStatsDeps holds dependencies for the public stats projection.
type SiteStatsDeps struct {
	StatsStore SiteStatsStore
	AwardStore SiteStatsAwardStore
	Now        func() time.Time
}

// QueryGetSiteStats builds the public landing-page numbers.
// POST: AverageAttendance is 0 when there are no classes;
// MemberOfMonth falls back to "Not selected yet"
func QueryGetSiteStats(ctx context.Context, deps SiteStatsDeps) (SiteStats, error) {
	totals, err := deps.StatsStore.Totals(ctx)
	if err != nil {
		return SiteStats{}, err
	}
	now := deps.Now()

	active, err := deps.StatsStore.CountActiveMembersSince(ctx, now.AddDate(0, 0, -30).Format(time.RFC3339))
	if err != nil {
		return SiteStats{}, err
	}
	signups, err := deps.StatsStore.CountMembersCreatedSince(ctx, now.AddDate(0, 0, -7).Format(time.RFC3339))
	if err != nil {
		return SiteStats{}, err
	}

	result := SiteStats{
		TotalMembers:  totals.TotalMembers,
		ActiveMembers: active,
		TotalClasses:  totals.TotalClasses,
		MemberOfMonth: NotSelectedYet,
		RecentSignups: signups,
	}
	if totals.TotalClasses > 0 {
		result.AverageAttendance = int(math.Round(float64(totals.TotalAttended) / float64(totals.TotalClasses) * 100))
	}

	current, err := deps.AwardStore.GetLatestByMonth(ctx, award.CurrentMonth(now))
	if err == nil && current.User != nil {
		result.MemberOfMonth = current.User.Name
	} else if err != nil && !errors.Is(err, award.ErrNotFound) {
		return SiteStats{}, err
	}
	return result, nil
}
