package projections

import (
	"context"
	"testing"
	"time"

	"membo/internal/adapters/storage/stats"
	"membo/internal/domain/award"
	"membo/internal/domain/user"
)

func augustNow() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func TestQueryGetSiteStats(t *testing.T) {
	statsStore := &mockStatsStore{
		totals:  stats.Totals{TotalMembers: 40, TotalClasses: 12, TotalBookings: 20, TotalAttended: 9},
		active:  25,
		signups: 3,
	}
	awards := &mockAwardStore{latest: map[string]award.Detail{
		"2026-08": {
			Award: award.Award{ID: "a1", UserID: "u1", Month: "2026-08", Title: award.TitleMemberOfMonth},
			User:  &user.User{ID: "u1", Name: "Alex"},
		},
	}}
	deps := SiteStatsDeps{StatsStore: statsStore, AwardStore: awards, Now: augustNow}

	got, err := QueryGetSiteStats(context.Background(), deps)
	if err != nil {
		t.Fatalf("QueryGetSiteStats failed: %v", err)
	}
	if got.TotalMembers != 40 || got.ActiveMembers != 25 || got.TotalClasses != 12 || got.RecentSignups != 3 {
		t.Errorf("unexpected counters: %+v", got)
	}
	if got.AverageAttendance != 75 {
		t.Errorf("averageAttendance = %d, want 75", got.AverageAttendance)
	}
	if got.MemberOfMonth != "Alex" {
		t.Errorf("memberOfMonth = %q, want Alex", got.MemberOfMonth)
	}
}

func TestQueryGetSiteStats_NoAwardNoBookings(t *testing.T) {
	deps := SiteStatsDeps{
		StatsStore: &mockStatsStore{},
		AwardStore: &mockAwardStore{latest: map[string]award.Detail{}},
		Now:        augustNow,
	}

	got, err := QueryGetSiteStats(context.Background(), deps)
	if err != nil {
		t.Fatalf("QueryGetSiteStats failed: %v", err)
	}
	if got.AverageAttendance != 0 {
		t.Errorf("averageAttendance = %d, want 0 guard", got.AverageAttendance)
	}
	if got.MemberOfMonth != NotSelectedYet {
		t.Errorf("memberOfMonth = %q, want %q", got.MemberOfMonth, NotSelectedYet)
	}
}
