package booking

import (
	"sort"
	"time"
)

// ComputeStreak derives the current consecutive-attendance count from the
// class dates (YYYY-MM-DD) of a user's attended bookings.
//
// The walk starts at the most recent attended class and moves backward,
// extending the streak while each successive class date is at most one
// calendar day before the previous one. A gap of two or more days ends the
// streak. The rule is a plain day-difference check, not schedule-aware:
// a member who only trains on Mondays resets every week.
//
// PRE: dates are YYYY-MM-DD strings; unparseable entries are skipped
// POST: Returns streak >= 0; 0 when no attended classes exist
func ComputeStreak(dates []string) int {
	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if seen[d] {
			// Two attended classes on the same day count once.
			continue
		}
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	for i := 1; i < len(days); i++ {
		gap := int(days[i-1].Sub(days[i]).Hours() / 24)
		if gap > 1 {
			break
		}
		streak++
	}
	return streak
}
