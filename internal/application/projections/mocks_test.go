package projections

import (
	"context"
	"sort"
	"time"

	"membo/internal/adapters/storage/stats"
	"membo/internal/domain/award"
	"membo/internal/domain/booking"
	"membo/internal/domain/class"
	"membo/internal/domain/setting"
	"membo/internal/domain/user"
)

type mockUserStore struct {
	users map[string]user.User
}

func newMockUserStore(users ...user.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]user.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserStore) List(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockUserStore) ListByRole(_ context.Context, role string) ([]user.User, error) {
	var out []user.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type mockBookingStore struct {
	byUser   map[string][]booking.Detail
	recent   []booking.Detail
	counts   map[string]int // active count per class
	attended map[string]int // attended per user for the ranking window
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{
		byUser:   make(map[string][]booking.Detail),
		counts:   make(map[string]int),
		attended: make(map[string]int),
	}
}

func (m *mockBookingStore) ListByUserID(_ context.Context, userID string) ([]booking.Detail, error) {
	return m.byUser[userID], nil
}

func (m *mockBookingStore) List(_ context.Context, limit int) ([]booking.Detail, error) {
	if limit > 0 && len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *mockBookingStore) CountActiveByClassID(_ context.Context, classID string) (int, error) {
	return m.counts[classID], nil
}

func (m *mockBookingStore) AttendedCountsByDateRange(_ context.Context, _, _ string) (map[string]int, error) {
	return m.attended, nil
}

type mockClassStore struct {
	classes []class.Class
}

func (m *mockClassStore) List(_ context.Context) ([]class.Class, error) {
	return m.classes, nil
}

type mockSettingsStore struct {
	settings setting.Settings
}

func newMockSettingsStore(mode, apiConfig string) *mockSettingsStore {
	s := setting.Defaults()
	s.Mode = mode
	if apiConfig != "" {
		s.APIConfig = apiConfig
	}
	return &mockSettingsStore{settings: s}
}

func (m *mockSettingsStore) Get(_ context.Context) (setting.Settings, error) {
	return m.settings, nil
}

type mockStatsStore struct {
	totals  stats.Totals
	active  int
	signups int
	counts  stats.EntityCounts
	err     error
}

func (m *mockStatsStore) Totals(_ context.Context) (stats.Totals, error) {
	return m.totals, m.err
}

func (m *mockStatsStore) CountActiveMembersSince(_ context.Context, _ string) (int, error) {
	return m.active, m.err
}

func (m *mockStatsStore) CountMembersCreatedSince(_ context.Context, _ string) (int, error) {
	return m.signups, m.err
}

func (m *mockStatsStore) EntityCounts(_ context.Context) (stats.EntityCounts, error) {
	return m.counts, m.err
}

type mockAwardStore struct {
	latest map[string]award.Detail
}

func (m *mockAwardStore) GetLatestByMonth(_ context.Context, month string) (award.Detail, error) {
	d, ok := m.latest[month]
	if !ok {
		return award.Detail{}, award.ErrNotFound
	}
	return d, nil
}

type stubProvider struct {
	classes []class.Class
	err     error
}

func (s *stubProvider) FetchClasses(_ context.Context, _ setting.APIConfig) ([]class.Class, error) {
	return s.classes, s.err
}

func (s *stubProvider) Ping(_ context.Context, _ setting.APIConfig) error {
	return s.err
}

// attendedDetail builds a booking joined with a class on the given date.
func attendedDetail(status, date string) booking.Detail {
	return booking.Detail{
		Booking: booking.Booking{ID: "b-" + date + status, Status: status, CreatedAt: time.Now()},
		Class:   &class.Class{ID: "c-" + date, Date: date, Time: "18:00", MaxSlots: 20},
	}
}
