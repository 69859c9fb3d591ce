package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"time"

	bookingstore "membo/internal/adapters/storage/booking"
	"membo/internal/domain/award"
	"membo/internal/domain/booking"
	"membo/internal/domain/branding"
	"membo/internal/domain/class"
	"membo/internal/domain/setting"
	"membo/internal/domain/user"
)

// In-memory fakes implementing the narrow deps interfaces.

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

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserStore) Save(_ context.Context, value user.User) error {
	m.users[value.ID] = value
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
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

type mockClassStore struct {
	classes map[string]class.Class
}

func newMockClassStore(classes ...class.Class) *mockClassStore {
	m := &mockClassStore{classes: make(map[string]class.Class)}
	for _, c := range classes {
		m.classes[c.ID] = c
	}
	return m
}

func (m *mockClassStore) GetByID(_ context.Context, id string) (class.Class, error) {
	c, ok := m.classes[id]
	if !ok {
		return class.Class{}, class.ErrNotFound
	}
	return c, nil
}

func (m *mockClassStore) Save(_ context.Context, value class.Class) error {
	m.classes[value.ID] = value
	return nil
}

func (m *mockClassStore) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

type mockBookingStore struct {
	bookings map[string]booking.Booking
	classes  *mockClassStore
	users    *mockUserStore
	attended map[string]int // per-user counts for AttendedCountsByDateRange
}

func newMockBookingStore(classes *mockClassStore, users *mockUserStore) *mockBookingStore {
	return &mockBookingStore{
		bookings: make(map[string]booking.Booking),
		classes:  classes,
		users:    users,
		attended: make(map[string]int),
	}
}

func (m *mockBookingStore) GetByID(_ context.Context, id string) (booking.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return booking.Booking{}, booking.ErrNotFound
	}
	return b, nil
}

func (m *mockBookingStore) GetDetailByID(ctx context.Context, id string) (booking.Detail, error) {
	b, err := m.GetByID(ctx, id)
	if err != nil {
		return booking.Detail{}, err
	}
	d := booking.Detail{Booking: b}
	if m.classes != nil {
		if c, err := m.classes.GetByID(ctx, b.ClassID); err == nil {
			d.Class = &c
		}
	}
	if m.users != nil {
		if u, err := m.users.GetByID(ctx, b.UserID); err == nil {
			d.User = &u
		}
	}
	return d, nil
}

func (m *mockBookingStore) GetActiveByUserAndClass(_ context.Context, userID, classID string) (booking.Booking, error) {
	for _, b := range m.bookings {
		if b.UserID == userID && b.ClassID == classID && b.IsActive() {
			return b, nil
		}
	}
	return booking.Booking{}, booking.ErrNotFound
}

func (m *mockBookingStore) InsertIfCapacity(ctx context.Context, value booking.Booking, maxSlots int) error {
	count, _ := m.CountActiveByClassID(ctx, value.ClassID)
	if count >= maxSlots {
		return booking.ErrClassFull
	}
	if _, err := m.GetActiveByUserAndClass(ctx, value.UserID, value.ClassID); err == nil {
		return booking.ErrAlreadyBooked
	}
	m.bookings[value.ID] = value
	return nil
}

func (m *mockBookingStore) UpdateStatus(_ context.Context, id, status string) error {
	b, ok := m.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	b.Status = status
	m.bookings[id] = b
	return nil
}

func (m *mockBookingStore) UpdateStatusBulk(ctx context.Context, updates []bookingstore.StatusUpdate) error {
	for _, u := range updates {
		if _, ok := m.bookings[u.BookingID]; !ok {
			return fmt.Errorf("booking %s: %w", u.BookingID, booking.ErrNotFound)
		}
	}
	for _, u := range updates {
		if err := m.UpdateStatus(ctx, u.BookingID, u.Status); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockBookingStore) CountActiveByClassID(_ context.Context, classID string) (int, error) {
	count := 0
	for _, b := range m.bookings {
		if b.ClassID == classID && b.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *mockBookingStore) AttendedCountsByDateRange(_ context.Context, _, _ string) (map[string]int, error) {
	return m.attended, nil
}

type mockAwardStore struct {
	awards map[string]award.Award
}

func newMockAwardStore() *mockAwardStore {
	return &mockAwardStore{awards: make(map[string]award.Award)}
}

func (m *mockAwardStore) GetByID(_ context.Context, id string) (award.Award, error) {
	a, ok := m.awards[id]
	if !ok {
		return award.Award{}, award.ErrNotFound
	}
	return a, nil
}

func (m *mockAwardStore) GetByMonthAndTitle(_ context.Context, month, title string) (award.Award, error) {
	for _, a := range m.awards {
		if a.Month == month && a.Title == title {
			return a, nil
		}
	}
	return award.Award{}, award.ErrNotFound
}

func (m *mockAwardStore) Save(_ context.Context, value award.Award) error {
	m.awards[value.ID] = value
	return nil
}

func (m *mockAwardStore) Delete(_ context.Context, id string) error {
	delete(m.awards, id)
	return nil
}

type mockSettingsStore struct {
	settings setting.Settings
}

func newMockSettingsStore(mode string) *mockSettingsStore {
	s := setting.Defaults()
	s.Mode = mode
	return &mockSettingsStore{settings: s}
}

func (m *mockSettingsStore) Get(_ context.Context) (setting.Settings, error) {
	return m.settings, nil
}

func (m *mockSettingsStore) Save(_ context.Context, value setting.Settings) error {
	m.settings = value
	return nil
}

type mockBrandingStore struct {
	tenants map[string]branding.Tenant
}

func newMockBrandingStore(tenants ...branding.Tenant) *mockBrandingStore {
	m := &mockBrandingStore{tenants: make(map[string]branding.Tenant)}
	for _, t := range tenants {
		m.tenants[t.Key] = t
	}
	return m
}

func (m *mockBrandingStore) GetByKey(_ context.Context, key string) (branding.Tenant, error) {
	t, ok := m.tenants[key]
	if !ok {
		return branding.Tenant{}, branding.ErrNotFound
	}
	return t, nil
}

func (m *mockBrandingStore) Save(_ context.Context, value branding.Tenant) error {
	m.tenants[value.Key] = value
	return nil
}

// Deterministic helpers shared by the orchestrator tests.

func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
