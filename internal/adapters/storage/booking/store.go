package booking

import (
	"context"

	domain "membo/internal/domain/booking"
)

// StatusUpdate is one entry of a bulk attendance update.
type StatusUpdate struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// Store persists Booking state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	GetDetailByID(ctx context.Context, id string) (domain.Detail, error)
	GetActiveByUserAndClass(ctx context.Context, userID, classID string) (domain.Booking, error)

	// InsertIfCapacity inserts a new booking only while the class still has
	// a free slot, in a single conditional statement. Returns
	// domain.ErrClassFull when capacity is exhausted and
	// domain.ErrAlreadyBooked when the user already holds an active booking.
	InsertIfCapacity(ctx context.Context, value domain.Booking, maxSlots int) error

	UpdateStatus(ctx context.Context, id, status string) error
	UpdateStatusBulk(ctx context.Context, updates []StatusUpdate) error
	Delete(ctx context.Context, id string) error

	CountActiveByClassID(ctx context.Context, classID string) (int, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Detail, error)
	ListByClassID(ctx context.Context, classID string) ([]domain.Booking, error)
	List(ctx context.Context, limit int) ([]domain.Detail, error)

	// AttendedCountsByDateRange returns, per user ID, the number of attended
	// bookings whose class date falls in [startDate, endDate).
	AttendedCountsByDateRange(ctx context.Context, startDate, endDate string) (map[string]int, error)
}
