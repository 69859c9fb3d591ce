package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	bookingstore "membo/internal/adapters/storage/booking"
	"membo/internal/domain/booking"
	"membo/internal/domain/class"
	"membo/internal/domain/user"
)

// BookingUserStore is the user store surface booking commands need.
type BookingUserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// BookingClassStore is the class store surface booking commands need.
type BookingClassStore interface {
	GetByID(ctx context.Context, id string) (class.Class, error)
}

// BookingStore is the booking store surface booking commands need.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	GetDetailByID(ctx context.Context, id string) (booking.Detail, error)
	GetActiveByUserAndClass(ctx context.Context, userID, classID string) (booking.Booking, error)
	InsertIfCapacity(ctx context.Context, value booking.Booking, maxSlots int) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateStatusBulk(ctx context.Context, updates []bookingstore.StatusUpdate) error
	CountActiveByClassID(ctx context.Context, classID string) (int, error)
}

// CreateBookingInput carries input for booking creation.
type CreateBookingInput struct {
	UserID  string `json:"userId"`
	ClassID string `json:"classId"`
}

// CreateBookingDeps holds dependencies for CreateBooking.
type CreateBookingDeps struct {
	UserStore    BookingUserStore
	ClassStore   BookingClassStore
	BookingStore BookingStore
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteCreateBooking reserves a slot on a class for a user.
// PRE: UserID and ClassID are non-empty
// POST: Active bookings on the class never exceed its max slots
// INVARIANT: A user holds at most one active booking per class
func ExecuteCreateBooking(ctx context.Context, input CreateBookingInput, deps CreateBookingDeps) (booking.Detail, error) {
	if input.UserID == "" || input.ClassID == "" {
		return booking.Detail{}, errors.New("userId and classId are required")
	}

	if _, err := deps.UserStore.GetByID(ctx, input.UserID); err != nil {
		return booking.Detail{}, err
	}
	target, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if err != nil {
		return booking.Detail{}, err
	}

	// Ordered pre-checks give callers distinct errors; the conditional
	// insert below stays authoritative under concurrency.
	if _, err := deps.BookingStore.GetActiveByUserAndClass(ctx, input.UserID, input.ClassID); err == nil {
		return booking.Detail{}, booking.ErrAlreadyBooked
	} else if !errors.Is(err, booking.ErrNotFound) {
		return booking.Detail{}, err
	}
	count, err := deps.BookingStore.CountActiveByClassID(ctx, input.ClassID)
	if err != nil {
		return booking.Detail{}, err
	}
	if count >= target.MaxSlots {
		return booking.Detail{}, booking.ErrClassFull
	}

	created := booking.Booking{
		ID:        deps.GenerateID(),
		UserID:    input.UserID,
		ClassID:   input.ClassID,
		Status:    booking.StatusBooked,
		CreatedAt: deps.Now(),
	}
	if err := created.Validate(); err != nil {
		return booking.Detail{}, err
	}
	if err := deps.BookingStore.InsertIfCapacity(ctx, created, target.MaxSlots); err != nil {
		return booking.Detail{}, err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", created.ID, "user_id", input.UserID, "class_id", input.ClassID)

	return deps.BookingStore.GetDetailByID(ctx, created.ID)
}

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	BookingStore BookingStore
}

// ExecuteCancelBooking marks a booking canceled, freeing its slot.
// PRE: id is non-empty
// POST: Booking status is canceled; canceling twice is not an error
func ExecuteCancelBooking(ctx context.Context, id string, deps CancelBookingDeps) error {
	if id == "" {
		return errors.New("booking id is required")
	}

	current, err := deps.BookingStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == booking.StatusCanceled {
		return nil
	}

	if err := deps.BookingStore.UpdateStatus(ctx, id, booking.StatusCanceled); err != nil {
		return err
	}
	slog.Info("booking_event", "event", "booking_canceled", "booking_id", id, "user_id", current.UserID, "class_id", current.ClassID)
	return nil
}

// MarkAttendanceInput carries input for a single attendance update.
type MarkAttendanceInput struct {
	BookingID string
	Status    string
}

// MarkAttendanceDeps holds dependencies for MarkAttendance.
type MarkAttendanceDeps struct {
	BookingStore BookingStore
}

// ExecuteMarkAttendance sets a booking's lifecycle status.
// PRE: Status is one of booked, attended, canceled
// POST: Returns the updated booking joined with its user and class
func ExecuteMarkAttendance(ctx context.Context, input MarkAttendanceInput, deps MarkAttendanceDeps) (booking.Detail, error) {
	if input.BookingID == "" {
		return booking.Detail{}, errors.New("booking id is required")
	}
	if !booking.ValidStatus(input.Status) {
		return booking.Detail{}, booking.ErrInvalidStatus
	}

	if err := deps.BookingStore.UpdateStatus(ctx, input.BookingID, input.Status); err != nil {
		return booking.Detail{}, err
	}
	slog.Info("booking_event", "event", "attendance_marked", "booking_id", input.BookingID, "status", input.Status)
	return deps.BookingStore.GetDetailByID(ctx, input.BookingID)
}

// BulkMarkAttendanceInput carries the updates applied after a class.
type BulkMarkAttendanceInput struct {
	Updates []bookingstore.StatusUpdate
}

// BulkMarkAttendanceDeps holds dependencies for BulkMarkAttendance.
type BulkMarkAttendanceDeps struct {
	BookingStore BookingStore
}

// ExecuteBulkMarkAttendance applies many status updates atomically.
// PRE: every update has a booking ID and a valid status
// POST: Either every update is applied or none are
func ExecuteBulkMarkAttendance(ctx context.Context, input BulkMarkAttendanceInput, deps BulkMarkAttendanceDeps) (int, error) {
	if len(input.Updates) == 0 {
		return 0, errors.New("at least one attendance update is required")
	}
	for _, u := range input.Updates {
		if u.BookingID == "" {
			return 0, errors.New("every update needs a booking id")
		}
		if !booking.ValidStatus(u.Status) {
			return 0, booking.ErrInvalidStatus
		}
	}

	if err := deps.BookingStore.UpdateStatusBulk(ctx, input.Updates); err != nil {
		return 0, err
	}
	slog.Info("booking_event", "event", "bulk_attendance_marked", "count", len(input.Updates))
	return len(input.Updates), nil
}
