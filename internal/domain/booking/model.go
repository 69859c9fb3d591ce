package booking

import (
	"errors"
	"time"

	"membo/internal/domain/class"
	"membo/internal/domain/user"
)

// Lifecycle states. Attended and canceled are terminal.
const (
	StatusBooked   = "booked"
	StatusAttended = "attended"
	StatusCanceled = "canceled"
)

// Domain errors
var (
	ErrNotFound      = errors.New("booking not found")
	ErrAlreadyBooked = errors.New("already booked for this class")
	ErrClassFull     = errors.New("class is full")
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Booking links one user to one class session.
type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ClassID   string    `json:"classId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Detail is a booking joined with its class and user, the shape most
// endpoints return.
type Detail struct {
	Booking
	Class *class.Class `json:"class,omitempty"`
	User  *user.User   `json:"user,omitempty"`
}

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s string) bool {
	return s == StatusBooked || s == StatusAttended || s == StatusCanceled
}

// Validate checks if the Booking has valid data.
// PRE: Booking struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return errors.New("booking must be associated with a user")
	}
	if b.ClassID == "" {
		return errors.New("booking must be associated with a class")
	}
	if !ValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsActive reports whether the booking counts against class capacity.
// INVARIANT: Status field is not mutated
func (b *Booking) IsActive() bool {
	return b.Status != StatusCanceled
}

// Cancel sets the booking status to canceled.
// POST: Status is canceled; calling on an already-canceled booking is a no-op
func (b *Booking) Cancel() {
	b.Status = StatusCanceled
}
