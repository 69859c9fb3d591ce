package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"testing"

	bookingstore "membo/internal/adapters/storage/booking"
	"membo/internal/domain/booking"
	"membo/internal/domain/class"
	"membo/internal/domain/user"
)

func bookingDeps(users *mockUserStore, classes *mockClassStore, bookings *mockBookingStore) CreateBookingDeps {
	return CreateBookingDeps{
		UserStore:    users,
		ClassStore:   classes,
		BookingStore: bookings,
		GenerateID:   sequentialIDs("b"),
		Now:          fixedNow,
	}
}

func TestExecuteCreateBooking(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1", Name: "Alex", Email: "alex@test.com", Role: user.RoleMember})
	classes := newMockClassStore(class.Class{ID: "c1", Name: "BJJ", Date: "2026-08-20", Time: "18:00", MaxSlots: 2})
	bookings := newMockBookingStore(classes, users)

	detail, err := ExecuteCreateBooking(context.Background(), CreateBookingInput{UserID: "u1", ClassID: "c1"}, bookingDeps(users, classes, bookings))
	if err != nil {
		t.Fatalf("ExecuteCreateBooking failed: %v", err)
	}
	if detail.Status != booking.StatusBooked {
		t.Errorf("status = %q, want booked", detail.Status)
	}
	if detail.Class == nil || detail.Class.ID != "c1" {
		t.Error("expected joined class in result")
	}
	if detail.User == nil || detail.User.ID != "u1" {
		t.Error("expected joined user in result")
	}
}

func TestExecuteCreateBooking_UnknownUserAndClass(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 5})
	bookings := newMockBookingStore(classes, users)
	deps := bookingDeps(users, classes, bookings)
	ctx := context.Background()

	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "ghost", ClassID: "c1"}, deps); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want user.ErrNotFound", err)
	}
	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "ghost"}, deps); !errors.Is(err, class.ErrNotFound) {
		t.Errorf("unknown class: err = %v, want class.ErrNotFound", err)
	}
}

func TestExecuteCreateBooking_Duplicate(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 5})
	bookings := newMockBookingStore(classes, users)
	deps := bookingDeps(users, classes, bookings)
	ctx := context.Background()

	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, deps); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, deps); !errors.Is(err, booking.ErrAlreadyBooked) {
		t.Errorf("err = %v, want ErrAlreadyBooked", err)
	}
}

func TestExecuteCreateBooking_CapacityBoundary(t *testing.T) {
	var members []user.User
	for i := 1; i <= 3; i++ {
		members = append(members, user.User{ID: fmt.Sprintf("u%d", i)})
	}
	users := newMockUserStore(members...)
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 2})
	bookings := newMockBookingStore(classes, users)
	deps := bookingDeps(users, classes, bookings)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: fmt.Sprintf("u%d", i), ClassID: "c1"}, deps); err != nil {
			t.Fatalf("booking %d failed: %v", i, err)
		}
	}
	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u3", ClassID: "c1"}, deps); !errors.Is(err, booking.ErrClassFull) {
		t.Errorf("err = %v, want ErrClassFull", err)
	}

	count, _ := bookings.CountActiveByClassID(ctx, "c1")
	if count != 2 {
		t.Errorf("active count = %d, want 2", count)
	}
}

func TestExecuteCreateBooking_CanceledSlotFreed(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"}, user.User{ID: "u2"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 1})
	bookings := newMockBookingStore(classes, users)
	deps := bookingDeps(users, classes, bookings)
	ctx := context.Background()

	first, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, deps)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if err := ExecuteCancelBooking(ctx, first.ID, CancelBookingDeps{BookingStore: bookings}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u2", ClassID: "c1"}, deps); err != nil {
		t.Errorf("booking after cancel failed: %v", err)
	}
}

func TestExecuteCancelBooking_Idempotent(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 5})
	bookings := newMockBookingStore(classes, users)
	ctx := context.Background()

	first, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, bookingDeps(users, classes, bookings))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	deps := CancelBookingDeps{BookingStore: bookings}
	if err := ExecuteCancelBooking(ctx, first.ID, deps); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if err := ExecuteCancelBooking(ctx, first.ID, deps); err != nil {
		t.Errorf("second cancel should be a no-op, got %v", err)
	}
	if err := ExecuteCancelBooking(ctx, "ghost", deps); !errors.Is(err, booking.ErrNotFound) {
		t.Errorf("unknown booking: err = %v, want ErrNotFound", err)
	}
}

func TestExecuteMarkAttendance(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 5})
	bookings := newMockBookingStore(classes, users)
	ctx := context.Background()

	first, err := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, bookingDeps(users, classes, bookings))
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	deps := MarkAttendanceDeps{BookingStore: bookings}
	detail, err := ExecuteMarkAttendance(ctx, MarkAttendanceInput{BookingID: first.ID, Status: booking.StatusAttended}, deps)
	if err != nil {
		t.Fatalf("ExecuteMarkAttendance failed: %v", err)
	}
	if detail.Status != booking.StatusAttended {
		t.Errorf("status = %q, want attended", detail.Status)
	}

	if _, err := ExecuteMarkAttendance(ctx, MarkAttendanceInput{BookingID: first.ID, Status: "no-show"}, deps); !errors.Is(err, booking.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestExecuteBulkMarkAttendance(t *testing.T) {
	users := newMockUserStore(user.User{ID: "u1"}, user.User{ID: "u2"})
	classes := newMockClassStore(class.Class{ID: "c1", MaxSlots: 5})
	bookings := newMockBookingStore(classes, users)
	createDeps := bookingDeps(users, classes, bookings)
	ctx := context.Background()

	b1, _ := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u1", ClassID: "c1"}, createDeps)
	b2, _ := ExecuteCreateBooking(ctx, CreateBookingInput{UserID: "u2", ClassID: "c1"}, createDeps)

	deps := BulkMarkAttendanceDeps{BookingStore: bookings}
	count, err := ExecuteBulkMarkAttendance(ctx, BulkMarkAttendanceInput{Updates: []bookingstore.StatusUpdate{
		{BookingID: b1.ID, Status: booking.StatusAttended},
		{BookingID: b2.ID, Status: booking.StatusCanceled},
	}}, deps)
	if err != nil {
		t.Fatalf("ExecuteBulkMarkAttendance failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	got, _ := bookings.GetByID(ctx, b1.ID)
	if got.Status != booking.StatusAttended {
		t.Errorf("b1 status = %q, want attended", got.Status)
	}

	if _, err := ExecuteBulkMarkAttendance(ctx, BulkMarkAttendanceInput{}, deps); err == nil {
		t.Error("expected error for empty update list")
	}
	if _, err := ExecuteBulkMarkAttendance(ctx, BulkMarkAttendanceInput{Updates: []bookingstore.StatusUpdate{
		{BookingID: b1.ID, Status: "bogus"},
	}}, deps); !errors.Is(err, booking.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}
