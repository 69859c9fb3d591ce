package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	bookingStore "membo/internal/adapters/storage/booking"
	"membo/internal/application/orchestrators"
	"membo/internal/application/projections"
	"membo/internal/domain/booking"
)

// handleListBookings returns all bookings joined with user and class.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	details, err := s.Bookings.List(r.Context(), 0)
	if err != nil {
		internalError(w, err)
		return
	}
	if details == nil {
		details = []booking.Detail{}
	}
	writeJSON(w, http.StatusOK, details)
}

// handleListUserBookings returns one user's bookings, newest first.
func (s *Server) handleListUserBookings(w http.ResponseWriter, r *http.Request) {
	details, err := s.Bookings.ListByUserID(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		internalError(w, err)
		return
	}
	if details == nil {
		details = []booking.Detail{}
	}
	writeJSON(w, http.StatusOK, details)
}

// handleCreateBooking reserves a class slot.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.CreateBookingInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	detail, err := orchestrators.ExecuteCreateBooking(r.Context(), input, orchestrators.CreateBookingDeps{
		UserStore:    s.Users,
		ClassStore:   s.Classes,
		BookingStore: s.Bookings,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// handleCancelBooking cancels a booking, freeing its slot.
func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteCancelBooking(r.Context(), chi.URLParam(r, "id"), orchestrators.CancelBookingDeps{
		BookingStore: s.Bookings,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking canceled"})
}

// handleMarkAttendance sets one booking's status.
func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	detail, err := orchestrators.ExecuteMarkAttendance(r.Context(), orchestrators.MarkAttendanceInput{
		BookingID: chi.URLParam(r, "id"),
		Status:    req.Status,
	}, orchestrators.MarkAttendanceDeps{BookingStore: s.Bookings})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleBulkMarkAttendance applies many status updates atomically.
func (s *Server) handleBulkMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Updates []bookingStore.StatusUpdate `json:"updates"`
	}
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	count, err := orchestrators.ExecuteBulkMarkAttendance(r.Context(), orchestrators.BulkMarkAttendanceInput{
		Updates: req.Updates,
	}, orchestrators.BulkMarkAttendanceDeps{BookingStore: s.Bookings})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": count})
}

// handleUserBookingStats returns attendance stats for one user.
func (s *Server) handleUserBookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := projections.QueryGetUserStats(r.Context(), chi.URLParam(r, "userId"), projections.UserStatsDeps{
		UserStore:    s.Users,
		BookingStore: s.Bookings,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
