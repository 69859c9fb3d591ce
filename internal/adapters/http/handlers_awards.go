package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"membo/internal/application/orchestrators"
	"membo/internal/application/projections"
	"membo/internal/domain/award"
)

// handleListAwards returns every award with its recipient, newest first.
func (s *Server) handleListAwards(w http.ResponseWriter, r *http.Request) {
	details, err := s.Awards.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if details == nil {
		details = []award.Detail{}
	}
	writeJSON(w, http.StatusOK, details)
}

// handleCurrentAward returns this month's award, or a null payload when
// none has been selected yet.
func (s *Server) handleCurrentAward(w http.ResponseWriter, r *http.Request) {
	month := award.CurrentMonth(timeNow())
	detail, err := s.Awards.GetLatestByMonth(r.Context(), month)
	if err != nil {
		if errors.Is(err, award.ErrNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"award": nil, "month": month})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"award": detail, "month": month})
}

// handleCreateAward hands out an award manually.
func (s *Server) handleCreateAward(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.CreateAwardInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	detail, err := orchestrators.ExecuteCreateAward(r.Context(), input, orchestrators.CreateAwardDeps{
		AwardStore: s.Awards,
		UserStore:  s.Users,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// handleDeleteAward revokes an award.
func (s *Server) handleDeleteAward(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteAward(r.Context(), chi.URLParam(r, "id"), orchestrators.DeleteAwardDeps{
		AwardStore: s.Awards,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "award deleted"})
}

// handleTopPerformers ranks members by attended classes for a month.
func (s *Server) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if _, _, err := award.MonthWindow(month); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	performers, err := projections.QueryGetTopPerformers(r.Context(), month, 10, projections.TopPerformersDeps{
		UserStore:    s.Users,
		BookingStore: s.Bookings,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, performers)
}

// handleAutoSelectAward picks the Member of the Month for a month.
func (s *Server) handleAutoSelectAward(w http.ResponseWriter, r *http.Request) {
	detail, err := orchestrators.ExecuteAutoSelectAward(r.Context(), chi.URLParam(r, "month"), orchestrators.AutoSelectAwardDeps{
		AwardStore:   s.Awards,
		UserStore:    s.Users,
		BookingStore: s.Bookings,
		EmailSender:  s.EmailSender,
		ClubName:     s.ClubName,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}
