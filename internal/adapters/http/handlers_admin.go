package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membo/internal/application/orchestrators"
	"membo/internal/application/projections"
)

// handleListUsers lists every account with attendance stats.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryListUsers(r.Context(), projections.ListUsersDeps{
		UserStore:    s.Users,
		BookingStore: s.Bookings,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleGetUser returns one account.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	found, err := s.Users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// handleCreateUser creates an account from the admin panel.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.CreateUserInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := orchestrators.ExecuteCreateUser(r.Context(), input, orchestrators.CreateUserDeps{
		UserStore:  s.Users,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateUser edits an account.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateUserInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.ID = chi.URLParam(r, "id")

	updated, err := orchestrators.ExecuteUpdateUser(r.Context(), input, orchestrators.UpdateUserDeps{
		UserStore: s.Users,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteUser removes an account.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteUser(r.Context(), chi.URLParam(r, "id"), orchestrators.DeleteUserDeps{
		UserStore: s.Users,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
