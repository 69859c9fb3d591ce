package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membo/internal/application/orchestrators"
	"membo/internal/application/projections"
)

// handleListClasses returns the schedule, mode-aware.
func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := projections.QueryListClasses(r.Context(), projections.ListClassesDeps{
		ClassStore:    s.Classes,
		BookingStore:  s.Bookings,
		SettingsStore: s.Settings,
		Provider:      s.Provider,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (s *Server) classDeps() orchestrators.CreateClassDeps {
	return orchestrators.CreateClassDeps{
		ClassStore:    s.Classes,
		SettingsStore: s.Settings,
		GenerateID:    generateID,
		Now:           timeNow,
	}
}

// handleCreateClass adds a class to the local schedule.
func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.CreateClassInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	created, err := orchestrators.ExecuteCreateClass(r.Context(), input, s.classDeps())
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateClass edits a local class.
func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateClassInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	input.ID = chi.URLParam(r, "id")

	updated, err := orchestrators.ExecuteUpdateClass(r.Context(), input, s.classDeps())
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteClass removes a local class.
func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteDeleteClass(r.Context(), chi.URLParam(r, "id"), s.classDeps()); err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "class deleted"})
}
