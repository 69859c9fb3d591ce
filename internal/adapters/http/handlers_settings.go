package web

import (
	"errors"
	"net/http"

	"membo/internal/application/orchestrators"
	"membo/internal/application/projections"
)

// handleGetSettings returns the singleton settings row.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings switches mode and provider config.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.UpdateSettingsInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	updated, err := orchestrators.ExecuteUpdateSettings(r.Context(), input, orchestrators.UpdateSettingsDeps{
		SettingsStore: s.Settings,
		Now:           timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleTestAPI probes the configured scheduling provider.
func (s *Server) handleTestAPI(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteTestAPI(r.Context(), orchestrators.TestAPIDeps{
		SettingsStore: s.Settings,
		Provider:      s.Provider,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotIntegrated) {
			errorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		// The provider rejected us or was unreachable; report it in-band
		// so the admin panel can show the reason.
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "API connection OK"})
}

// handleSystemStatus reports mode, database health and timing summaries.
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status, err := projections.QueryGetSystemStatus(r.Context(), projections.SystemStatusDeps{
		SettingsStore: s.Settings,
		StatsStore:    s.Stats,
		Collector:     s.Collector,
		Now:           timeNow,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
