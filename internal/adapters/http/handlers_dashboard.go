package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"membo/internal/application/projections"
)

// handleSiteStats returns the public landing-page numbers.
func (s *Server) handleSiteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := projections.QueryGetSiteStats(r.Context(), projections.SiteStatsDeps{
		StatsStore: s.Stats,
		AwardStore: s.Awards,
		Now:        timeNow,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleUserDashboard returns one member's landing view.
func (s *Server) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := projections.QueryGetUserDashboard(r.Context(), chi.URLParam(r, "userId"), projections.UserStatsDeps{
		UserStore:    s.Users,
		BookingStore: s.Bookings,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// handleAdminDashboard returns the whole-club admin view.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := projections.QueryGetAdminDashboard(r.Context(), projections.AdminDashboardDeps{
		StatsStore:   s.Stats,
		BookingStore: s.Bookings,
		UserStore:    s.Users,
		Now:          timeNow,
	})
	if err != nil {
		queryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
