package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"membo/internal/adapters/http/middleware"
)

// Routes builds the full API router with the middleware chain applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	rate := s.RateLimitPerSecond
	if rate <= 0 {
		rate = 10
	}
	s.limiter = middleware.NewRateLimiter(rate, time.Second)
	r.Use(middleware.RateLimit(s.limiter))
	r.Use(middleware.Timing(s.Collector))
	r.Use(middleware.Auth(s.Tokens))

	r.Get("/api/health", s.handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.Post("/register", s.handleRegister)
		r.With(middleware.RequireAuth).Get("/me", s.handleMe)
	})

	r.Route("/api/classes", func(r chi.Router) {
		r.Get("/", s.handleListClasses)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", s.handleCreateClass)
			r.Put("/{id}", s.handleUpdateClass)
			r.Delete("/{id}", s.handleDeleteClass)
		})
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Get("/", s.handleListBookings)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/user/{userId}", s.handleListUserBookings)
			r.Post("/", s.handleCreateBooking)
			r.Delete("/{id}", s.handleCancelBooking)
			r.Get("/stats/{userId}", s.handleUserBookingStats)
		})
		r.With(middleware.RequireAdmin).Patch("/{id}/status", s.handleMarkAttendance)
	})

	r.Route("/api/awards", func(r chi.Router) {
		r.Get("/", s.handleListAwards)
		r.Get("/current", s.handleCurrentAward)
		r.Get("/top-performers/{month}", s.handleTopPerformers)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", s.handleCreateAward)
			r.Delete("/{id}", s.handleDeleteAward)
			r.Post("/auto-select/{month}", s.handleAutoSelectAward)
		})
	})

	r.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/stats", s.handleSiteStats)
		r.With(middleware.RequireAuth).Get("/user/{userId}", s.handleUserDashboard)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/dashboard", s.handleAdminDashboard)
		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)
		r.Put("/users/{id}", s.handleUpdateUser)
		r.Delete("/users/{id}", s.handleDeleteUser)
		r.Patch("/bookings/{id}/status", s.handleMarkAttendance)
		r.Post("/bookings/bulk-status", s.handleBulkMarkAttendance)
	})

	r.Route("/api/settings", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", s.handleGetSettings)
		r.Put("/", s.handleUpdateSettings)
		r.Post("/test-api", s.handleTestAPI)
		r.Get("/status", s.handleSystemStatus)
	})

	r.Route("/api/branding", func(r chi.Router) {
		r.Get("/", s.handleListBranding)
		r.Get("/{tenant}", s.handleGetBranding)
		r.With(middleware.RequireAdmin).Put("/{tenant}", s.handleUpdateBranding)
	})

	return r
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
