// Package web exposes the REST API: routing, handlers and JSON plumbing.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"membo/internal/adapters/email"
	"membo/internal/adapters/http/middleware"
	"membo/internal/adapters/http/perf"
	awardStore "membo/internal/adapters/storage/award"
	bookingStore "membo/internal/adapters/storage/booking"
	brandingStore "membo/internal/adapters/storage/branding"
	classStore "membo/internal/adapters/storage/class"
	settingStore "membo/internal/adapters/storage/setting"
	statsStore "membo/internal/adapters/storage/stats"
	userStore "membo/internal/adapters/storage/user"
	"membo/internal/adapters/zoezi"
	"membo/internal/application/auth"
	awardDomain "membo/internal/domain/award"
	bookingDomain "membo/internal/domain/booking"
	brandingDomain "membo/internal/domain/branding"
	classDomain "membo/internal/domain/class"
	userDomain "membo/internal/domain/user"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// Server wires stores and services into HTTP handlers.
type Server struct {
	Users     userStore.Store
	Classes   classStore.Store
	Bookings  bookingStore.Store
	Awards    awardStore.Store
	Settings  settingStore.Store
	Brandings brandingStore.Store
	Stats     statsStore.Store

	Authenticator auth.Authenticator
	Tokens        *auth.TokenService
	Provider      zoezi.Provider
	EmailSender   email.Sender
	Collector     *perf.Collector
	ClubName      string

	// RateLimitPerSecond caps requests per client IP. Zero means the
	// default of 10.
	RateLimitPerSecond int

	limiter *middleware.RateLimiter
}

// Close stops background work started by Routes.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

// errorJSON writes an error payload in the shape clients expect.
func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// internalError logs the real error and returns a generic message to the
// client so internals never leak.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	errorJSON(w, http.StatusInternalServerError, "internal server error")
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusForError maps domain sentinels to HTTP status codes. Returns 0
// for errors without a dedicated mapping.
func statusForError(err error) int {
	switch {
	case errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, classDomain.ErrNotFound),
		errors.Is(err, bookingDomain.ErrNotFound),
		errors.Is(err, awardDomain.ErrNotFound),
		errors.Is(err, brandingDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, userDomain.ErrEmailExists),
		errors.Is(err, bookingDomain.ErrAlreadyBooked),
		errors.Is(err, bookingDomain.ErrClassFull),
		errors.Is(err, awardDomain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return 0
	}
}

// commandError renders an orchestrator failure. Unmapped errors are
// treated as rejected input, matching how commands validate before they
// touch storage.
func commandError(w http.ResponseWriter, err error) {
	if status := statusForError(err); status != 0 {
		errorJSON(w, status, err.Error())
		return
	}
	errorJSON(w, http.StatusBadRequest, err.Error())
}

// queryError renders a projection failure. Unmapped errors are server
// trouble, not client mistakes.
func queryError(w http.ResponseWriter, err error) {
	if status := statusForError(err); status != 0 {
		errorJSON(w, status, err.Error())
		return
	}
	internalError(w, err)
}
