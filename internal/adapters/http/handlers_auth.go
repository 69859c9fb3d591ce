package web

import (
	"net/http"

	"membo/internal/adapters/http/middleware"
	"membo/internal/application/auth"
	"membo/internal/application/orchestrators"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin authenticates credentials and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := strictDecode(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Email == "" || req.Password == "" {
		errorJSON(w, http.StatusBadRequest, "email and password are required")
		return
	}

	identity, err := s.Authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		commandError(w, err)
		return
	}
	token, err := s.Tokens.Issue(identity)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  identity,
		"token": token,
	})
}

// handleLogout acknowledges logout. Tokens are stateless; the client
// drops its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// handleMe returns the identity behind the bearer token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": identity})
}

// handleRegister creates a member account from the public signup form and
// logs it straight in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.RegisterUserInput
	if err := strictDecode(r, &input); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := orchestrators.ExecuteRegisterUser(r.Context(), input, orchestrators.CreateUserDeps{
		UserStore:  s.Users,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		commandError(w, err)
		return
	}

	identity := auth.Identity{UserID: created.ID, Email: created.Email, Name: created.Name, Role: created.Role}
	token, err := s.Tokens.Issue(identity)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  created,
		"token": token,
	})
}
