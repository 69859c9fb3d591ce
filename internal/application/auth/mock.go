package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"membo/internal/domain/user"
)

// Fixed demo logins accepted by MockAuthenticator.
const (
	MockAdminEmail     = "admin@rolvibe.com"
	MockAdminPassword  = "admin123"
	MockMemberEmail    = "member@rolvibe.com"
	MockMemberPassword = "member123"
)

// MockAuthenticator accepts two fixed demo logins and provisions the
// backing user rows on first use. For demos only, never production.
type MockAuthenticator struct {
	Users interface {
		UserReader
		UserWriter
	}
	GenerateID func() string
	Now        func() time.Time
}

// Authenticate matches the demo credentials and returns (auto-creating if
// needed) the backing user.
// POST: A matching demo login always yields a persisted user row
func (a *MockAuthenticator) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var role, name string
	switch {
	case email == MockAdminEmail && password == MockAdminPassword:
		role, name = user.RoleAdmin, "Demo Admin"
	case email == MockMemberEmail && password == MockMemberPassword:
		role, name = user.RoleMember, "Demo Member"
	default:
		return Identity{}, ErrInvalidCredentials
	}

	found, err := a.Users.GetByEmail(ctx, email)
	if err == nil {
		return identityOf(found), nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return Identity{}, err
	}

	created := user.User{
		ID:        a.GenerateID(),
		Name:      name,
		Email:     email,
		Role:      role,
		BeltLevel: user.DefaultBelt,
		Status:    user.StatusActive,
		CreatedAt: a.Now(),
	}
	if err := a.Users.Save(ctx, created); err != nil {
		return Identity{}, err
	}
	slog.Info("mock_user_provisioned", "email", email, "role", role)
	return identityOf(created), nil
}
