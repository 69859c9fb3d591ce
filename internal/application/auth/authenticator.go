// Package auth verifies login credentials and issues bearer tokens.
package auth

import (
	"context"
	"errors"

	"membo/internal/domain/user"
)

// ErrInvalidCredentials is returned for any failed login. The cause is
// never distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Identity is the authenticated principal carried in the token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == user.RoleAdmin
}

// UserReader is the store surface authenticators need.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// UserWriter saves auto-provisioned demo users.
type UserWriter interface {
	Save(ctx context.Context, value user.User) error
}

// Authenticator turns an email and password into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (Identity, error)
}

func identityOf(u user.User) Identity {
	return Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
