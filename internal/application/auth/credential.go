package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"membo/internal/domain/user"
)

// CredentialAuthenticator checks the password hash stored on the user row.
type CredentialAuthenticator struct {
	Users UserReader
}

// Authenticate verifies the password against the stored bcrypt hash.
// POST: Returns ErrInvalidCredentials for unknown emails, users without a
// password and wrong passwords alike
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	found, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}
	if found.PasswordHash == "" || !found.CheckPassword(password) {
		slog.Info("login_rejected", "email", email)
		return Identity{}, ErrInvalidCredentials
	}
	return identityOf(found), nil
}
