package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"membo/internal/domain/user"
)

// UserStore is the user store surface user commands need.
type UserStore interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Save(ctx context.Context, value user.User) error
	Delete(ctx context.Context, id string) error
}

// CreateUserInput carries input for admin user creation.
type CreateUserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	BeltLevel string `json:"beltLevel"`
	Status    string `json:"status"`
	Password  string `json:"password"`
}

// CreateUserDeps holds dependencies for CreateUser.
type CreateUserDeps struct {
	UserStore  UserStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateUser creates a member or admin account.
// PRE: Name, Email and Role pass domain validation
// POST: Email is unique across users; belt and status get defaults
func ExecuteCreateUser(ctx context.Context, input CreateUserInput, deps CreateUserDeps) (user.User, error) {
	created := user.User{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     normalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      input.Role,
		BeltLevel: input.BeltLevel,
		Status:    input.Status,
		CreatedAt: deps.Now(),
	}
	if created.Role == "" {
		created.Role = user.RoleMember
	}
	if created.BeltLevel == "" {
		created.BeltLevel = user.DefaultBelt
	}
	if created.Status == "" {
		created.Status = user.StatusActive
	}
	if err := created.Validate(); err != nil {
		return user.User{}, err
	}
	if input.Password != "" {
		if err := created.SetPassword(input.Password); err != nil {
			return user.User{}, err
		}
	}

	if _, err := deps.UserStore.GetByEmail(ctx, created.Email); err == nil {
		return user.User{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, err
	}

	if err := deps.UserStore.Save(ctx, created); err != nil {
		return user.User{}, err
	}
	slog.Info("user_event", "event", "user_created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// UpdateUserInput carries input for admin user edits. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type UpdateUserInput struct {
	ID        string
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	BeltLevel *string `json:"beltLevel"`
	Status    *string `json:"status"`
	Password  *string `json:"password"`
}

// UpdateUserDeps holds dependencies for UpdateUser.
type UpdateUserDeps struct {
	UserStore UserStore
}

// ExecuteUpdateUser edits an existing account.
// POST: Email stays unique; omitted fields keep their values
func ExecuteUpdateUser(ctx context.Context, input UpdateUserInput, deps UpdateUserDeps) (user.User, error) {
	current, err := deps.UserStore.GetByID(ctx, input.ID)
	if err != nil {
		return user.User{}, err
	}

	if input.Name != nil {
		current.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		current.Email = normalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		current.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Role != nil {
		current.Role = *input.Role
	}
	if input.BeltLevel != nil {
		current.BeltLevel = *input.BeltLevel
	}
	if input.Status != nil {
		current.Status = *input.Status
	}
	if err := current.Validate(); err != nil {
		return user.User{}, err
	}
	if input.Password != nil && *input.Password != "" {
		if err := current.SetPassword(*input.Password); err != nil {
			return user.User{}, err
		}
	}

	if input.Email != nil {
		existing, err := deps.UserStore.GetByEmail(ctx, current.Email)
		if err == nil && existing.ID != current.ID {
			return user.User{}, user.ErrEmailExists
		}
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return user.User{}, err
		}
	}

	if err := deps.UserStore.Save(ctx, current); err != nil {
		return user.User{}, err
	}
	slog.Info("user_event", "event", "user_updated", "user_id", current.ID)
	return current, nil
}

// DeleteUserDeps holds dependencies for DeleteUser.
type DeleteUserDeps struct {
	UserStore UserStore
}

// ExecuteDeleteUser removes an account.
// POST: Returns user.ErrNotFound when the account does not exist
func ExecuteDeleteUser(ctx context.Context, id string, deps DeleteUserDeps) error {
	if _, err := deps.UserStore.GetByID(ctx, id); err != nil {
		return err
	}
	if err := deps.UserStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user_event", "event", "user_deleted", "user_id", id)
	return nil
}

// RegisterUserInput carries input for self-service signup.
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ExecuteRegisterUser creates a member account from the public signup
// form. Registered users always get the member role.
// POST: New user is an active white-belt member
func ExecuteRegisterUser(ctx context.Context, input RegisterUserInput, deps CreateUserDeps) (user.User, error) {
	if input.Password == "" {
		return user.User{}, errors.New("password is required")
	}
	return ExecuteCreateUser(ctx, CreateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     user.RoleMember,
		Password: input.Password,
	}, deps)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
