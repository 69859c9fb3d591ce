package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"membo/internal/domain/branding"
	"membo/internal/domain/user"
)

// SeedDeps holds dependencies for the startup seeder.
type SeedDeps struct {
	UserStore     UserStore
	SettingsStore SettingsReader
	BrandingStore BrandingStore
	AdminEmail    string
	AdminPassword string
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteSeed provisions the rows the app expects on first boot: the
// settings singleton, the default branding tenants and, when configured,
// an admin account. Safe to run on every startup.
// POST: Existing rows are never overwritten
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	// Get creates the settings row from defaults when missing.
	if _, err := deps.SettingsStore.Get(ctx); err != nil {
		return err
	}

	for _, tenant := range branding.DefaultTenants() {
		if _, err := deps.BrandingStore.GetByKey(ctx, tenant.Key); err == nil {
			continue
		} else if !errors.Is(err, branding.ErrNotFound) {
			return err
		}
		if err := deps.BrandingStore.Save(ctx, tenant); err != nil {
			return err
		}
		slog.Info("seed_event", "event", "branding_seeded", "tenant", tenant.Key)
	}

	if deps.AdminEmail == "" || deps.AdminPassword == "" {
		return nil
	}
	email := normalizeEmail(deps.AdminEmail)
	if _, err := deps.UserStore.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	admin := user.User{
		ID:        deps.GenerateID(),
		Name:      "Administrator",
		Email:     email,
		Role:      user.RoleAdmin,
		BeltLevel: user.DefaultBelt,
		Status:    user.StatusActive,
		CreatedAt: deps.Now(),
	}
	if err := admin.SetPassword(deps.AdminPassword); err != nil {
		return err
	}
	if err := deps.UserStore.Save(ctx, admin); err != nil {
		return err
	}
	slog.Info("seed_event", "event", "admin_seeded", "email", email)
	return nil
}
