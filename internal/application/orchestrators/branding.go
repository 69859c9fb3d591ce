package orchestrators

import (
	"context"
	"log/slog"

	"membo/internal/domain/branding"
)

// BrandingStore persists branding tenants.
type BrandingStore interface {
	GetByKey(ctx context.Context, key string) (branding.Tenant, error)
	Save(ctx context.Context, value branding.Tenant) error
}

// UpdateBrandingInput carries input for tenant profile edits.
type UpdateBrandingInput struct {
	Key           string
	Name          *string `json:"name"`
	Tagline       *string `json:"tagline"`
	AboutMarkdown *string `json:"aboutMarkdown"`
	PrimaryColor  *string `json:"primaryColor"`
}

// UpdateBrandingDeps holds dependencies for UpdateBranding.
type UpdateBrandingDeps struct {
	BrandingStore BrandingStore
}

// ExecuteUpdateBranding edits a tenant's landing-page profile.
// POST: Omitted fields keep their values; unknown keys are NOT_FOUND
func ExecuteUpdateBranding(ctx context.Context, input UpdateBrandingInput, deps UpdateBrandingDeps) (branding.Tenant, error) {
	current, err := deps.BrandingStore.GetByKey(ctx, input.Key)
	if err != nil {
		return branding.Tenant{}, err
	}

	if input.Name != nil {
		current.Name = *input.Name
	}
	if input.Tagline != nil {
		current.Tagline = *input.Tagline
	}
	if input.AboutMarkdown != nil {
		current.AboutMarkdown = *input.AboutMarkdown
	}
	if input.PrimaryColor != nil {
		current.PrimaryColor = *input.PrimaryColor
	}
	if err := current.Validate(); err != nil {
		return branding.Tenant{}, err
	}

	if err := deps.BrandingStore.Save(ctx, current); err != nil {
		return branding.Tenant{}, err
	}
	slog.Info("branding_event", "event", "tenant_updated", "tenant", current.Key)
	return current, nil
}
