package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"membo/internal/adapters/zoezi"
	"membo/internal/domain/setting"
)

// ErrNotIntegrated is returned when a provider probe is requested in
// standalone mode.
var ErrNotIntegrated = errors.New("API test is only available in integrated mode")

// SettingsStore persists the singleton settings row.
type SettingsStore interface {
	Get(ctx context.Context) (setting.Settings, error)
	Save(ctx context.Context, value setting.Settings) error
}

// UpdateSettingsInput carries input for settings edits.
type UpdateSettingsInput struct {
	Mode      string `json:"mode"`
	APIConfig string `json:"apiConfig"`
}

// UpdateSettingsDeps holds dependencies for UpdateSettings.
type UpdateSettingsDeps struct {
	SettingsStore SettingsStore
	Now           func() time.Time
}

// ExecuteUpdateSettings switches the operating mode and provider config.
// PRE: mode is standalone or integrated
// POST: Integrated mode always has url, apiKey and customerId configured
func ExecuteUpdateSettings(ctx context.Context, input UpdateSettingsInput, deps UpdateSettingsDeps) (setting.Settings, error) {
	current, err := deps.SettingsStore.Get(ctx)
	if err != nil {
		return setting.Settings{}, err
	}

	if input.Mode != "" {
		current.Mode = input.Mode
	}
	if input.APIConfig != "" {
		current.APIConfig = input.APIConfig
	}
	current.UpdatedAt = deps.Now()

	if err := current.Validate(); err != nil {
		return setting.Settings{}, err
	}
	if err := deps.SettingsStore.Save(ctx, current); err != nil {
		return setting.Settings{}, err
	}
	slog.Info("settings_event", "event", "settings_updated", "mode", current.Mode)
	return current, nil
}

// TestAPIDeps holds dependencies for TestAPI.
type TestAPIDeps struct {
	SettingsStore SettingsReader
	Provider      zoezi.Provider
}

// ExecuteTestAPI probes the configured scheduling provider.
// PRE: mode is integrated
// POST: nil means the stored credentials were accepted by the provider
func ExecuteTestAPI(ctx context.Context, deps TestAPIDeps) error {
	current, err := deps.SettingsStore.Get(ctx)
	if err != nil {
		return err
	}
	if !current.IsIntegrated() {
		return ErrNotIntegrated
	}
	cfg, err := current.ParseAPIConfig()
	if err != nil {
		return err
	}
	if err := deps.Provider.Ping(ctx, cfg); err != nil {
		slog.Warn("settings_event", "event", "api_test_failed", "error", err)
		return err
	}
	slog.Info("settings_event", "event", "api_test_ok")
	return nil
}
