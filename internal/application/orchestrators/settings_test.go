package orchestrators

import (
	"context"
	"errors"
	"testing"

	"membo/internal/domain/class"
	"membo/internal/domain/setting"
)

// stubProvider fakes the external scheduling provider.
type stubProvider struct {
	pingErr error
	classes []class.Class
	fetch   error
}

func (s *stubProvider) Ping(_ context.Context, _ setting.APIConfig) error {
	return s.pingErr
}

func (s *stubProvider) FetchClasses(_ context.Context, _ setting.APIConfig) ([]class.Class, error) {
	if s.fetch != nil {
		return nil, s.fetch
	}
	return s.classes, nil
}

func TestExecuteUpdateSettings(t *testing.T) {
	store := newMockSettingsStore(setting.ModeStandalone)
	deps := UpdateSettingsDeps{SettingsStore: store, Now: fixedNow}
	ctx := context.Background()

	updated, err := ExecuteUpdateSettings(ctx, UpdateSettingsInput{
		Mode:      setting.ModeIntegrated,
		APIConfig: `{"url":"https://api.example.com","apiKey":"k","customerId":"42"}`,
	}, deps)
	if err != nil {
		t.Fatalf("ExecuteUpdateSettings failed: %v", err)
	}
	if !updated.IsIntegrated() {
		t.Error("mode should be integrated")
	}
	if !updated.UpdatedAt.Equal(fixedNow()) {
		t.Errorf("updatedAt = %v, want fixed now", updated.UpdatedAt)
	}
}

func TestExecuteUpdateSettings_Validation(t *testing.T) {
	store := newMockSettingsStore(setting.ModeStandalone)
	deps := UpdateSettingsDeps{SettingsStore: store, Now: fixedNow}
	ctx := context.Background()

	if _, err := ExecuteUpdateSettings(ctx, UpdateSettingsInput{Mode: "hybrid"}, deps); err == nil {
		t.Error("expected error for unknown mode")
	}
	// Integrated mode without full provider credentials.
	if _, err := ExecuteUpdateSettings(ctx, UpdateSettingsInput{
		Mode:      setting.ModeIntegrated,
		APIConfig: `{"url":"https://api.example.com"}`,
	}, deps); err == nil {
		t.Error("expected error for incomplete api config")
	}
	if got, _ := store.Get(ctx); got.Mode != setting.ModeStandalone {
		t.Errorf("mode = %q, failed update must not persist", got.Mode)
	}
}

func TestExecuteTestAPI_NotIntegrated(t *testing.T) {
	deps := TestAPIDeps{SettingsStore: newMockSettingsStore(setting.ModeStandalone), Provider: &stubProvider{}}
	if err := ExecuteTestAPI(context.Background(), deps); !errors.Is(err, ErrNotIntegrated) {
		t.Errorf("err = %v, want ErrNotIntegrated", err)
	}
}

func TestExecuteTestAPI(t *testing.T) {
	store := newMockSettingsStore(setting.ModeIntegrated)
	store.settings.APIConfig = `{"url":"https://api.example.com","apiKey":"k","customerId":"42"}`
	ctx := context.Background()

	if err := ExecuteTestAPI(ctx, TestAPIDeps{SettingsStore: store, Provider: &stubProvider{}}); err != nil {
		t.Errorf("ping ok: err = %v, want nil", err)
	}

	boom := errors.New("credentials rejected")
	if err := ExecuteTestAPI(ctx, TestAPIDeps{SettingsStore: store, Provider: &stubProvider{pingErr: boom}}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want provider error", err)
	}
}
