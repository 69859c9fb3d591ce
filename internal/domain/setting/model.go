package setting

import (
	"encoding/json"
	"errors"
	"time"
)

// Operating modes for class sourcing.
const (
	ModeStandalone = "standalone"
	ModeIntegrated = "integrated"
)

// SingletonID is the fixed primary key of the settings row.
const SingletonID = "1"

// APIConfig holds the external scheduling provider credentials used in
// integrated mode.
type APIConfig struct {
	URL        string `json:"url"`
	APIKey     string `json:"apiKey"`
	CustomerID string `json:"customerId"`
}

// Settings is the single global configuration row.
type Settings struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	APIConfig string    `json:"apiConfig"` // serialized APIConfig
	UpdatedAt time.Time `json:"updatedAt"`
}

// Defaults returns the settings row created on first access.
func Defaults() Settings {
	raw, _ := json.Marshal(APIConfig{
		URL: "https://api.zoezi.se/rest/v1/attendance/get",
	})
	return Settings{
		ID:        SingletonID,
		Mode:      ModeStandalone,
		APIConfig: string(raw),
	}
}

// Validate checks the mode and, in integrated mode, the provider config.
// PRE: Settings struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: integrated mode requires url, apiKey and customerId
func (s *Settings) Validate() error {
	if s.Mode != ModeStandalone && s.Mode != ModeIntegrated {
		return errors.New("mode must be 'standalone' or 'integrated'")
	}
	if s.Mode == ModeIntegrated {
		cfg, err := s.ParseAPIConfig()
		if err != nil {
			return errors.New("invalid API configuration JSON")
		}
		if cfg.URL == "" || cfg.APIKey == "" || cfg.CustomerID == "" {
			return errors.New("API configuration must include url, apiKey, and customerId")
		}
	}
	return nil
}

// ParseAPIConfig decodes the serialized provider configuration.
// POST: Returns the decoded config or an error for malformed JSON
func (s *Settings) ParseAPIConfig() (APIConfig, error) {
	var cfg APIConfig
	if s.APIConfig == "" {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(s.APIConfig), &cfg); err != nil {
		return APIConfig{}, err
	}
	return cfg, nil
}

// IsIntegrated reports whether classes are sourced from the external API.
func (s *Settings) IsIntegrated() bool {
	return s.Mode == ModeIntegrated
}
