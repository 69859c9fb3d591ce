// Package zoezi fetches the class schedule from the Zoezi gym platform
// when the app runs in integrated mode.
package zoezi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"membo/internal/domain/class"
	"membo/internal/domain/setting"
)

// ScheduleWindowDays is how far ahead the integrated schedule reaches.
const ScheduleWindowDays = 30

const maxResponseBytes = 4 << 20

// Provider fetches the upcoming class schedule from an external system.
type Provider interface {
	FetchClasses(ctx context.Context, cfg setting.APIConfig) ([]class.Class, error)
	// Ping verifies the configured credentials against the provider.
	Ping(ctx context.Context, cfg setting.APIConfig) error
}

// Client is the HTTP Provider implementation.
type Client struct {
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a provider client with a request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// workout is the subset of the provider's schedule payload we consume.
type workout struct {
	ID        json.Number `json:"id"`
	Name      string      `json:"name"`
	StartTime string      `json:"startTime"` // "YYYY-MM-DD HH:MM:SS"
	MaxSlots  int         `json:"maxAttendees"`
}

// FetchClasses retrieves the schedule from today through the next
// ScheduleWindowDays days and maps it onto the local class shape.
// PRE: cfg carries url, apiKey and customerId
// POST: Returned classes have provider-prefixed IDs and are not persisted
func (c *Client) FetchClasses(ctx context.Context, cfg setting.APIConfig) ([]class.Class, error) {
	today := c.now()
	body, err := c.get(ctx, cfg, today, today.AddDate(0, 0, ScheduleWindowDays))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Workouts []workout `json:"workouts"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode schedule payload: %w", err)
	}

	classes := make([]class.Class, 0, len(payload.Workouts))
	for _, w := range payload.Workouts {
		mapped, ok := mapWorkout(w)
		if !ok {
			slog.Warn("zoezi_workout_skipped", "id", w.ID.String(), "start_time", w.StartTime)
			continue
		}
		classes = append(classes, mapped)
	}
	return classes, nil
}

// Ping runs a one-day schedule request to validate the credentials.
func (c *Client) Ping(ctx context.Context, cfg setting.APIConfig) error {
	today := c.now()
	_, err := c.get(ctx, cfg, today, today)
	return err
}

func (c *Client) get(ctx context.Context, cfg setting.APIConfig, from, to time.Time) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build schedule request: %w", err)
	}
	req.Header.Set("ApiKey", cfg.APIKey)

	q := url.Values{}
	q.Set("CustomerId", cfg.CustomerID)
	q.Set("FromDate", from.Format("2006-01-02"))
	q.Set("ToDate", to.Format("2006-01-02"))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read schedule response: %w", err)
	}
	return body, nil
}

// mapWorkout converts a provider workout to the local class shape. Returns
// false when the start time is malformed.
func mapWorkout(w workout) (class.Class, bool) {
	start, err := time.Parse("2006-01-02 15:04:05", w.StartTime)
	if err != nil {
		return class.Class{}, false
	}
	maxSlots := w.MaxSlots
	if maxSlots <= 0 {
		maxSlots = 20
	}
	return class.Class{
		ID:       "zoezi-" + w.ID.String(),
		Name:     w.Name,
		Date:     start.Format("2006-01-02"),
		Time:     start.Format("15:04"),
		MaxSlots: maxSlots,
	}, true
}
