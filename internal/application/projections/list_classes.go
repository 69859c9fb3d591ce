package projections

import (
	"context"
	"log/slog"

	"membo/internal/adapters/zoezi"
	"membo/internal/domain/class"
	"membo/internal/domain/setting"
)

// ClassListStore defines the class store interface for schedule listings.
type ClassListStore interface {
	List(ctx context.Context) ([]class.Class, error)
}

// ClassListBookingStore counts active bookings per class.
type ClassListBookingStore interface {
	CountActiveByClassID(ctx context.Context, classID string) (int, error)
}

// ClassListSettingsStore reads the operating mode.
type ClassListSettingsStore interface {
	Get(ctx context.Context) (setting.Settings, error)
}

// ClassSummary is one schedule entry with occupancy.
type ClassSummary struct {
	class.Class
	BookedSlots    int    `json:"bookedSlots"`
	AvailableSlots int    `json:"availableSlots"`
	Source         string `json:"source"` // "local" or "zoezi"
}

// ListClassesDeps holds dependencies for the schedule listing.
type ListClassesDeps struct {
	ClassStore    ClassListStore
	BookingStore  ClassListBookingStore
	SettingsStore ClassListSettingsStore
	Provider      zoezi.Provider // optional: nil forces local listing
}

// QueryListClasses returns the schedule. Standalone mode lists local
// classes with live occupancy; integrated mode fetches the provider's
// upcoming schedule and falls back to the local list when the provider is
// unreachable or misconfigured.
// POST: Never returns nil on success
func QueryListClasses(ctx context.Context, deps ListClassesDeps) ([]ClassSummary, error) {
	settings, err := deps.SettingsStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings.IsIntegrated() && deps.Provider != nil {
		cfg, err := settings.ParseAPIConfig()
		if err == nil {
			fetched, err := deps.Provider.FetchClasses(ctx, cfg)
			if err == nil {
				summaries := make([]ClassSummary, 0, len(fetched))
				for _, c := range fetched {
					summaries = append(summaries, ClassSummary{Class: c, AvailableSlots: c.MaxSlots, Source: "zoezi"})
				}
				return summaries, nil
			}
			slog.Warn("class_list_provider_failed", "error", err)
		} else {
			slog.Warn("class_list_bad_api_config", "error", err)
		}
		// Fall through to the local schedule.
	}

	local, err := deps.ClassStore.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ClassSummary, 0, len(local))
	for _, c := range local {
		booked, err := deps.BookingStore.CountActiveByClassID(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ClassSummary{
			Class:          c,
			BookedSlots:    booked,
			AvailableSlots: c.MaxSlots - booked,
			Source:         "local",
		})
	}
	return summaries, nil
}
