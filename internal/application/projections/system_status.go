package projections

import (
	"context"
	"time"

	"membo/internal/adapters/http/perf"
	"membo/internal/adapters/storage/stats"
	"membo/internal/domain/setting"
)

// StatusStatsStore counts rows per entity for the status endpoint.
type StatusStatsStore interface {
	EntityCounts(ctx context.Context) (stats.EntityCounts, error)
}

// SystemStatus is the operational health report.
type SystemStatus struct {
	Mode        string             `json:"mode"`
	Database    string             `json:"database"` // "ok" or the error string
	Counts      stats.EntityCounts `json:"counts"`
	Performance perf.Snapshot      `json:"performance"`
	Timestamp   time.Time          `json:"timestamp"`
}

// SystemStatusDeps holds dependencies for the status projection.
type SystemStatusDeps struct {
	SettingsStore ClassListSettingsStore
	StatsStore    StatusStatsStore
	Collector     *perf.Collector
	Now           func() time.Time
}

// QueryGetSystemStatus reports mode, database health, entity counts and a
// one-hour timing summary.
// POST: Always returns a report; database trouble is reported in-band
func QueryGetSystemStatus(ctx context.Context, deps SystemStatusDeps) (SystemStatus, error) {
	now := deps.Now()
	status := SystemStatus{
		Mode:      setting.ModeStandalone,
		Database:  "ok",
		Timestamp: now,
	}

	if settings, err := deps.SettingsStore.Get(ctx); err == nil {
		status.Mode = settings.Mode
	}

	counts, err := deps.StatsStore.EntityCounts(ctx)
	if err != nil {
		status.Database = err.Error()
	} else {
		status.Counts = counts
	}

	if deps.Collector != nil {
		status.Performance = deps.Collector.Snapshot(now.Add(-time.Hour), 5)
	}
	return status, nil
}
