package perf

import (
	"testing"
	"time"
)

// TestRecord_WrapsRing verifies old entries are overwritten when full.
func TestRecord_WrapsRing(t *testing.T) {
	c := NewCollector(2)
	now := time.Now()
	for i := 0; i < 3; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "/a", DurationMs: float64(i), Timestamp: now})
	}
	if c.TotalRecorded() != 3 {
		t.Errorf("TotalRecorded = %d, want 3", c.TotalRecorded())
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2 (ring size)", snap.TotalRequests)
	}
}

// TestSnapshot_SeparatesKinds verifies queries do not pollute request stats.
func TestSnapshot_SeparatesKinds(t *testing.T) {
	c := NewCollector(10)
	now := time.Now()
	c.Record(Entry{Kind: KindRequest, Path: "/api/classes", StatusCode: 200, DurationMs: 5, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "QueryContext", DurationMs: 1, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "QueryContext", DurationMs: 3, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRequests != 1 {
		t.Errorf("TotalRequests = %d, want 1", snap.TotalRequests)
	}
	if snap.QueryCount != 2 {
		t.Errorf("QueryCount = %d, want 2", snap.QueryCount)
	}
	if snap.QueryAvgMs != 2 {
		t.Errorf("QueryAvgMs = %v, want 2", snap.QueryAvgMs)
	}
}

// TestSnapshot_SinceCutoff verifies old entries are excluded.
func TestSnapshot_SinceCutoff(t *testing.T) {
	c := NewCollector(10)
	old := time.Now().Add(-time.Hour)
	c.Record(Entry{Kind: KindRequest, Path: "/old", DurationMs: 9, Timestamp: old})
	snap := c.Snapshot(time.Now().Add(-time.Minute), 10)
	if snap.TotalRequests != 0 {
		t.Errorf("TotalRequests = %d, want 0 after cutoff", snap.TotalRequests)
	}
}
