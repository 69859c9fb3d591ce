// Package perf records request and query timings in a fixed-size ring
// buffer. Writes are cheap; aggregation happens only on read.
package perf

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Path       string // HTTP path or database operation
	StatusCode int    // HTTP status (0 for queries)
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries. When full,
// the oldest entries are overwritten.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int64
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0 (non-positive falls back to DefaultRingSize)
// POST: Returns a ready-to-use collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size), size: size}
}

// Record appends an entry to the ring buffer.
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Snapshot holds aggregated performance data computed on read.
type Snapshot struct {
	TotalRequests int64      `json:"totalRequests"`
	RequestP50Ms  float64    `json:"requestP50Ms"`
	RequestP95Ms  float64    `json:"requestP95Ms"`
	SlowestPaths  []PathStat `json:"slowestPaths"`
	QueryCount    int64      `json:"queryCount"`
	QueryAvgMs    float64    `json:"queryAvgMs"`
}

// PathStat aggregates timing for a single request path.
type PathStat struct {
	Path  string  `json:"path"`
	AvgMs float64 `json:"avgMs"`
	MaxMs float64 `json:"maxMs"`
	Count int     `json:"count"`
}

// Snapshot computes aggregated stats from the ring buffer. This sorts and
// should only be called from the status endpoint.
// POST: Returns percentiles and the topN slowest request paths since the cutoff
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	var requestDurations []float64
	var queryTotalMs float64
	var queryCount int64
	pathStats := make(map[string]*PathStat)

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		switch e.Kind {
		case KindRequest:
			requestDurations = append(requestDurations, e.DurationMs)
			s, ok := pathStats[e.Path]
			if !ok {
				s = &PathStat{Path: e.Path}
				pathStats[e.Path] = s
			}
			s.Count++
			s.AvgMs += e.DurationMs // running total; divided below
			if e.DurationMs > s.MaxMs {
				s.MaxMs = e.DurationMs
			}
		case KindQuery:
			queryCount++
			queryTotalMs += e.DurationMs
		}
	}

	snap := Snapshot{
		TotalRequests: int64(len(requestDurations)),
		QueryCount:    queryCount,
	}
	if queryCount > 0 {
		snap.QueryAvgMs = queryTotalMs / float64(queryCount)
	}
	if len(requestDurations) > 0 {
		sort.Float64s(requestDurations)
		snap.RequestP50Ms = percentile(requestDurations, 0.50)
		snap.RequestP95Ms = percentile(requestDurations, 0.95)
	}

	paths := make([]PathStat, 0, len(pathStats))
	for _, s := range pathStats {
		s.AvgMs /= float64(s.Count)
		paths = append(paths, *s)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].MaxMs > paths[j].MaxMs })
	if topN > 0 && len(paths) > topN {
		paths = paths[:topN]
	}
	snap.SlowestPaths = paths
	return snap
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
