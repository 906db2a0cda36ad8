package usage

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hamed0406/statuscheck/internal/domain"
)

// logEvery controls the periodic usage-split log line.
const logEvery = 10

// Counters tallies completed queries per data source. Process-lifetime only;
// everything resets on restart. Safe for concurrent use.
type Counters struct {
	log      *zap.Logger
	total    atomic.Int64
	primary  atomic.Int64
	fallback atomic.Int64
}

func New(log *zap.Logger) *Counters {
	return &Counters{log: log}
}

// RecordPrimary counts a query answered by the crowd-sourced source.
func (c *Counters) RecordPrimary() {
	c.primary.Add(1)
	c.completed()
}

// RecordFallback counts a query answered by the active probe.
func (c *Counters) RecordFallback() {
	c.fallback.Add(1)
	c.completed()
}

func (c *Counters) completed() {
	if n := c.total.Add(1); n%logEvery == 0 {
		snap := c.Snapshot()
		c.log.Info("usage_split",
			zap.Int64("total", snap.TotalQueries),
			zap.Int64("downdetector_api", snap.PrimaryHits),
			zap.Int64("http_fallback", snap.FallbackHits),
		)
	}
}

// Snapshot reads the current tallies.
func (c *Counters) Snapshot() domain.UsageSnapshot {
	return domain.UsageSnapshot{
		TotalQueries: c.total.Load(),
		PrimaryHits:  c.primary.Load(),
		FallbackHits: c.fallback.Load(),
	}
}
