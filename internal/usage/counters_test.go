package usage

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestCounters_StartAtZero(t *testing.T) {
	snap := New(zap.NewNop()).Snapshot()
	if snap.TotalQueries != 0 || snap.PrimaryHits != 0 || snap.FallbackHits != 0 {
		t.Fatalf("fresh counters must be zero: %+v", snap)
	}
}

func TestCounters_TotalEqualsSumOfSources(t *testing.T) {
	c := New(zap.NewNop())
	for i := 0; i < 7; i++ {
		c.RecordPrimary()
	}
	for i := 0; i < 4; i++ {
		c.RecordFallback()
	}
	snap := c.Snapshot()
	if snap.PrimaryHits != 7 || snap.FallbackHits != 4 {
		t.Fatalf("per-source tallies wrong: %+v", snap)
	}
	if snap.TotalQueries != snap.PrimaryHits+snap.FallbackHits {
		t.Fatalf("invariant broken: %+v", snap)
	}
}

func TestCounters_ConcurrentIncrementsLoseNothing(t *testing.T) {
	c := New(zap.NewNop())
	const workers = 16
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if i%2 == 0 {
					c.RecordPrimary()
				} else {
					c.RecordFallback()
				}
			}
		}(i)
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.TotalQueries != workers*perWorker {
		t.Fatalf("lost updates: want %d got %d", workers*perWorker, snap.TotalQueries)
	}
	if snap.TotalQueries != snap.PrimaryHits+snap.FallbackHits {
		t.Fatalf("invariant broken under concurrency: %+v", snap)
	}
}
