package bumpfill

import (
	"errors"
	"sync/atomic"

	"github.com/pavanmanishd/bumpfill/arena"
)

// Stats counts fill outcomes. It is safe to share between goroutines.
type Stats struct {
	fills            atomic.Uint64
	finished         atomic.Uint64
	abandoned        atomic.Uint64
	destroyed        atomic.Uint64
	heapSpills       atomic.Uint64
	lengthViolations atomic.Uint64
	exhaustions      atomic.Uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Fills            uint64 // Fill operations started
	Finished         uint64 // Fills that returned a slice
	Abandoned        uint64 // Fills that stopped early
	Destroyed        uint64 // Live elements destroyed by abandoned fills
	HeapSpills       uint64 // Blocks placed on the Go heap because T holds pointers
	LengthViolations uint64 // Streams whose item count disagreed with Len
	Exhaustions      uint64 // Reservations refused by the allocator
}

// Snapshot returns the current counter values.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Fills:            s.fills.Load(),
		Finished:         s.finished.Load(),
		Abandoned:        s.abandoned.Load(),
		Destroyed:        s.destroyed.Load(),
		HeapSpills:       s.heapSpills.Load(),
		LengthViolations: s.lengthViolations.Load(),
		Exhaustions:      s.exhaustions.Load(),
	}
}

func (s *Stats) record(r result) {
	if s == nil {
		return
	}
	s.fills.Add(1)
	if r.heap {
		s.heapSpills.Add(1)
	}
	switch r.state {
	case Finished:
		s.finished.Add(1)
	default:
		s.abandoned.Add(1)
	}
	s.destroyed.Add(uint64(r.destroyed))
	if errors.Is(r.err, ErrLengthMismatch) {
		s.lengthViolations.Add(1)
	}
	if errors.Is(r.err, arena.ErrAllocationExhausted) {
		s.exhaustions.Add(1)
	}
}
