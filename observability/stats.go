// Package observability aggregates runtime counters for the relay.
// Counters are written by the listener loop and read by the heartbeat
// worker, so everything here is atomic; the history itself stays owned
// by the loop and is never touched from this package.
package observability

import (
	"runtime"
	"sync/atomic"
)

// RelaySnapshot is one consistent read of the counters, enriched with
// Go memory statistics.
type RelaySnapshot struct {
	Accepted   uint64 `json:"accepted"`
	Stored     uint64 `json:"stored"`
	Evicted    uint64 `json:"evicted"`
	Failures   uint64 `json:"failures"`
	Discarded  uint64 `json:"discarded"`
	Pending    int64  `json:"pending"`
	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`
}

// RelayStats collects live telemetry about the accept/reap/dispatch loop.
type RelayStats struct {
	accepted  atomic.Uint64
	stored    atomic.Uint64
	evicted   atomic.Uint64
	failures  atomic.Uint64
	discarded atomic.Uint64
	pending   atomic.Int64
}

func NewRelayStats() *RelayStats {
	return &RelayStats{}
}

// IncrAccepted counts one accepted connection.
func (s *RelayStats) IncrAccepted() {
	s.accepted.Add(1)
}

// IncrStored counts one message appended to the history at reap.
func (s *RelayStats) IncrStored() {
	s.stored.Add(1)
}

// AddEvicted counts messages dropped by overflow eviction.
func (s *RelayStats) AddEvicted(n int) {
	if n > 0 {
		s.evicted.Add(uint64(n))
	}
}

// IncrFailures counts one failed handler outcome.
func (s *RelayStats) IncrFailures() {
	s.failures.Add(1)
}

// IncrDiscarded counts one reaped outcome that carried no message.
func (s *RelayStats) IncrDiscarded() {
	s.discarded.Add(1)
}

// SetPending records the size of the pending-task list after a reap.
func (s *RelayStats) SetPending(n int) {
	s.pending.Store(int64(n))
}

// GetLatest returns a snapshot of all counters plus Go memory stats.
func (s *RelayStats) GetLatest() RelaySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RelaySnapshot{
		Accepted:   s.accepted.Load(),
		Stored:     s.stored.Load(),
		Evicted:    s.evicted.Load(),
		Failures:   s.failures.Load(),
		Discarded:  s.discarded.Load(),
		Pending:    s.pending.Load(),
		AllocMemMb: m.Alloc / 1024 / 1024,
		NumGC:      m.NumGC,
	}
}
