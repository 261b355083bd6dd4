package conversion

import (
	"sync/atomic"
	"time"
)

// Stats counts conversion pipeline outcomes. Safe for concurrent use.
type Stats struct {
	startedAt time.Time

	requests  atomic.Int64
	accepted  atomic.Int64
	rejected  atomic.Int64
	converted atomic.Int64
	failed    atomic.Int64
	timeouts  atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	Requests  int64 `json:"requests"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Converted int64 `json:"converted"`
	Failed    int64 `json:"failed"`
	Timeouts  int64 `json:"timeouts"`
}

// NewStats creates an empty Stats starting now
func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

// RecordRequest counts an incoming convert request
func (s *Stats) RecordRequest() { s.requests.Add(1) }

// RecordAccepted counts an upload that passed validation
func (s *Stats) RecordAccepted() { s.accepted.Add(1) }

// RecordRejected counts an upload that failed validation
func (s *Stats) RecordRejected() { s.rejected.Add(1) }

func (s *Stats) recordConverted() { s.converted.Add(1) }
func (s *Stats) recordFailed() { s.failed.Add(1) }
func (s *Stats) recordTimeout() { s.timeouts.Add(1) }

// StartedAt returns when the stats began counting
func (s *Stats) StartedAt() time.Time { return s.startedAt }

// Uptime returns the time elapsed since StartedAt
func (s *Stats) Uptime() time.Duration { return time.Since(s.startedAt) }

// Snapshot returns the current counter values
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Requests:  s.requests.Load(),
		Accepted:  s.accepted.Load(),
		Rejected:  s.rejected.Load(),
		Converted: s.converted.Load(),
		Failed:    s.failed.Load(),
		Timeouts:  s.timeouts.Load(),
	}
}
