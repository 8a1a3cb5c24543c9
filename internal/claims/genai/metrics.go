package genai

import (
	"sync/atomic"
	"time"
)

// Metrics tracks generateContent calls
type Metrics struct {
	calls   int64
	errors  int64
	latency int64 // Total latency in nanoseconds
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	Calls   int64
	Errors  int64
	Latency time.Duration
}

// Snapshot returns the current counters
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:   atomic.LoadInt64(&m.calls),
		Errors:  atomic.LoadInt64(&m.errors),
		Latency: time.Duration(atomic.LoadInt64(&m.latency)),
	}
}

func (m *Metrics) record(duration time.Duration, err error) {
	if m == nil {
		return
	}
	atomic.AddInt64(&m.calls, 1)
	atomic.AddInt64(&m.latency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&m.errors, 1)
	}
}

// AverageLatencyMs returns the average latency in milliseconds
func (s Snapshot) AverageLatencyMs() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Latency.Nanoseconds()) / float64(s.Calls) / 1e6
}

// ErrorRate returns the error rate as a percentage
func (s Snapshot) ErrorRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Calls) * 100
}
