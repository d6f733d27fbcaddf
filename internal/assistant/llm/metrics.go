package llm

import (
	"sync/atomic"
	"time"
)

// Metrics tracks generator calls.
type Metrics struct {
	calls   int64
	errors  int64
	latency int64 // nanoseconds
}

var globalMetrics = &Metrics{}

// Snapshot is the JSON view of Metrics.
type Snapshot struct {
	Calls        int64   `json:"generator_calls"`
	Errors       int64   `json:"generator_errors"`
	AvgLatencyMS float64 `json:"generator_avg_latency_ms"`
	ErrorRatePct float64 `json:"generator_error_rate_pct"`
}

func GetMetrics() Metrics {
	return Metrics{
		calls:   atomic.LoadInt64(&globalMetrics.calls),
		errors:  atomic.LoadInt64(&globalMetrics.errors),
		latency: atomic.LoadInt64(&globalMetrics.latency),
	}
}

// ResetMetrics zeroes the counters. Tests use it.
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.calls, 0)
	atomic.StoreInt64(&globalMetrics.errors, 0)
	atomic.StoreInt64(&globalMetrics.latency, 0)
}

func recordGeneratorCall(d time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.calls, 1)
	atomic.AddInt64(&globalMetrics.latency, d.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.errors, 1)
	}
}

func (m Metrics) Calls() int64  { return m.calls }
func (m Metrics) Errors() int64 { return m.errors }

// AverageLatency returns the mean latency in milliseconds.
func (m Metrics) AverageLatency() float64 {
	if m.calls == 0 {
		return 0
	}
	return float64(m.latency) / float64(m.calls) / 1e6
}

// ErrorRate returns the error rate as a percentage.
func (m Metrics) ErrorRate() float64 {
	if m.calls == 0 {
		return 0
	}
	return float64(m.errors) / float64(m.calls) * 100
}

func (m Metrics) Snapshot() Snapshot {
	return Snapshot{
		Calls:        m.calls,
		Errors:       m.errors,
		AvgLatencyMS: m.AverageLatency(),
		ErrorRatePct: m.ErrorRate(),
	}
}
