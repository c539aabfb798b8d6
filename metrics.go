package geovec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    calls    *prometheus.CounterVec
//	    duration prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCall(op string, elements, missing int, d time.Duration, err error) {
//	    p.calls.WithLabelValues(op).Inc()
//	    p.duration.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordCall is called after each vectorized operation.
	// elements is the result size, missing the number of elements with a
	// missing geometry operand, err is nil if successful.
	RecordCall(op string, elements, missing int, duration time.Duration, err error)

	// RecordPrepare is called after each prepare operation with the number
	// of newly attached entries.
	RecordPrepare(prepared int, duration time.Duration, err error)

	// RecordCoordinateWrite is called after SetCoordinates and Transform
	// with the number of rows written.
	RecordCoordinateWrite(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCall(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPrepare(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordCoordinateWrite(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CallCount       atomic.Int64
	CallErrors      atomic.Int64
	CallTotalNanos  atomic.Int64
	ElementCount    atomic.Int64
	MissingCount    atomic.Int64
	PrepareCount    atomic.Int64
	PreparedEntries atomic.Int64
	PrepareErrors   atomic.Int64
	WriteCount      atomic.Int64
	WriteRows       atomic.Int64
	WriteErrors     atomic.Int64
}

// RecordCall implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCall(_ string, elements, missing int, duration time.Duration, err error) {
	b.CallCount.Add(1)
	b.CallTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CallErrors.Add(1)
		return
	}
	b.ElementCount.Add(int64(elements))
	b.MissingCount.Add(int64(missing))
}

// RecordPrepare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrepare(prepared int, _ time.Duration, err error) {
	b.PrepareCount.Add(1)
	b.PreparedEntries.Add(int64(prepared))
	if err != nil {
		b.PrepareErrors.Add(1)
	}
}

// RecordCoordinateWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoordinateWrite(rows int, _ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CallCount:       b.CallCount.Load(),
		CallErrors:      b.CallErrors.Load(),
		CallAvgNanos:    b.getAvgCallNanos(),
		ElementCount:    b.ElementCount.Load(),
		MissingCount:    b.MissingCount.Load(),
		PrepareCount:    b.PrepareCount.Load(),
		PreparedEntries: b.PreparedEntries.Load(),
		PrepareErrors:   b.PrepareErrors.Load(),
		WriteCount:      b.WriteCount.Load(),
		WriteRows:       b.WriteRows.Load(),
		WriteErrors:     b.WriteErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCallNanos() int64 {
	count := b.CallCount.Load()
	if count == 0 {
		return 0
	}
	return b.CallTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CallCount       int64
	CallErrors      int64
	CallAvgNanos    int64
	ElementCount    int64
	MissingCount    int64
	PrepareCount    int64
	PreparedEntries int64
	PrepareErrors   int64
	WriteCount      int64
	WriteRows       int64
	WriteErrors     int64
}
