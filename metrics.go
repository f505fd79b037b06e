package sievego

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
//	    runs    prometheus.Counter
//	    cleared prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordPrime(worker, cleared int) {
//	    p.cleared.Add(float64(cleared))
//	}
type MetricsCollector interface {
	// RecordRun is called after each run. primes is zero if err is non-nil.
	RecordRun(n, primes int, duration time.Duration, err error)

	// RecordPrime is called from worker goroutines after a seed prime's
	// multiples have been cleared. It must be safe for concurrent use.
	RecordPrime(worker, cleared int)

	// RecordSnapshot is called after each snapshot save.
	RecordSnapshot(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordPrime(int, int)                       {}
func (NoopMetricsCollector) RecordSnapshot(int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount           atomic.Int64
	RunErrors          atomic.Int64
	RunTotalNanos      atomic.Int64
	PrimesFound        atomic.Int64
	SeedPrimes         atomic.Int64
	FlagsCleared       atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotBytes      atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_, primes int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	b.PrimesFound.Add(int64(primes))
}

// RecordPrime implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrime(_, cleared int) {
	b.SeedPrimes.Add(1)
	b.FlagsCleared.Add(int64(cleared))
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(bytes int64, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:         b.RunCount.Load(),
		RunErrors:        b.RunErrors.Load(),
		RunAvgNanos:      avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		PrimesFound:      b.PrimesFound.Load(),
		SeedPrimes:       b.SeedPrimes.Load(),
		FlagsCleared:     b.FlagsCleared.Load(),
		SnapshotCount:    b.SnapshotCount.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
		SnapshotBytes:    b.SnapshotBytes.Load(),
		SnapshotAvgNanos: avg(b.SnapshotTotalNanos.Load(), b.SnapshotCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount         int64
	RunErrors        int64
	RunAvgNanos      int64
	PrimesFound      int64
	SeedPrimes       int64
	FlagsCleared     int64
	SnapshotCount    int64
	SnapshotErrors   int64
	SnapshotBytes    int64
	SnapshotAvgNanos int64
}
