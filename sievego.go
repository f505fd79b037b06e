package sievego

import (
	"context"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sievego/internal/engine"
)

// WorkerStats are the counters of one worker of a finished run.
type WorkerStats struct {
	Worker  int
	Primes  int64 // seed primes processed
	Skipped int64 // seeds dropped because they were no longer candidates
	Cleared int64 // composite flags cleared
}

// Result is the outcome of a run: every prime in [2, N].
//
// A Result is immutable and safe for concurrent use.
type Result struct {
	// N is the inclusive upper bound of the run.
	N int

	// Elapsed is the wall time of the run, from allocation to join.
	// Zero for results loaded from a snapshot.
	Elapsed time.Duration

	// Workers holds per-worker statistics. Nil for loaded results.
	Workers []WorkerStats

	primes  *roaring.Bitmap
	logger  *Logger
	metrics MetricsCollector
}

// Run computes every prime up to and including n.
//
// For n < 2 the result is empty. The returned error, if any, matches one of
// ErrInvalidConfig, ErrAllocation or ErrWorkerStart; in that case no result
// is produced and every resource taken by the run has been released.
func Run(ctx context.Context, n int, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	log := o.logger.WithN(n)

	if err := o.validate(); err != nil {
		log.LogRun(ctx, 0, 0, err)
		o.metricsCollector.RecordRun(n, 0, 0, err)
		return nil, err
	}

	obs := &runObserver{logger: log, metrics: o.metricsCollector}

	start := time.Now()
	rep, err := engine.Run(ctx, engine.Config{
		N:             n,
		Workers:       o.workers,
		QueueCapacity: o.queueCapacity,
		Resources:     o.resources(),
		Logger:        log.Logger,
		Observer:      obs,
	})
	elapsed := time.Since(start)

	if err != nil {
		err = translateError(err)
		log.LogRun(ctx, 0, elapsed, err)
		o.metricsCollector.RecordRun(n, 0, elapsed, err)
		return nil, err
	}

	res := &Result{
		N:       n,
		Elapsed: elapsed,
		Workers: make([]WorkerStats, len(rep.Workers)),
		primes:  rep.Table.Bitmap(),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	for i, s := range rep.Workers {
		res.Workers[i] = WorkerStats(s)
	}

	count := res.Count()
	log.LogRun(ctx, count, elapsed, nil)
	o.metricsCollector.RecordRun(n, count, elapsed, nil)
	return res, nil
}

// Count returns the number of primes found.
func (r *Result) Count() int {
	return int(r.primes.GetCardinality())
}

// Primes returns the primes in ascending order.
func (r *Result) Primes() []int {
	out := make([]int, 0, r.primes.GetCardinality())
	it := r.primes.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// IsPrime reports whether i is a prime found by the run.
// Values outside [0, N] report false.
func (r *Result) IsPrime(i int) bool {
	if i < 0 || i > r.N || uint64(i) > math.MaxUint32 {
		return false
	}
	return r.primes.Contains(uint32(i))
}

// Range calls fn for each prime in ascending order until fn returns false.
func (r *Result) Range(fn func(p int) bool) {
	it := r.primes.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			return
		}
	}
}

// Bitmap returns a copy of the prime set.
func (r *Result) Bitmap() *roaring.Bitmap {
	return r.primes.Clone()
}
