package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/hupe1980/sievego/internal/conv"
	"github.com/hupe1980/sievego/internal/queue"
	"github.com/hupe1980/sievego/internal/resource"
	"github.com/hupe1980/sievego/internal/table"
	"github.com/hupe1980/sievego/internal/worker"
)

// Config describes a single run.
type Config struct {
	// N is the inclusive upper bound.
	N int

	// Workers is the fixed pool size. Defaults to worker.DefaultSize.
	Workers int

	// QueueCapacity bounds the seed queue. Defaults to queue.DefaultCapacity.
	QueueCapacity int

	Resources *resource.Controller
	Logger    *slog.Logger
	Observer  Observer
}

func (c *Config) validate() error {
	if c.N < 0 {
		return fmt.Errorf("%w: bound %d is negative", ErrInvalidArgument, c.N)
	}
	// Results are published as 32-bit roaring bitmaps.
	if _, err := conv.IntToUint32(c.N); err != nil {
		return fmt.Errorf("%w: bound: %w", ErrInvalidArgument, err)
	}
	if c.Workers == 0 {
		c.Workers = worker.DefaultSize
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidArgument, c.Workers)
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = queue.DefaultCapacity
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("%w: queue capacity %d", ErrInvalidArgument, c.QueueCapacity)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Observer == nil {
		c.Observer = NoopObserver{}
	}
	return nil
}

// Report is the outcome of a completed run.
type Report struct {
	Table      *table.Table
	Workers    []worker.Stats
	SeedsLow   int // primes dispatched by SeedLow
	SeedsHigh  int // primes dispatched by SeedHigh
	Sentinels  int
	PeakMemory int64 // bytes reserved for table and queue
}

// Seeds returns the number of seed primes dispatched.
func (r *Report) Seeds() int {
	return r.SeedsLow + r.SeedsHigh
}

// reservation returns the bytes a run with cfg needs up front.
func reservation(cfg *Config) int64 {
	return table.SizeInBytes(cfg.N) + int64(cfg.QueueCapacity)*strconv.IntSize/8
}

// Run executes one sieve run and returns the populated table.
//
// Either the whole sieve completes or an error is returned and no table is
// produced. Every reservation and worker slot taken by the run is released
// before Run returns.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger.With("n", cfg.N)
	obs := cfg.Observer

	// Init
	obs.OnPhase(ctx, PhaseInit)
	bytes := reservation(&cfg)
	if err := cfg.Resources.AcquireMemory(bytes); err != nil {
		log.ErrorContext(ctx, "allocation failed", "bytes", bytes, "error", err)
		return nil, &AllocationError{Bytes: bytes, Limit: cfg.Resources.MemoryLimit(), cause: err}
	}
	defer cfg.Resources.ReleaseMemory(bytes)

	tbl, err := table.New(cfg.N)
	if err != nil {
		return nil, err
	}
	q, err := queue.New(cfg.QueueCapacity)
	if err != nil {
		return nil, err
	}

	pool, err := worker.Start(ctx, worker.Config{
		Size:      cfg.Workers,
		Queue:     q,
		Table:     tbl,
		Resources: cfg.Resources,
		Logger:    log,
		OnPrime:   obs.OnPrime,
	})
	if err != nil {
		return nil, err
	}

	dispatch := func(p int) error {
		if err := q.Put(p); err != nil {
			return err
		}
		obs.OnDispatch(p)
		return nil
	}

	r2 := isqrt(cfg.N)
	r4 := isqrt(r2)
	log.DebugContext(ctx, "seeding", "sqrt", r2, "fourth_root", r4, "workers", cfg.Workers)

	report := &Report{PeakMemory: bytes}

	obs.OnPhase(ctx, PhaseSeedLow)
	report.SeedsLow, err = seedLow(tbl, r4, r2, dispatch)
	if err == nil {
		obs.OnPhase(ctx, PhaseSeedHigh)
		report.SeedsHigh, err = seedHigh(tbl, r4, r2, dispatch)
	}
	if err != nil {
		q.Close()
		_ = pool.Wait()
		return nil, fmt.Errorf("dispatch seed: %w", err)
	}

	// One sentinel per worker plus a spare, then close so nobody can stay
	// parked on an empty queue.
	obs.OnPhase(ctx, PhaseShutdown)
	for i := 0; i <= cfg.Workers; i++ {
		if err := q.Put(queue.Sentinel); err != nil {
			break
		}
		report.Sentinels++
	}
	q.Close()

	obs.OnPhase(ctx, PhaseJoin)
	if err := pool.Wait(); err != nil {
		return nil, err
	}
	if exited := pool.Exited(); exited != cfg.Workers {
		return nil, fmt.Errorf("engine: %d of %d workers exited", exited, cfg.Workers)
	}

	obs.OnPhase(ctx, PhaseReport)
	report.Table = tbl
	report.Workers = pool.Stats()

	log.DebugContext(ctx, "run finished",
		"seeds", report.Seeds(),
		"sentinels", report.Sentinels,
	)
	return report, nil
}
