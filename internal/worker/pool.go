package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/hupe1980/sievego/internal/queue"
	"github.com/hupe1980/sievego/internal/resource"
	"github.com/hupe1980/sievego/internal/table"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// DefaultSize is the number of workers used when none is configured.
const DefaultSize = 4

var (
	// ErrStart is returned when a worker could not be started.
	ErrStart = errors.New("worker: start failed")

	// ErrInvalidSize is returned for a pool size below one.
	ErrInvalidSize = errors.New("worker: pool size must be positive")
)

// StartError describes which worker failed to start.
type StartError struct {
	Index   int // index of the worker that failed
	Started int // workers that were running (and have since been stopped)
	cause   error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("worker %d failed to start (%d already started): %v", e.Index, e.Started, e.cause)
}

func (e *StartError) Unwrap() []error { return []error{ErrStart, e.cause} }

// PrimeFunc is called by a worker after it finished clearing p's multiples.
type PrimeFunc func(worker, p, cleared int)

// Config configures a Pool.
type Config struct {
	Size      int
	Queue     *queue.Bounded
	Table     *table.Table
	Resources *resource.Controller
	Logger    *slog.Logger
	OnPrime   PrimeFunc
}

// Stats reports what a single worker did.
type Stats struct {
	Worker  int
	Primes  int64 // seed primes processed
	Skipped int64 // values dropped because they were no longer candidates
	Cleared int64 // flags cleared
}

// slot keeps each worker's counters on its own cache line.
type slot struct {
	_       cpu.CacheLinePad
	primes  atomic.Int64
	skipped atomic.Int64
	cleared atomic.Int64
	_       cpu.CacheLinePad
}

// Pool is a fixed set of worker goroutines.
type Pool struct {
	cfg    Config
	g      errgroup.Group
	slots  []slot
	exited atomic.Int64
}

// Start launches cfg.Size workers that immediately begin draining cfg.Queue.
//
// If a worker cannot get a slot from cfg.Resources, the queue is closed, the
// workers already running are joined and their slots released, and a
// *StartError is returned.
func Start(ctx context.Context, cfg Config) (*Pool, error) {
	if cfg.Size < 1 {
		return nil, ErrInvalidSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	p := &Pool{
		cfg:   cfg,
		slots: make([]slot, cfg.Size),
	}

	for i := 0; i < cfg.Size; i++ {
		if !cfg.Resources.TryAcquireWorker() {
			err := &StartError{Index: i, Started: i, cause: resource.ErrNoWorkerSlot}
			cfg.Logger.ErrorContext(ctx, "worker start failed",
				"worker", i,
				"started", i,
				"max_workers", cfg.Resources.MaxWorkers(),
				"error", err,
			)
			p.abort()
			return nil, err
		}

		id := i
		p.g.Go(func() error {
			defer cfg.Resources.ReleaseWorker()
			p.run(id)
			return nil
		})
	}

	cfg.Logger.DebugContext(ctx, "workers started", "count", cfg.Size)
	return p, nil
}

func (p *Pool) run(id int) {
	q, t, s := p.cfg.Queue, p.cfg.Table, &p.slots[id]
	defer p.exited.Add(1)

	for {
		v, ok := q.Next()
		if !ok || v == queue.Sentinel {
			return
		}
		if !t.IsCandidate(v) {
			s.skipped.Add(1)
			continue
		}
		cleared := t.MarkMultiples(v)
		s.primes.Add(1)
		s.cleared.Add(int64(cleared))
		if p.cfg.OnPrime != nil {
			p.cfg.OnPrime(id, v, cleared)
		}
	}
}

// abort stops the workers already started after a start failure. Closing the
// queue is enough: Next reports closed once the queue drains, so no sentinels
// are sent.
func (p *Pool) abort() {
	p.cfg.Queue.Close()
	_ = p.g.Wait()
}

// Wait blocks until every worker has exited.
func (p *Pool) Wait() error {
	return p.g.Wait()
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.cfg.Size
}

// Exited returns the number of workers that have terminated.
func (p *Pool) Exited() int {
	return int(p.exited.Load())
}

// Stats returns per-worker counters. Call after Wait for final values.
func (p *Pool) Stats() []Stats {
	out := make([]Stats, len(p.slots))
	for i := range p.slots {
		s := &p.slots[i]
		out[i] = Stats{
			Worker:  i,
			Primes:  s.primes.Load(),
			Skipped: s.skipped.Load(),
			Cleared: s.cleared.Load(),
		}
	}
	return out
}
