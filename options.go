package sievego

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/sievego/internal/queue"
	"github.com/hupe1980/sievego/internal/resource"
	"github.com/hupe1980/sievego/internal/worker"
)

type options struct {
	workers          int
	queueCapacity    int
	memoryLimit      int64
	workerSlots      int64
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Run and Load.
type Option func(*options)

// WithWorkers sets the fixed number of worker goroutines. Default: 4.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithQueueCapacity sets the capacity of the seed queue. Default: 1000.
//
// Any capacity of at least one produces the same primes; smaller queues only
// make the producer block more often.
func WithQueueCapacity(n int) Option {
	return func(o *options) {
		o.queueCapacity = n
	}
}

// WithMemoryLimit caps the bytes a run may reserve for its table and queue.
// A run that needs more fails with ErrAllocation. Zero means unlimited.
//
// A table costs one bit per number up to N, so N = 10⁹ needs about 120 MiB.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxWorkerSlots caps how many workers may run at once. A run asking for
// more workers than slots fails with ErrWorkerStart. Zero means unlimited.
func WithMaxWorkerSlots(n int) Option {
	return func(o *options) {
		o.workerSlots = int64(n)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &sievego.BasicMetricsCollector{}
//	res, _ := sievego.Run(ctx, 1_000_000, sievego.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Seeds: %d, cleared: %d\n", stats.SeedPrimes, stats.FlagsCleared)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := sievego.NewJSONLogger(slog.LevelInfo)
//	res, _ := sievego.Run(ctx, 10_000, sievego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		workers:          worker.DefaultSize,
		queueCapacity:    queue.DefaultCapacity,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) validate() error {
	if o.workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, o.workers)
	}
	if o.queueCapacity < 1 {
		return fmt.Errorf("%w: queue capacity must be positive, got %d", ErrInvalidConfig, o.queueCapacity)
	}
	if o.memoryLimit < 0 || o.workerSlots < 0 {
		return fmt.Errorf("%w: resource limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (o *options) resources() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes: o.memoryLimit,
		MaxWorkers:       o.workerSlots,
	})
}
