package sievego

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/hupe1980/sievego/internal/engine"
)

// runObserver forwards engine progress to the logger and metrics collector.
type runObserver struct {
	logger     *Logger
	metrics    MetricsCollector
	dispatched atomic.Int64
}

func (o *runObserver) OnPhase(ctx context.Context, phase engine.Phase) {
	o.logger.LogPhase(ctx, phase.String(), o.dispatched.Load())
}

func (o *runObserver) OnDispatch(int) {
	o.dispatched.Add(1)
}

func (o *runObserver) OnPrime(worker, prime, cleared int) {
	o.metrics.RecordPrime(worker, cleared)
	// Workers have no request context; the check keeps WithWorker off the hot path.
	if ctx := context.Background(); o.logger.Enabled(ctx, slog.LevelDebug) {
		o.logger.WithWorker(worker).LogPrime(ctx, prime, cleared)
	}
}
