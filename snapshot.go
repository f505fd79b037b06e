package sievego

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/snapshot"
)

// Save persists the result as snapshot name and points LATEST at it.
//
// Logging and metrics go to the logger and collector the run was
// configured with.
func (r *Result) Save(ctx context.Context, store blobstore.Store, name string, opts ...snapshot.Option) (*snapshot.Manifest, error) {
	start := time.Now()
	m, err := snapshot.Save(ctx, store, name, r.N, r.primes, opts...)
	err = translateError(err)

	var size int64
	if m != nil {
		size = m.PayloadSize
	}
	r.logger.WithN(r.N).LogSnapshot(ctx, name, size, err)
	r.metrics.RecordSnapshot(size, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads snapshot name from store.
//
// Only WithLogger and WithMetricsCollector affect a load; they are carried
// over to the returned Result.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	m, bm, err := snapshot.Load(ctx, store, name)
	return newLoadedResult(ctx, &o, name, m, bm, err)
}

// LoadLatest reads the snapshot LATEST points to.
func LoadLatest(ctx context.Context, store blobstore.Store, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	name, err := snapshot.Latest(ctx, store)
	if err != nil {
		err = translateError(err)
		o.logger.LogLoad(ctx, snapshot.PointerName, 0, err)
		return nil, err
	}
	m, bm, err := snapshot.Load(ctx, store, name)
	return newLoadedResult(ctx, &o, name, m, bm, err)
}

func newLoadedResult(ctx context.Context, o *options, name string, m *snapshot.Manifest, bm *roaring.Bitmap, err error) (*Result, error) {
	if err != nil {
		err = translateError(err)
		o.logger.LogLoad(ctx, name, 0, err)
		return nil, err
	}
	res := &Result{
		N:       m.N,
		primes:  bm,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	o.logger.WithN(m.N).LogLoad(ctx, name, res.Count(), nil)
	return res, nil
}
