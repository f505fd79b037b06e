package sievego

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/sievego/blobstore"
	"github.com/hupe1980/sievego/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	m.RecordRun(100, 25, 2*time.Millisecond, nil)
	m.RecordRun(100, 0, 4*time.Millisecond, errors.New("boom"))
	m.RecordPrime(0, 10)
	m.RecordPrime(1, 5)
	m.RecordSnapshot(512, time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.RunCount)
	assert.Equal(t, int64(1), stats.RunErrors)
	assert.Equal(t, int64(3*time.Millisecond), stats.RunAvgNanos)
	assert.Equal(t, int64(25), stats.PrimesFound)
	assert.Equal(t, int64(2), stats.SeedPrimes)
	assert.Equal(t, int64(15), stats.FlagsCleared)
	assert.Equal(t, int64(1), stats.SnapshotCount)
	assert.Equal(t, int64(512), stats.SnapshotBytes)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	var m BasicMetricsCollector
	assert.Equal(t, BasicMetricsStats{}, m.GetStats())
}

func TestRun_RecordsMetrics(t *testing.T) {
	m := &BasicMetricsCollector{}

	res, err := Run(t.Context(), 10000, WithMetricsCollector(m))
	require.NoError(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Equal(t, int64(0), stats.RunErrors)
	assert.Equal(t, int64(1229), stats.PrimesFound)

	var processed, cleared int64
	for _, w := range res.Workers {
		processed += w.Primes
		cleared += w.Cleared
	}
	assert.Equal(t, processed, stats.SeedPrimes)
	assert.Equal(t, cleared, stats.FlagsCleared)
	assert.Equal(t, int64(len(testutil.ReferencePrimes(100))), stats.SeedPrimes+skipped(res))

	_, err = res.Save(t.Context(), blobstore.NewMemoryStore(), "run")
	require.NoError(t, err)
	stats = m.GetStats()
	assert.Equal(t, int64(1), stats.SnapshotCount)
	assert.Positive(t, stats.SnapshotBytes)

	_, err = Run(t.Context(), 10000, WithMetricsCollector(m), WithMemoryLimit(8))
	require.Error(t, err)
	assert.Equal(t, int64(1), m.GetStats().RunErrors)
}

func skipped(res *Result) int64 {
	var n int64
	for _, w := range res.Workers {
		n += w.Skipped
	}
	return n
}

func TestWithMetricsCollector_Nil(t *testing.T) {
	_, err := Run(t.Context(), 100, WithMetricsCollector(nil))
	require.NoError(t, err)
}
