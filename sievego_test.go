package sievego

import (
	"errors"
	"testing"

	"github.com/hupe1980/sievego/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		opts  []Option
		count int
	}{
		{"n=30", 30, nil, 10},
		{"n=1", 1, nil, 0},
		{"n=0", 0, nil, 0},
		{"n=2", 2, nil, 1},
		{"n=10000", 10000, nil, 1229},
		{"single worker tiny queue", 10000, []Option{WithWorkers(1), WithQueueCapacity(1)}, 1229},
		{"many workers", 100000, []Option{WithWorkers(16), WithQueueCapacity(3)}, 9592},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(t.Context(), tt.n, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.n, res.N)
			assert.Equal(t, tt.count, res.Count())
			assert.Equal(t, testutil.ReferencePrimes(tt.n), res.Primes())
		})
	}
}

func TestRun_N30(t *testing.T) {
	res, err := Run(t.Context(), 30)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, res.Primes())
	assert.Len(t, res.Workers, 4)
	assert.Positive(t, res.Elapsed)
}

func TestRun_RandomBounds(t *testing.T) {
	rng := testutil.NewRNG(1980)
	for range 25 {
		n := rng.IntRange(2, 60000)
		workers := rng.IntRange(1, 9)
		capacity := rng.IntRange(1, 50)

		res, err := Run(t.Context(), n, WithWorkers(workers), WithQueueCapacity(capacity))
		require.NoError(t, err)
		require.Equal(t, testutil.ReferencePrimes(n), res.Primes(),
			"n=%d workers=%d capacity=%d", n, workers, capacity)
	}
}

func TestResult_Queries(t *testing.T) {
	res, err := Run(t.Context(), 100)
	require.NoError(t, err)

	assert.True(t, res.IsPrime(2))
	assert.True(t, res.IsPrime(97))
	assert.False(t, res.IsPrime(1))
	assert.False(t, res.IsPrime(91))
	assert.False(t, res.IsPrime(-7))
	assert.False(t, res.IsPrime(101))

	var firstFive []int
	res.Range(func(p int) bool {
		firstFive = append(firstFive, p)
		return len(firstFive) < 5
	})
	assert.Equal(t, []int{2, 3, 5, 7, 11}, firstFive)

	// Bitmap returns a copy.
	bm := res.Bitmap()
	bm.Add(100)
	assert.False(t, res.IsPrime(100))
	assert.Equal(t, 25, res.Count())
}

func TestRun_WorkerStats(t *testing.T) {
	res, err := Run(t.Context(), 50000, WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, res.Workers, 3)

	var seeds int64
	for i, s := range res.Workers {
		assert.Equal(t, i, s.Worker)
		seeds += s.Primes + s.Skipped
	}
	// Every prime up to ⌊√50000⌋ = 223 is handed to exactly one worker.
	assert.Equal(t, int64(len(testutil.ReferencePrimes(223))), seeds)
}

func TestRun_InvalidConfig(t *testing.T) {
	for name, opts := range map[string][]Option{
		"zero workers":     {WithWorkers(0)},
		"negative workers": {WithWorkers(-2)},
		"zero capacity":    {WithQueueCapacity(0)},
		"negative memory":  {WithMemoryLimit(-1)},
		"negative slots":   {WithMaxWorkerSlots(-1)},
	} {
		_, err := Run(t.Context(), 100, opts...)
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}

	_, err := Run(t.Context(), -1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRun_AllocationFailure(t *testing.T) {
	_, err := Run(t.Context(), 1_000_000, WithMemoryLimit(1024))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.NotErrorIs(t, err, ErrWorkerStart)

	var af *ErrAllocationFailure
	require.True(t, errors.As(err, &af))
	assert.Equal(t, int64(1024), af.Limit)
	assert.Greater(t, af.Bytes, int64(1024))

	// A generous budget fits.
	res, err := Run(t.Context(), 1_000_000, WithMemoryLimit(1<<20))
	require.NoError(t, err)
	assert.Equal(t, 78498, res.Count())
}

func TestRun_WorkerStartFailure(t *testing.T) {
	_, err := Run(t.Context(), 1000, WithWorkers(4), WithMaxWorkerSlots(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerStart)

	var ts *ErrThreadStart
	require.True(t, errors.As(err, &ts))
	assert.Equal(t, 2, ts.Index)
	assert.Equal(t, 2, ts.Started)

	res, err := Run(t.Context(), 1000, WithWorkers(2), WithMaxWorkerSlots(2))
	require.NoError(t, err)
	assert.Equal(t, 168, res.Count())
}
