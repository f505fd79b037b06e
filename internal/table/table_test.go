package table

import (
	"sync"
	"testing"

	"github.com/hupe1980/sievego/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serialSieve runs the whole sieve on one goroutine through the table API.
func serialSieve(t *testing.T, n int) *Table {
	t.Helper()
	tbl, err := New(n)
	require.NoError(t, err)
	for p := 2; p <= n/p; p++ {
		if tbl.IsCandidate(p) {
			tbl.MarkMultiples(p)
		}
	}
	return tbl
}

func TestNew(t *testing.T) {
	_, err := New(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	tbl, err := New(10)
	require.NoError(t, err)
	assert.Equal(t, 10, tbl.N())
	for i := 0; i <= 10; i++ {
		assert.True(t, tbl.IsCandidate(i), "flag %d should start true", i)
	}
	assert.False(t, tbl.IsCandidate(11))
	assert.False(t, tbl.IsCandidate(-1))
}

func TestTable_SmallBounds(t *testing.T) {
	for _, n := range []int{0, 1} {
		tbl := serialSieve(t, n)
		assert.Equal(t, 0, tbl.Count())
		assert.Empty(t, tbl.Primes())
		assert.True(t, tbl.Bitmap().IsEmpty())
	}
}

func TestTable_N30(t *testing.T) {
	tbl := serialSieve(t, 30)
	assert.Equal(t, []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, tbl.Primes())
	assert.Equal(t, 10, tbl.Count())
}

func TestTable_MatchesReference(t *testing.T) {
	for _, n := range []int{2, 3, 4, 15, 16, 17, 63, 64, 65, 100, 1000, 10000} {
		tbl := serialSieve(t, n)
		want := testutil.ReferencePrimes(n)
		assert.Equal(t, len(want), tbl.Count(), "n=%d", n)
		assert.Equal(t, want, tbl.Primes(), "n=%d", n)
	}
}

func TestMarkMultiples(t *testing.T) {
	tbl, err := New(30)
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.MarkMultiples(0))
	assert.Equal(t, 0, tbl.MarkMultiples(1))
	assert.Equal(t, 0, tbl.MarkMultiples(6), "36 is past the bound")

	// 9, 12, 15, 18, 21, 24, 27, 30
	assert.Equal(t, 8, tbl.MarkMultiples(3))
	assert.True(t, tbl.IsCandidate(6), "multiples below p² are left alone")
	assert.True(t, tbl.IsCandidate(3))
	assert.False(t, tbl.IsCandidate(9))
	assert.False(t, tbl.IsCandidate(30))
}

func TestMarkMultiples_Idempotent(t *testing.T) {
	for _, p := range []int{2, 3, 5, 7, 11, 97} {
		once, err := New(5000)
		require.NoError(t, err)
		twice, err := New(5000)
		require.NoError(t, err)

		once.MarkMultiples(p)
		twice.MarkMultiples(p)
		assert.Equal(t, 0, twice.MarkMultiples(p), "second pass clears nothing new")

		assert.Equal(t, once.Primes(), twice.Primes(), "p=%d", p)
	}
}

func TestMarkMultiples_Commutative(t *testing.T) {
	primes := []int{2, 3, 5, 7, 11, 13}

	forward, err := New(3000)
	require.NoError(t, err)
	for _, p := range primes {
		forward.MarkMultiples(p)
	}

	backward, err := New(3000)
	require.NoError(t, err)
	for i := len(primes) - 1; i >= 0; i-- {
		backward.MarkMultiples(primes[i])
	}

	assert.Equal(t, forward.Primes(), backward.Primes())
}

func TestMarkMultiplesUpTo(t *testing.T) {
	tbl, err := New(100)
	require.NoError(t, err)

	// 4, 6, 8, 10
	assert.Equal(t, 4, tbl.MarkMultiplesUpTo(2, 10))
	assert.False(t, tbl.IsCandidate(10))
	assert.True(t, tbl.IsCandidate(12))

	// A limit past N is clamped.
	tbl.MarkMultiplesUpTo(2, 1<<40)
	assert.False(t, tbl.IsCandidate(100))
}

func TestMarkMultiples_Concurrent(t *testing.T) {
	const n = 200000
	tbl, err := New(n)
	require.NoError(t, err)

	seeds := testutil.ReferencePrimes(447) // floor(sqrt(200000)) = 447
	var wg sync.WaitGroup
	for _, p := range seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl.MarkMultiples(p)
		}()
	}
	wg.Wait()

	assert.Equal(t, testutil.ReferencePrimes(n), tbl.Primes())
}

func TestTable_Bitmap(t *testing.T) {
	tbl := serialSieve(t, 100)
	bm := tbl.Bitmap()

	assert.Equal(t, uint64(25), bm.GetCardinality())
	assert.True(t, bm.Contains(97))
	assert.False(t, bm.Contains(1))
	assert.False(t, bm.Contains(91))
}

func TestTable_RangeStopsEarly(t *testing.T) {
	tbl := serialSieve(t, 100)
	var seen []int
	tbl.Range(func(p int) bool {
		seen = append(seen, p)
		return len(seen) < 3
	})
	assert.Equal(t, []int{2, 3, 5}, seen)
}

func TestSizeInBytes(t *testing.T) {
	assert.Equal(t, int64(0), SizeInBytes(-1))
	assert.Equal(t, int64(8), SizeInBytes(0))
	assert.Equal(t, int64(8), SizeInBytes(63))
	assert.Equal(t, int64(16), SizeInBytes(64))
}
