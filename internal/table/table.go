package table

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/sievego/internal/bitset"
)

// ErrInvalidSize is returned by New for a negative bound.
var ErrInvalidSize = errors.New("table: bound must not be negative")

// Table holds the candidate-prime flags for [0, N].
type Table struct {
	n    int
	bits *bitset.BitSet
}

// New allocates a table for the bound n with every flag set.
func New(n int) (*Table, error) {
	if n < 0 {
		return nil, ErrInvalidSize
	}
	return &Table{
		n:    n,
		bits: bitset.NewFilled(uint64(n) + 1),
	}, nil
}

// SizeInBytes returns the memory a table for the bound n occupies.
func SizeInBytes(n int) int64 {
	if n < 0 {
		return 0
	}
	return bitset.SizeInBytes(uint64(n) + 1)
}

// N returns the upper bound.
func (t *Table) N() int {
	return t.n
}

// IsCandidate reports whether i is still believed prime.
// Indices outside [0, N] are never candidates.
func (t *Table) IsCandidate(i int) bool {
	if i < 0 {
		return false
	}
	return t.bits.Test(uint64(i))
}

// MarkMultiples clears p², p²+p, … up to N and returns the number of flags
// that were still set. Smaller multiples of p carry a smaller prime factor
// and are cleared by that prime.
//
// Calling it again with the same p changes nothing.
func (t *Table) MarkMultiples(p int) int {
	return t.MarkMultiplesUpTo(p, t.n)
}

// MarkMultiplesUpTo is MarkMultiples restricted to the range [p², limit].
// limit is clamped to N.
func (t *Table) MarkMultiplesUpTo(p, limit int) int {
	if p < 2 {
		return 0
	}
	limit = min(limit, t.n)
	// p*p > limit, written so p*p cannot overflow.
	if p > limit/p {
		return 0
	}

	cleared := 0
	for i := p * p; ; i += p {
		if t.bits.TestAndUnset(uint64(i)) {
			cleared++
		}
		if i > limit-p {
			break
		}
	}
	return cleared
}

// Count returns the number of candidates in [2, N].
func (t *Table) Count() int {
	// 0 and 1 are never cleared, so subtract whichever of them exist.
	return t.bits.Count() - min(t.n+1, 2)
}

// Primes returns the candidates in [2, N] in ascending order.
func (t *Table) Primes() []int {
	primes := make([]int, 0, t.Count())
	t.Range(func(p int) bool {
		primes = append(primes, p)
		return true
	})
	return primes
}

// Range calls fn for every candidate in [2, N] in ascending order until fn returns false.
func (t *Table) Range(fn func(p int) bool) {
	for i := t.bits.NextSetBit(2); i >= 0; i = t.bits.NextSetBit(uint64(i) + 1) {
		if !fn(int(i)) {
			return
		}
	}
}

// Bitmap returns the candidates in [2, N] as a compressed bitmap.
// N must fit in a uint32.
func (t *Table) Bitmap() *roaring.Bitmap {
	bm := roaring.New()
	t.Range(func(p int) bool {
		bm.Add(uint32(p))
		return true
	})
	bm.RunOptimize()
	return bm
}
