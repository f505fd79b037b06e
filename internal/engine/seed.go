package engine

import "github.com/hupe1980/sievego/internal/table"

// isqrt returns ⌊√n⌋ for n >= 0 using Newton's iteration on integers.
func isqrt(n int) int {
	if n < 2 {
		return max(n, 0)
	}
	x := n
	y := x/2 + x%2 // (x+1)/2 without overflow
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// seedLow sieves [2, r4] serially, clearing composites up to r2 directly in
// the table, and dispatches every prime it finds.
//
// Clearing up to r2 (not just r4) is what lets seedHigh trust the table: every
// composite c <= r2 has a prime factor <= √c <= r4.
func seedLow(t *table.Table, r4, r2 int, dispatch func(int) error) (int, error) {
	n := 0
	for p := 2; p <= r4; p++ {
		if !t.IsCandidate(p) {
			continue
		}
		t.MarkMultiplesUpTo(p, r2)
		if err := dispatch(p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// seedHigh dispatches every candidate left in (r4, r2].
func seedHigh(t *table.Table, r4, r2 int, dispatch func(int) error) (int, error) {
	n := 0
	for p := r4 + 1; p <= r2; p++ {
		if p < 2 || !t.IsCandidate(p) {
			continue
		}
		if err := dispatch(p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
