// Package testutil provides testing utilities for sievego.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random number generator and a trusted
// single-threaded reference sieve used as ground truth.
//
// # Random Numbers
//
//	rng := testutil.NewRNG(seed)
//	n := rng.Intn(100000)
//
// # Reference Sieve (Ground Truth)
//
//	want := testutil.ReferencePrimes(n)
package testutil
