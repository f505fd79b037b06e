// Package bitset provides a lock-free fixed-size bitset for concurrent access.
//
// Architecture:
//   - Flat array of atomic.Uint64 words, allocated once at construction
//   - Lock-free: TestAndUnset uses atomic And, so concurrent writers to the
//     same word never lose updates
//   - No growth: the size is fixed for the lifetime of the bitset
//
// Used internally for:
//   - The sieve table (one "candidate prime" flag per integer)
package bitset
