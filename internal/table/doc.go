// Package table implements the shared sieve table: one "candidate prime"
// flag per integer in [0, N].
//
// Flags start true and only ever transition to false. The flags are packed
// into atomic words (see internal/bitset), so concurrent MarkMultiples calls
// from different workers are free of data races without any lock.
package table
