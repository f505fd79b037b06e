// Package conv provides checked integer conversions.
//
// Sieve bounds arrive as int but prime sets are stored in 32-bit roaring
// bitmaps, and snapshot manifests carry uint64 counts read from untrusted
// storage. These helpers reject values that would wrap.
package conv
