// Package snapshot persists the prime set of a finished sieve run into a
// blobstore.Store and loads it back.
//
// A snapshot named "run-1" consists of three blobs:
//
//	run-1.bin   roaring bitmap of the primes, optionally lz4/zstd compressed
//	run-1.json  manifest (bound, prime count, compression, checksum)
//	LATEST      name of the most recently saved snapshot
//
// The manifest is written after the payload and LATEST after the manifest, so a
// reader that follows LATEST always finds a complete snapshot. On S3, wrap the
// store in s3.DDBCommitStore to make concurrent LATEST updates safe.
package snapshot
