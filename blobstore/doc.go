// Package blobstore provides storage abstraction for sievego snapshots.
//
// Store is the interface for reading and writing whole blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem (atomic write via temp file + rename)
//   - MemoryStore: In-memory, for tests
//   - s3.Store: Amazon S3 (multipart uploads via the S3 transfer manager)
//   - s3.DDBCommitStore: S3 plus DynamoDB conditional writes for LATEST
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
