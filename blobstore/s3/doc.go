// Package s3 provides Amazon S3 implementations of the blobstore.Store interface.
//
// # Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "primes/")
//
//	res, _ := sievego.Run(ctx, 1_000_000)
//	res.Save(ctx, store, "run-1")
//
// Wrap any store in a DDBCommitStore to move the LATEST pointer into DynamoDB,
// where conditional writes make concurrent publishers safe:
//
//	store := s3.NewDDBCommitStore(base, dynamodb.NewFromConfig(cfg), "sievego-commits", "s3://my-bucket/primes")
//
// # Features
//
//   - Multipart uploads for large snapshots (S3 transfer manager)
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
