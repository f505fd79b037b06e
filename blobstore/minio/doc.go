// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client library, so it also works against Ceph, SeaweedFS
// and Garage.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "primes/")
//	res, _ := sievego.Run(ctx, 1_000_000)
//	_ = res.Save(ctx, store, "run-1")
//
// Air-gapped deployments can use this store without any AWS dependencies.
package minio
