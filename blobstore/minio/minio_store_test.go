package minio

import (
	"os"
	"testing"

	"github.com/hupe1980/sievego/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "primes/")
	assert.Equal(t, "primes/LATEST", s.key("LATEST"))
	assert.Equal(t, "primes/run-1.bin", s.key("run-1.bin"))

	s = NewStore(nil, "bucket", "")
	assert.Equal(t, "run-1.json", s.key("run-1.json"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-sievego"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := t.Context()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("2 3 5 7 11 13")
	require.NoError(t, store.Put(ctx, "run.bin", data))

	got, err := store.Get(ctx, "run.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "run")
	require.NoError(t, err)
	assert.Contains(t, names, "run.bin")

	require.NoError(t, store.Delete(ctx, "run.bin"))
	require.NoError(t, store.Delete(ctx, "run.bin"), "deleting a missing blob is not an error")

	_, err = store.Get(ctx, "run.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
