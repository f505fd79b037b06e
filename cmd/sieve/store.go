package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/sievego/blobstore"
	miniostore "github.com/hupe1980/sievego/blobstore/minio"
	s3store "github.com/hupe1980/sievego/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

var errStoreURI = errors.New("invalid store URI")

// storeURI is a parsed --store value.
type storeURI struct {
	scheme string // local, mem, s3, minio
	bucket string // s3/minio only
	path   string // directory for local, key prefix for s3/minio
}

// parseStoreURI accepts local:<dir>, mem:, s3://bucket[/prefix] and
// minio://bucket[/prefix].
func parseStoreURI(raw string) (storeURI, error) {
	switch {
	case strings.HasPrefix(raw, "local:"):
		dir := strings.TrimPrefix(raw, "local:")
		if dir == "" {
			return storeURI{}, fmt.Errorf("%w: %q has no directory", errStoreURI, raw)
		}
		return storeURI{scheme: "local", path: dir}, nil
	case raw == "mem:":
		return storeURI{scheme: "mem"}, nil
	case strings.HasPrefix(raw, "s3://"), strings.HasPrefix(raw, "minio://"):
		scheme, rest, _ := strings.Cut(raw, "://")
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return storeURI{}, fmt.Errorf("%w: %q has no bucket", errStoreURI, raw)
		}
		return storeURI{scheme: scheme, bucket: bucket, path: strings.TrimSuffix(prefix, "/")}, nil
	default:
		return storeURI{}, fmt.Errorf("%w: %q", errStoreURI, raw)
	}
}

// openStore builds the blob store selected by --store.
func openStore(ctx context.Context, v *viper.Viper) (blobstore.Store, error) {
	raw := v.GetString("store")
	u, err := parseStoreURI(raw)
	if err != nil {
		return nil, err
	}

	switch u.scheme {
	case "local":
		return blobstore.NewLocalStore(u.path), nil
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		var store blobstore.Store = s3store.NewStore(awss3.NewFromConfig(cfg), u.bucket, u.path)
		if table := v.GetString("ddb-table"); table != "" {
			store = s3store.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg), table, raw)
		}
		return store, nil
	case "minio":
		client, err := minio.New(v.GetString("minio-endpoint"), &minio.Options{
			Creds:  credentials.NewStaticV4(v.GetString("minio-access-key"), v.GetString("minio-secret-key"), ""),
			Secure: v.GetBool("minio-secure"),
		})
		if err != nil {
			return nil, fmt.Errorf("create MinIO client: %w", err)
		}
		return miniostore.NewStore(client, u.bucket, u.path), nil
	default:
		return nil, fmt.Errorf("%w: %q", errStoreURI, raw)
	}
}
