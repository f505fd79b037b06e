package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/sievego/blobstore"
)

// DefaultPointerName is the blob name the DDBCommitStore serves from DynamoDB.
const DefaultPointerName = "LATEST"

var (
	// ErrConcurrentModification is returned when a concurrent commit is detected.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrPointerImmutable is returned when deleting the commit pointer.
	ErrPointerImmutable = errors.New("commit pointer cannot be deleted")
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DDBCommitStore wraps a blobstore.Store and keeps the LATEST pointer in
// DynamoDB. S3 has no compare-and-swap, so two publishers racing on a plain
// LATEST object could silently overwrite each other; here every pointer
// update is a new, conditionally written version.
//
// Table schema:
//   - Partition key: base_uri (string) - the bucket/prefix being published to
//   - Sort key: version (number) - monotonically increasing version
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name sievego-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	base        blobstore.Store
	ddbClient   DDBClient
	tableName   string
	baseURI     string
	pointerName string
}

// NewDDBCommitStore creates a new commit store on top of base.
// The baseURI (e.g. "s3://bucket/prefix") is used as partition key.
func NewDDBCommitStore(base blobstore.Store, ddbClient DDBClient, tableName, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		base:        base,
		ddbClient:   ddbClient,
		tableName:   tableName,
		baseURI:     baseURI,
		pointerName: DefaultPointerName,
	}
}

// Put writes a blob. The pointer blob becomes a new DynamoDB version.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name == s.pointerName {
		return s.commitVersion(ctx, string(data))
	}
	return s.base.Put(ctx, name, data)
}

// Get reads a blob. The pointer blob is the target of the latest version.
func (s *DDBCommitStore) Get(ctx context.Context, name string) ([]byte, error) {
	if name == s.pointerName {
		version, target, err := s.getLatestVersion(ctx)
		if err != nil {
			return nil, err
		}
		if version == 0 {
			return nil, blobstore.ErrNotFound
		}
		return []byte(target), nil
	}
	return s.base.Get(ctx, name)
}

// Delete removes a blob. The pointer cannot be deleted.
func (s *DDBCommitStore) Delete(ctx context.Context, name string) error {
	if name == s.pointerName {
		return ErrPointerImmutable
	}
	return s.base.Delete(ctx, name)
}

// List lists blobs of the underlying store.
func (s *DDBCommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.base.List(ctx, prefix)
}

// Version returns the latest committed pointer version (0 if none).
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.getLatestVersion(ctx)
	return v, err
}

// getLatestVersion queries DynamoDB for the latest committed version.
func (s *DDBCommitStore) getLatestVersion(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddbClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("invalid version attribute in DynamoDB")
	}
	targetAttr, ok := item["target"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("invalid target attribute in DynamoDB")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}

	return version, targetAttr.Value, nil
}

// commitVersion atomically commits a new pointer version using a DynamoDB conditional write.
func (s *DDBCommitStore) commitVersion(ctx context.Context, target string) error {
	currentVersion, _, err := s.getLatestVersion(ctx)
	if err != nil {
		return err
	}

	newVersion := currentVersion + 1

	// Conditional put: only succeed if this version doesn't exist yet
	_, err = s.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item: map[string]types.AttributeValue{
			"base_uri": &types.AttributeValueMemberS{Value: s.baseURI},
			"version":  &types.AttributeValueMemberN{Value: strconv.FormatUint(newVersion, 10)},
			"target":   &types.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})

	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("failed to commit version to DynamoDB: %w", err)
	}

	return nil
}
