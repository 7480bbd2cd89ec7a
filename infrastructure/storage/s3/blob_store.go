// Package s3 implements the blob store port on AWS S3.
package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// BlobStore implements ports.BlobStore on one S3 bucket. Writes fail loudly;
// re-writing an existing key overwrites it, which keeps redelivered export
// chunks harmless.
type BlobStore struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewBlobStore creates a blob store bound to a bucket.
func NewBlobStore(client *s3.Client, bucket string, logger *zap.Logger) *BlobStore {
	return &BlobStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// WriteObject durably persists content under key.
func (s *BlobStore) WriteObject(ctx context.Context, key string, content []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}

	s.logger.Debug("Object written",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(content)),
	)
	return nil
}
