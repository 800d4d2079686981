package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Store struct {
	client  s3iface.S3API
	bucket  string
	baseURL string
	logger  *slog.Logger
}

// NewS3Store uses the default AWS credential chain. An empty baseURL falls
// back to the bucket's virtual-hosted URL.
func NewS3Store(bucket, region, baseURL string, logger *slog.Logger) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Store(s3.New(sess), bucket, baseURL, logger), nil
}

func newS3Store(client s3iface.S3API, bucket, baseURL string, logger *slog.Logger) *S3Store {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", bucket)
	}

	return &S3Store{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})

	if err != nil {
		s.logError("PutObject", key, err)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return joinURL(s.baseURL, key), nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		s.logError("DeleteObject", key, err)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (s *S3Store) KeyFor(location string) (string, bool) {
	return trimURL(s.baseURL, location)
}

func (s *S3Store) logError(op, key string, err error) {
	attrs := []any{"op", op, "bucket", s.bucket, "key", key}

	if awsErr, ok := err.(awserr.Error); ok {
		attrs = append(attrs, "code", awsErr.Code(), "message", awsErr.Message())

		if reqErr, ok := err.(awserr.RequestFailure); ok {
			attrs = append(attrs, "status", reqErr.StatusCode(), "request_id", reqErr.RequestID())
		}
	} else {
		attrs = append(attrs, "error", err)
	}

	s.logger.Error("S3 request failed", attrs...)
}
