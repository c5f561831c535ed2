// Package blobstore archives finished generation output to an
// S3-compatible object store so a run's CSV/Parquet/JSON can be fetched
// again after the local disk copy is cleaned up.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"synthgen/internal/config"
)

// Store uploads and retrieves archived run output. A nil Store (see
// NewS3Store) means archiving is disabled for this deployment.
type Store interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
	URI(key string) string
}

type s3Store struct {
	client     *s3.Client
	logger     *slog.Logger
	bucketName string
}

// NewS3Store builds a Store from cfg. Returns nil, nil when cfg.Provider
// is blank, matching BlobStorageConfig's "blank provider disables
// archiving" contract.
func NewS3Store(ctx context.Context, cfg config.BlobStorageConfig, logger *slog.Logger) (Store, error) {
	if cfg.Provider == "" {
		return nil, nil
	}

	opts := []func(*awsConfig.LoadOptions) error{awsConfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("blob store initialized",
		"provider", cfg.Provider, "bucket", cfg.BucketName, "region", cfg.Region)

	return &s3Store{client: client, bucketName: cfg.BucketName, logger: logger}, nil
}

func (s *s3Store) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s to s3: %w", key, err)
	}
	s.logger.Debug("uploaded to blob store", "bucket", s.bucketName, "key", key, "size", len(content))
	return nil
}

func (s *s3Store) Download(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("download %s from s3: %w", key, err)
	}
	defer result.Body.Close()

	content, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", key, err)
	}
	return content, nil
}

func (s *s3Store) URI(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucketName, key)
}
