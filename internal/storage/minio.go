package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"weddingfolio/internal/config"
	"weddingfolio/internal/domain/repositories"
)

// MinioBlobStore stores media objects in an S3-compatible bucket
type MinioBlobStore struct {
	api    *minio.Client
	bucket string
	region string
	ttl    time.Duration
	logger *slog.Logger
}

var _ repositories.BlobStore = (*MinioBlobStore)(nil)

// NewMinioBlobStore creates a blob store from the S3 settings in cfg.
// The endpoint may carry an http:// or https:// scheme, which then overrides S3UseSSL.
func NewMinioBlobStore(cfg *config.Config, logger *slog.Logger) (*MinioBlobStore, error) {
	host, secure, err := ParseEndpoint(cfg.S3Endpoint, cfg.S3UseSSL)
	if err != nil {
		return nil, err
	}

	api, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: secure,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}

	return &MinioBlobStore{
		api:    api,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
		ttl:    cfg.SignedURLTTL,
		logger: logger,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioBlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("bucket created", "bucket", s.bucket)
	return nil
}

// Put uploads an object under key
func (s *MinioBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	info, err := s.api.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	s.logger.Debug("object stored", "key", key, "size", info.Size, "etag", info.ETag)
	return nil
}

// PresignGet returns a time-limited GET URL for the object
func (s *MinioBlobStore) PresignGet(ctx context.Context, key string) (string, error) {
	u, err := s.api.PresignedGetObject(ctx, s.bucket, key, s.ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return u.String(), nil
}

// Remove deletes an object. S3 treats deleting a missing key as success.
func (s *MinioBlobStore) Remove(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

// ParseEndpoint splits an endpoint that may include a scheme into the bare
// host[:port] minio expects and the TLS flag.
func ParseEndpoint(endpoint string, useSSL bool) (string, bool, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "", false, fmt.Errorf("S3_ENDPOINT is not set")
	}

	if !strings.Contains(endpoint, "://") {
		return strings.TrimSuffix(endpoint, "/"), useSSL, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("parse S3_ENDPOINT: %w", err)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("unsupported S3_ENDPOINT scheme %q", u.Scheme)
	}
}
