package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

// MinIOClient presigns download links for converted videos
type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL *url.URL // optional, e.g. https://videos.example.com behind a reverse proxy
	expiry    time.Duration
}

// NewMinIOClient creates a new MinIO client. Links expire after expiry.
func NewMinIOClient(cfg *config.StorageConfig, expiry time.Duration) (*MinIOClient, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	client := &MinIOClient{
		client: minioClient,
		bucket: cfg.BucketName,
		expiry: expiry,
	}

	if cfg.PublicURL != "" {
		u, err := url.Parse(strings.TrimRight(cfg.PublicURL, "/"))
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid storage public URL %q", cfg.PublicURL)
		}
		client.publicURL = u
	}

	return client, nil
}

// DownloadURL returns a presigned GET link for a video key
func (m *MinIOClient) DownloadURL(ctx context.Context, filename string) (string, error) {
	key := strings.TrimLeft(filename, "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty object key", entities.ErrRecordPending)
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate presigned URL: %v", entities.ErrStorage, err)
	}

	// Swap the internal endpoint for the public one, keeping /bucket/object?signature
	if m.publicURL != nil {
		u.Scheme = m.publicURL.Scheme
		u.Host = m.publicURL.Host
		u.Path = m.publicURL.Path + u.Path
		u.RawPath = ""
	}

	return u.String(), nil
}

// Ping checks that the bucket is reachable
func (m *MinIOClient) Ping(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}
