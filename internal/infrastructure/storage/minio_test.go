package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Endpoint:        "minio.internal:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		BucketName:      "interview-records",
		Region:          "us-east-1",
	}
}

func TestDownloadURL_Presigns(t *testing.T) {
	client, err := NewMinIOClient(testStorageConfig(), 300*time.Second)
	require.NoError(t, err)

	link, err := client.DownloadURL(context.Background(), "converted/rec-1.mp4")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "minio.internal:9000", u.Host)
	assert.Equal(t, "/interview-records/converted/rec-1.mp4", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestDownloadURL_PublicURL(t *testing.T) {
	cfg := testStorageConfig()
	cfg.PublicURL = "https://videos.example.com/"

	client, err := NewMinIOClient(cfg, time.Minute)
	require.NoError(t, err)

	link, err := client.DownloadURL(context.Background(), "converted/rec-1.mp4")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "videos.example.com", u.Host)
	assert.Equal(t, "/interview-records/converted/rec-1.mp4", u.Path)
	assert.Equal(t, "60", u.Query().Get("X-Amz-Expires"))
}

func TestDownloadURL_EmptyKey(t *testing.T) {
	client, err := NewMinIOClient(testStorageConfig(), time.Minute)
	require.NoError(t, err)

	_, err = client.DownloadURL(context.Background(), "")
	assert.True(t, errors.Is(err, entities.ErrRecordPending))
}

func TestDownloadURL_PresignFailure(t *testing.T) {
	// presigned links may not outlive seven days
	client, err := NewMinIOClient(testStorageConfig(), 8*24*time.Hour)
	require.NoError(t, err)

	_, err = client.DownloadURL(context.Background(), "converted/rec-1.mp4")
	assert.True(t, errors.Is(err, entities.ErrStorage), "got %v", err)
}

func TestNewMinIOClient_InvalidPublicURL(t *testing.T) {
	cfg := testStorageConfig()
	cfg.PublicURL = "videos.example.com"

	_, err := NewMinIOClient(cfg, time.Minute)
	assert.Error(t, err)
}
