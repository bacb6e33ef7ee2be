package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3001/", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, []string{"Decimal"}, cfg.Payload.WrapperTokens)
	assert.Equal(t, "surface", cfg.Report.DecodeFailure)
	assert.Equal(t, "memory", cfg.Snapshot.Store)
	assert.Equal(t, "api", cfg.Download.Mode)
	assert.Equal(t, 300*time.Second, cfg.Download.Expiry)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/prod/")
	t.Setenv("PAYLOAD_WRAPPER_TOKENS", "Decimal,Wrapper")
	t.Setenv("REPORT_DECODE_FAILURE", "blank")
	t.Setenv("SNAPSHOT_STORE", "redis")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("DOWNLOAD_MODE", "minio")
	t.Setenv("WATCH_INITIAL_INTERVAL", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/prod/", cfg.Backend.BaseURL)
	assert.Equal(t, []string{"Decimal", "Wrapper"}, cfg.Payload.WrapperTokens)
	assert.Equal(t, "blank", cfg.Report.DecodeFailure)
	assert.Equal(t, "redis", cfg.Snapshot.Store)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, "minio", cfg.Download.Mode)
	assert.Equal(t, 2*time.Second, cfg.Watch.InitialInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"REPORT_DECODE_FAILURE": "ignore",
		"DOWNLOAD_MODE":         "ftp",
		"BACKEND_BASE_URL":      "not a url",
		"SNAPSHOT_STORE":        "disk",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidate_WatchIntervals(t *testing.T) {
	t.Setenv("WATCH_INITIAL_INTERVAL", "2m")
	t.Setenv("WATCH_MAX_INTERVAL", "1m")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_ProductionSecret(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_ACCESS_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}
