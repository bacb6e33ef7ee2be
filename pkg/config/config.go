package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Payload  PayloadConfig
	Report   ReportConfig
	Snapshot SnapshotConfig
	Redis    RedisConfig
	Download DownloadConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Log      LogConfig
	Watch    WatchConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `split_words:"true" default:"8080"`
	Host            string   `split_words:"true" default:"0.0.0.0"`
	Environment     string   `split_words:"true" default:"development" validate:"oneof=development staging production"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:3000"`
	ShutdownTimeout int      `split_words:"true" default:"10" validate:"gte=0"`
}

// BackendConfig points at the records API
type BackendConfig struct {
	BaseURL string        `split_words:"true" default:"http://localhost:3001/" validate:"required,url"`
	Timeout time.Duration `split_words:"true" default:"30s" validate:"gt=0"`
}

// PayloadConfig tunes the payload sanitizer
type PayloadConfig struct {
	WrapperTokens []string `split_words:"true" default:"Decimal" validate:"min=1,dive,required,alphanum"`
}

// ReportConfig controls report inspection
type ReportConfig struct {
	// DecodeFailure is "surface" (return the error) or "blank" (show empty fields)
	DecodeFailure string `split_words:"true" default:"surface" validate:"oneof=surface blank"`
}

// SnapshotConfig selects where per-user record lists live
type SnapshotConfig struct {
	Store string        `split_words:"true" default:"memory" validate:"oneof=memory redis"`
	TTL   time.Duration `split_words:"true" default:"30m" validate:"gt=0"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `split_words:"true" default:"localhost"`
	Port     string `split_words:"true" default:"6379"`
	Password string `split_words:"true"`
	DB       int    `split_words:"true" default:"0"`
}

// DownloadConfig selects how video keys become playable links
type DownloadConfig struct {
	Mode   string        `split_words:"true" default:"api" validate:"oneof=api minio"`
	Expiry time.Duration `split_words:"true" default:"300s" validate:"gt=0"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string `split_words:"true" default:"localhost:9000"`
	AccessKeyID     string `split_words:"true" default:"minioadmin"`
	SecretAccessKey string `split_words:"true" default:"minioadmin"`
	BucketName      string `split_words:"true" default:"interview-records"`
	Region          string `split_words:"true" default:"us-east-1"`
	UseSSL          bool   `split_words:"true" default:"false"`
	PublicURL       string `split_words:"true"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string `split_words:"true" default:"your-access-secret-change-in-production" validate:"required"`
	Issuer       string `split_words:"true"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `split_words:"true" default:"info" validate:"oneof=debug info warn error"`
	Format     string `split_words:"true" default:"json" validate:"oneof=json console"`
	File       string `split_words:"true"`
	MaxSizeMB  int    `split_words:"true" default:"100" validate:"gt=0"`
	MaxBackups int    `split_words:"true" default:"5" validate:"gte=0"`
	MaxAgeDays int    `split_words:"true" default:"28" validate:"gte=0"`
}

// WatchConfig controls the auto-refresh schedule for pending records
type WatchConfig struct {
	InitialInterval time.Duration `split_words:"true" default:"5s" validate:"gt=0"`
	MaxInterval     time.Duration `split_words:"true" default:"1m" validate:"gt=0"`
	MaxElapsed      time.Duration `split_words:"true" default:"15m" validate:"gte=0"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Watch.MaxInterval < c.Watch.InitialInterval {
		return fmt.Errorf("WATCH_MAX_INTERVAL must not be below WATCH_INITIAL_INTERVAL")
	}
	if c.Server.Environment == "production" && c.JWT.AccessSecret == "your-access-secret-change-in-production" {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddr returns the HTTP listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
