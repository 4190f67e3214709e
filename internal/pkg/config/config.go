package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DocumentsBackendURL = "url"
	DocumentsBackendS3  = "s3"
)

type Config struct {
	Port        string        `env:"PORT,        default=8080"`
	Env         string        `env:"ENV,         default=development"`
	JWTSecret   string        `env:"JWT_SECRET"`
	LogLevel    string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL  time.Duration `env:"SESSION_TTL, default=12h"`
	CORSOrigins []string      `env:"CORS_ALLOW_ORIGINS"`

	Gateway   GatewayConfig
	Documents DocumentsConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Listing   ListingConfig
	Messaging MessagingConfig
}

// GatewayConfig points at the Share2care REST API.
type GatewayConfig struct {
	BaseURL       string        `env:"GATEWAY_BASE_URL, default=http://localhost:8000/api"`
	Timeout       time.Duration `env:"GATEWAY_TIMEOUT,  default=10s"`
	RatePerSecond float64       `env:"GATEWAY_RATE,     default=20"`
	Burst         int           `env:"GATEWAY_BURST,    default=10"`
}

// DocumentsConfig selects how stored document paths become links.
type DocumentsConfig struct {
	Backend    string        `env:"DOCUMENTS_BACKEND,     default=url"`
	BaseURL    string        `env:"DOCUMENTS_BASE_URL,    default=http://localhost:8000/storage"`
	S3Region   string        `env:"DOCUMENTS_S3_REGION,   default=us-east-1"`
	S3Bucket   string        `env:"DOCUMENTS_S3_BUCKET"`
	S3Endpoint string        `env:"DOCUMENTS_S3_ENDPOINT"`
	S3Access   string        `env:"DOCUMENTS_S3_ACCESS_KEY"`
	S3Secret   string        `env:"DOCUMENTS_S3_SECRET_KEY"`
	PresignTTL time.Duration `env:"DOCUMENTS_PRESIGN_TTL, default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=share2care_admin"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type ListingConfig struct {
	PageSize int           `env:"LISTING_PAGE_SIZE, default=10"`
	CacheTTL time.Duration `env:"CACHE_TTL,         default=30s"`
	// ViewIdleTTL drops per-session listing views that have not been used
	// for this long.
	ViewIdleTTL time.Duration `env:"LISTING_VIEW_IDLE_TTL, default=30m"`
}

type MessagingConfig struct {
	Workers       int           `env:"MESSAGING_WORKERS,   default=4"`
	RatePerSecond float64       `env:"MESSAGING_RATE,      default=5"`
	DedupTTL      time.Duration `env:"MESSAGING_DEDUP_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through l and checks it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("LISTING_PAGE_SIZE must be positive, got %d", c.Listing.PageSize)
	}
	if c.Messaging.Workers < 1 {
		return fmt.Errorf("MESSAGING_WORKERS must be positive, got %d", c.Messaging.Workers)
	}
	switch c.Documents.Backend {
	case DocumentsBackendURL:
	case DocumentsBackendS3:
		if c.Documents.S3Bucket == "" {
			return fmt.Errorf("DOCUMENTS_S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown DOCUMENTS_BACKEND %q", c.Documents.Backend)
	}
	return nil
}

// Development reports whether the service runs in a local environment.
func (c *Config) Development() bool {
	return c.Env == "development" || c.Env == "local"
}
