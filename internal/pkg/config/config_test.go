package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.Listing.PageSize)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, DocumentsBackendURL, cfg.Documents.Backend)
	assert.Equal(t, 4, cfg.Messaging.Workers)
	assert.True(t, cfg.Development())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s3cret",
		"ENV":                 "production",
		"LISTING_PAGE_SIZE":   "25",
		"CORS_ALLOW_ORIGINS":  "https://admin.share2care.org,http://localhost:3000",
		"DOCUMENTS_BACKEND":   "s3",
		"DOCUMENTS_S3_BUCKET": "volunteer-docs",
		"GATEWAY_RATE":        "2.5",
	}))
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Listing.PageSize)
	assert.Equal(t, []string{"https://admin.share2care.org", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "volunteer-docs", cfg.Documents.S3Bucket)
	assert.InDelta(t, 2.5, cfg.Gateway.RatePerSecond, 0.0001)
	assert.False(t, cfg.Development())
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":    {},
		"zero page size":    {"JWT_SECRET": "x", "LISTING_PAGE_SIZE": "0"},
		"s3 without bucket": {"JWT_SECRET": "x", "DOCUMENTS_BACKEND": "s3"},
		"unknown backend":   {"JWT_SECRET": "x", "DOCUMENTS_BACKEND": "ftp"},
		"bad duration":      {"JWT_SECRET": "x", "SESSION_TTL": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
