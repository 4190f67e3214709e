// Package documents resolves the relative document paths stored on volunteer
// records into URLs an admin can open.
package documents

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const defaultPresignTTL = 15 * time.Minute

var (
	_ ports.DocumentResolver = (*BaseURLResolver)(nil)
	_ ports.DocumentResolver = (*S3Resolver)(nil)
)

// BaseURLResolver joins paths onto the document storage origin.
type BaseURLResolver struct {
	base *url.URL
}

func NewBaseURLResolver(baseURL string) (*BaseURLResolver, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("documents: invalid base url %q", baseURL)
	}
	return &BaseURLResolver{base: u}, nil
}

func (r *BaseURLResolver) Resolve(_ context.Context, path string) (string, error) {
	if abs, ok := absolute(path); ok {
		return abs, nil
	}
	key, err := objectKey(path)
	if err != nil {
		return "", err
	}
	return r.base.JoinPath(strings.Split(key, "/")...).String(), nil
}

// S3Config points at an S3-compatible bucket (AWS or MinIO).
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	TTL       time.Duration
}

// S3Resolver presigns GET requests for document objects.
type S3Resolver struct {
	presign *s3.PresignClient
	bucket  string
	ttl     time.Duration
}

func NewS3Resolver(ctx context.Context, cfg S3Config) (*S3Resolver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("documents: s3 bucket is required")
	}
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("documents: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &S3Resolver{presign: s3.NewPresignClient(client), bucket: cfg.Bucket, ttl: ttl}, nil
}

func (r *S3Resolver) Resolve(ctx context.Context, path string) (string, error) {
	if abs, ok := absolute(path); ok {
		return abs, nil
	}
	key, err := objectKey(path)
	if err != nil {
		return "", err
	}
	req, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(r.ttl))
	if err != nil {
		return "", fmt.Errorf("documents: presign %s: %w", key, err)
	}
	return req.URL, nil
}

func absolute(path string) (string, bool) {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return path, true
	}
	return "", false
}

// objectKey normalises a stored path and refuses anything that escapes the
// storage root.
func objectKey(path string) (string, error) {
	key := strings.TrimLeft(strings.ReplaceAll(strings.TrimSpace(path), "\\", "/"), "/")
	if key == "" {
		return "", domain.Invalid("document path is empty")
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", domain.Invalid("document path must stay inside the storage root")
		}
	}
	return key, nil
}
