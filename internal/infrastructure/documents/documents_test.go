package documents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/share2care/admin-console/internal/core/domain"
)

func TestBaseURLResolver(t *testing.T) {
	r, err := NewBaseURLResolver("https://api.share2care.org/uploads/")
	require.NoError(t, err)

	cases := []struct {
		name string
		path string
		want string
	}{
		{"relative", "documents/id-proof.pdf", "https://api.share2care.org/uploads/documents/id-proof.pdf"},
		{"leading slash", "/documents/a.png", "https://api.share2care.org/uploads/documents/a.png"},
		{"backslashes", `documents\b.png`, "https://api.share2care.org/uploads/documents/b.png"},
		{"absolute passes through", "https://cdn.example.com/x.pdf", "https://cdn.example.com/x.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBaseURLResolver_RejectsBadPaths(t *testing.T) {
	r, err := NewBaseURLResolver("https://api.share2care.org")
	require.NoError(t, err)

	for _, p := range []string{"", "   ", "../secrets", "documents/../../etc/passwd"} {
		_, err := r.Resolve(context.Background(), p)
		assert.ErrorIs(t, err, domain.ErrValidation, p)
	}
}

func TestNewBaseURLResolver_InvalidURL(t *testing.T) {
	_, err := NewBaseURLResolver("uploads")
	assert.Error(t, err)
}

func TestS3Resolver_PresignsGet(t *testing.T) {
	r, err := NewS3Resolver(context.Background(), S3Config{
		Region:    "us-east-1",
		Bucket:    "share2care-docs",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	got, err := r.Resolve(context.Background(), "documents/id-proof.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "http://127.0.0.1:9000/share2care-docs/documents/id-proof.pdf?"), got)
	assert.Contains(t, got, "X-Amz-Signature=")
	assert.Contains(t, got, "X-Amz-Expires=900")
}

func TestNewS3Resolver_RequiresBucket(t *testing.T) {
	_, err := NewS3Resolver(context.Background(), S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}
