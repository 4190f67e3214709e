package ports

import (
	"context"
	"time"

	"github.com/share2care/admin-console/internal/core/domain"
)

// SessionStore persists admin sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionExpired when the session is unknown.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// Cache holds short-lived copies of API responses.
type Cache interface {
	// Get decodes the cached value into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache keys shared by the services.
const (
	CacheKeyUsers     = "users"
	CacheKeyEvents    = "events"
	CacheKeyDashboard = "dashboard"
)

// BroadcastDedup guards mass messages against double submission.
type BroadcastDedup interface {
	// Claim reserves key and reports false when it was already taken.
	Claim(ctx context.Context, key string) (bool, error)
}

// AuditRepository records admin decisions for later review.
type AuditRepository interface {
	RecordApproval(ctx context.Context, rec *domain.ApprovalRecord) error
	ApprovalHistory(ctx context.Context, userID string) ([]domain.ApprovalRecord, error)
	RecordBroadcast(ctx context.Context, b *domain.Broadcast) error
	RecentBroadcasts(ctx context.Context, limit int) ([]domain.Broadcast, error)
}

// DocumentResolver turns stored document paths into fetchable URLs.
type DocumentResolver interface {
	Resolve(ctx context.Context, path string) (string, error)
}
