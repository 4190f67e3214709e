package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = 24 * time.Hour

// BroadcastDedup reserves idempotency keys for mass messages.
// Key format: broadcast:dedup:<idempotency_key>
type BroadcastDedup struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBroadcastDedup wraps client. A non-positive ttl falls back to 24h.
func NewBroadcastDedup(client *redis.Client, ttl time.Duration) *BroadcastDedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &BroadcastDedup{client: client, ttl: ttl}
}

// Claim atomically reserves key. It returns false when another submission
// already holds it.
func (d *BroadcastDedup) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupKey(key), time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

func dedupKey(key string) string {
	return "broadcast:dedup:" + key
}
