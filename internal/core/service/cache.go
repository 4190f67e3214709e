package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/ports"
)

// cachedList serves key from cache, falling back to fetch on a miss. Cache
// errors are logged and never fail the read.
func cachedList[T any](ctx context.Context, cache ports.Cache, key string, log zerolog.Logger, fetch func(context.Context) ([]T, error)) ([]T, error) {
	var recs []T
	if found, err := cache.Get(ctx, key, &recs); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	} else if found {
		return recs, nil
	}

	recs, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, recs); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return recs, nil
}

// noStaleViews is used when no session views need invalidating.
type noStaleViews struct{}

func (noStaleViews) MarkStale(string) {}

func orNoViews(v ports.ViewInvalidator) ports.ViewInvalidator {
	if v == nil {
		return noStaleViews{}
	}
	return v
}

func invalidate(ctx context.Context, cache ports.Cache, log zerolog.Logger, keys ...string) {
	if err := cache.Invalidate(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
