package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

// trackedResource forwards to the API and drops the dashboard cache after
// every successful mutation.
type trackedResource[T any] struct {
	name  string
	inner ports.Resource[T]
	cache ports.Cache
	log   zerolog.Logger
}

func (r trackedResource[T]) List(ctx context.Context) ([]T, error) {
	out, err := r.inner.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return out, nil
}

func (r trackedResource[T]) Get(ctx context.Context, id string) (*T, error) {
	out, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.name, id, err)
	}
	return out, nil
}

func (r trackedResource[T]) Create(ctx context.Context, in *T) (*T, error) {
	out, err := r.inner.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r.name, err)
	}
	r.changed(ctx, "created", "")
	return out, nil
}

func (r trackedResource[T]) Update(ctx context.Context, id string, in *T) (*T, error) {
	out, err := r.inner.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	r.changed(ctx, "updated", id)
	return out, nil
}

func (r trackedResource[T]) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	r.changed(ctx, "deleted", id)
	return nil
}

func (r trackedResource[T]) changed(ctx context.Context, action, id string) {
	invalidate(ctx, r.cache, r.log, ports.CacheKeyDashboard)
	r.log.Info().Str("resource", r.name).Str("id", id).Msg(r.name + " " + action)
}

type catalogService struct {
	gw    ports.CatalogGateway
	cache ports.Cache
	log   zerolog.Logger
}

// NewCatalogService returns a CatalogService implementation.
func NewCatalogService(gw ports.CatalogGateway, cache ports.Cache, log zerolog.Logger) ports.CatalogService {
	return &catalogService{gw: gw, cache: cache, log: log}
}

func track[T any](s *catalogService, name string, inner ports.Resource[T]) ports.Resource[T] {
	return trackedResource[T]{name: name, inner: inner, cache: s.cache, log: s.log}
}

func (s *catalogService) Categories() ports.Resource[domain.Category] {
	return track(s, "category", s.gw.Categories())
}

func (s *catalogService) Pages() ports.Resource[domain.Page] {
	return track(s, "page", s.gw.Pages())
}

func (s *catalogService) FormOptions() ports.Resource[domain.FormOption] {
	return track(s, "form option", s.gw.FormOptions())
}

func (s *catalogService) Reviews() ports.Resource[domain.Review] {
	return track(s, "review", s.gw.Reviews())
}

func (s *catalogService) Contacts() ports.Resource[domain.Contact] {
	return track(s, "contact", s.gw.Contacts())
}

func (s *catalogService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	out, err := s.gw.ListSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return out, nil
}

func (s *catalogService) UpdateSetting(ctx context.Context, key, value string) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, domain.Invalid("setting key is required")
	}
	out, err := s.gw.UpdateSetting(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("update setting %s: %w", key, err)
	}
	s.log.Info().Str("key", key).Msg("setting updated")
	return out, nil
}

func (s *catalogService) ToggleFormOption(ctx context.Context, id string) (*domain.FormOption, error) {
	out, err := s.gw.ToggleFormOption(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle form option %s: %w", id, err)
	}
	return out, nil
}

func (s *catalogService) UpdateReviewStatus(ctx context.Context, id string, status domain.ReviewStatus) error {
	if !status.Valid() {
		return domain.Invalid("unknown review status " + string(status))
	}
	if err := s.gw.UpdateReviewStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update review %s status: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log, ports.CacheKeyDashboard)
	return nil
}

func (s *catalogService) UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) error {
	if !status.Valid() {
		return domain.Invalid("unknown contact status " + string(status))
	}
	if err := s.gw.UpdateContactStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update contact %s status: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log, ports.CacheKeyDashboard)
	return nil
}

func (s *catalogService) ReplyContact(ctx context.Context, id, reply string) error {
	if strings.TrimSpace(reply) == "" {
		return domain.Invalid("reply is required")
	}
	if err := s.gw.ReplyContact(ctx, id, reply); err != nil {
		return fmt.Errorf("reply to contact %s: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log, ports.CacheKeyDashboard)
	s.log.Info().Str("contact_id", id).Msg("contact replied")
	return nil
}
