package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

type eventService struct {
	gw       ports.EventGateway
	cache    ports.Cache
	views    ports.ViewInvalidator
	pageSize int
	log      zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(gw ports.EventGateway, cache ports.Cache, views ports.ViewInvalidator, pageSize int, log zerolog.Logger) ports.EventService {
	return &eventService{gw: gw, cache: cache, views: orNoViews(views), pageSize: pageSize, log: log}
}

func (s *eventService) All(ctx context.Context) ([]domain.Event, error) {
	events, err := cachedList(ctx, s.cache, ports.CacheKeyEvents, s.log, s.gw.Events().List)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) List(ctx context.Context, q ports.ListQuery) (listing.Page[domain.Event], error) {
	events, err := s.All(ctx)
	if err != nil {
		return listing.Page[domain.Event]{}, err
	}
	return listing.Apply(events, q.Criteria, q.Page, s.pageSize, listing.Events), nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	e, err := s.gw.Events().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e.Status == "" {
		e.Status = domain.EventActive
	}
	if !e.Status.Valid() {
		return nil, domain.Invalid("unknown event status " + string(e.Status))
	}
	created, err := s.gw.Events().Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.changed(ctx)
	s.log.Info().Str("event_id", created.ID.String()).Str("title", e.Title).Msg("event created")
	return created, nil
}

func (s *eventService) Update(ctx context.Context, id string, e *domain.Event) (*domain.Event, error) {
	if e.Status != "" && !e.Status.Valid() {
		return nil, domain.Invalid("unknown event status " + string(e.Status))
	}
	updated, err := s.gw.Events().Update(ctx, id, e)
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}
	s.changed(ctx)
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.gw.Events().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	s.changed(ctx)
	s.log.Info().Str("event_id", id).Msg("event deleted")
	return nil
}

func (s *eventService) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	if !status.Valid() {
		return domain.Invalid("unknown event status " + string(status))
	}
	if err := s.gw.UpdateEventStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update event %s status: %w", id, err)
	}
	s.changed(ctx)
	return nil
}

func (s *eventService) SetFeatured(ctx context.Context, id string, featured bool) error {
	if err := s.gw.SetEventFeatured(ctx, id, featured); err != nil {
		return fmt.Errorf("feature event %s: %w", id, err)
	}
	s.changed(ctx)
	return nil
}

func (s *eventService) changed(ctx context.Context) {
	invalidate(ctx, s.cache, s.log, ports.CacheKeyEvents, ports.CacheKeyDashboard)
	s.views.MarkStale(ViewEvents)
}
