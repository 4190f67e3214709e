package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

func newEventSvc(events ...domain.Event) (*stubEventGateway, *stubCache, ports.EventService) {
	gw := &stubEventGateway{events: &stubResource[domain.Event]{items: events}}
	cache := newStubCache()
	return gw, cache, NewEventService(gw, cache, nil, 10, zerolog.Nop())
}

func TestEventService_List_FiltersByFeatured(t *testing.T) {
	_, _, svc := newEventSvc(
		domain.Event{ID: "1", Title: "Beach cleanup", IsFeatured: true},
		domain.Event{ID: "2", Title: "Food drive"},
	)

	page, err := svc.List(context.Background(), ports.ListQuery{Criteria: listing.Criteria{Secondary: "true"}, Page: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalItems != 1 || page.Items[0].ID != "1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestEventService_Create_DefaultsStatusAndInvalidates(t *testing.T) {
	gw, cache, svc := newEventSvc()
	cache.data[ports.CacheKeyEvents] = []byte("[]")

	created, err := svc.Create(context.Background(), &domain.Event{Title: "Tree planting"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.EventActive {
		t.Fatalf("status = %q, want active", created.Status)
	}
	if len(gw.events.created) != 1 {
		t.Fatalf("event not forwarded")
	}
	if _, ok := cache.data[ports.CacheKeyEvents]; ok {
		t.Fatalf("events cache should be invalidated")
	}
}

func TestEventService_UpdateStatus_Validates(t *testing.T) {
	_, _, svc := newEventSvc()

	if err := svc.UpdateStatus(context.Background(), "1", "archived"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), "1", domain.EventCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventService_SetFeatured(t *testing.T) {
	gw, _, svc := newEventSvc()

	if err := svc.SetFeatured(context.Background(), "5", true); err != nil {
		t.Fatalf("feature failed: %v", err)
	}
	if !gw.featured["5"] {
		t.Fatalf("event 5 should be featured")
	}
}

func TestEventService_Get_NotFound(t *testing.T) {
	_, _, svc := newEventSvc()

	if _, err := svc.Get(context.Background(), "404"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
