package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

type stubCatalogGateway struct {
	categories *stubResource[domain.Category]
	replies    []string
}

func (g *stubCatalogGateway) Categories() ports.Resource[domain.Category] { return g.categories }
func (g *stubCatalogGateway) Pages() ports.Resource[domain.Page]          { return &stubResource[domain.Page]{} }
func (g *stubCatalogGateway) FormOptions() ports.Resource[domain.FormOption] {
	return &stubResource[domain.FormOption]{}
}
func (g *stubCatalogGateway) Reviews() ports.Resource[domain.Review] {
	return &stubResource[domain.Review]{}
}
func (g *stubCatalogGateway) Contacts() ports.Resource[domain.Contact] {
	return &stubResource[domain.Contact]{}
}
func (g *stubCatalogGateway) ListSettings(context.Context) ([]domain.Setting, error) { return nil, nil }
func (g *stubCatalogGateway) UpdateSetting(_ context.Context, key, value string) (*domain.Setting, error) {
	return &domain.Setting{Key: key, Value: value}, nil
}
func (g *stubCatalogGateway) ToggleFormOption(context.Context, string) (*domain.FormOption, error) {
	return &domain.FormOption{}, nil
}
func (g *stubCatalogGateway) UpdateReviewStatus(context.Context, string, domain.ReviewStatus) error {
	return nil
}
func (g *stubCatalogGateway) UpdateContactStatus(context.Context, string, domain.ContactStatus) error {
	return nil
}
func (g *stubCatalogGateway) ReplyContact(_ context.Context, id, reply string) error {
	g.replies = append(g.replies, id+":"+reply)
	return nil
}

func TestCatalog_CreateCategoryInvalidatesDashboard(t *testing.T) {
	gw := &stubCatalogGateway{categories: &stubResource[domain.Category]{}}
	cache := newStubCache()
	cache.data[ports.CacheKeyDashboard] = []byte("{}")
	svc := NewCatalogService(gw, cache, zerolog.Nop())

	if _, err := svc.Categories().Create(context.Background(), &domain.Category{Name: "Health"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok := cache.data[ports.CacheKeyDashboard]; ok {
		t.Fatalf("dashboard cache should be invalidated")
	}
}

func TestCatalog_GetWrapsNotFound(t *testing.T) {
	gw := &stubCatalogGateway{categories: &stubResource[domain.Category]{}}
	svc := NewCatalogService(gw, newStubCache(), zerolog.Nop())

	if _, err := svc.Categories().Get(context.Background(), "9"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_Validation(t *testing.T) {
	gw := &stubCatalogGateway{}
	svc := NewCatalogService(gw, newStubCache(), zerolog.Nop())
	ctx := context.Background()

	if err := svc.ReplyContact(ctx, "1", "  "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty reply: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateReviewStatus(ctx, "1", "spam"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad review status: expected ErrValidation, got %v", err)
	}
	if err := svc.UpdateContactStatus(ctx, "1", "archived"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad contact status: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UpdateSetting(ctx, " ", "x"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty key: expected ErrValidation, got %v", err)
	}
	if len(gw.replies) != 0 {
		t.Fatalf("invalid input must not reach the API")
	}

	if err := svc.ReplyContact(ctx, "1", "Thanks for writing"); err != nil {
		t.Fatalf("reply failed: %v", err)
	}
}
