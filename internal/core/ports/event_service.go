package ports

import (
	"context"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
)

// EventService is the event administration use case.
type EventService interface {
	List(ctx context.Context, q ListQuery) (listing.Page[domain.Event], error)
	All(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, id string, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error
	SetFeatured(ctx context.Context, id string, featured bool) error
}
