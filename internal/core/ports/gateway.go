package ports

import (
	"context"

	"github.com/share2care/admin-console/internal/core/domain"
)

// Resource is CRUD access to one collection of the Share2care API.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, in *T) (*T, error)
	Update(ctx context.Context, id string, in *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// AuthGateway verifies administrator credentials against the API.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (token string, admin *domain.AdminProfile, err error)
}

// UserGateway covers the volunteer endpoints.
type UserGateway interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUserStatus(ctx context.Context, id string, status domain.UserStatus) error
	// UpdateApproval persists an approval decision. The returned user may be
	// nil when the API does not echo the record back.
	UpdateApproval(ctx context.Context, id string, status domain.ApprovalStatus, comments string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// EventGateway covers the event endpoints.
type EventGateway interface {
	Events() Resource[domain.Event]
	UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error
	SetEventFeatured(ctx context.Context, id string, featured bool) error
}

// CatalogGateway covers the smaller admin collections.
type CatalogGateway interface {
	Categories() Resource[domain.Category]
	Pages() Resource[domain.Page]
	FormOptions() Resource[domain.FormOption]
	Reviews() Resource[domain.Review]
	Contacts() Resource[domain.Contact]

	ListSettings(ctx context.Context) ([]domain.Setting, error)
	UpdateSetting(ctx context.Context, key, value string) (*domain.Setting, error)
	ToggleFormOption(ctx context.Context, id string) (*domain.FormOption, error)
	UpdateReviewStatus(ctx context.Context, id string, status domain.ReviewStatus) error
	UpdateContactStatus(ctx context.Context, id string, status domain.ContactStatus) error
	ReplyContact(ctx context.Context, id, reply string) error
}

// Messenger delivers emails and in-app notifications through the API.
type Messenger interface {
	SendEmail(ctx context.Context, email domain.Email) error
	SendNotification(ctx context.Context, n domain.Notification) error
}

// StatsGateway exposes the API's aggregate endpoints.
type StatsGateway interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	Report(ctx context.Context, from, to string) (*domain.Report, error)
}
