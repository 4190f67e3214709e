package ports

import (
	"context"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
)

// ListQuery is a one-shot filtered listing request.
type ListQuery struct {
	Criteria listing.Criteria
	Page     int
}

// ApprovalInput is an admin's approval decision for one user.
type ApprovalInput struct {
	UserID    string
	Status    domain.ApprovalStatus
	Comments  string
	DecidedBy string
}

// ApprovalResult reports the decision and how each step went.
type ApprovalResult struct {
	UserID   string                `json:"user_id"`
	Status   domain.ApprovalStatus `json:"status"`
	User     *domain.User          `json:"user,omitempty"`
	Steps    []domain.StepOutcome  `json:"steps"`
	Warnings []string              `json:"warnings,omitempty"`
}

// ResolvedDocument is a user document with a fetchable URL.
type ResolvedDocument struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// UserService is the volunteer administration use case.
type UserService interface {
	List(ctx context.Context, q ListQuery) (listing.Page[domain.User], error)
	All(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error
	Delete(ctx context.Context, id string) error
	Documents(ctx context.Context, id string) ([]ResolvedDocument, error)
	ApprovalHistory(ctx context.Context, id string) ([]domain.ApprovalRecord, error)
}

// ApprovalService runs the approval workflow.
type ApprovalService interface {
	Decide(ctx context.Context, in ApprovalInput) (*ApprovalResult, error)
}
