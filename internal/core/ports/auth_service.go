package ports

import (
	"context"

	"github.com/share2care/admin-console/internal/core/domain"
)

// LoginResult is returned after a successful sign-in.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// AuthService manages the admin session lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Resume loads and validates the session behind a console token's id.
	Resume(ctx context.Context, sessionID string) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
}
