package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/api/middleware"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

// newContext builds an echo context for a JSON request, with the validator
// installed the way the router does it.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context) *domain.Session {
	sess := &domain.Session{
		ID:        "sess-1",
		Token:     "api-token",
		Admin:     domain.AdminProfile{ID: "1", Name: "Asha", Email: "asha@share2care.org", Role: "admin"},
		LoggedIn:  true,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	c.Set(middleware.KeySession, sess)
	return sess
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("service should not be called")
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Resume(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionExpired
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

type stubUserService struct {
	listFn    func(ctx context.Context, q ports.ListQuery) (listing.Page[domain.User], error)
	getFn     func(ctx context.Context, id string) (*domain.User, error)
	statusFn  func(ctx context.Context, id string, status domain.UserStatus) error
	docsFn    func(ctx context.Context, id string) ([]ports.ResolvedDocument, error)
	historyFn func(ctx context.Context, id string) ([]domain.ApprovalRecord, error)
}

func (s *stubUserService) List(ctx context.Context, q ports.ListQuery) (listing.Page[domain.User], error) {
	return s.listFn(ctx, q)
}

func (s *stubUserService) All(context.Context) ([]domain.User, error) { return nil, nil }

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	return s.statusFn(ctx, id, status)
}

func (s *stubUserService) Delete(context.Context, string) error { return nil }

func (s *stubUserService) Documents(ctx context.Context, id string) ([]ports.ResolvedDocument, error) {
	return s.docsFn(ctx, id)
}

func (s *stubUserService) ApprovalHistory(ctx context.Context, id string) ([]domain.ApprovalRecord, error) {
	return s.historyFn(ctx, id)
}

type stubApprovalService struct {
	decideFn func(ctx context.Context, in ports.ApprovalInput) (*ports.ApprovalResult, error)
}

func (s *stubApprovalService) Decide(ctx context.Context, in ports.ApprovalInput) (*ports.ApprovalResult, error) {
	return s.decideFn(ctx, in)
}

type stubViewService struct {
	viewFn    func(ctx context.Context, sessionID, entity string) (any, error)
	filterFn  func(ctx context.Context, sessionID, entity, name, value string) (any, error)
	pageFn    func(ctx context.Context, sessionID, entity string, page int) (any, error)
	refreshFn func(ctx context.Context, sessionID, entity string) (any, error)
}

func (s *stubViewService) View(ctx context.Context, sessionID, entity string) (any, error) {
	return s.viewFn(ctx, sessionID, entity)
}

func (s *stubViewService) SetFilter(ctx context.Context, sessionID, entity, name, value string) (any, error) {
	return s.filterFn(ctx, sessionID, entity, name, value)
}

func (s *stubViewService) SetPage(ctx context.Context, sessionID, entity string, page int) (any, error) {
	return s.pageFn(ctx, sessionID, entity, page)
}

func (s *stubViewService) Refresh(ctx context.Context, sessionID, entity string) (any, error) {
	return s.refreshFn(ctx, sessionID, entity)
}

func (s *stubViewService) Drop(string) {}

type stubMessagingService struct {
	broadcastFn func(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error)
	recentFn    func(ctx context.Context, limit int) ([]domain.Broadcast, error)
}

func (s *stubMessagingService) Broadcast(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error) {
	return s.broadcastFn(ctx, in)
}

func (s *stubMessagingService) Recent(ctx context.Context, limit int) ([]domain.Broadcast, error) {
	return s.recentFn(ctx, limit)
}

type stubResource[T any] struct {
	items   []T
	created *T
}

func (s *stubResource[T]) List(context.Context) ([]T, error) { return s.items, nil }

func (s *stubResource[T]) Get(context.Context, string) (*T, error) { return nil, domain.ErrNotFound }

func (s *stubResource[T]) Create(_ context.Context, in *T) (*T, error) {
	s.created = in
	return in, nil
}

func (s *stubResource[T]) Update(_ context.Context, _ string, in *T) (*T, error) { return in, nil }

func (s *stubResource[T]) Delete(context.Context, string) error { return nil }
