package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

type stubAuthService struct {
	sessions map[string]*domain.Session
}

func (s *stubAuthService) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, errors.New("not used")
}

func (s *stubAuthService) Resume(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func TestSession_AttachesTokenAndSession(t *testing.T) {
	auth := &stubAuthService{sessions: map[string]*domain.Session{
		"s1": {ID: "s1", Token: "api-token", LoggedIn: true, Admin: domain.AdminProfile{Role: domain.RoleAdmin}},
	}}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(KeySessionID, "s1")

	var token string
	handler := Session(auth)(func(c echo.Context) error {
		token = ports.TokenFrom(c.Request().Context())
		if _, ok := c.Get(KeySession).(*domain.Session); !ok {
			t.Fatalf("session not set")
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if token != "api-token" {
		t.Fatalf("token = %q, want api-token", token)
	}
	if c.Get(KeyRole) != domain.RoleAdmin {
		t.Fatalf("role not taken from session")
	}
}

func TestSession_UnknownSession(t *testing.T) {
	auth := &stubAuthService{sessions: map[string]*domain.Session{}}
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set(KeySessionID, "gone")

	handler := Session(auth)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}
