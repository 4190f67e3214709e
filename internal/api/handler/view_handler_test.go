package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/share2care/admin-console/internal/core/domain"
)

func TestViewHandler_SetFilter(t *testing.T) {
	views := &stubViewService{
		filterFn: func(ctx context.Context, sessionID, entity, name, value string) (any, error) {
			if sessionID != "sess-1" || entity != "users" || name != "search" || value != "Sharma" {
				t.Fatalf("unexpected args: %s %s %s %s", sessionID, entity, name, value)
			}
			return map[string]any{"page": 1}, nil
		},
	}
	h := NewViewHandler(views)

	c, rec := newContext(http.MethodPut, "/v1/views/users/filters", strings.NewReader(`{"criterion":"search","value":"Sharma"}`))
	c.SetParamNames("entity")
	c.SetParamValues("users")
	withSession(c)

	if err := h.SetFilter(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"page":1`) {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestViewHandler_SetFilter_UnknownCriterion(t *testing.T) {
	views := &stubViewService{
		filterFn: func(ctx context.Context, sessionID, entity, name, value string) (any, error) {
			return nil, domain.ErrUnknownCriterion
		},
	}
	h := NewViewHandler(views)

	c, _ := newContext(http.MethodPut, "/v1/views/events/filters", strings.NewReader(`{"criterion":"colour","value":"red"}`))
	c.SetParamNames("entity")
	c.SetParamValues("events")
	withSession(c)

	if err := h.SetFilter(c); !errors.Is(err, domain.ErrUnknownCriterion) {
		t.Fatalf("expected ErrUnknownCriterion, got %v", err)
	}
}

func TestViewHandler_SetPage_RejectsZero(t *testing.T) {
	views := &stubViewService{
		pageFn: func(ctx context.Context, sessionID, entity string, page int) (any, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	h := NewViewHandler(views)

	c, _ := newContext(http.MethodPut, "/v1/views/users/page", strings.NewReader(`{"page":0}`))
	c.SetParamNames("entity")
	c.SetParamValues("users")
	withSession(c)

	if err := h.SetPage(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestViewHandler_Refresh_UnknownView(t *testing.T) {
	views := &stubViewService{
		refreshFn: func(ctx context.Context, sessionID, entity string) (any, error) {
			return nil, domain.ErrUnknownView
		},
	}
	h := NewViewHandler(views)

	c, _ := newContext(http.MethodPost, "/v1/views/reports/refresh", nil)
	c.SetParamNames("entity")
	c.SetParamValues("reports")
	withSession(c)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
}
