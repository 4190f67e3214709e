package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

func TestMessageHandler_Send_Accepted(t *testing.T) {
	svc := &stubMessagingService{
		broadcastFn: func(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error) {
			if in.IdempotencyKey != "drive-2024-05" || in.SentBy != "asha@share2care.org" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Channel != domain.ChannelEmail || !in.ApprovedOnly {
				t.Fatalf("unexpected audience: %+v", in)
			}
			return &domain.Broadcast{ID: "b-1", Channel: in.Channel, Recipients: 42}, nil
		},
	}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodPost, "/v1/messages",
		strings.NewReader(`{"channel":"email","subject":"Blood drive","message":"Join us on Sunday","approved_only":true}`))
	c.Request().Header.Set(headerIdempotencyKey, "drive-2024-05")
	withSession(c)

	if err := h.Send(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	var resp acceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 42 || resp.Broadcast == nil || resp.Broadcast.ID != "b-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMessageHandler_Send_Duplicate(t *testing.T) {
	svc := &stubMessagingService{
		broadcastFn: func(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error) {
			return nil, domain.ErrDuplicateBroadcast
		},
	}
	h := NewMessageHandler(svc)

	c, _ := newContext(http.MethodPost, "/v1/messages", strings.NewReader(`{"subject":"Hi","message":"Hello"}`))
	withSession(c)

	if err := h.Send(c); !errors.Is(err, domain.ErrDuplicateBroadcast) {
		t.Fatalf("expected ErrDuplicateBroadcast, got %v", err)
	}
}

func TestMessageHandler_Send_InvalidChannel(t *testing.T) {
	svc := &stubMessagingService{
		broadcastFn: func(ctx context.Context, in ports.BroadcastInput) (*domain.Broadcast, error) {
			mustNotCall(t)
			return nil, nil
		},
	}
	h := NewMessageHandler(svc)

	c, _ := newContext(http.MethodPost, "/v1/messages", strings.NewReader(`{"channel":"sms","subject":"Hi","message":"Hello"}`))
	withSession(c)

	if err := h.Send(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMessageHandler_Recent_Limit(t *testing.T) {
	var got int
	svc := &stubMessagingService{
		recentFn: func(ctx context.Context, limit int) ([]domain.Broadcast, error) {
			got = limit
			return []domain.Broadcast{}, nil
		},
	}
	h := NewMessageHandler(svc)

	c, rec := newContext(http.MethodGet, "/v1/messages", nil)
	if err := h.Recent(c); err != nil || rec.Code != http.StatusOK || got != 20 {
		t.Fatalf("default limit: err=%v code=%d limit=%d", err, rec.Code, got)
	}

	c, _ = newContext(http.MethodGet, "/v1/messages?limit=5", nil)
	if err := h.Recent(c); err != nil || got != 5 {
		t.Fatalf("explicit limit: err=%v limit=%d", err, got)
	}

	c, _ = newContext(http.MethodGet, "/v1/messages?limit=-1", nil)
	var he *echo.HTTPError
	if err := h.Recent(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %v", err)
	}
}
