package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// MessageHandler serves mass messaging.
type MessageHandler struct {
	service ports.MessagingService
}

func NewMessageHandler(service ports.MessagingService) *MessageHandler {
	return &MessageHandler{service: service}
}

type broadcastRequest struct {
	Channel      domain.Channel `json:"channel"       validate:"omitempty,oneof=email notification both"`
	Subject      string         `json:"subject"       validate:"required"`
	Message      string         `json:"message"       validate:"required"`
	ApprovedOnly bool           `json:"approved_only"`
}

type acceptedResponse struct {
	Message   string            `json:"message"`
	Count     int               `json:"count,omitempty"`
	Broadcast *domain.Broadcast `json:"broadcast,omitempty"`
}

// Send handles POST /v1/messages.
//
// @Summary      Send a mass message
// @Description  Queues an email and/or notification for every active user. Repeating a request with the same Idempotency-Key returns 409.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string            false  "Client-chosen key that makes the request safe to retry"
// @Param        body             body      broadcastRequest  true   "Message"
// @Success      202              {object}  acceptedResponse
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req broadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	b, err := h.service.Broadcast(c.Request().Context(), ports.BroadcastInput{
		Channel:        req.Channel,
		Subject:        req.Subject,
		Message:        req.Message,
		ApprovedOnly:   req.ApprovedOnly,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
		SentBy:         sess.Admin.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message:   "message queued",
		Count:     b.Recipients,
		Broadcast: b,
	})
}

// Recent handles GET /v1/messages.
//
// @Summary      Recently sent mass messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 20, max 100)"
// @Success      200    {array}   domain.Broadcast
// @Router       /v1/messages [get]
func (h *MessageHandler) Recent(c echo.Context) error {
	limit := 20
	if l := c.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	out, err := h.service.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
