package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/infrastructure/gateway"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces the Share2care API's own message for upstream failures.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation reasons are written for the admin; show them as is.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Reason
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired, please sign in again"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUnknownCriterion):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnknownView):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicateBroadcast):
		return http.StatusConflict, "this message was already sent"
	case errors.Is(err, domain.ErrNoRecipients):
		return http.StatusUnprocessableEntity, "no users match the selected audience"
	}

	// Upstream API failures carry their own message.
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound,
			apiErr.Status == http.StatusUnauthorized,
			apiErr.Status == http.StatusForbidden,
			apiErr.Status == http.StatusConflict:
			return apiErr.Status, apiErr.Message
		case apiErr.Status == http.StatusBadRequest, apiErr.Status == http.StatusUnprocessableEntity:
			return http.StatusUnprocessableEntity, apiErr.Message
		default:
			log.Warn().Err(err).Int("upstream_status", apiErr.Status).Str("path", c.Path()).Msg("share2care api failure")
			return http.StatusBadGateway, apiErr.Message
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "the share2care api did not respond in time"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
