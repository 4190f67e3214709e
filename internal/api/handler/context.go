package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/api/middleware"
	"github.com/share2care/admin-console/internal/core/domain"
)

// currentSession returns the session loaded by the Session middleware. A
// missing session means the route was mounted without the auth chain.
func currentSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.KeySession).(*domain.Session)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sess, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return domain.Invalid(err.Error())
	}
	return nil
}
