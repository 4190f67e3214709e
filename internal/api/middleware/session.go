package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/ports"
)

// Session loads the admin session named by the token, rejects it when it is
// gone or expired, and attaches its API bearer token to the request context.
// It must run after Auth.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(KeySessionID).(string)

			req := c.Request()
			sess, err := auth.Resume(req.Context(), sid)
			if err != nil {
				return err
			}

			c.Set(KeySession, sess)
			c.Set(KeyRole, sess.Admin.Role)
			c.SetRequest(req.WithContext(ports.WithToken(req.Context(), sess.Token)))

			return next(c)
		}
	}
}
