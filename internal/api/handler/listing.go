package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

// listQuery reads the schema's criteria and the page number from the query
// string. Unknown parameters are ignored.
func listQuery[T any](c echo.Context, s listing.Schema[T]) (ports.ListQuery, error) {
	q := ports.ListQuery{Page: 1}
	for _, name := range s.Criteria() {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		next, err := s.Set(q.Criteria, name, v)
		if err != nil {
			return q, err
		}
		q.Criteria = next
	}

	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return q, echo.NewHTTPError(http.StatusBadRequest, "page must be a positive integer")
		}
		q.Page = n
	}
	return q, nil
}
