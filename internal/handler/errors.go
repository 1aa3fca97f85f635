// Package handler exposes the HTTP surface of the theater dashboard. Each
// resource gets a handler struct holding the repositories it reads from;
// parameter validation happens before any database call so malformed
// requests never touch the connection pool.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// dbError translates an infrastructure-level database failure into an HTTP
// response. Pool exhaustion and unreachable-database conditions surface as
// 503 so callers can back off; anything else is a 500 carrying a generic
// message plus the underlying error text for diagnostics. Not-found and
// rule-rejection errors are handled by the individual handlers before this
// is reached.
func dbError(c echo.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "database unavailable", "detail": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error", "detail": err.Error()})
}
