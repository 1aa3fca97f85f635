package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness plus database reachability.
type HealthHandler struct {
	DB *sql.DB
}

// Check pings the database with a short deadline and reports the result.
// A reachable database yields {"status":"ok","db":1}; an unreachable one
// yields a 503 so load balancers can pull the instance.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "db": 1})
}
