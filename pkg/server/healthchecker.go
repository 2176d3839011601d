package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// HealthCheckerFunc adapts a function to the HealthChecker interface.
type HealthCheckerFunc func(ctx context.Context) bool

func (f HealthCheckerFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// BindHealthRoute registers a liveness endpoint at path. A healthy checker
// yields 200 {"status":"healthy"}, an unhealthy one 503 {"status":"unhealthy"};
// both carry an RFC 3339 timestamp.
func BindHealthRoute(e *echo.Echo, path string, hc HealthChecker) {
	e.GET(path, func(c echo.Context) error {
		body := map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if !hc.Healthy(c.Request().Context()) {
			body["status"] = "unhealthy"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		return c.JSON(http.StatusOK, body)
	})
}
