package router

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/velosh/paddockwire/internal/aggregator"
	"github.com/velosh/paddockwire/internal/apperr"
	"github.com/velosh/paddockwire/internal/ratelimit"
)

const (
	// PipelineTimeout is the wall-clock budget for the whole
	// fetch-filter-cluster-synthesize pipeline.
	PipelineTimeout = 10 * time.Second

	retryAfter = 60 * time.Second

	// cacheControl lets edge caches absorb repeat traffic for an hour and
	// serve stale for a day while revalidating.
	cacheControl = "s-maxage=3600, stale-while-revalidate=86400"
)

type NewsRouter struct {
	e       *echo.Echo
	agg     *aggregator.Aggregator
	limiter ratelimit.Limiter
	timeout time.Duration
}

func NewNewsRouter(e *echo.Echo, agg *aggregator.Aggregator, limiter ratelimit.Limiter) *NewsRouter {
	return &NewsRouter{
		e:       e,
		agg:     agg,
		limiter: limiter,
		timeout: PipelineTimeout,
	}
}

func (r *NewsRouter) Bind() {
	r.e.GET("/api/news", r.newsHandler)
}

// newsHandler runs admission control and then races the pipeline against the
// request timeout. Order matters: cheap checks reject before any feed is
// touched.
func (r *NewsRouter) newsHandler(c echo.Context) error {
	// The endpoint accepts no query parameters by design.
	if len(c.QueryParams()) > 0 {
		return apperr.NewValidation("Invalid request parameters")
	}

	if !r.limiter.Allow(clientIP(c)) {
		return apperr.NewRateLimit(retryAfter)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), r.timeout)
	defer cancel()

	requestID := uuid.NewString()
	items, err := r.agg.Run(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("news pipeline timed out", "request_id", requestID, "budget", r.timeout)
			return apperr.NewTimeout(err)
		}
		slog.Error("news pipeline failed", "request_id", requestID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch news")
	}

	c.Response().Header().Set("Cache-Control", cacheControl)
	return c.JSON(http.StatusOK, items)
}

// clientIP resolves the caller's address from proxy headers, first populated
// header wins. Without a reverse proxy the socket address is used; when even
// that is missing the request is attributed to the unknown client, which the
// limiter always admits.
func clientIP(c echo.Context) string {
	h := c.Request().Header

	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0]); ip != "" {
			return ip
		}
	}
	if ip := h.Get("X-Real-Ip"); ip != "" {
		return ip
	}
	if ip := h.Get("Cf-Connecting-Ip"); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request().RemoteAddr); err == nil && host != "" {
		return host
	}
	return ratelimit.UnknownClient
}
