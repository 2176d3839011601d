package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds the production origin allow-list. Entries are matched as
// prefixes so an allowed site keeps working across its sub-paths and ports.
type CORSConfig struct {
	AllowedOrigins []string
}

// CORS sets the response CORS headers and short-circuits preflight requests
// with a 200 and empty body. The allow-origin header is only echoed back for
// loopback origins and allow-listed production origins; everything else gets
// no allow-origin header and the browser blocks the cross-origin read.
//
// echo's own CORS middleware is not used here: the endpoint contract needs
// the Referer fallback, prefix matching and a 200 preflight status.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" {
				origin = c.Request().Referer()
			}

			header := c.Response().Header()
			if allowed := allowOrigin(origin, cfg.AllowedOrigins); allowed != "" {
				header.Set(echo.HeaderAccessControlAllowOrigin, allowed)
			}
			header.Set(echo.HeaderAccessControlAllowMethods, "GET, OPTIONS")
			header.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type")
			header.Set(echo.HeaderAccessControlMaxAge, "86400")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}

func allowOrigin(origin string, allowed []string) string {
	if origin == "" {
		return ""
	}
	if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
		return origin
	}
	for _, a := range allowed {
		if a != "" && strings.HasPrefix(origin, a) {
			return origin
		}
	}
	return ""
}
