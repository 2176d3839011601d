package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler maps typed errors to the stable response shapes the
// endpoint publishes. Internal detail is logged server-side only and never
// leaks into a response body.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message})
			return
		}

		var rle *RateLimitError
		if errors.As(err, &rle) {
			retryAfter := int(rle.RetryAfter.Seconds())
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			_ = c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
			return
		}

		var te *TimeoutError
		if errors.As(err, &te) {
			_ = c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "Request timeout"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			if he.Code == http.StatusMethodNotAllowed {
				msg = "Method not allowed"
			}
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
