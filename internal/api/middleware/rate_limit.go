package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/api/metrics"
)

const msgTooManyRequests = "Muitas tentativas. Tente novamente mais tarde."

// Limiter counts hits per key inside a fixed window.
type Limiter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, reset time.Duration, err error)
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c echo.Context) string

// KeyByIP limits by client IP only.
func KeyByIP() KeyFunc {
	return func(c echo.Context) string {
		ip := c.RealIP()
		if ip == "" {
			ip = "unknown"
		}
		return ip
	}
}

// RateLimit rejects requests past max per window with 429 and the standard
// X-RateLimit-* headers. A nil limiter or a non-positive max disables it.
// Limiter errors fail open.
func RateLimit(limiter Limiter, max int, window time.Duration, keyFn KeyFunc, log zerolog.Logger) echo.MiddlewareFunc {
	if limiter == nil || max <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if keyFn == nil {
		keyFn = KeyByIP()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			count, reset, err := limiter.Hit(c.Request().Context(), keyFn(c), window)
			if err != nil {
				log.Warn().Err(err).Str("path", c.Path()).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			resetSec := int(math.Ceil(reset.Seconds()))
			remaining := max - int(count)
			if remaining < 0 {
				remaining = 0
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

			if int(count) > max {
				if resetSec > 0 {
					h.Set("Retry-After", strconv.Itoa(resetSec))
				}
				metrics.LoginRateLimitedTotal.Inc()
				return handler.Fail(c, http.StatusTooManyRequests, msgTooManyRequests, nil)
			}

			return next(c)
		}
	}
}
