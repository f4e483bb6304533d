package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/core/ports"
)

// Auth validates the bearer token and injects its claims into context under
// handler.ClaimsKey. Every rejection is a 401 with the same message.
func Auth(tokens ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, handler.MsgUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, handler.MsgUnauthenticated)
			}

			claims, err := tokens.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, handler.MsgUnauthenticated)
			}

			c.Set(handler.ClaimsKey, claims)

			return next(c)
		}
	}
}
