package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usersapp/accounts-api/internal/core/ports"
)

// ClaimsKey is the echo.Context key the Auth middleware stores the
// validated token claims under.
const ClaimsKey = "claims"

// currentUser extracts the claims injected by the Auth middleware and
// fast-fails when they are missing, which means the route was mounted
// without the middleware.
func currentUser(c echo.Context) (*ports.TokenClaims, error) {
	claims, _ := c.Get(ClaimsKey).(*ports.TokenClaims)
	if claims == nil || claims.UserID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, MsgUnauthenticated)
	}
	return claims, nil
}
