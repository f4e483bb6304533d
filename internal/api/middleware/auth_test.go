package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/infrastructure/security"
)

func testTokens() *security.JWTIssuer {
	return security.NewJWTIssuer(security.JWTConfig{
		Secret:    "secret",
		Issuer:    "accounts-api",
		Audience:  "accounts-web",
		TTL:       time.Hour,
		ClockSkew: time.Minute,
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := testTokens()
	signed, _, err := tokens.Issue(&domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(tokens)
	h := mw(func(c echo.Context) error {
		called = true
		claims, _ := c.Get(handler.ClaimsKey).(*ports.TokenClaims)
		if claims == nil {
			t.Fatalf("claims not set")
		}
		if claims.UserID != "user-1" || claims.Email != "alice@example.com" || claims.Name != "Alice" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	foreign := security.NewJWTIssuer(security.JWTConfig{Secret: "other", Issuer: "accounts-api", Audience: "accounts-web"})
	foreignToken, _, _ := foreign.Issue(&domain.User{ID: "user-1"})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + foreignToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := Auth(testTokens())
			h := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := h(c)
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %T", err)
			}
			if he.Code != http.StatusUnauthorized || he.Message != handler.MsgUnauthenticated {
				t.Fatalf("expected 401 %q, got %d %v", handler.MsgUnauthenticated, he.Code, he.Message)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	old := security.NewJWTIssuer(security.JWTConfig{
		Secret:   "secret",
		Issuer:   "accounts-api",
		Audience: "accounts-web",
		TTL:      time.Nanosecond,
	})
	signed, _, _ := old.Issue(&domain.User{ID: "user-1"})
	// The validator below allows no clock skew.
	time.Sleep(10 * time.Millisecond)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	strict := security.NewJWTIssuer(security.JWTConfig{Secret: "secret", Issuer: "accounts-api", Audience: "accounts-web"})
	h := Auth(strict)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] == nil {
		t.Fatalf("expected a message in the body, got %s", rec.Body.String())
	}
}
