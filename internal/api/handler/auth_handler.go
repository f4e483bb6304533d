package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usersapp/accounts-api/internal/api/metrics"
	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/core/usecase"
	"github.com/usersapp/accounts-api/internal/core/validation"
)

type AuthHandler struct {
	login    ports.Handler[usecase.Login, usecase.LoginResult]
	register ports.Handler[usecase.RegisterUser, struct{}]
}

func NewAuthHandler(h usecase.Handlers) *AuthHandler {
	return &AuthHandler{login: h.Login, register: h.RegisterUser}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      accountRequest  true  "User registration details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return validation.Invalid("body", msgInvalidPayload)
	}

	_, err := h.register.Handle(c.Request().Context(), usecase.RegisterUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues("register").Inc()
	return success(c, http.StatusCreated, msgRegistered, nil)
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  Envelope{data=usecase.LoginResult}
// @Failure      400   {object}  Envelope
// @Failure      429   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return validation.Invalid("body", msgInvalidPayload)
	}

	res, err := h.login.Handle(c.Request().Context(), usecase.Login{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return success(c, http.StatusOK, msgLoggedIn, res)
}

func loginResult(err error) string {
	var verr *validation.Error
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.As(err, &verr):
		return "invalid_input"
	default:
		return "error"
	}
}
