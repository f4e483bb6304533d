package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usersapp/accounts-api/internal/api/metrics"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/core/usecase"
	"github.com/usersapp/accounts-api/internal/core/validation"
)

type UserHandler struct {
	create ports.Handler[usecase.CreateUser, usecase.UserView]
	list   ports.Handler[usecase.ListUsers, []usecase.UserView]
	delete ports.Handler[usecase.DeleteUser, bool]
}

func NewUserHandler(h usecase.Handlers) *UserHandler {
	return &UserHandler{create: h.CreateUser, list: h.ListUsers, delete: h.DeleteUser}
}

// Create adds a user account and returns its public view.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      accountRequest  true  "User details"
// @Success      201   {object}  Envelope{data=usecase.UserView}
// @Failure      400   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req accountRequest
	if err := c.Bind(&req); err != nil {
		return validation.Invalid("body", msgInvalidPayload)
	}

	view, err := h.create.Handle(c.Request().Context(), usecase.CreateUser{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues("create").Inc()
	return success(c, http.StatusCreated, msgCreated, view)
}

// List returns active users, optionally filtered by name.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name  query     string  false  "Case-insensitive name substring"
// @Success      200   {object}  Envelope{data=[]usecase.UserView}
// @Failure      401   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return validation.Invalid("name", msgInvalidPayload)
	}

	users, err := h.list.Handle(c.Request().Context(), usecase.ListUsers{Name: q.Name})
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, msgListed, users)
}

// Delete deactivates a user. The account is kept but no longer listed.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	changed, err := h.delete.Handle(c.Request().Context(), usecase.DeleteUser{ID: c.Param("id")})
	if err != nil {
		return err
	}
	if !changed {
		return Fail(c, http.StatusNotFound, msgUserNotFound, nil)
	}

	metrics.UsersDeactivatedTotal.Inc()
	return success(c, http.StatusOK, msgDeleted, nil)
}
