package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/api/handler"
	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/validation"
)

const internalErrorMessage = "Ocorreu um erro interno. Tente novamente mais tarde."

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps validation and business rule failures to 400.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the {"status","message","data"} envelope for every failure.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, data := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = handler.Fail(c, code, msg, data)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, any) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.First().Message, verr.Fields
	}

	if domain.IsBusinessRule(err) {
		var de *domain.Error
		errors.As(err, &de)
		return http.StatusBadRequest, de.Message, nil
	}

	// Echo's own errors (router 404/405, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
			return he.Code, internalErrorMessage, nil
		}
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, internalErrorMessage, nil
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
