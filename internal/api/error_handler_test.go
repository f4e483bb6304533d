package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/validation"
)

func renderError(t *testing.T, err error, log zerolog.Logger) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(err, c)

	var body map[string]any
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec, body
}

func TestErrorHandler_Classification(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			"validation uses first field message",
			&validation.Error{Fields: []validation.FieldError{
				{Field: "name", Message: "O nome é obrigatório."},
				{Field: "email", Message: "E-mail inválido."},
			}},
			http.StatusBadRequest, "O nome é obrigatório.",
		},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "E-mail já cadastrado."},
		{"wrapped business rule", fmt.Errorf("login: %w", domain.ErrInvalidCredentials), http.StatusBadRequest, "Usuário ou senha inválidos."},
		{"echo http error", echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado."), http.StatusUnauthorized, "Não autenticado."},
		{"router not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"unclassified", errors.New("pq: connection reset"), http.StatusInternalServerError, internalErrorMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := renderError(t, tc.err, zerolog.Nop())

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["status"] != "Erro" || body["message"] != tc.message {
				t.Fatalf("unexpected envelope: %+v", body)
			}
		})
	}
}

func TestErrorHandler_ValidationData(t *testing.T) {
	_, body := renderError(t, &validation.Error{Fields: []validation.FieldError{
		{Field: "password", Message: "A senha é obrigatória."},
	}}, zerolog.Nop())

	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected field list in data, got %#v", body["data"])
	}
	field := data[0].(map[string]any)
	if field["field"] != "password" {
		t.Fatalf("unexpected field entry: %+v", field)
	}
}

func TestErrorHandler_UnclassifiedIsLoggedNotLeaked(t *testing.T) {
	var logs bytes.Buffer
	rec, _ := renderError(t, errors.New("secret dsn in error"), zerolog.New(&logs))

	if strings.Contains(rec.Body.String(), "secret dsn") {
		t.Fatal("internal error details must not reach the client")
	}
	if !strings.Contains(logs.String(), "secret dsn in error") {
		t.Fatalf("expected the cause to be logged, got %q", logs.String())
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Body.String() != "done" {
		t.Fatalf("committed response must not be rewritten, got %q", rec.Body.String())
	}
}
