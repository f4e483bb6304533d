package handler

import (
	"github.com/labstack/echo/v4"
)

// Envelope status values.
const (
	StatusSuccess = "Sucesso"
	StatusError   = "Erro"
)

// Envelope wraps every response body, success or failure.
type Envelope struct {
	Status  string `json:"status" example:"Sucesso"`
	Message string `json:"message" example:"Usuário criado com sucesso."`
	Data    any    `json:"data"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail renders an error envelope. The central error handler and the
// middlewares use it so every failure has the same shape.
func Fail(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Status: StatusError, Message: message, Data: data})
}
