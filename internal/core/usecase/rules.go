package usecase

import "github.com/usersapp/accounts-api/internal/core/validation"

var accountMessages = validation.Messages{
	"name.required":     "O nome é obrigatório.",
	"name.min":          "O nome deve ter entre 2 e 200 caracteres.",
	"name.max":          "O nome deve ter entre 2 e 200 caracteres.",
	"email.required":    "O e-mail é obrigatório.",
	"email.email":       "E-mail inválido.",
	"email.max":         "O e-mail deve ter no máximo 320 caracteres.",
	"password.required": "A senha é obrigatória.",
	"password.min":      "A senha deve ter no mínimo 6 caracteres.",
}
