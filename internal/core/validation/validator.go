package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps "field.tag" (field by its json name) to the message reported
// when that rule fails. Rules without an entry fall back to fieldError.
type Messages map[string]string

// StructValidator checks a command's `validate` struct tags with
// go-playground/validator and reports failures in field declaration order.
type StructValidator[C any] struct {
	v        *validator.Validate
	messages Messages
}

func NewStructValidator[C any](messages Messages) *StructValidator[C] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return &StructValidator[C]{v: v, messages: messages}
}

func (sv *StructValidator[C]) Validate(cmd C) []FieldError {
	err := sv.v.Struct(cmd)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		msg, ok := sv.messages[field+"."+fe.Tag()]
		if !ok {
			msg = fieldError(fe)
		}
		out = append(out, FieldError{Field: field, Message: msg})
	}
	return out
}

// fieldError converts a single FieldError into a readable default message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um e-mail válido.", field)
	case "min":
		return fmt.Sprintf("O campo %s deve ter no mínimo %s caracteres.", field, fe.Param())
	case "max":
		return fmt.Sprintf("O campo %s deve ter no máximo %s caracteres.", field, fe.Param())
	default:
		return fmt.Sprintf("O campo %s é inválido (%s).", field, fe.Tag())
	}
}
