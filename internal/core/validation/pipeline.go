// Package validation gates use-case handlers behind structural input checks.
//
// A handler wrapped with Pipeline never runs when any registered validator
// reports a field error; the caller receives an *Error instead.
package validation

import (
	"context"
	"strings"

	"github.com/usersapp/accounts-api/internal/core/ports"
)

// FieldError is one failed rule on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structural input failure. Fields is never empty.
type Error struct {
	Fields []FieldError
}

// Invalid builds an Error for a single field.
func Invalid(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// First returns the first reported field error.
func (e *Error) First() FieldError {
	if len(e.Fields) == 0 {
		return FieldError{}
	}
	return e.Fields[0]
}

// Validator checks one command type.
type Validator[C any] interface {
	Validate(cmd C) []FieldError
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[C any] func(cmd C) []FieldError

func (f ValidatorFunc[C]) Validate(cmd C) []FieldError { return f(cmd) }

type pipeline[C any, R any] struct {
	next       ports.Handler[C, R]
	validators []Validator[C]
}

// Pipeline wraps next so that every validator runs first. Failures from all
// validators are collected, in registration order.
func Pipeline[C any, R any](next ports.Handler[C, R], validators ...Validator[C]) ports.Handler[C, R] {
	return &pipeline[C, R]{next: next, validators: validators}
}

func (p *pipeline[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	var failures []FieldError
	for _, v := range p.validators {
		failures = append(failures, v.Validate(cmd)...)
	}
	if len(failures) > 0 {
		var zero R
		return zero, &Error{Fields: failures}
	}
	return p.next.Handle(ctx, cmd)
}
