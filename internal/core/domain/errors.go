package domain

import "errors"

// ErrorKind classifies a domain failure for the transport layer.
type ErrorKind int

const (
	// KindBusinessRule marks a request that is well formed but violates a
	// domain rule (duplicate email, bad credentials).
	KindBusinessRule ErrorKind = iota + 1
)

// Error is a named domain failure. Instances are compared by identity, so
// callers use errors.Is against the exported values below.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrDuplicateEmail is returned when an account, active or not, already
	// owns the email.
	ErrDuplicateEmail = &Error{Kind: KindBusinessRule, Code: "duplicate_email", Message: "E-mail já cadastrado."}

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = &Error{Kind: KindBusinessRule, Code: "invalid_credentials", Message: "Usuário ou senha inválidos."}
)

// ErrUserNotFound is the repository-level absence signal. It never reaches
// the client as-is: lookups translate it into an outcome or a business error.
var ErrUserNotFound = errors.New("user not found")

// IsBusinessRule reports whether err wraps a business rule violation.
func IsBusinessRule(err error) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == KindBusinessRule
}
