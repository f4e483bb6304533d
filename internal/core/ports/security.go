package ports

import (
	"time"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

// PasswordHasher produces salted one-way hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// TokenIssuer mints signed bearer tokens for an authenticated user.
type TokenIssuer interface {
	Issue(user *domain.User) (token string, ttl time.Duration, err error)
}

// TokenClaims is the identity carried by a validated bearer token.
type TokenClaims struct {
	UserID string
	Email  string
	Name   string
}

// TokenValidator checks a bearer token and returns its identity claims.
type TokenValidator interface {
	Validate(token string) (*TokenClaims, error)
}
