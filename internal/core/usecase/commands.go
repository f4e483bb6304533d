// Package usecase holds one handler per account use case. Each handler is a
// thin orchestration over ports.UserService plus the password hasher and the
// token issuer; input shape is checked beforehand by a validation pipeline.
package usecase

import (
	"time"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

// CreateUser creates an account and returns its public projection.
type CreateUser struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterUser is self sign-up. It behaves like CreateUser but returns nothing.
type RegisterUser struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login exchanges credentials for a bearer token. The password is only
// required here; the stored credential already passed the length rule.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DeleteUser soft-deletes the account with ID.
type DeleteUser struct {
	ID string `json:"id"`
}

// ListUsers lists active accounts. An empty Name means no filter.
type ListUsers struct {
	Name string `json:"name"`
}

// UserView is the public projection of a user. It never carries the hash.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// TokenType is the scheme clients put in front of the access token.
const TokenType = "Bearer"

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}
