package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/ports"
	"github.com/usersapp/accounts-api/internal/core/validation"
)

// Dependencies are the collaborators shared by every handler.
type Dependencies struct {
	Users  ports.UserService
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer
	Logger zerolog.Logger
}

// Handlers is the full set of account use cases, each already wrapped in
// its validation pipeline.
type Handlers struct {
	CreateUser   ports.Handler[CreateUser, UserView]
	RegisterUser ports.Handler[RegisterUser, struct{}]
	Login        ports.Handler[Login, LoginResult]
	DeleteUser   ports.Handler[DeleteUser, bool]
	ListUsers    ports.Handler[ListUsers, []UserView]
}

func NewHandlers(deps Dependencies) Handlers {
	return Handlers{
		CreateUser: validation.Pipeline[CreateUser, UserView](
			NewCreateUserHandler(deps),
			validation.NewStructValidator[CreateUser](accountMessages),
		),
		RegisterUser: validation.Pipeline[RegisterUser, struct{}](
			NewRegisterUserHandler(deps),
			validation.NewStructValidator[RegisterUser](accountMessages),
		),
		Login: validation.Pipeline[Login, LoginResult](
			NewLoginHandler(deps),
			validation.NewStructValidator[Login](accountMessages),
		),
		DeleteUser: NewDeleteUserHandler(deps),
		ListUsers:  NewListUsersHandler(deps),
	}
}

// ---------------------------------------------------------------------------
// Create / Register
// ---------------------------------------------------------------------------

type CreateUserHandler struct {
	users  ports.UserService
	hasher ports.PasswordHasher
}

func NewCreateUserHandler(deps Dependencies) *CreateUserHandler {
	return &CreateUserHandler{users: deps.Users, hasher: deps.Hasher}
}

// Handle hashes the password and delegates to the lifecycle service.
// domain.ErrDuplicateEmail is returned unchanged.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUser) (UserView, error) {
	user, err := createAccount(ctx, h.users, h.hasher, cmd.Name, cmd.Email, cmd.Password)
	if err != nil {
		return UserView{}, err
	}
	return toView(user), nil
}

type RegisterUserHandler struct {
	users  ports.UserService
	hasher ports.PasswordHasher
}

func NewRegisterUserHandler(deps Dependencies) *RegisterUserHandler {
	return &RegisterUserHandler{users: deps.Users, hasher: deps.Hasher}
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUser) (struct{}, error) {
	_, err := createAccount(ctx, h.users, h.hasher, cmd.Name, cmd.Email, cmd.Password)
	return struct{}{}, err
}

func createAccount(ctx context.Context, users ports.UserService, hasher ports.PasswordHasher, name, email, password string) (*domain.User, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return users.CreateUser(ctx, name, email, hash)
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

type LoginHandler struct {
	users  ports.UserService
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewLoginHandler(deps Dependencies) *LoginHandler {
	return &LoginHandler{
		users:  deps.Users,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		logger: deps.Logger,
	}
}

// Handle returns domain.ErrInvalidCredentials for an unknown email, a wrong
// password and a deactivated account alike.
func (h *LoginHandler) Handle(ctx context.Context, cmd Login) (LoginResult, error) {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	if !h.hasher.Verify(user.PasswordHash, cmd.Password) || !user.IsActive {
		h.logger.Debug().Str("user_id", user.ID).Msg("login rejected")
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, ttl, err := h.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	return LoginResult{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresIn:   int(ttl.Seconds()),
	}, nil
}

// ---------------------------------------------------------------------------
// Delete / List
// ---------------------------------------------------------------------------

type DeleteUserHandler struct {
	users ports.UserService
}

func NewDeleteUserHandler(deps Dependencies) *DeleteUserHandler {
	return &DeleteUserHandler{users: deps.Users}
}

// Handle reports false when there was nothing to deactivate. That is an
// outcome, not an error.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUser) (bool, error) {
	return h.users.Deactivate(ctx, cmd.ID)
}

type ListUsersHandler struct {
	users ports.UserService
}

func NewListUsersHandler(deps Dependencies) *ListUsersHandler {
	return &ListUsersHandler{users: deps.Users}
}

func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsers) ([]UserView, error) {
	users, err := h.users.ListActive(ctx, q.Name)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, toView(u))
	}
	return out, nil
}
