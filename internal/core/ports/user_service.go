package ports

import (
	"context"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

// UserService is the lifecycle service consumed by the use-case handlers.
type UserService interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActive(ctx context.Context, nameFilter string) ([]*domain.User, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}
