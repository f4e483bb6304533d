package ports

import (
	"context"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

// UserRepository is the persistence boundary for user accounts.
//
// Adapters must translate their store's unique-constraint violation on email
// into domain.ErrDuplicateEmail and a missing row into domain.ErrUserNotFound.
type UserRepository interface {
	// ExistsByEmail checks every user regardless of IsActive.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListActive returns active users whose name contains nameFilter,
	// case-insensitively. An empty filter returns every active user.
	ListActive(ctx context.Context, nameFilter string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
