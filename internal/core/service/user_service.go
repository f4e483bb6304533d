package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/ports"
)

// UserService enforces the account lifecycle rules: unique emails, soft
// deletion, active-only listing.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// CreateUser persists a new active user. The existence check is a fast path
// only; the store's unique index on email is what actually rejects a racing
// duplicate, and the adapter reports it as domain.ErrDuplicateEmail too.
func (s *UserService) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	user := &domain.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// ListActive returns active users, optionally narrowed by a case-insensitive
// name substring. Ordering is whatever the store returns.
func (s *UserService) ListActive(ctx context.Context, nameFilter string) ([]*domain.User, error) {
	users, err := s.repo.ListActive(ctx, nameFilter)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// Deactivate soft-deletes the user. It returns false, without writing, when
// the user does not exist or is already inactive.
func (s *UserService) Deactivate(ctx context.Context, id string) (bool, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("deactivate user: %w", err)
	}

	if !user.Deactivate() {
		return false, nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to deactivate user")
		return false, fmt.Errorf("deactivate user: %w", err)
	}

	s.logger.Info().Str("user_id", id).Msg("user deactivated")
	return true, nil
}
