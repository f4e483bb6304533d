// Package memory is a process-local UserRepository. It backs
// STORE_DRIVER=memory for local runs and the HTTP tests; data is lost on exit.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	order   []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email]
	return ok, nil
}

// Create enforces email uniqueness under the write lock, the same guarantee
// the SQL unique index gives.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// ListActive returns users in insertion order.
func (r *UserRepository) ListActive(_ context.Context, nameFilter string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(nameFilter)
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.byID[id]
		if !u.IsActive {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	// Only the soft-delete flag is mutable.
	cur.IsActive = user.IsActive
	return nil
}

// Ping always succeeds.
func (r *UserRepository) Ping(context.Context) error { return nil }
