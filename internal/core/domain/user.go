package domain

import "time"

// Field limits shared by the validators and the persistence schema.
const (
	NameMinLength     = 2
	NameMaxLength     = 200
	EmailMaxLength    = 320
	PasswordMinLength = 6
)

// User is the aggregate root of the accounts domain. Users are never removed;
// deactivation flips IsActive to false and there is no way back.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}

// Deactivate marks the user inactive. It reports false when the user was
// already inactive, in which case nothing changed.
func (u *User) Deactivate() bool {
	if !u.IsActive {
		return false
	}
	u.IsActive = false
	return true
}
