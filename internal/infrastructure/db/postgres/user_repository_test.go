package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"john":       "john",
		"":           "",
		"50%":        `50\%`,
		"a_b":        `a\_b`,
		`back\slash`: `back\\slash`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	if !isUniqueViolation(fmt.Errorf("exec: %w", dup)) {
		t.Fatal("wrapped 23505 must be detected")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23502"}) {
		t.Fatal("not-null violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("plain errors are not unique violations")
	}
}

func TestFindByID_MalformedIDIsNotFound(t *testing.T) {
	// The id is rejected before any query, so no pool is needed.
	repo := NewUserRepository(nil)
	if _, err := repo.FindByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
