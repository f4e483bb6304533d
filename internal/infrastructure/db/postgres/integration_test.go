//go:build integration

package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("accounts_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("get connection string: %v", err)
	}

	if err := Migrate(dsn, zerolog.Nop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	// A second run must be a no-op.
	if err := Migrate(dsn, zerolog.Nop()); err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}

	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 10})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func newUser(name, email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
}

func TestUserRepository_Postgres(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	john := newUser("John Doe", "john@example.com")
	if err := repo.Create(ctx, john); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("duplicate email hits the unique index", func(t *testing.T) {
		err := repo.Create(ctx, newUser("Other", "john@example.com"))
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("lookups", func(t *testing.T) {
		ok, err := repo.ExistsByEmail(ctx, "john@example.com")
		if err != nil || !ok {
			t.Fatalf("expected email to exist, got %v %v", ok, err)
		}

		byEmail, err := repo.FindByEmail(ctx, "john@example.com")
		if err != nil || byEmail.ID != john.ID || byEmail.PasswordHash != "hash" {
			t.Fatalf("unexpected FindByEmail: %+v %v", byEmail, err)
		}

		if _, err := repo.FindByID(ctx, uuid.NewString()); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("list filters in the database", func(t *testing.T) {
		_ = repo.Create(ctx, newUser("little JOHNNY", "lj@example.com"))
		_ = repo.Create(ctx, newUser("Mary", "mary@example.com"))
		_ = repo.Create(ctx, newUser("100% Real", "real@example.com"))

		got, err := repo.ListActive(ctx, "john")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}

		pct, _ := repo.ListActive(ctx, "%")
		if len(pct) != 1 || pct[0].Email != "real@example.com" {
			t.Fatalf("%% must match literally, got %+v", pct)
		}
	})

	t.Run("deactivation hides from listing but keeps the email taken", func(t *testing.T) {
		john.IsActive = false
		if err := repo.Update(ctx, john); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, _ := repo.ListActive(ctx, "John Doe")
		if len(got) != 0 {
			t.Fatalf("inactive users must not be listed, got %+v", got)
		}
		if ok, _ := repo.ExistsByEmail(ctx, "john@example.com"); !ok {
			t.Fatal("inactive user's email must still exist")
		}

		if err := repo.Update(ctx, newUser("ghost", "ghost@example.com")); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("racing inserts yield one row", func(t *testing.T) {
		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.Create(ctx, newUser("Racer", "race@example.com"))
			}()
		}
		wg.Wait()
		close(errs)

		var ok, dup int
		for err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateEmail):
				dup++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if ok != 1 || dup != 9 {
			t.Fatalf("expected 1 insert and 9 duplicates, got %d/%d", ok, dup)
		}
	})

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
