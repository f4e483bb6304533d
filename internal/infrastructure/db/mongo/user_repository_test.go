package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/usersapp/accounts-api/internal/core/domain"
)

func TestActiveFilter(t *testing.T) {
	if f := activeFilter(""); len(f) != 1 || f["is_active"] != true {
		t.Fatalf("empty filter must only select active users, got %v", f)
	}

	f := activeFilter("jo.hn+")
	re, ok := f["name"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected a regex on name, got %T", f["name"])
	}
	if re.Pattern != `jo\.hn\+` || re.Options != "i" {
		t.Fatalf("expected escaped case-insensitive pattern, got %+v", re)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := &domain.User{
		ID:           "5f0c5c1e-8a0e-4c0a-9d1b-6f1f0d3b8a11",
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "hash",
		CreatedAt:    created,
		IsActive:     true,
	}

	got := toDocument(u).toDomain()
	if *got != *u {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, u)
	}
}
