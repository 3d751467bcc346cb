package sqlite

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/domain"
)

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	byName, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != id || byName.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", byName)
	}
	if byName.CreatedAt.IsZero() || byName.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("unexpected username %q", byID.Username)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"})
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "Alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("create Alice: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("create alice should succeed (case-sensitive uniqueness): %v", err)
	}
}

func TestUserGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	aliceID := createUser(t, db, "alice")
	createUser(t, db, "bob")

	if err := repo.UpdateUsername(ctx, aliceID, "alice2"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	renamed, err := repo.GetByID(ctx, aliceID)
	if err != nil {
		t.Fatalf("get renamed: %v", err)
	}
	if renamed.Username != "alice2" {
		t.Fatalf("expected alice2, got %q", renamed.Username)
	}

	if err := repo.UpdateUsername(ctx, aliceID, "bob"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	// failed rename must leave the name intact
	kept, err := repo.GetByID(ctx, aliceID)
	if err != nil {
		t.Fatalf("get after failed rename: %v", err)
	}
	if kept.Username != "alice2" {
		t.Fatalf("username changed on failed rename: %q", kept.Username)
	}

	if err := repo.UpdateUsername(ctx, 99, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdatePasswordHash(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	id := createUser(t, db, "alice")
	if err := repo.UpdatePasswordHash(ctx, id, "newhash"); err != nil {
		t.Fatalf("update hash: %v", err)
	}
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.PasswordHash != "newhash" {
		t.Fatalf("hash not updated")
	}

	if err := repo.UpdatePasswordHash(ctx, 99, "h"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
