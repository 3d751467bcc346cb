package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"taskboard/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})

	ctx := context.Background()
	if err := NewUserRepository(db).Init(ctx); err != nil {
		t.Fatalf("init users: %v", err)
	}
	if err := NewTaskRepository(db).Init(ctx); err != nil {
		t.Fatalf("init tasks: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()
	id, err := NewUserRepository(db).Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return id
}
