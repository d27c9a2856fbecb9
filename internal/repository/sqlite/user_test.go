package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
)

// newTestDB opens an in-memory SQLite database that lives only for the
// duration of the test. Fresh schema per test, no disk I/O, destroyed on
// close — migrations run exactly as they do in production.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user and fails the test on error.
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, PasswordHash: "$2a$04$fakehashforrepositorytests"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CreateUser TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Email: "alice@example.com", PasswordHash: "hash"}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("CreateUser() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreateUser() did not set user.CreatedAt")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	createTestUser(t, db, "bob@example.com")

	dup := &model.User{Email: "bob@example.com", PasswordHash: "other"}
	err := db.CreateUser(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateUser(duplicate) error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// Get TESTS
// =========================================================================

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)

	created := createTestUser(t, db, "carol@example.com")

	got, err := db.GetUserByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetUserByEmail() ID = %d, want %d", got.ID, created.ID)
	}
	if got.PasswordHash != created.PasswordHash {
		t.Error("GetUserByEmail() did not return the stored hash")
	}
	if got.IsAdmin {
		t.Error("GetUserByEmail() IsAdmin = true for a fresh user")
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByEmail(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)

	created := createTestUser(t, db, "dave@example.com")

	got, err := db.GetUserByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Email != "dave@example.com" {
		t.Errorf("GetUserByID() email = %q, want %q", got.Email, "dave@example.com")
	}

	if _, err := db.GetUserByID(context.Background(), 9999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID(unknown) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// SetAdmin TESTS
// =========================================================================

func TestSetAdmin(t *testing.T) {
	db := newTestDB(t)

	created := createTestUser(t, db, "eve@example.com")

	if err := db.SetAdmin(context.Background(), created.ID, true); err != nil {
		t.Fatalf("SetAdmin() error = %v", err)
	}

	got, err := db.GetUserByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !got.IsAdmin {
		t.Error("SetAdmin(true) did not persist")
	}

	if err := db.SetAdmin(context.Background(), 9999, true); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetAdmin(unknown) error = %v, want ErrNotFound", err)
	}
}
