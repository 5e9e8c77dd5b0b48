package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestUserStore(t *testing.T) UserInterface {
	t.Helper()

	logger := zerolog.Nop()
	return NewUserStore(&logger, setupTestDB(t))
}

func testUser(username, role string) User {
	return User{
		ID:        uuid.New(),
		Username:  username,
		Password:  "not-a-real-hash",
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func TestUserCreateAndLookup(t *testing.T) {
	u := newTestUserStore(t)
	ctx, requestID := context.Background(), uuid.New()

	created, err := u.Create(ctx, requestID, testUser("alice", RoleViewer))
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	byName, err := u.GetByUsername(ctx, requestID, "alice")
	if err != nil {
		t.Fatalf("failed to get by username: %v", err)
	}
	if byName.ID != created.ID {
		t.Fatalf("expected id %v, got %v", created.ID, byName.ID)
	}

	byID, err := u.GetByID(ctx, requestID, created.ID)
	if err != nil {
		t.Fatalf("failed to get by id: %v", err)
	}
	if byID.Username != "alice" {
		t.Fatalf("expected alice, got %s", byID.Username)
	}
}

func TestUsernameUnique(t *testing.T) {
	u := newTestUserStore(t)
	ctx, requestID := context.Background(), uuid.New()

	if _, err := u.Create(ctx, requestID, testUser("bob", RoleViewer)); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err := u.Create(ctx, requestID, testUser("bob", RoleViewer))
	if err == nil {
		t.Fatal("expected unique constraint error, got nil")
	}
	if !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		t.Fatalf("expected UNIQUE constraint failure, got %v", err)
	}
}

func TestGetAdminsFilters(t *testing.T) {
	u := newTestUserStore(t)
	ctx, requestID := context.Background(), uuid.New()

	for _, user := range []User{
		testUser("admin1", RoleAdmin),
		testUser("viewer1", RoleViewer),
		testUser("admin2", RoleAdmin),
	} {
		if _, err := u.Create(ctx, requestID, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	admins, err := u.GetAdmins(ctx, requestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}
	for _, admin := range admins {
		if admin.Role != RoleAdmin {
			t.Fatalf("expected admin role, got %s", admin.Role)
		}
	}
}

func TestUpdateLastLogin(t *testing.T) {
	u := newTestUserStore(t)
	ctx, requestID := context.Background(), uuid.New()

	created, err := u.Create(ctx, requestID, testUser("carol", RoleViewer))
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if created.LastLogin != nil {
		t.Fatal("expected nil lastLogin on fresh account")
	}

	now := time.Now()
	if err := u.UpdateLastLogin(ctx, requestID, created.ID, now); err != nil {
		t.Fatalf("failed to update last login: %v", err)
	}

	fetched, err := u.GetByID(ctx, requestID, created.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if fetched.LastLogin == nil {
		t.Fatal("expected lastLogin to be set")
	}
}

func TestUserDeleteRowsAffected(t *testing.T) {
	u := newTestUserStore(t)
	ctx, requestID := context.Background(), uuid.New()

	created, err := u.Create(ctx, requestID, testUser("dave", RoleViewer))
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	affected, err := u.Delete(ctx, requestID, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row deleted, got %d", affected)
	}

	affected, err = u.Delete(ctx, requestID, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows on repeat delete, got %d", affected)
	}
}
