package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

func newTestProfile(email, username string) *models.Profile {
	return &models.Profile{
		AuthID:   uuid.New(),
		Username: username,
		FullName: "Test " + username,
		Email:    email,
	}
}

func TestProfileGetByEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestProfile("casey@example.com", "casey"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "casey@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("got id %s, want %s", got.ID, created.ID)
	}

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email: got %v, want ErrNotFound", err)
	}
}

func TestProfileDuplicateEmailRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepo(db, testLogger())
	ctx := context.Background()

	if _, err := repo.Create(ctx, newTestProfile("dup@example.com", "first")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.Create(ctx, newTestProfile("dup@example.com", "second")); err == nil {
		t.Error("duplicate email accepted, want constraint error")
	}
}

func TestProfilePartialUpdateLeavesOtherFields(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestProfile("drew@example.com", "drew"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := repo.Update(ctx, created.ID, map[string]any{"username": "drew2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "drew2" {
		t.Errorf("username = %q, want %q", updated.Username, "drew2")
	}
	if updated.Email != "drew@example.com" {
		t.Errorf("email changed by partial update: %q", updated.Email)
	}
	if updated.FullName != created.FullName {
		t.Errorf("full name changed by partial update: %q", updated.FullName)
	}
}

func TestProfileRecordLogin(t *testing.T) {
	db := openTestDB(t)
	repo := NewProfileRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, newTestProfile("lee@example.com", "lee"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.LoginCount != 0 || created.LastLoginAt != nil {
		t.Fatalf("fresh profile has login metadata: count=%d last=%v", created.LoginCount, created.LastLoginAt)
	}

	for i := 0; i < 2; i++ {
		if err := repo.RecordLogin(ctx, created.ID); err != nil {
			t.Fatalf("record login %d: %v", i, err)
		}
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LoginCount != 2 {
		t.Errorf("login count = %d, want 2", got.LoginCount)
	}
	if got.LastLoginAt == nil {
		t.Error("last_login_at not set")
	}

	if err := repo.RecordLogin(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("record login for missing profile: got %v, want ErrNotFound", err)
	}
}
