package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/query"
)

func TestClientCreateGetRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Client{Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("create left id zero")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("create left timestamps zero")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("round trip name = %q, want %q", got.Name, "Acme")
	}
	if got.ID != created.ID {
		t.Errorf("round trip id = %s, want %s", got.ID, created.ID)
	}
}

func TestClientGetByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestClientListDefaultSort(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	names := []string{"Oldest", "Middle", "Newest"}
	for i, name := range names {
		c := &models.Client{Name: name, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	got, err := repo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 clients got %d", len(got))
	}
	if got[0].Name != "Newest" || got[2].Name != "Oldest" {
		t.Errorf("default order wrong: %q, %q, %q", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestClientListFiltersAndSort(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	for _, name := range []string{"Acme", "Acme West", "Globex"} {
		if _, err := repo.Create(ctx, &models.Client{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	got, err := repo.List(ctx, query.Asc("name"), query.ILike("name", "%acme%"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches got %d", len(got))
	}
	if got[0].Name != "Acme" || got[1].Name != "Acme West" {
		t.Errorf("sorted filter result wrong: %q, %q", got[0].Name, got[1].Name)
	}

	none, err := repo.List(ctx, nil, query.Eq("name", "Initech"))
	if err != nil {
		t.Fatalf("list no match: %v", err)
	}
	if none == nil {
		t.Fatal("empty result must be an empty slice, not nil")
	}
	if len(none) != 0 {
		t.Errorf("expected empty result got %d rows", len(none))
	}
}

func TestClientUpdateStampsFreshTimestamp(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Client{Name: "Before"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	time.Sleep(10 * time.Millisecond)
	updated, err := repo.Update(ctx, created.ID, map[string]any{
		"name":       "After",
		"updated_at": stale,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("name = %q, want %q", updated.Name, "After")
	}
	// The layer stamps its own updated_at; a caller-supplied value loses.
	if updated.UpdatedAt.Equal(stale) {
		t.Error("caller-supplied updated_at was stored verbatim")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at %v not after original %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestClientUpdateNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())

	_, err := repo.Update(context.Background(), uuid.New(), map[string]any{"name": "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestClientDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Client{Name: "Doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete got %v, want ErrNotFound", err)
	}

	// Deleting an id that never existed is indistinguishable from success.
	if err := repo.Delete(ctx, uuid.New()); err != nil {
		t.Errorf("delete of missing id: %v, want nil", err)
	}
}

func TestClientDuplicateNameRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepo(db, testLogger())
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Client{Name: "Acme"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Client{Name: "Acme"}); err == nil {
		t.Error("second create with duplicate name succeeded, want constraint error")
	}
}
