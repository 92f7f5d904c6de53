package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

func membershipFixture(t *testing.T, db *gorm.DB) (*models.Group, *models.Profile) {
	t.Helper()
	ctx := context.Background()
	client, err := NewClientRepo(db, testLogger()).Create(ctx, &models.Client{Name: "Fixture Co " + uuid.NewString()})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	group, err := NewGroupRepo(db, testLogger()).Create(ctx, &models.Group{ClientID: client.ID, Name: "Q3 Review"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	profile, err := NewProfileRepo(db, testLogger()).Create(ctx, newTestProfile(uuid.NewString()+"@example.com", "rater"))
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return group, profile
}

func countMemberships(t *testing.T, db *gorm.DB, groupID, profileID uuid.UUID) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.GroupMember{}).
		Where("group_id = ? AND profile_id = ?", groupID, profileID).
		Count(&n).Error
	if err != nil {
		t.Fatalf("count memberships: %v", err)
	}
	return n
}

func TestMembershipLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	// not-a-member → member
	member, err := repo.AssignUserToGroup(ctx, group.ID, profile.ID, "Peer")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if member.Role != models.RoleMember {
		t.Errorf("fresh member role = %q, want %q", member.Role, models.RoleMember)
	}
	if member.Position != "Peer" {
		t.Errorf("position = %q, want %q", member.Position, "Peer")
	}

	got, err := repo.Get(ctx, group.ID, profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsManager() {
		t.Error("plain member reports manager")
	}

	// member → not-a-member
	if err := repo.RemoveUserFromGroup(ctx, group.ID, profile.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := repo.Get(ctx, group.ID, profile.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after remove got %v, want ErrNotFound", err)
	}

	// Removing again is not an error.
	if err := repo.RemoveUserFromGroup(ctx, group.ID, profile.ID); err != nil {
		t.Errorf("second remove: %v, want nil", err)
	}
}

func TestAssignUserToGroupTwiceRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	if _, err := repo.AssignUserToGroup(ctx, group.ID, profile.ID, "Peer"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := repo.AssignUserToGroup(ctx, group.ID, profile.ID, "Peer"); err == nil {
		t.Error("duplicate membership accepted, want constraint error")
	}
	if n := countMemberships(t, db, group.ID, profile.ID); n != 1 {
		t.Errorf("membership rows = %d, want 1", n)
	}
}

func TestAssignManagerPromotesExistingMember(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	member, err := repo.AssignUserToGroup(ctx, group.ID, profile.ID, "Direct Report")
	if err != nil {
		t.Fatalf("assign member: %v", err)
	}

	promoted, err := repo.AssignManagerToGroup(ctx, group.ID, profile.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted.IsManager() {
		t.Error("promoted member is not a manager")
	}
	if promoted.ID != member.ID {
		t.Errorf("promotion replaced the row: id %s != %s", promoted.ID, member.ID)
	}
	if promoted.Position != "Direct Report" {
		t.Errorf("promotion lost position label: %q", promoted.Position)
	}
	if n := countMemberships(t, db, group.ID, profile.ID); n != 1 {
		t.Errorf("membership rows = %d, want 1", n)
	}
}

func TestAssignManagerIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	// not-a-member → member-and-manager in one step.
	first, err := repo.AssignManagerToGroup(ctx, group.ID, profile.ID)
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if !first.IsManager() {
		t.Error("assigned manager has wrong role")
	}

	// Repeats hit the conflict target and update in place.
	for i := 0; i < 2; i++ {
		again, err := repo.AssignManagerToGroup(ctx, group.ID, profile.ID)
		if err != nil {
			t.Fatalf("repeat assign %d: %v", i, err)
		}
		if again.ID != first.ID {
			t.Errorf("repeat assign created a new row: %s != %s", again.ID, first.ID)
		}
	}
	if n := countMemberships(t, db, group.ID, profile.ID); n != 1 {
		t.Errorf("membership rows = %d, want exactly 1", n)
	}
}

func TestRemoveManagerKeepsMembership(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	if _, err := repo.AssignManagerToGroup(ctx, group.ID, profile.ID); err != nil {
		t.Fatalf("assign manager: %v", err)
	}
	if err := repo.RemoveManagerFromGroup(ctx, group.ID, profile.ID); err != nil {
		t.Fatalf("demote: %v", err)
	}

	got, err := repo.Get(ctx, group.ID, profile.ID)
	if err != nil {
		t.Fatalf("membership row gone after demote: %v", err)
	}
	if got.IsManager() {
		t.Error("role still manager after demote")
	}

	// Demoting a profile with no membership at all reports ErrNotFound.
	err = repo.RemoveManagerFromGroup(ctx, group.ID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("demote of non-member: got %v, want ErrNotFound", err)
	}
}

func TestMembersByGroupPreloadsProfiles(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	profiles := NewProfileRepo(db, testLogger())
	ctx := context.Background()
	group, first := membershipFixture(t, db)

	second, err := profiles.Create(ctx, newTestProfile("second@example.com", "second"))
	if err != nil {
		t.Fatalf("create second profile: %v", err)
	}
	if _, err := repo.AssignUserToGroup(ctx, group.ID, first.ID, "Peer"); err != nil {
		t.Fatalf("assign first: %v", err)
	}
	if _, err := repo.AssignUserToGroup(ctx, group.ID, second.ID, "Manager Peer"); err != nil {
		t.Fatalf("assign second: %v", err)
	}

	members, err := repo.MembersByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("members by group: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members got %d", len(members))
	}
	for _, m := range members {
		if m.Profile == nil {
			t.Fatalf("member %s has no preloaded profile", m.ProfileID)
		}
	}
}

func TestGroupsByUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewMembershipRepo(db, testLogger())
	groups := NewGroupRepo(db, testLogger())
	ctx := context.Background()
	group, profile := membershipFixture(t, db)

	other, err := groups.Create(ctx, &models.Group{ClientID: group.ClientID, Name: "Q4 Review"})
	if err != nil {
		t.Fatalf("create other group: %v", err)
	}
	// A third group the profile never joins.
	if _, err := groups.Create(ctx, &models.Group{ClientID: group.ClientID, Name: "Unjoined"}); err != nil {
		t.Fatalf("create unjoined group: %v", err)
	}

	if _, err := repo.AssignUserToGroup(ctx, group.ID, profile.ID, "Peer"); err != nil {
		t.Fatalf("assign first: %v", err)
	}
	if _, err := repo.AssignManagerToGroup(ctx, other.ID, profile.ID); err != nil {
		t.Fatalf("assign second: %v", err)
	}

	got, err := repo.GroupsByUser(ctx, profile.ID)
	if err != nil {
		t.Fatalf("groups by user: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groups got %d", len(got))
	}

	none, err := repo.GroupsByUser(ctx, uuid.New())
	if err != nil {
		t.Fatalf("groups for stranger: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("stranger groups = %v, want empty slice", none)
	}
}
