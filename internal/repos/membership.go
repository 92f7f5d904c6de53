package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

// MembershipRepo manages group membership rows. Per (group, profile) pair a
// profile is in exactly one of three states: not a member, member, or
// member-and-manager. The role column holds the member/manager distinction;
// the unique index on the pair keeps concurrent writers from ever producing
// two rows.
type MembershipRepo interface {
	MembersByGroup(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error)
	GroupsByUser(ctx context.Context, profileID uuid.UUID) ([]models.Group, error)
	Get(ctx context.Context, groupID, profileID uuid.UUID) (*models.GroupMember, error)
	AssignUserToGroup(ctx context.Context, groupID, profileID uuid.UUID, position string) (*models.GroupMember, error)
	RemoveUserFromGroup(ctx context.Context, groupID, profileID uuid.UUID) error
	AssignManagerToGroup(ctx context.Context, groupID, profileID uuid.UUID) (*models.GroupMember, error)
	RemoveManagerFromGroup(ctx context.Context, groupID, profileID uuid.UUID) error
}

type membershipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMembershipRepo(db *gorm.DB, log *logger.Logger) MembershipRepo {
	return &membershipRepo{db: db, log: log.With("repo", "membership")}
}

// MembersByGroup returns the roster with profiles preloaded, oldest
// membership first.
func (r *membershipRepo) MembersByGroup(ctx context.Context, groupID uuid.UUID) ([]models.GroupMember, error) {
	members := make([]models.GroupMember, 0)
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("members by group %s: %w", groupID, err)
	}
	return members, nil
}

// GroupsByUser returns every group the profile is a member of, newest first.
func (r *membershipRepo) GroupsByUser(ctx context.Context, profileID uuid.UUID) ([]models.Group, error) {
	var groupIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("profile_id = ?", profileID).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, fmt.Errorf("groups by user %s: %w", profileID, err)
	}
	groups := make([]models.Group, 0)
	if len(groupIDs) == 0 {
		return groups, nil
	}
	err = r.db.WithContext(ctx).
		Where("id IN ?", groupIDs).
		Order("created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("groups by user %s: %w", profileID, err)
	}
	return groups, nil
}

func (r *membershipRepo) Get(ctx context.Context, groupID, profileID uuid.UUID) (*models.GroupMember, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).
		First(&member, "group_id = ? AND profile_id = ?", groupID, profileID).Error
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", wrapNotFound(err))
	}
	return &member, nil
}

// AssignUserToGroup adds a profile to a group as a plain member with the
// given position label. Adding an existing member surfaces the unique
// constraint error from the backend.
func (r *membershipRepo) AssignUserToGroup(ctx context.Context, groupID, profileID uuid.UUID, position string) (*models.GroupMember, error) {
	member := &models.GroupMember{
		ID:        uuid.New(),
		GroupID:   groupID,
		ProfileID: profileID,
		Position:  position,
		Role:      models.RoleMember,
	}
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, fmt.Errorf("assign user to group: %w", err)
	}
	r.log.Debug("member added", "group_id", groupID, "profile_id", profileID, "position", position)
	return member, nil
}

// RemoveUserFromGroup deletes the link row matching both ids, regardless of
// role. Removing a profile that is not a member is not an error.
func (r *membershipRepo) RemoveUserFromGroup(ctx context.Context, groupID, profileID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND profile_id = ?", groupID, profileID).
		Delete(&models.GroupMember{}).Error
	if err != nil {
		return fmt.Errorf("remove user from group: %w", err)
	}
	return nil
}

// AssignManagerToGroup makes the profile a manager of the group in a single
// upsert keyed on the (group_id, profile_id) unique index: a non-member
// joins as manager, an existing member is promoted in place keeping its
// position label. Concurrent calls converge on one row.
func (r *membershipRepo) AssignManagerToGroup(ctx context.Context, groupID, profileID uuid.UUID) (*models.GroupMember, error) {
	member := &models.GroupMember{
		ID:        uuid.New(),
		GroupID:   groupID,
		ProfileID: profileID,
		Role:      models.RoleManager,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "group_id"}, {Name: "profile_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"role":       models.RoleManager,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(member).Error
	if err != nil {
		return nil, fmt.Errorf("assign manager to group: %w", err)
	}
	r.log.Debug("manager assigned", "group_id", groupID, "profile_id", profileID)
	// On conflict the generated id above never hit the table; re-read the
	// row that actually holds the pair.
	stored, err := r.Get(ctx, groupID, profileID)
	if err != nil {
		return nil, fmt.Errorf("assign manager to group: %w", err)
	}
	return stored, nil
}

// RemoveManagerFromGroup demotes the membership back to a plain member. The
// row is preserved; leaving the group entirely goes through
// RemoveUserFromGroup. Demoting a profile that is not a member reports
// ErrNotFound.
func (r *membershipRepo) RemoveManagerFromGroup(ctx context.Context, groupID, profileID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Where("group_id = ? AND profile_id = ?", groupID, profileID).
		Update("role", models.RoleMember)
	if res.Error != nil {
		return fmt.Errorf("remove manager from group: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("remove manager from group: %w", ErrNotFound)
	}
	r.log.Debug("manager demoted", "group_id", groupID, "profile_id", profileID)
	return nil
}
