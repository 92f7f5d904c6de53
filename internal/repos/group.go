package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/query"
)

// GroupRepo persists feedback groups. Membership rows are managed by
// MembershipRepo, not here.
type GroupRepo interface {
	List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Group, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, log *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: log.With("repo", "group")}
}

func (r *groupRepo) List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Group, error) {
	tx, err := query.Apply(r.db.WithContext(ctx).Model(&models.Group{}), sort, filters)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groups := make([]models.Group, 0)
	if err := tx.Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r *groupRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get group %s: %w", id, wrapNotFound(err))
	}
	return &group, nil
}

func (r *groupRepo) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	ensureID(&group.ID)
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	r.log.Debug("group created", "id", group.ID, "name", group.Name, "client_id", group.ClientID)
	return group, nil
}

func (r *groupRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Group, error) {
	if err := updateByID(ctx, r.db, &models.Group{}, id, fields); err != nil {
		return nil, fmt.Errorf("update group %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *groupRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Group{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return nil
}
