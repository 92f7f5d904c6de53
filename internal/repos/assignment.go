package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

// AssignmentRepo manages the single-valued relationships a profile can hold:
// its client and its industry. Assigning writes the foreign key; unassigning
// nulls it. A profile belongs to at most one of each at a time.
type AssignmentRepo interface {
	UsersByClient(ctx context.Context, clientID uuid.UUID) ([]models.Profile, error)
	UsersByIndustry(ctx context.Context, industryID uuid.UUID) ([]models.Profile, error)
	ClientByUser(ctx context.Context, profileID uuid.UUID) (*models.Client, error)
	IndustryByUser(ctx context.Context, profileID uuid.UUID) (*models.Industry, error)
	AssignUserToClient(ctx context.Context, profileID, clientID uuid.UUID) error
	UnassignUserFromClient(ctx context.Context, profileID uuid.UUID) error
	AssignUserToIndustry(ctx context.Context, profileID, industryID uuid.UUID) error
	UnassignUserFromIndustry(ctx context.Context, profileID uuid.UUID) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, log *logger.Logger) AssignmentRepo {
	return &assignmentRepo{db: db, log: log.With("repo", "assignment")}
}

func (r *assignmentRepo) UsersByClient(ctx context.Context, clientID uuid.UUID) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("users by client %s: %w", clientID, err)
	}
	return profiles, nil
}

func (r *assignmentRepo) UsersByIndustry(ctx context.Context, industryID uuid.UUID) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	err := r.db.WithContext(ctx).
		Where("industry_id = ?", industryID).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("users by industry %s: %w", industryID, err)
	}
	return profiles, nil
}

// ClientByUser resolves the client a profile is assigned to. An unassigned
// profile yields (nil, nil); a missing profile yields ErrNotFound.
func (r *assignmentRepo) ClientByUser(ctx context.Context, profileID uuid.UUID) (*models.Client, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, fmt.Errorf("client by user %s: %w", profileID, wrapNotFound(err))
	}
	if profile.ClientID == nil {
		return nil, nil
	}
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", *profile.ClientID).Error; err != nil {
		return nil, fmt.Errorf("client by user %s: %w", profileID, wrapNotFound(err))
	}
	return &client, nil
}

// IndustryByUser resolves the industry a profile is assigned to, with the
// same contract as ClientByUser.
func (r *assignmentRepo) IndustryByUser(ctx context.Context, profileID uuid.UUID) (*models.Industry, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, fmt.Errorf("industry by user %s: %w", profileID, wrapNotFound(err))
	}
	if profile.IndustryID == nil {
		return nil, nil
	}
	var industry models.Industry
	if err := r.db.WithContext(ctx).First(&industry, "id = ?", *profile.IndustryID).Error; err != nil {
		return nil, fmt.Errorf("industry by user %s: %w", profileID, wrapNotFound(err))
	}
	return &industry, nil
}

func (r *assignmentRepo) AssignUserToClient(ctx context.Context, profileID, clientID uuid.UUID) error {
	return r.setProfileColumn(ctx, profileID, "client_id", clientID, "assign user to client")
}

func (r *assignmentRepo) UnassignUserFromClient(ctx context.Context, profileID uuid.UUID) error {
	return r.setProfileColumn(ctx, profileID, "client_id", nil, "unassign user from client")
}

func (r *assignmentRepo) AssignUserToIndustry(ctx context.Context, profileID, industryID uuid.UUID) error {
	return r.setProfileColumn(ctx, profileID, "industry_id", industryID, "assign user to industry")
}

func (r *assignmentRepo) UnassignUserFromIndustry(ctx context.Context, profileID uuid.UUID) error {
	return r.setProfileColumn(ctx, profileID, "industry_id", nil, "unassign user from industry")
}

func (r *assignmentRepo) setProfileColumn(ctx context.Context, profileID uuid.UUID, column string, value any, action string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("%s: %w", action, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s: profile %s: %w", action, profileID, ErrNotFound)
	}
	r.log.Debug("profile assignment changed", "profile_id", profileID, "column", column, "value", value)
	return nil
}
