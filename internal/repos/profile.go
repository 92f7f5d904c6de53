package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/query"
)

// ProfileRepo persists user records. Email and AuthID are unique keys.
type ProfileRepo interface {
	List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RecordLogin(ctx context.Context, id uuid.UUID) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, log *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: log.With("repo", "profile")}
}

func (r *profileRepo) List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Profile, error) {
	tx, err := query.Apply(r.db.WithContext(ctx).Model(&models.Profile{}), sort, filters)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]models.Profile, 0)
	if err := tx.Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, wrapNotFound(err))
	}
	return &profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("get profile by email %s: %w", email, wrapNotFound(err))
	}
	return &profile, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	ensureID(&profile.ID)
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	r.log.Debug("profile created", "id", profile.ID, "email", profile.Email)
	return profile, nil
}

func (r *profileRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Profile, error) {
	if err := updateByID(ctx, r.db, &models.Profile{}, id, fields); err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *profileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete profile %s: %w", id, err)
	}
	return nil
}

// RecordLogin stamps last_login_at and bumps the login counter.
func (r *profileRepo) RecordLogin(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]any{
		"last_login_at": time.Now().UTC(),
		"login_count":   gorm.Expr("login_count + 1"),
	})
	if res.Error != nil {
		return fmt.Errorf("record login %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("record login %s: %w", id, ErrNotFound)
	}
	return nil
}
