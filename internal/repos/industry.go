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

// IndustryRepo persists the industry reference list.
type IndustryRepo interface {
	List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Industry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Industry, error)
	Create(ctx context.Context, industry *models.Industry) (*models.Industry, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Industry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type industryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIndustryRepo(db *gorm.DB, log *logger.Logger) IndustryRepo {
	return &industryRepo{db: db, log: log.With("repo", "industry")}
}

func (r *industryRepo) List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Industry, error) {
	tx, err := query.Apply(r.db.WithContext(ctx).Model(&models.Industry{}), sort, filters)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	industries := make([]models.Industry, 0)
	if err := tx.Find(&industries).Error; err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	return industries, nil
}

func (r *industryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Industry, error) {
	var industry models.Industry
	if err := r.db.WithContext(ctx).First(&industry, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get industry %s: %w", id, wrapNotFound(err))
	}
	return &industry, nil
}

func (r *industryRepo) Create(ctx context.Context, industry *models.Industry) (*models.Industry, error) {
	ensureID(&industry.ID)
	if err := r.db.WithContext(ctx).Create(industry).Error; err != nil {
		return nil, fmt.Errorf("create industry: %w", err)
	}
	r.log.Debug("industry created", "id", industry.ID, "name", industry.Name)
	return industry, nil
}

func (r *industryRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Industry, error) {
	if err := updateByID(ctx, r.db, &models.Industry{}, id, fields); err != nil {
		return nil, fmt.Errorf("update industry %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *industryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Industry{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete industry %s: %w", id, err)
	}
	return nil
}
