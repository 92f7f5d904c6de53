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

// BenchmarkRepo persists per-industry dimension benchmarks. The
// (dimension, industry) pair is unique; range queries go through List with
// gte/lte filters on value.
type BenchmarkRepo interface {
	List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Benchmark, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Benchmark, error)
	Create(ctx context.Context, benchmark *models.Benchmark) (*models.Benchmark, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Benchmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type benchmarkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBenchmarkRepo(db *gorm.DB, log *logger.Logger) BenchmarkRepo {
	return &benchmarkRepo{db: db, log: log.With("repo", "benchmark")}
}

func (r *benchmarkRepo) List(ctx context.Context, sort *query.Sort, filters ...query.Filter) ([]models.Benchmark, error) {
	tx, err := query.Apply(r.db.WithContext(ctx).Model(&models.Benchmark{}), sort, filters)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	benchmarks := make([]models.Benchmark, 0)
	if err := tx.Find(&benchmarks).Error; err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	return benchmarks, nil
}

func (r *benchmarkRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Benchmark, error) {
	var benchmark models.Benchmark
	if err := r.db.WithContext(ctx).First(&benchmark, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get benchmark %s: %w", id, wrapNotFound(err))
	}
	return &benchmark, nil
}

func (r *benchmarkRepo) Create(ctx context.Context, benchmark *models.Benchmark) (*models.Benchmark, error) {
	ensureID(&benchmark.ID)
	if err := r.db.WithContext(ctx).Create(benchmark).Error; err != nil {
		return nil, fmt.Errorf("create benchmark: %w", err)
	}
	r.log.Debug("benchmark created", "id", benchmark.ID, "dimension_id", benchmark.DimensionID, "industry_id", benchmark.IndustryID)
	return benchmark, nil
}

func (r *benchmarkRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Benchmark, error) {
	if err := updateByID(ctx, r.db, &models.Benchmark{}, id, fields); err != nil {
		return nil, fmt.Errorf("update benchmark %s: %w", id, err)
	}
	return r.GetByID(ctx, id)
}

func (r *benchmarkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.Benchmark{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete benchmark %s: %w", id, err)
	}
	return nil
}
