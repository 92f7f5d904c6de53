package models

import (
	"time"

	"github.com/google/uuid"
)

// Benchmark is the expected score for one dimension within one industry.
// Values are percentile-like numbers, typically between 50 and 90.
type Benchmark struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DimensionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_benchmarks_dimension_industry" json:"dimension_id"`
	IndustryID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_benchmarks_dimension_industry" json:"industry_id"`
	Value       float64   `gorm:"not null" json:"value"`
}
