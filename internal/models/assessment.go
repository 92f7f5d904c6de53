package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback bands for FeedbackEntry.
const (
	BandLow  = "low"
	BandMid  = "mid"
	BandHigh = "high"
)

// Assessment is a survey definition. The seeder maintains one canonical
// leadership assessment; the hierarchy is read-only for the rest of the app.
type Assessment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`

	Dimensions []Dimension `gorm:"constraint:OnDelete:CASCADE" json:"dimensions,omitempty"`
}

// Dimension is a scored competency area. Dimensions nest one level via
// ParentID (quadrant above, competency below in the canonical assessment).
type Dimension struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	AssessmentID uuid.UUID  `gorm:"type:uuid;index;not null" json:"assessment_id"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Sort         int        `json:"sort"`

	Fields []Field `gorm:"constraint:OnDelete:CASCADE" json:"fields,omitempty"`
}

// Field is a single survey question scored against a dimension.
type Field struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DimensionID uuid.UUID `gorm:"type:uuid;index;not null" json:"dimension_id"`
	Prompt      string    `gorm:"size:1000;not null" json:"prompt"`
	Sort        int       `json:"sort"`
}

// FeedbackEntry is canned development feedback for a dimension at a given
// score band.
type FeedbackEntry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DimensionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_dimension_band" json:"dimension_id"`
	Band        string    `gorm:"size:20;not null;uniqueIndex:idx_feedback_dimension_band" json:"band"`
	Text        string    `gorm:"size:2000;not null" json:"text"`
}
