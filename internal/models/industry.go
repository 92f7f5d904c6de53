package models

import (
	"time"

	"github.com/google/uuid"
)

// Industry is reference data used to segment benchmark values.
type Industry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
}
