package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a company account. Profiles and groups belong to at most one
// client at a time.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;size:255;not null" json:"name"`

	Profiles []Profile `gorm:"foreignKey:ClientID" json:"profiles,omitempty"`
	Groups   []Group   `gorm:"foreignKey:ClientID" json:"groups,omitempty"`
}

// ClientScope identifies the client a record belongs to for authorization.
// A client record is scoped to itself.
func (c *Client) ClientScope() *uuid.UUID {
	id := c.ID
	return &id
}
