package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-side user record. Credentials and sessions live
// in the hosted auth service; AuthID references that identity and nothing
// secret is stored here.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"auth_id"`
	Username  string    `gorm:"size:100;index" json:"username"`
	FullName  string    `gorm:"size:255" json:"full_name,omitempty"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	// ClientID and IndustryID are single-valued assignments.
	// A nil value means unassigned.
	ClientID   *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Client     *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	IndustryID *uuid.UUID `gorm:"type:uuid;index" json:"industry_id,omitempty"`
	Industry   *Industry  `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	LoginCount  int        `gorm:"default:0" json:"login_count"`
}

// DisplayName returns the full name when set, falling back to the username.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// ClientScope identifies the client a record belongs to for authorization.
func (p *Profile) ClientScope() *uuid.UUID {
	return p.ClientID
}
