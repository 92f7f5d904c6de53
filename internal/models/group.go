package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership roles. A manager is always also a member; the role column is
// the single source of truth for the distinction.
const (
	RoleMember  = "member"
	RoleManager = "manager"
)

// Group is a 360-degree feedback circle: the set of people rating one
// target user.
type Group struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ClientID    uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	// TargetProfileID is the person being assessed. Optional while the
	// group is being set up.
	TargetProfileID *uuid.UUID `gorm:"type:uuid;index" json:"target_profile_id,omitempty"`
	TargetProfile   *Profile   `gorm:"foreignKey:TargetProfileID" json:"target_profile,omitempty"`

	Members []GroupMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// ClientScope identifies the client a record belongs to for authorization.
func (g *Group) ClientScope() *uuid.UUID {
	id := g.ClientID
	return &id
}

// GroupMember links a profile to a group. At most one row exists per
// (group, profile) pair; the unique index is the conflict target for the
// manager upsert.
type GroupMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_profile" json:"group_id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_members_group_profile" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	// Position is a free-text label such as "Peer" or "Direct Report".
	Position string `gorm:"size:100" json:"position,omitempty"`
	Role     string `gorm:"size:20;not null;default:member" json:"role"`
}

// IsManager reports whether this membership carries the manager role.
func (m *GroupMember) IsManager() bool {
	return m.Role == RoleManager
}
