package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/gate"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
)

// memberResources are the resource types a non-admin may read.
var memberResources = []string{
	ResourceClient,
	ResourceUser,
	ResourceGroup,
	ResourceIndustry,
	ResourceBenchmark,
}

// DBResolver resolves a profile id to its permission set. Admins hold the
// superadmin wildcard; everyone else gets read access, narrowed further by
// the client-scope policy.
type DBResolver struct {
	db *gorm.DB
}

func NewDBResolver(db *gorm.DB) *DBResolver {
	return &DBResolver{db: db}
}

// Resolve loads the profile row. Unknown subjects resolve to (nil, nil),
// which the gate treats as unauthorized.
func (r *DBResolver) Resolve(ctx context.Context, subject uuid.UUID) (gate.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if profile.IsAdmin {
		return &subjectProfile{
			name:    "admin",
			isAdmin: true,
			perms:   []gate.Permission{gate.PermissionSuperAdmin},
		}, nil
	}

	perms := make([]gate.Permission, 0, 2*len(memberResources))
	for _, resource := range memberResources {
		perms = append(perms,
			gate.NewPermission(resource, gate.ActionView),
			gate.NewPermission(resource, gate.ActionList),
		)
	}
	return &subjectProfile{
		name:     "member",
		clientID: profile.ClientID,
		perms:    perms,
	}, nil
}

// subjectProfile is the resolved permission set plus the scope facts the
// client-scope policy needs.
type subjectProfile struct {
	name     string
	isAdmin  bool
	clientID *uuid.UUID
	perms    []gate.Permission
}

func (p *subjectProfile) Name() string { return p.name }

func (p *subjectProfile) HasPermission(requested gate.Permission) bool {
	for _, perm := range p.perms {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

func (p *subjectProfile) Permissions() []gate.Permission {
	return append([]gate.Permission(nil), p.perms...)
}

func (p *subjectProfile) IsAdmin() bool { return p.isAdmin }

func (p *subjectProfile) ClientID() *uuid.UUID { return p.clientID }
