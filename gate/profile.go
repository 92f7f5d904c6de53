package gate

import "context"

// Profile is the resolved permission set of a subject.
type Profile interface {
	Name() string
	HasPermission(p Permission) bool
	Permissions() []Permission
}

// Resolver looks up the profile of a subject. Returning (nil, nil) means
// the subject is unknown; the gate treats it as unauthorized.
type Resolver[S comparable] interface {
	Resolve(ctx context.Context, subject S) (Profile, error)
}

// StaticProfile is an in-memory Profile for tests and fixed wiring.
type StaticProfile struct {
	name        string
	permissions map[Permission]bool
}

// NewStaticProfile builds a profile carrying the given permissions.
func NewStaticProfile(name string, permissions ...Permission) *StaticProfile {
	p := &StaticProfile{
		name:        name,
		permissions: make(map[Permission]bool, len(permissions)),
	}
	for _, perm := range permissions {
		p.permissions[perm] = true
	}
	return p
}

func (p *StaticProfile) Name() string { return p.name }

// Permissions returns all permissions in this profile.
func (p *StaticProfile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	return perms
}

// HasPermission reports whether any held permission matches the requested
// one, wildcards included.
func (p *StaticProfile) HasPermission(requested Permission) bool {
	for perm := range p.permissions {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// StaticResolver is an in-memory Resolver for tests and fixed wiring.
type StaticResolver[S comparable] struct {
	profiles map[S]Profile
}

func NewStaticResolver[S comparable]() *StaticResolver[S] {
	return &StaticResolver[S]{profiles: make(map[S]Profile)}
}

// Set assigns a profile to a subject.
func (r *StaticResolver[S]) Set(subject S, profile Profile) {
	r.profiles[subject] = profile
}

// Resolve returns the profile for the given subject, nil when unknown.
func (r *StaticResolver[S]) Resolve(_ context.Context, subject S) (Profile, error) {
	if profile, ok := r.profiles[subject]; ok {
		return profile, nil
	}
	return nil, nil
}
