// Package gate is the authorization layer: a permission resolver fronted by
// a registry of per-resource policies. A subject (whatever identifies the
// caller: a profile id, a claims struct) resolves to a Profile carrying
// "resource:action" permissions; registered policies add per-record checks
// such as client scoping on top. The package knows nothing about the domain
// models or the database.
package gate

import "context"

// Gate authorizes subjects of type S. Authorization runs in two steps: the
// subject's resolved profile must carry the resource:action permission, and
// when the caller hands over a concrete record the policy registered for
// that resource must accept it.
type Gate[S comparable] struct {
	resolver Resolver[S]
	policies map[string]Policy[S]
}

// New builds a gate around the given resolver.
func New[S comparable](resolver Resolver[S]) *Gate[S] {
	return &Gate[S]{
		resolver: resolver,
		policies: make(map[string]Policy[S]),
	}
}

// RegisterPolicy sets the per-record policy for a resource type, replacing
// any previous one.
func (g *Gate[S]) RegisterPolicy(resource string, p Policy[S]) {
	g.policies[resource] = p
}

// Authorize checks whether subject may perform action on the resource type.
// A non-nil value additionally runs the resource's registered policy against
// that record; passing a value for a resource without a policy returns
// ErrNoPolicyDefined rather than silently allowing it.
func (g *Gate[S]) Authorize(ctx context.Context, subject S, action Action, resource string, value any) error {
	var zero S
	if subject == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return ErrUnauthorized
	}
	if !profile.HasPermission(NewPermission(resource, action)) {
		return ErrUnauthorized
	}
	if value == nil {
		return nil
	}
	policy, ok := g.policies[resource]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !policy.Can(ctx, subject, action, value) {
		return ErrUnauthorized
	}
	return nil
}

// Can is Authorize squeezed to a bool.
func (g *Gate[S]) Can(ctx context.Context, subject S, action Action, resource string, value any) bool {
	return g.Authorize(ctx, subject, action, resource, value) == nil
}

// CanProfile checks the profile permission alone, ignoring record policies.
// Useful to decide what to offer before any record is loaded.
func (g *Gate[S]) CanProfile(ctx context.Context, subject S, action Action, resource string) bool {
	var zero S
	if subject == zero {
		return false
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return false
	}
	return profile.HasPermission(NewPermission(resource, action))
}
