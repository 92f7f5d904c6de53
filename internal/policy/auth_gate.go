// Package policy wires the generic gate to the domain: a database-backed
// resolver that turns profile ids into permission sets, and a client-scope
// policy that confines non-admins to records of their own client.
package policy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/gate"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
)

// Resource types known to the gate. Permissions are "resource:action" pairs
// over these names.
const (
	ResourceClient    = "client"
	ResourceUser      = "user"
	ResourceGroup     = "group"
	ResourceIndustry  = "industry"
	ResourceBenchmark = "benchmark"
)

// AuthGate is the configured authorization entry point: a gate over uuid
// subjects with a cached DB resolver behind it. Callers pass the acting
// profile's id explicitly on every check.
type AuthGate struct {
	Gate     *gate.Gate[uuid.UUID]
	Resolver *gate.CachedResolver[uuid.UUID]

	log *logger.Logger
}

// NewAuthGate assembles the resolver, cache and gate, and registers the
// client-scope policy for every scoped resource type.
func NewAuthGate(db *gorm.DB, log *logger.Logger, cacheTTL time.Duration) *AuthGate {
	resolver := gate.NewCachedResolver[uuid.UUID](NewDBResolver(db), cacheTTL)
	g := gate.New[uuid.UUID](resolver)

	scope := NewClientScopePolicy(resolver)
	g.RegisterPolicy(ResourceClient, scope)
	g.RegisterPolicy(ResourceUser, scope)
	g.RegisterPolicy(ResourceGroup, scope)
	g.RegisterPolicy(ResourceIndustry, referencePolicy{resolver: resolver})
	g.RegisterPolicy(ResourceBenchmark, referencePolicy{resolver: resolver})

	return &AuthGate{
		Gate:     g,
		Resolver: resolver,
		log:      log.With("component", "authgate"),
	}
}

// Authorize checks whether actor may perform action on the resource type,
// and when value is non-nil, on that specific record.
func (ag *AuthGate) Authorize(ctx context.Context, actor uuid.UUID, action gate.Action, resource string, value any) error {
	err := ag.Gate.Authorize(ctx, actor, action, resource, value)
	if err != nil {
		ag.log.Debug("authorization denied",
			"actor", actor,
			"action", string(action),
			"resource", resource,
		)
	}
	return err
}

// Can is Authorize squeezed to a bool.
func (ag *AuthGate) Can(ctx context.Context, actor uuid.UUID, action gate.Action, resource string, value any) bool {
	return ag.Authorize(ctx, actor, action, resource, value) == nil
}

// CanProfile checks the actor's permission alone, without a record. Useful
// before anything is loaded.
func (ag *AuthGate) CanProfile(ctx context.Context, actor uuid.UUID, action gate.Action, resource string) bool {
	return ag.Gate.CanProfile(ctx, actor, action, resource)
}

// InvalidateUser drops one actor's cached profile. Call it whenever the
// actor's admin flag or client assignment changes.
func (ag *AuthGate) InvalidateUser(actor uuid.UUID) {
	ag.Resolver.Invalidate(actor)
}

// InvalidateAll clears the whole profile cache.
func (ag *AuthGate) InvalidateAll() {
	ag.Resolver.InvalidateAll()
}

// referencePolicy covers industries and benchmarks. They carry no client
// scope: any resolved subject may read a record, writes stay admin-only.
type referencePolicy struct {
	resolver gate.Resolver[uuid.UUID]
}

func (p referencePolicy) Can(ctx context.Context, subject uuid.UUID, action gate.Action, _ any) bool {
	profile, err := p.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return false
	}
	switch action {
	case gate.ActionView, gate.ActionList:
		return true
	}
	scope, ok := profile.(SubjectScope)
	if !ok {
		return false
	}
	return scope.IsAdmin()
}
