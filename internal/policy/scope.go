package policy

import (
	"context"

	"github.com/google/uuid"

	"github.com/Cyberworld-builders/involved-v2-sub003/gate"
)

// ClientScoped is implemented by records that belong to a client. The
// domain models implement it; records without a client (nil scope) are
// admin-only territory.
type ClientScoped interface {
	ClientScope() *uuid.UUID
}

// SubjectScope exposes the scope facts of a resolved profile.
type SubjectScope interface {
	IsAdmin() bool
	ClientID() *uuid.UUID
}

// ClientScopePolicy confines non-admin subjects to records of their own
// client. It resolves the subject through the same cached resolver the gate
// uses, so a record check costs no extra database round trip.
type ClientScopePolicy struct {
	resolver gate.Resolver[uuid.UUID]
}

func NewClientScopePolicy(resolver gate.Resolver[uuid.UUID]) *ClientScopePolicy {
	return &ClientScopePolicy{resolver: resolver}
}

func (p *ClientScopePolicy) Can(ctx context.Context, subject uuid.UUID, _ gate.Action, value any) bool {
	profile, err := p.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return false
	}
	scope, ok := profile.(SubjectScope)
	if !ok {
		return false
	}
	if scope.IsAdmin() {
		return true
	}
	record, ok := value.(ClientScoped)
	if !ok {
		return false
	}
	recordClient := record.ClientScope()
	ownClient := scope.ClientID()
	return recordClient != nil && ownClient != nil && *recordClient == *ownClient
}
