// Package services holds the management workflows that sit above the
// repositories: each operation authorizes the acting profile, validates its
// input and then delegates to the data layer.
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Cyberworld-builders/involved-v2-sub003/gate"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/logger"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/models"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/policy"
	"github.com/Cyberworld-builders/involved-v2-sub003/internal/repos"
	"github.com/Cyberworld-builders/involved-v2-sub003/validation"
)

// RosterService manages the people roster: provisioning user records and
// moving them between clients, industries and feedback groups. Every method
// takes the acting profile's id first.
type RosterService interface {
	ProvisionUser(ctx context.Context, actor uuid.UUID, input ProvisionUserInput) (*models.Profile, error)
	MoveUserToClient(ctx context.Context, actor, profileID, clientID uuid.UUID) error
	RemoveUserFromClient(ctx context.Context, actor, profileID uuid.UUID) error
	PlaceUserInIndustry(ctx context.Context, actor, profileID, industryID uuid.UUID) error
	RemoveUserFromIndustry(ctx context.Context, actor, profileID uuid.UUID) error
	AddMemberToGroup(ctx context.Context, actor, groupID, profileID uuid.UUID, position string) (*models.GroupMember, error)
	RemoveMemberFromGroup(ctx context.Context, actor, groupID, profileID uuid.UUID) error
	PromoteGroupManager(ctx context.Context, actor, groupID, profileID uuid.UUID) (*models.GroupMember, error)
	DemoteGroupManager(ctx context.Context, actor, groupID, profileID uuid.UUID) error
}

type rosterService struct {
	authGate    *policy.AuthGate
	clients     repos.ClientRepo
	profiles    repos.ProfileRepo
	industries  repos.IndustryRepo
	groups      repos.GroupRepo
	assignments repos.AssignmentRepo
	memberships repos.MembershipRepo
	log         *logger.Logger
}

func NewRosterService(db *gorm.DB, authGate *policy.AuthGate, log *logger.Logger) RosterService {
	return &rosterService{
		authGate:    authGate,
		clients:     repos.NewClientRepo(db, log),
		profiles:    repos.NewProfileRepo(db, log),
		industries:  repos.NewIndustryRepo(db, log),
		groups:      repos.NewGroupRepo(db, log),
		assignments: repos.NewAssignmentRepo(db, log),
		memberships: repos.NewMembershipRepo(db, log),
		log:         log.With("service", "roster"),
	}
}

// ProvisionUserInput carries the fields of a new user record. AuthID points
// at the identity in the hosted auth service; ClientID may attach the user
// to a client from the start.
type ProvisionUserInput struct {
	AuthID   uuid.UUID
	Username string
	FullName string
	Email    string
	ClientID *uuid.UUID
}

// ProvisionUser creates the application-side record for an auth identity.
func (s *rosterService) ProvisionUser(ctx context.Context, actor uuid.UUID, input ProvisionUserInput) (*models.Profile, error) {
	v := validation.Violations{}
	validation.ValidID("auth_id", input.AuthID, v)
	validation.Required("username", input.Username, v)
	validation.MaxLen("username", input.Username, 100, v)
	validation.Email("email", input.Email, v)
	validation.MaxLen("full_name", input.FullName, 255, v)
	if input.ClientID != nil {
		validation.ValidID("client_id", *input.ClientID, v)
	}
	if !v.Empty() {
		return nil, v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionCreate, policy.ResourceUser, nil); err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	if input.ClientID != nil {
		if _, err := s.clients.GetByID(ctx, *input.ClientID); err != nil {
			return nil, fmt.Errorf("provision user: %w", err)
		}
	}
	profile, err := s.profiles.Create(ctx, &models.Profile{
		AuthID:   input.AuthID,
		Username: input.Username,
		FullName: input.FullName,
		Email:    input.Email,
		ClientID: input.ClientID,
	})
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	s.log.Info("user provisioned", "profile_id", profile.ID, "username", profile.Username)
	return profile, nil
}

// MoveUserToClient points the profile at the client, replacing any previous
// assignment. The actor's cached scope for that profile is dropped so the
// move takes effect on the next authorization check.
func (s *rosterService) MoveUserToClient(ctx context.Context, actor, profileID, clientID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("profile_id", profileID, v)
	validation.ValidID("client_id", clientID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceUser, nil); err != nil {
		return fmt.Errorf("move user to client: %w", err)
	}
	// The column write does not verify the target, so check it here.
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return fmt.Errorf("move user to client: %w", err)
	}
	if err := s.assignments.AssignUserToClient(ctx, profileID, clientID); err != nil {
		return fmt.Errorf("move user to client: %w", err)
	}
	s.authGate.InvalidateUser(profileID)
	s.log.Info("user moved to client", "profile_id", profileID, "client_id", clientID)
	return nil
}

// RemoveUserFromClient clears the profile's client assignment.
func (s *rosterService) RemoveUserFromClient(ctx context.Context, actor, profileID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("profile_id", profileID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceUser, nil); err != nil {
		return fmt.Errorf("remove user from client: %w", err)
	}
	if err := s.assignments.UnassignUserFromClient(ctx, profileID); err != nil {
		return fmt.Errorf("remove user from client: %w", err)
	}
	s.authGate.InvalidateUser(profileID)
	s.log.Info("user removed from client", "profile_id", profileID)
	return nil
}

// PlaceUserInIndustry points the profile at the industry.
func (s *rosterService) PlaceUserInIndustry(ctx context.Context, actor, profileID, industryID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("profile_id", profileID, v)
	validation.ValidID("industry_id", industryID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceUser, nil); err != nil {
		return fmt.Errorf("place user in industry: %w", err)
	}
	if _, err := s.industries.GetByID(ctx, industryID); err != nil {
		return fmt.Errorf("place user in industry: %w", err)
	}
	if err := s.assignments.AssignUserToIndustry(ctx, profileID, industryID); err != nil {
		return fmt.Errorf("place user in industry: %w", err)
	}
	s.log.Info("user placed in industry", "profile_id", profileID, "industry_id", industryID)
	return nil
}

// RemoveUserFromIndustry clears the profile's industry assignment.
func (s *rosterService) RemoveUserFromIndustry(ctx context.Context, actor, profileID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("profile_id", profileID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceUser, nil); err != nil {
		return fmt.Errorf("remove user from industry: %w", err)
	}
	if err := s.assignments.UnassignUserFromIndustry(ctx, profileID); err != nil {
		return fmt.Errorf("remove user from industry: %w", err)
	}
	return nil
}

// AddMemberToGroup enrolls the profile in the group as a plain member with
// an optional position label.
func (s *rosterService) AddMemberToGroup(ctx context.Context, actor, groupID, profileID uuid.UUID, position string) (*models.GroupMember, error) {
	v := validation.Violations{}
	validation.ValidID("group_id", groupID, v)
	validation.ValidID("profile_id", profileID, v)
	validation.MaxLen("position", position, 100, v)
	if !v.Empty() {
		return nil, v
	}
	// Load the group first: membership rows must never point at a group
	// that does not exist, and the loaded record feeds the scope check.
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("add member to group: %w", err)
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceGroup, group); err != nil {
		return nil, fmt.Errorf("add member to group: %w", err)
	}
	member, err := s.memberships.AssignUserToGroup(ctx, groupID, profileID, position)
	if err != nil {
		return nil, fmt.Errorf("add member to group: %w", err)
	}
	s.log.Info("member added to group", "group_id", groupID, "profile_id", profileID)
	return member, nil
}

// RemoveMemberFromGroup drops the profile's membership row. Removing someone
// who was never a member succeeds quietly.
func (s *rosterService) RemoveMemberFromGroup(ctx context.Context, actor, groupID, profileID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("group_id", groupID, v)
	validation.ValidID("profile_id", profileID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceGroup, nil); err != nil {
		return fmt.Errorf("remove member from group: %w", err)
	}
	if err := s.memberships.RemoveUserFromGroup(ctx, groupID, profileID); err != nil {
		return fmt.Errorf("remove member from group: %w", err)
	}
	return nil
}

// PromoteGroupManager makes the profile a manager of the group, enrolling it
// first when it was not yet a member. Promoting an existing manager changes
// nothing.
func (s *rosterService) PromoteGroupManager(ctx context.Context, actor, groupID, profileID uuid.UUID) (*models.GroupMember, error) {
	v := validation.Violations{}
	validation.ValidID("group_id", groupID, v)
	validation.ValidID("profile_id", profileID, v)
	if !v.Empty() {
		return nil, v
	}
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("promote group manager: %w", err)
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceGroup, group); err != nil {
		return nil, fmt.Errorf("promote group manager: %w", err)
	}
	member, err := s.memberships.AssignManagerToGroup(ctx, groupID, profileID)
	if err != nil {
		return nil, fmt.Errorf("promote group manager: %w", err)
	}
	s.log.Info("group manager promoted", "group_id", groupID, "profile_id", profileID)
	return member, nil
}

// DemoteGroupManager strips the manager role but keeps the membership.
// Demoting a plain member is a no-op; demoting a non-member fails.
func (s *rosterService) DemoteGroupManager(ctx context.Context, actor, groupID, profileID uuid.UUID) error {
	v := validation.Violations{}
	validation.ValidID("group_id", groupID, v)
	validation.ValidID("profile_id", profileID, v)
	if !v.Empty() {
		return v
	}
	if err := s.authGate.Authorize(ctx, actor, gate.ActionAssign, policy.ResourceGroup, nil); err != nil {
		return fmt.Errorf("demote group manager: %w", err)
	}
	if err := s.memberships.RemoveManagerFromGroup(ctx, groupID, profileID); err != nil {
		return fmt.Errorf("demote group manager: %w", err)
	}
	s.log.Info("group manager demoted", "group_id", groupID, "profile_id", profileID)
	return nil
}
