package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

// CollaboratorService manages the members of a farm
type CollaboratorService struct {
	membershipRepo domain.MembershipRepository
	roleRepo       domain.RoleRepository
	authz          *Authorizer
	registry       *domain.StateRegistry
}

// NewCollaboratorService creates a new collaborator service
func NewCollaboratorService(
	membershipRepo domain.MembershipRepository,
	roleRepo domain.RoleRepository,
	authz *Authorizer,
	registry *domain.StateRegistry,
) *CollaboratorService {
	return &CollaboratorService{
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
		authz:          authz,
		registry:       registry,
	}
}

// List returns the active members of a farm
func (s *CollaboratorService) List(ctx context.Context, userID, farmID uuid.UUID) ([]domain.Collaborator, error) {
	if _, err := s.authz.Authorize(ctx, userID, farmID, domain.PermReadCollaborators); err != nil {
		return nil, err
	}

	activeID, err := s.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, err
	}

	collaborators, err := s.membershipRepo.ListCollaborators(ctx, farmID, activeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}

	return collaborators, nil
}

// UpdateRole changes a collaborator's role. The actor needs the edit
// permission matching the collaborator's current role, and the new role
// must sit below the actor's own in the hierarchy.
func (s *CollaboratorService) UpdateRole(ctx context.Context, actorID, farmID uuid.UUID, input domain.CollaboratorRoleUpdate) error {
	if actorID == input.CollaboratorUserID {
		return domain.ErrOwnRoleChange
	}

	actor, target, targetRole, err := s.pair(ctx, actorID, farmID, input.CollaboratorUserID)
	if err != nil {
		return err
	}

	permission, editable := domain.EditPermission[targetRole.Name]
	if !editable {
		// Owners are not editable by anyone
		return domain.ErrPermissionDenied
	}
	has, err := s.roleRepo.HasPermission(ctx, actor.RoleID, permission)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !has {
		return domain.ErrPermissionDenied
	}

	newRole, err := s.roleRepo.GetByName(ctx, input.NewRole)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if newRole == nil {
		return domain.ErrRoleNotAssignable
	}

	actorRoleName, err := s.authz.RoleName(ctx, actor.RoleID)
	if err != nil {
		return err
	}
	if !domain.CanAssign(actorRoleName, newRole.Name) {
		return domain.ErrRoleNotAssignable
	}

	if newRole.ID == target.RoleID {
		return domain.ErrSameRole
	}

	if err := s.membershipRepo.UpdateRole(ctx, target.ID, newRole.ID); err != nil {
		return fmt.Errorf("failed to update collaborator role: %w", err)
	}

	return nil
}

// Remove deactivates a collaborator's membership. The row is kept; only
// the state flips to Inactive.
func (s *CollaboratorService) Remove(ctx context.Context, actorID, farmID uuid.UUID, input domain.CollaboratorRemove) error {
	if actorID == input.CollaboratorUserID {
		return domain.ErrOwnRemoval
	}

	actor, target, targetRole, err := s.pair(ctx, actorID, farmID, input.CollaboratorUserID)
	if err != nil {
		return err
	}

	permission, removable := domain.RemovePermission[targetRole.Name]
	if !removable {
		// Owners cannot be removed
		return domain.ErrPermissionDenied
	}
	has, err := s.roleRepo.HasPermission(ctx, actor.RoleID, permission)
	if err != nil {
		return fmt.Errorf("failed to check permission: %w", err)
	}
	if !has {
		return domain.ErrPermissionDenied
	}

	inactiveID, err := s.registry.Resolve(domain.EntityMembership, domain.StateInactive)
	if err != nil {
		return err
	}

	if err := s.membershipRepo.UpdateState(ctx, target.ID, inactiveID); err != nil {
		return fmt.Errorf("failed to deactivate membership: %w", err)
	}

	return nil
}

// pair loads the actor's and the target's active memberships plus the
// target's current role.
func (s *CollaboratorService) pair(ctx context.Context, actorID, farmID, targetUserID uuid.UUID) (*domain.Membership, *domain.Membership, *domain.Role, error) {
	actor, err := s.authz.FindActiveMembership(ctx, actorID, farmID)
	if err != nil {
		return nil, nil, nil, err
	}

	activeID, err := s.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, nil, nil, err
	}
	target, err := s.membershipRepo.FindActive(ctx, targetUserID, farmID, activeID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find collaborator: %w", err)
	}
	if target == nil {
		return nil, nil, nil, domain.ErrCollaboratorNotFound
	}

	targetRole, err := s.roleRepo.GetByID(ctx, target.RoleID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get role: %w", err)
	}
	if targetRole == nil {
		return nil, nil, nil, fmt.Errorf("role %d not seeded: %w", target.RoleID, domain.ErrStateNotFound)
	}

	return actor, target, targetRole, nil
}
