package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/repository/postgres"
	"github.com/google/uuid"
)

// Authorizer answers "may this user do this on this farm". Every
// farm-scoped operation goes through it: first the membership check,
// then the permission check, always in that order so a non-member gets
// a membership error even when the permission would also be missing.
type Authorizer struct {
	membershipRepo domain.MembershipRepository
	roleRepo       domain.RoleRepository
	registry       *domain.StateRegistry
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(membershipRepo domain.MembershipRepository, roleRepo domain.RoleRepository, registry *domain.StateRegistry) *Authorizer {
	return &Authorizer{
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
		registry:       registry,
	}
}

// FindActiveMembership returns the user's Active membership on the farm,
// or ErrNotAMember when there is none.
func (a *Authorizer) FindActiveMembership(ctx context.Context, userID, farmID uuid.UUID) (*domain.Membership, error) {
	activeID, err := a.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, err
	}

	membership, err := a.membershipRepo.FindActive(ctx, userID, farmID, activeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	if membership == nil {
		return nil, domain.ErrNotAMember
	}

	return membership, nil
}

// Authorize checks membership first, then the permission, and returns the
// membership so callers can reuse the role.
func (a *Authorizer) Authorize(ctx context.Context, userID, farmID uuid.UUID, permission string) (*domain.Membership, error) {
	membership, err := a.FindActiveMembership(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}

	has, err := a.roleRepo.HasPermission(ctx, membership.RoleID, permission)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !has {
		return nil, domain.ErrPermissionDenied
	}

	return membership, nil
}

// CreateMembership inserts an Active membership for (user, farm, role).
// A partial unique index guards the one-active-membership invariant at
// the storage level; a violation surfaces as ErrAlreadyMember.
func (a *Authorizer) CreateMembership(ctx context.Context, userID, farmID uuid.UUID, roleID int) (*domain.Membership, error) {
	activeID, err := a.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, err
	}

	membership := &domain.Membership{
		UserID:  userID,
		FarmID:  farmID,
		RoleID:  roleID,
		StateID: activeID,
	}

	if err := a.membershipRepo.Create(ctx, membership); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return membership, nil
}

// RoleName resolves the role name for a membership.
func (a *Authorizer) RoleName(ctx context.Context, roleID int) (string, error) {
	role, err := a.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return "", fmt.Errorf("role %d not seeded: %w", roleID, domain.ErrStateNotFound)
	}
	return role.Name, nil
}
