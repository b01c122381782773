package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

// FarmService handles farm lifecycle operations
type FarmService struct {
	farmRepo domain.FarmRepository
	roleRepo domain.RoleRepository
	authz    *Authorizer
	registry *domain.StateRegistry
	tx       TxRunner
}

// NewFarmService creates a new farm service
func NewFarmService(farmRepo domain.FarmRepository, roleRepo domain.RoleRepository, authz *Authorizer, registry *domain.StateRegistry, tx TxRunner) *FarmService {
	return &FarmService{
		farmRepo: farmRepo,
		roleRepo: roleRepo,
		authz:    authz,
		registry: registry,
		tx:       tx,
	}
}

// Create creates a farm and makes the creator its Owner. Both writes
// happen in one transaction: a farm without an Owner must not exist.
func (s *FarmService) Create(ctx context.Context, userID uuid.UUID, input domain.FarmCreate) (*domain.Farm, error) {
	stateID, err := s.registry.Resolve(domain.EntityFarm, domain.StateActive)
	if err != nil {
		return nil, err
	}

	ownerRole, err := s.roleRepo.GetByName(ctx, domain.RoleOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner role: %w", err)
	}
	if ownerRole == nil {
		return nil, fmt.Errorf("owner role not seeded: %w", domain.ErrStateNotFound)
	}

	farm := &domain.Farm{
		Name:     input.Name,
		Area:     input.Area,
		AreaUnit: input.AreaUnit,
		StateID:  stateID,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.farmRepo.Create(ctx, farm); err != nil {
			return fmt.Errorf("failed to create farm: %w", err)
		}
		if _, err := s.authz.CreateMembership(ctx, userID, farm.ID, ownerRole.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return farm, nil
}

// List returns the farms where the user holds an active membership,
// each with the user's role on it.
func (s *FarmService) List(ctx context.Context, userID uuid.UUID) ([]domain.FarmSummary, error) {
	activeID, err := s.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, err
	}

	farms, err := s.farmRepo.ListByUser(ctx, userID, activeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}

	return farms, nil
}

// Get returns a farm the user is an active member of
func (s *FarmService) Get(ctx context.Context, userID, farmID uuid.UUID) (*domain.FarmSummary, error) {
	farm, err := s.farmRepo.GetByID(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	if farm == nil {
		return nil, domain.ErrFarmNotFound
	}

	membership, err := s.authz.FindActiveMembership(ctx, userID, farmID)
	if err != nil {
		return nil, err
	}

	roleName, err := s.authz.RoleName(ctx, membership.RoleID)
	if err != nil {
		return nil, err
	}

	return &domain.FarmSummary{Farm: *farm, Role: roleName}, nil
}
