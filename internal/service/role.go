package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/rs/zerolog"
)

// RoleCache caches the role catalog between requests
type RoleCache interface {
	Get(ctx context.Context) ([]domain.Role, error)
	Set(ctx context.Context, roles []domain.Role) error
}

// RoleService exposes the role catalog as reference data
type RoleService struct {
	roleRepo domain.RoleRepository
	cache    RoleCache
	logger   zerolog.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo domain.RoleRepository, cache RoleCache, logger zerolog.Logger) *RoleService {
	return &RoleService{roleRepo: roleRepo, cache: cache, logger: logger}
}

// List returns every role with its permissions. The catalog is cached;
// a cache failure falls through to the database.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, roles); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache role catalog")
		}
	}

	return roles, nil
}
