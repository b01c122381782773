package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

// PlotService manages the plots of a farm
type PlotService struct {
	plotRepo domain.PlotRepository
	authz    *Authorizer
	registry *domain.StateRegistry
}

// NewPlotService creates a new plot service
func NewPlotService(plotRepo domain.PlotRepository, authz *Authorizer, registry *domain.StateRegistry) *PlotService {
	return &PlotService{
		plotRepo: plotRepo,
		authz:    authz,
		registry: registry,
	}
}

// Create adds a plot to a farm
func (s *PlotService) Create(ctx context.Context, userID, farmID uuid.UUID, input domain.PlotCreate) (*domain.Plot, error) {
	if _, err := s.authz.Authorize(ctx, userID, farmID, domain.PermAddPlot); err != nil {
		return nil, err
	}

	stateID, err := s.registry.Resolve(domain.EntityPlot, domain.StateActive)
	if err != nil {
		return nil, err
	}

	plot := &domain.Plot{
		FarmID:    farmID,
		Name:      input.Name,
		Area:      input.Area,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Altitude:  input.Altitude,
		StateID:   stateID,
	}

	if err := s.plotRepo.Create(ctx, plot); err != nil {
		return nil, fmt.Errorf("failed to create plot: %w", err)
	}

	return plot, nil
}

// List returns the active plots of a farm
func (s *PlotService) List(ctx context.Context, userID, farmID uuid.UUID) ([]domain.Plot, error) {
	if _, err := s.authz.Authorize(ctx, userID, farmID, domain.PermReadPlots); err != nil {
		return nil, err
	}

	activeID, err := s.registry.Resolve(domain.EntityPlot, domain.StateActive)
	if err != nil {
		return nil, err
	}

	plots, err := s.plotRepo.ListByFarm(ctx, farmID, activeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}

	return plots, nil
}
