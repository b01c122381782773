package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Plot is a named parcel inside a farm
type Plot struct {
	ID        uuid.UUID `json:"id"`
	FarmID    uuid.UUID `json:"farm_id"`
	Name      string    `json:"name"`
	Area      float64   `json:"area"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Altitude  *float64  `json:"altitude,omitempty"`
	StateID   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// PlotCreate represents plot creation data
type PlotCreate struct {
	Name      string   `json:"name" validate:"required,max=255"`
	Area      float64  `json:"area" validate:"required,gt=0"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Altitude  *float64 `json:"altitude,omitempty" validate:"omitempty,gte=0,lte=3000"`
}

// PlotRepository defines the interface for plot storage
type PlotRepository interface {
	Create(ctx context.Context, plot *Plot) error
	ListByFarm(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]Plot, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]Plot, error)
}
