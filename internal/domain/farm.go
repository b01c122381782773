package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Farm represents a collaborative farm
type Farm struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Area      float64   `json:"area"`
	AreaUnit  string    `json:"area_unit"`
	StateID   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// FarmCreate represents farm creation data
type FarmCreate struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Area     float64 `json:"area" validate:"required,gt=0"`
	AreaUnit string  `json:"area_unit" validate:"required,oneof=ha m2 acre"`
}

// FarmSummary is a farm joined with the requesting user's role on it
type FarmSummary struct {
	Farm Farm   `json:"farm"`
	Role string `json:"role"`
}

// FarmRepository defines the interface for farm storage
type FarmRepository interface {
	Create(ctx context.Context, farm *Farm) error
	GetByID(ctx context.Context, id uuid.UUID) (*Farm, error)
	ListByUser(ctx context.Context, userID uuid.UUID, activeStateID int) ([]FarmSummary, error)
}
