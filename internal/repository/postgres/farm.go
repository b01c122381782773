package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FarmRepository handles farm data access
type FarmRepository struct {
	db *DB
}

// NewFarmRepository creates a new farm repository
func NewFarmRepository(db *DB) *FarmRepository {
	return &FarmRepository{db: db}
}

// Create creates a new farm
func (r *FarmRepository) Create(ctx context.Context, farm *domain.Farm) error {
	query := `
		INSERT INTO farms (id, name, area, area_unit, farm_state_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.conn(ctx).Exec(ctx, query,
		farm.ID,
		farm.Name,
		farm.Area,
		farm.AreaUnit,
		farm.StateID,
		farm.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create farm: %w", err)
	}

	return nil
}

// GetByID retrieves a farm by ID
func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Farm, error) {
	query := `
		SELECT id, name, area, area_unit, farm_state_id, created_at
		FROM farms
		WHERE id = $1
	`

	var farm domain.Farm
	err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(
		&farm.ID,
		&farm.Name,
		&farm.Area,
		&farm.AreaUnit,
		&farm.StateID,
		&farm.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}

	return &farm, nil
}

// ListByUser retrieves the farms where the user holds an active membership,
// together with the user's role name on each.
func (r *FarmRepository) ListByUser(ctx context.Context, userID uuid.UUID, activeStateID int) ([]domain.FarmSummary, error) {
	query := `
		SELECT f.id, f.name, f.area, f.area_unit, f.farm_state_id, f.created_at, r.name
		FROM farms f
		INNER JOIN memberships m ON f.id = m.farm_id
		INNER JOIN roles r ON m.role_id = r.id
		WHERE m.user_id = $1 AND m.membership_state_id = $2
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, userID, activeStateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	defer rows.Close()

	var farms []domain.FarmSummary
	for rows.Next() {
		var s domain.FarmSummary
		if err := rows.Scan(
			&s.Farm.ID,
			&s.Farm.Name,
			&s.Farm.Area,
			&s.Farm.AreaUnit,
			&s.Farm.StateID,
			&s.Farm.CreatedAt,
			&s.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan farm: %w", err)
		}
		farms = append(farms, s)
	}

	return farms, rows.Err()
}
