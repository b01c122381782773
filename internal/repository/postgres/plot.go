package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PlotRepository handles plot data access
type PlotRepository struct {
	db *DB
}

// NewPlotRepository creates a new plot repository
func NewPlotRepository(db *DB) *PlotRepository {
	return &PlotRepository{db: db}
}

// Create inserts a new plot
func (r *PlotRepository) Create(ctx context.Context, p *domain.Plot) error {
	query := `
		INSERT INTO plots (id, name, area, latitude, longitude, altitude, farm_id, plot_state_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()

	_, err := r.db.conn(ctx).Exec(ctx, query,
		p.ID, p.Name, p.Area, p.Latitude, p.Longitude, p.Altitude, p.FarmID, p.StateID, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plot: %w", err)
	}

	return nil
}

// ListByFarm returns all active plots of a farm
func (r *PlotRepository) ListByFarm(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]domain.Plot, error) {
	query := `
		SELECT id, name, area, latitude, longitude, altitude, farm_id, plot_state_id, created_at
		FROM plots
		WHERE farm_id = $1 AND plot_state_id = $2
		ORDER BY created_at
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, farmID, activeStateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots: %w", err)
	}
	defer rows.Close()

	return scanPlots(rows)
}

// ListByIDs returns the plots matching the given IDs
func (r *PlotRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Plot, error) {
	query := `
		SELECT id, name, area, latitude, longitude, altitude, farm_id, plot_state_id, created_at
		FROM plots
		WHERE id = ANY($1)
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list plots by id: %w", err)
	}
	defer rows.Close()

	return scanPlots(rows)
}

func scanPlots(rows pgx.Rows) ([]domain.Plot, error) {
	var plots []domain.Plot
	for rows.Next() {
		var p domain.Plot
		err := rows.Scan(&p.ID, &p.Name, &p.Area,
			&p.Latitude, &p.Longitude, &p.Altitude, &p.FarmID, &p.StateID, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plot: %w", err)
		}
		plots = append(plots, p)
	}

	return plots, rows.Err()
}
