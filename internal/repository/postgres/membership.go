package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MembershipRepository handles membership data access
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a new membership row
func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, farm_id, role_id, membership_state_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	m.ID = uuid.New()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err := r.db.conn(ctx).Exec(ctx, query,
		m.ID, m.UserID, m.FarmID, m.RoleID, m.StateID, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// FindActive returns the user's active membership on a farm, or nil when none exists
func (r *MembershipRepository) FindActive(ctx context.Context, userID, farmID uuid.UUID, activeStateID int) (*domain.Membership, error) {
	query := `
		SELECT id, user_id, farm_id, role_id, membership_state_id, created_at, updated_at
		FROM memberships
		WHERE user_id = $1 AND farm_id = $2 AND membership_state_id = $3
	`

	var m domain.Membership
	err := r.db.conn(ctx).QueryRow(ctx, query, userID, farmID, activeStateID).Scan(
		&m.ID, &m.UserID, &m.FarmID, &m.RoleID, &m.StateID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	return &m, nil
}

// UpdateRole changes the role of a membership
func (r *MembershipRepository) UpdateRole(ctx context.Context, id uuid.UUID, roleID int) error {
	query := `UPDATE memberships SET role_id = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.conn(ctx).Exec(ctx, query, roleID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}

	return nil
}

// UpdateState moves a membership to a new state
func (r *MembershipRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	query := `UPDATE memberships SET membership_state_id = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.conn(ctx).Exec(ctx, query, stateID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update membership state: %w", err)
	}

	return nil
}

// ListCollaborators returns all active members of a farm with their role names
func (r *MembershipRepository) ListCollaborators(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]domain.Collaborator, error) {
	query := `
		SELECT u.id, u.name, u.email, r.name
		FROM memberships m
		INNER JOIN users u ON m.user_id = u.id
		INNER JOIN roles r ON m.role_id = r.id
		WHERE m.farm_id = $1 AND m.membership_state_id = $2
		ORDER BY m.created_at
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, farmID, activeStateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	defer rows.Close()

	var collaborators []domain.Collaborator
	for rows.Next() {
		var c domain.Collaborator
		if err := rows.Scan(&c.UserID, &c.Name, &c.Email, &c.Role); err != nil {
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}
		collaborators = append(collaborators, c)
	}

	return collaborators, rows.Err()
}
