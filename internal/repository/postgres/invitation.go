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

// InvitationRepository handles invitation data access
type InvitationRepository struct {
	db *DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// Create inserts a new invitation
func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (id, email, farm_id, suggested_role_id, inviter_id, invitation_state_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	inv.ID = uuid.New()
	inv.CreatedAt = time.Now().UTC()

	_, err := r.db.conn(ctx).Exec(ctx, query,
		inv.ID, inv.Email, inv.FarmID, inv.SuggestedRoleID, inv.InviterID, inv.StateID, inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	return nil
}

// GetByID retrieves an invitation by ID
func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	query := `
		SELECT id, email, farm_id, suggested_role_id, inviter_id, invitation_state_id, created_at
		FROM invitations
		WHERE id = $1
	`

	var inv domain.Invitation
	err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Email, &inv.FarmID, &inv.SuggestedRoleID, &inv.InviterID, &inv.StateID, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &inv, nil
}

// PendingExists reports whether a pending invitation already exists for the email on the farm
func (r *InvitationRepository) PendingExists(ctx context.Context, email string, farmID uuid.UUID, pendingStateID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM invitations
			WHERE LOWER(email) = LOWER($1) AND farm_id = $2 AND invitation_state_id = $3
		)
	`

	var exists bool
	if err := r.db.conn(ctx).QueryRow(ctx, query, email, farmID, pendingStateID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending invitation: %w", err)
	}

	return exists, nil
}

// UpdateState moves an invitation to a new state
func (r *InvitationRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	query := `UPDATE invitations SET invitation_state_id = $1 WHERE id = $2`

	_, err := r.db.conn(ctx).Exec(ctx, query, stateID, id)
	if err != nil {
		return fmt.Errorf("failed to update invitation state: %w", err)
	}

	return nil
}
