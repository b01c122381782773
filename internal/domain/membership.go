package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Membership represents a user's standing on a farm under a role.
// Rows are never deleted: removal flips the state to Inactive so the
// history of a (user, farm) pair is preserved. At most one row per pair
// may be Active at any time.
type Membership struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FarmID    uuid.UUID `json:"farm_id"`
	RoleID    int       `json:"role_id"`
	StateID   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Collaborator is a membership joined with user and role names for listing
type Collaborator struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// CollaboratorRoleUpdate is the edit-role request payload
type CollaboratorRoleUpdate struct {
	CollaboratorUserID uuid.UUID `json:"collaborator_user_id" validate:"required"`
	NewRole            string    `json:"new_role" validate:"required"`
}

// CollaboratorRemove is the remove-collaborator request payload
type CollaboratorRemove struct {
	CollaboratorUserID uuid.UUID `json:"collaborator_user_id" validate:"required"`
}

// MembershipRepository defines the interface for membership storage
type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	// FindActive returns the single Active membership for (user, farm),
	// or nil when none exists.
	FindActive(ctx context.Context, userID, farmID uuid.UUID, activeStateID int) (*Membership, error)
	UpdateRole(ctx context.Context, id uuid.UUID, roleID int) error
	UpdateState(ctx context.Context, id uuid.UUID, stateID int) error
	ListCollaborators(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]Collaborator, error)
}
