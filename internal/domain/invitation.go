package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InvitationAction is the requested transition out of Pending.
type InvitationAction string

const (
	ActionAccept InvitationAction = "accept"
	ActionReject InvitationAction = "reject"
)

// Invitation invites a registered user, by email, to join a farm under a
// suggested role. Pending is the only non-terminal state: once Accepted
// or Rejected the invitation never transitions again.
type Invitation struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FarmID          uuid.UUID `json:"farm_id"`
	SuggestedRoleID int       `json:"suggested_role_id"`
	InviterID       uuid.UUID `json:"inviter_id"`
	StateID         int       `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// InvitationCreate represents invitation creation data
type InvitationCreate struct {
	Email           string    `json:"email" validate:"required,email,max=150"`
	SuggestedRoleID int       `json:"suggested_role_id" validate:"required"`
	FarmID          uuid.UUID `json:"farm_id" validate:"required"`
}

// InvitationRespond represents the accept/reject request payload
type InvitationRespond struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

// InvitationRepository defines the interface for invitation storage
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invitation, error)
	// PendingExists reports whether (email, farm) already has an
	// invitation in the Pending state. State must be queried here: the
	// unique index alone is insufficient once resolved rows accumulate.
	PendingExists(ctx context.Context, email string, farmID uuid.UUID, pendingStateID int) (bool, error)
	UpdateState(ctx context.Context, id uuid.UUID, stateID int) error
}
