package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is created only as a side effect of domain events,
// never directly by a client request.
type Notification struct {
	ID           uuid.UUID  `json:"id"`
	Message      string     `json:"message"`
	UserID       uuid.UUID  `json:"user_id"`
	InvitationID *uuid.UUID `json:"invitation_id,omitempty"`
	FarmID       *uuid.UUID `json:"farm_id,omitempty"`
	TypeID       int        `json:"type_id"`
	StateID      int        `json:"state_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)
	// MarkRespondedByInvitation transitions every notification linked to
	// the invitation to the Responded state.
	MarkRespondedByInvitation(ctx context.Context, invitationID uuid.UUID, respondedStateID int) error
}
