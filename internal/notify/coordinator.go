package notify

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/rs/zerolog"
)

// InvitationEvent carries the facts needed to derive the side effects of
// an invitation transition. Derivation is pure; nothing here touches
// storage or the broker.
type InvitationEvent struct {
	Invitation *domain.Invitation
	FarmName   string
	RoleName   string
	Inviter    *domain.User
	Invitee    *domain.User
}

// Coordinator derives notification records and push messages from
// invitation events. Records are persisted by the caller inside its
// transaction; pushes go out through Dispatch only after commit, so a
// failed delivery never rolls anything back.
type Coordinator struct {
	registry   *domain.StateRegistry
	dispatcher Dispatcher
	logger     zerolog.Logger
}

// NewCoordinator creates a notification coordinator.
func NewCoordinator(registry *domain.StateRegistry, dispatcher Dispatcher, logger zerolog.Logger) *Coordinator {
	return &Coordinator{registry: registry, dispatcher: dispatcher, logger: logger}
}

// InvitationCreated derives the invitee-facing notification and push for
// a freshly created invitation. The push is nil when the invitee has no
// registered device token.
func (c *Coordinator) InvitationCreated(ev InvitationEvent) (*domain.Notification, *Push, error) {
	typeID, err := c.registry.NotificationType(domain.NotificationTypeInvitation)
	if err != nil {
		return nil, nil, err
	}
	stateID, err := c.registry.Resolve(domain.EntityNotification, domain.StatePending)
	if err != nil {
		return nil, nil, err
	}

	message := fmt.Sprintf("%s invited you to join %s as %s.", ev.Inviter.Name, ev.FarmName, ev.RoleName)

	notification := &domain.Notification{
		Message:      message,
		UserID:       ev.Invitee.ID,
		InvitationID: &ev.Invitation.ID,
		FarmID:       &ev.Invitation.FarmID,
		TypeID:       typeID,
		StateID:      stateID,
	}

	return notification, c.pushFor(ev.Invitee, "Farm invitation", message), nil
}

// InvitationResolved derives the inviter-facing notification and push
// after the invitee accepted or rejected.
func (c *Coordinator) InvitationResolved(ev InvitationEvent, accepted bool) (*domain.Notification, *Push, error) {
	typeName := domain.NotificationTypeInvitationRejected
	title := "Invitation declined"
	message := fmt.Sprintf("%s declined your invitation to %s.", ev.Invitee.Name, ev.FarmName)
	if accepted {
		typeName = domain.NotificationTypeInvitationAccepted
		title = "Invitation accepted"
		message = fmt.Sprintf("%s accepted your invitation to %s.", ev.Invitee.Name, ev.FarmName)
	}

	typeID, err := c.registry.NotificationType(typeName)
	if err != nil {
		return nil, nil, err
	}
	// Resolution records report a settled fact and are born Responded.
	stateID, err := c.registry.Resolve(domain.EntityNotification, domain.StateResponded)
	if err != nil {
		return nil, nil, err
	}

	notification := &domain.Notification{
		Message:      message,
		UserID:       ev.Inviter.ID,
		InvitationID: &ev.Invitation.ID,
		FarmID:       &ev.Invitation.FarmID,
		TypeID:       typeID,
		StateID:      stateID,
	}

	return notification, c.pushFor(ev.Inviter, title, message), nil
}

func (c *Coordinator) pushFor(recipient *domain.User, title, message string) *Push {
	if recipient.DeviceToken == nil || *recipient.DeviceToken == "" {
		return nil
	}
	return &Push{Token: *recipient.DeviceToken, Title: title, Body: message}
}

// Dispatch sends pushes after the owning transaction committed. Failures
// are logged and swallowed; the committed state already stands.
func (c *Coordinator) Dispatch(ctx context.Context, pushes ...*Push) {
	for _, push := range pushes {
		if push == nil {
			continue
		}
		if err := c.dispatcher.Dispatch(ctx, *push); err != nil {
			c.logger.Warn().Err(err).Str("title", push.Title).Msg("push dispatch failed")
		}
	}
}
