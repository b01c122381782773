package service

import (
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/notify"
	"github.com/rs/zerolog"
)

// State identifiers used across the service tests. They mirror the
// seeded reference data but any consistent assignment works here.
const (
	userActive = 1

	farmActive = 1

	plotActive = 1

	membershipActive   = 1
	membershipInactive = 2

	invitationPending  = 1
	invitationAccepted = 2
	invitationRejected = 3

	notificationActive    = 1
	notificationPending   = 2
	notificationResponded = 3

	transactionActive  = 1
	transactionDeleted = 2

	typeInvitation         = 1
	typeInvitationAccepted = 2
	typeInvitationRejected = 3
)

func newTestRegistry() *domain.StateRegistry {
	return domain.NewStateRegistry(
		map[domain.EntityKind]map[string]int{
			domain.EntityUser: {
				domain.StateActive: userActive,
			},
			domain.EntityFarm: {
				domain.StateActive: farmActive,
			},
			domain.EntityPlot: {
				domain.StateActive: plotActive,
			},
			domain.EntityMembership: {
				domain.StateActive:   membershipActive,
				domain.StateInactive: membershipInactive,
			},
			domain.EntityInvitation: {
				domain.StatePending:  invitationPending,
				domain.StateAccepted: invitationAccepted,
				domain.StateRejected: invitationRejected,
			},
			domain.EntityNotification: {
				domain.StateActive:    notificationActive,
				domain.StatePending:   notificationPending,
				domain.StateResponded: notificationResponded,
			},
			domain.EntityTransaction: {
				domain.StateActive:  transactionActive,
				domain.StateDeleted: transactionDeleted,
			},
		},
		map[string]int{
			domain.NotificationTypeInvitation:         typeInvitation,
			domain.NotificationTypeInvitationAccepted: typeInvitationAccepted,
			domain.NotificationTypeInvitationRejected: typeInvitationRejected,
		},
	)
}

func newTestCoordinator(registry *domain.StateRegistry) *notify.Coordinator {
	return notify.NewCoordinator(registry, notify.NopDispatcher{}, zerolog.Nop())
}
