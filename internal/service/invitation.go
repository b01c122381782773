package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/agrovia/farm-api/internal/notify"
	"github.com/google/uuid"
)

// InvitationService drives the invitation state machine. Pending is the
// only non-terminal state; a response moves the invitation to Accepted
// or Rejected exactly once, together with its side effects, in a single
// transaction.
type InvitationService struct {
	invitationRepo   domain.InvitationRepository
	userRepo         domain.UserRepository
	farmRepo         domain.FarmRepository
	roleRepo         domain.RoleRepository
	notificationRepo domain.NotificationRepository
	authz            *Authorizer
	coordinator      *notify.Coordinator
	registry         *domain.StateRegistry
	tx               TxRunner
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	farmRepo domain.FarmRepository,
	roleRepo domain.RoleRepository,
	notificationRepo domain.NotificationRepository,
	authz *Authorizer,
	coordinator *notify.Coordinator,
	registry *domain.StateRegistry,
	tx TxRunner,
) *InvitationService {
	return &InvitationService{
		invitationRepo:   invitationRepo,
		userRepo:         userRepo,
		farmRepo:         farmRepo,
		roleRepo:         roleRepo,
		notificationRepo: notificationRepo,
		authz:            authz,
		coordinator:      coordinator,
		registry:         registry,
		tx:               tx,
	}
}

// Create validates the invitation preconditions in a fixed order, then
// persists the Pending invitation together with the invitee's
// notification. The push goes out only after the transaction committed.
func (s *InvitationService) Create(ctx context.Context, inviterID uuid.UUID, input domain.InvitationCreate) (*domain.Invitation, error) {
	farm, err := s.farmRepo.GetByID(ctx, input.FarmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	if farm == nil {
		return nil, domain.ErrFarmNotFound
	}

	membership, err := s.authz.FindActiveMembership(ctx, inviterID, input.FarmID)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.GetByID(ctx, input.SuggestedRoleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, domain.ErrRoleNotInvitable
	}
	permission, invitable := domain.InvitePermission[role.Name]
	if !invitable {
		return nil, domain.ErrRoleNotInvitable
	}

	has, err := s.roleRepo.HasPermission(ctx, membership.RoleID, permission)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission: %w", err)
	}
	if !has {
		return nil, domain.ErrPermissionDenied
	}

	invitee, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitee: %w", err)
	}
	if invitee == nil {
		return nil, domain.ErrInviteeNotRegistered
	}

	activeMembershipID, err := s.registry.Resolve(domain.EntityMembership, domain.StateActive)
	if err != nil {
		return nil, err
	}
	existing, err := s.authz.membershipRepo.FindActive(ctx, invitee.ID, input.FarmID, activeMembershipID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invitee membership: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	pendingID, err := s.registry.Resolve(domain.EntityInvitation, domain.StatePending)
	if err != nil {
		return nil, err
	}
	pending, err := s.invitationRepo.PendingExists(ctx, input.Email, input.FarmID, pendingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending invitation: %w", err)
	}
	if pending {
		return nil, domain.ErrInvitationPending
	}

	inviter, err := s.userRepo.GetByID(ctx, inviterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inviter: %w", err)
	}
	if inviter == nil {
		return nil, domain.ErrUserNotFound
	}

	invitation := &domain.Invitation{
		Email:           invitee.Email,
		FarmID:          input.FarmID,
		SuggestedRoleID: role.ID,
		InviterID:       inviterID,
		StateID:         pendingID,
	}

	var push *notify.Push
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.invitationRepo.Create(ctx, invitation); err != nil {
			return fmt.Errorf("failed to create invitation: %w", err)
		}

		notification, p, err := s.coordinator.InvitationCreated(notify.InvitationEvent{
			Invitation: invitation,
			FarmName:   farm.Name,
			RoleName:   role.Name,
			Inviter:    inviter,
			Invitee:    invitee,
		})
		if err != nil {
			return err
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		push = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.coordinator.Dispatch(ctx, push)

	return invitation, nil
}

// Respond applies the invitee's accept or reject decision. The whole
// unit is one transaction: the invitation transition, the notification
// updates and, on accept, the new membership all commit or roll back
// together.
func (s *InvitationService) Respond(ctx context.Context, responderID, invitationID uuid.UUID, input domain.InvitationRespond) (*domain.Invitation, error) {
	action := domain.InvitationAction(input.Action)
	if action != domain.ActionAccept && action != domain.ActionReject {
		return nil, domain.ErrInvalidAction
	}

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation == nil {
		return nil, domain.ErrInvitationNotFound
	}

	responder, err := s.userRepo.GetByID(ctx, responderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responder: %w", err)
	}
	if responder == nil {
		return nil, domain.ErrUserNotFound
	}
	if !strings.EqualFold(responder.Email, invitation.Email) {
		return nil, domain.ErrNotTheInvitee
	}

	pendingID, err := s.registry.Resolve(domain.EntityInvitation, domain.StatePending)
	if err != nil {
		return nil, err
	}
	if invitation.StateID != pendingID {
		return nil, domain.ErrAlreadyResolved
	}

	accepted := action == domain.ActionAccept
	targetState := domain.StateRejected
	if accepted {
		targetState = domain.StateAccepted
	}
	targetID, err := s.registry.Resolve(domain.EntityInvitation, targetState)
	if err != nil {
		return nil, err
	}
	respondedID, err := s.registry.Resolve(domain.EntityNotification, domain.StateResponded)
	if err != nil {
		return nil, err
	}

	farm, err := s.farmRepo.GetByID(ctx, invitation.FarmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	if farm == nil {
		return nil, domain.ErrFarmNotFound
	}

	inviter, err := s.userRepo.GetByID(ctx, invitation.InviterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inviter: %w", err)
	}
	if inviter == nil {
		return nil, domain.ErrUserNotFound
	}

	var push *notify.Push
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.notificationRepo.MarkRespondedByInvitation(ctx, invitation.ID, respondedID); err != nil {
			return fmt.Errorf("failed to mark notifications responded: %w", err)
		}

		if err := s.invitationRepo.UpdateState(ctx, invitation.ID, targetID); err != nil {
			return fmt.Errorf("failed to update invitation state: %w", err)
		}

		if accepted {
			if _, err := s.authz.CreateMembership(ctx, responder.ID, invitation.FarmID, invitation.SuggestedRoleID); err != nil {
				return err
			}
		}

		notification, p, err := s.coordinator.InvitationResolved(notify.InvitationEvent{
			Invitation: invitation,
			FarmName:   farm.Name,
			Inviter:    inviter,
			Invitee:    responder,
		}, accepted)
		if err != nil {
			return err
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		push = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	invitation.StateID = targetID

	s.coordinator.Dispatch(ctx, push)

	return invitation, nil
}
