package service

import (
	"context"
	"errors"
	"testing"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type invitationFixture struct {
	invitationRepo   *MockInvitationRepository
	userRepo         *MockUserRepository
	farmRepo         *MockFarmRepository
	roleRepo         *MockRoleRepository
	membershipRepo   *MockMembershipRepository
	notificationRepo *MockNotificationRepository
	svc              *InvitationService

	farm         *domain.Farm
	inviter      *domain.User
	invitee      *domain.User
	ownerRole    *domain.Role
	operatorRole *domain.Role
}

func newInvitationFixture() *invitationFixture {
	f := &invitationFixture{
		invitationRepo:   new(MockInvitationRepository),
		userRepo:         new(MockUserRepository),
		farmRepo:         new(MockFarmRepository),
		roleRepo:         new(MockRoleRepository),
		membershipRepo:   new(MockMembershipRepository),
		notificationRepo: new(MockNotificationRepository),
	}

	registry := newTestRegistry()
	authz := NewAuthorizer(f.membershipRepo, f.roleRepo, registry)
	f.svc = NewInvitationService(
		f.invitationRepo, f.userRepo, f.farmRepo, f.roleRepo, f.notificationRepo,
		authz, newTestCoordinator(registry), registry, mockTxRunner{},
	)

	f.farm = &domain.Farm{ID: uuid.New(), Name: "Sitio Alegre", StateID: farmActive}
	f.inviter = &domain.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com"}
	f.invitee = &domain.User{ID: uuid.New(), Name: "Bruno", Email: "bruno@example.com"}
	f.ownerRole = &domain.Role{ID: 1, Name: domain.RoleOwner}
	f.operatorRole = &domain.Role{ID: 3, Name: domain.RoleFieldOperator}

	return f
}

func (f *invitationFixture) inviterMembership() *domain.Membership {
	return &domain.Membership{ID: uuid.New(), UserID: f.inviter.ID, FarmID: f.farm.ID, RoleID: f.ownerRole.ID, StateID: membershipActive}
}

func (f *invitationFixture) createInput() domain.InvitationCreate {
	return domain.InvitationCreate{
		Email:           f.invitee.Email,
		SuggestedRoleID: f.operatorRole.ID,
		FarmID:          f.farm.ID,
	}
}

func TestInvitationCreate_FarmNotFound(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(nil, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)

	// Farm existence is checked before anything about the inviter
	f.membershipRepo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvitationCreate_InviterNotAMember(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(nil, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrNotAMember)
}

func TestInvitationCreate_RoleNotInvitable(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)

	// Owner can never be a suggested role
	f.roleRepo.On("GetByID", mock.Anything, f.ownerRole.ID).Return(f.ownerRole, nil)

	input := f.createInput()
	input.SuggestedRoleID = f.ownerRole.ID
	_, err := f.svc.Create(context.Background(), f.inviter.ID, input)
	assert.ErrorIs(t, err, domain.ErrRoleNotInvitable)
}

func TestInvitationCreate_PermissionDenied(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(false, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestInvitationCreate_InviteeNotRegistered(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(nil, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrInviteeNotRegistered)
}

func TestInvitationCreate_InviteeAlreadyMember(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.invitee.ID, f.farm.ID, membershipActive).
		Return(&domain.Membership{ID: uuid.New(), StateID: membershipActive}, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
}

func TestInvitationCreate_PendingInvitationExists(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.invitee.ID, f.farm.ID, membershipActive).Return(nil, nil)
	f.invitationRepo.On("PendingExists", mock.Anything, f.invitee.Email, f.farm.ID, invitationPending).Return(true, nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrInvitationPending)
}

func TestInvitationCreate_Success(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.invitee.ID, f.farm.ID, membershipActive).Return(nil, nil)
	f.invitationRepo.On("PendingExists", mock.Anything, f.invitee.Email, f.farm.ID, invitationPending).Return(false, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)

	f.invitationRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invitation) bool {
		return inv.Email == f.invitee.Email &&
			inv.FarmID == f.farm.ID &&
			inv.SuggestedRoleID == f.operatorRole.ID &&
			inv.InviterID == f.inviter.ID &&
			inv.StateID == invitationPending
	})).Return(nil)
	f.notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == f.invitee.ID &&
			n.TypeID == typeInvitation &&
			n.StateID == notificationPending
	})).Return(nil)

	invitation, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	require.NoError(t, err)
	assert.Equal(t, invitationPending, invitation.StateID)

	f.invitationRepo.AssertExpectations(t)
	f.notificationRepo.AssertExpectations(t)
}

func TestInvitationCreate_NotificationWriteAbortsUnit(t *testing.T) {
	f := newInvitationFixture()
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.invitee.ID, f.farm.ID, membershipActive).Return(nil, nil)
	f.invitationRepo.On("PendingExists", mock.Anything, f.invitee.Email, f.farm.ID, invitationPending).Return(false, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)

	f.invitationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	// An invitation must never commit without its companion notification
	f.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))

	invitation, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.Error(t, err)
	assert.Nil(t, invitation)
}

func TestInvitationCreate_MissingNotificationType(t *testing.T) {
	f := newInvitationFixture()

	// Same engine, but the reference data lacks the notification types
	registry := domain.NewStateRegistry(
		map[domain.EntityKind]map[string]int{
			domain.EntityMembership: {domain.StateActive: membershipActive},
			domain.EntityInvitation: {domain.StatePending: invitationPending},
		},
		map[string]int{},
	)
	authz := NewAuthorizer(f.membershipRepo, f.roleRepo, registry)
	f.svc = NewInvitationService(
		f.invitationRepo, f.userRepo, f.farmRepo, f.roleRepo, f.notificationRepo,
		authz, newTestCoordinator(registry), registry, mockTxRunner{},
	)

	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.inviter.ID, f.farm.ID, membershipActive).Return(f.inviterMembership(), nil)
	f.roleRepo.On("GetByID", mock.Anything, f.operatorRole.ID).Return(f.operatorRole, nil)
	f.roleRepo.On("HasPermission", mock.Anything, f.ownerRole.ID, domain.PermAddOperator).Return(true, nil)
	f.userRepo.On("GetByEmail", mock.Anything, f.invitee.Email).Return(f.invitee, nil)
	f.membershipRepo.On("FindActive", mock.Anything, f.invitee.ID, f.farm.ID, membershipActive).Return(nil, nil)
	f.invitationRepo.On("PendingExists", mock.Anything, f.invitee.Email, f.farm.ID, invitationPending).Return(false, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)
	f.invitationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), f.inviter.ID, f.createInput())
	assert.ErrorIs(t, err, domain.ErrNotificationTypeNotFound)

	// The whole unit fails before any notification write
	f.notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func (f *invitationFixture) pendingInvitation() *domain.Invitation {
	return &domain.Invitation{
		ID:              uuid.New(),
		Email:           f.invitee.Email,
		FarmID:          f.farm.ID,
		SuggestedRoleID: f.operatorRole.ID,
		InviterID:       f.inviter.ID,
		StateID:         invitationPending,
	}
}

func TestInvitationRespond_NotFound(t *testing.T) {
	f := newInvitationFixture()
	id := uuid.New()
	f.invitationRepo.On("GetByID", mock.Anything, id).Return(nil, nil)

	_, err := f.svc.Respond(context.Background(), f.invitee.ID, id, domain.InvitationRespond{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestInvitationRespond_NotTheInvitee(t *testing.T) {
	f := newInvitationFixture()
	inv := f.pendingInvitation()
	stranger := &domain.User{ID: uuid.New(), Email: "carla@example.com"}
	f.invitationRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.userRepo.On("GetByID", mock.Anything, stranger.ID).Return(stranger, nil)

	_, err := f.svc.Respond(context.Background(), stranger.ID, inv.ID, domain.InvitationRespond{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrNotTheInvitee)
}

func TestInvitationRespond_AlreadyResolved(t *testing.T) {
	f := newInvitationFixture()
	inv := f.pendingInvitation()
	inv.StateID = invitationAccepted
	f.invitationRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.userRepo.On("GetByID", mock.Anything, f.invitee.ID).Return(f.invitee, nil)

	_, err := f.svc.Respond(context.Background(), f.invitee.ID, inv.ID, domain.InvitationRespond{Action: "reject"})
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	// Terminal states never transition again
	f.invitationRepo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvitationRespond_InvalidAction(t *testing.T) {
	f := newInvitationFixture()

	_, err := f.svc.Respond(context.Background(), f.invitee.ID, uuid.New(), domain.InvitationRespond{Action: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestInvitationRespond_AcceptCreatesMembership(t *testing.T) {
	f := newInvitationFixture()
	inv := f.pendingInvitation()
	f.invitationRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.userRepo.On("GetByID", mock.Anything, f.invitee.ID).Return(f.invitee, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)

	f.notificationRepo.On("MarkRespondedByInvitation", mock.Anything, inv.ID, notificationResponded).Return(nil)
	f.invitationRepo.On("UpdateState", mock.Anything, inv.ID, invitationAccepted).Return(nil)
	f.membershipRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Membership) bool {
		return m.UserID == f.invitee.ID &&
			m.FarmID == f.farm.ID &&
			m.RoleID == inv.SuggestedRoleID &&
			m.StateID == membershipActive
	})).Return(nil)
	f.notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == f.inviter.ID &&
			n.TypeID == typeInvitationAccepted &&
			n.StateID == notificationResponded
	})).Return(nil)

	resolved, err := f.svc.Respond(context.Background(), f.invitee.ID, inv.ID, domain.InvitationRespond{Action: "accept"})
	require.NoError(t, err)
	assert.Equal(t, invitationAccepted, resolved.StateID)

	f.membershipRepo.AssertExpectations(t)
	f.notificationRepo.AssertExpectations(t)
}

func TestInvitationRespond_RejectCreatesNoMembership(t *testing.T) {
	f := newInvitationFixture()
	inv := f.pendingInvitation()
	f.invitationRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.userRepo.On("GetByID", mock.Anything, f.invitee.ID).Return(f.invitee, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)

	f.notificationRepo.On("MarkRespondedByInvitation", mock.Anything, inv.ID, notificationResponded).Return(nil)
	f.invitationRepo.On("UpdateState", mock.Anything, inv.ID, invitationRejected).Return(nil)
	f.notificationRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == f.inviter.ID && n.TypeID == typeInvitationRejected
	})).Return(nil)

	resolved, err := f.svc.Respond(context.Background(), f.invitee.ID, inv.ID, domain.InvitationRespond{Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, invitationRejected, resolved.StateID)

	f.membershipRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvitationRespond_AcceptRaceSurfacesAlreadyMember(t *testing.T) {
	f := newInvitationFixture()
	inv := f.pendingInvitation()
	f.invitationRepo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.userRepo.On("GetByID", mock.Anything, f.invitee.ID).Return(f.invitee, nil)
	f.userRepo.On("GetByID", mock.Anything, f.inviter.ID).Return(f.inviter, nil)
	f.farmRepo.On("GetByID", mock.Anything, f.farm.ID).Return(f.farm, nil)

	f.notificationRepo.On("MarkRespondedByInvitation", mock.Anything, inv.ID, notificationResponded).Return(nil)
	f.invitationRepo.On("UpdateState", mock.Anything, inv.ID, invitationAccepted).Return(nil)
	// The partial unique index rejects a second Active membership
	f.membershipRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	_, err := f.svc.Respond(context.Background(), f.invitee.ID, inv.ID, domain.InvitationRespond{Action: "accept"})
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
}
