package service

import (
	"context"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockTxRunner executes fn directly; transaction semantics are covered
// by the postgres package.
type mockTxRunner struct{}

func (mockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateDeviceToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

// MockFarmRepository mocks the FarmRepository interface
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *domain.Farm) error {
	args := m.Called(ctx, farm)
	if args.Error(0) == nil {
		farm.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockFarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Farm), args.Error(1)
}

func (m *MockFarmRepository) ListByUser(ctx context.Context, userID uuid.UUID, activeStateID int) ([]domain.FarmSummary, error) {
	args := m.Called(ctx, userID, activeStateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FarmSummary), args.Error(1)
}

// MockRoleRepository mocks the RoleRepository interface
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetByID(ctx context.Context, id int) (*domain.Role, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockRoleRepository) HasPermission(ctx context.Context, roleID int, permission string) (bool, error) {
	args := m.Called(ctx, roleID, permission)
	return args.Bool(0), args.Error(1)
}

// MockMembershipRepository mocks the MembershipRepository interface
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) FindActive(ctx context.Context, userID, farmID uuid.UUID, activeStateID int) (*domain.Membership, error) {
	args := m.Called(ctx, userID, farmID, activeStateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, id uuid.UUID, roleID int) error {
	args := m.Called(ctx, id, roleID)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	args := m.Called(ctx, id, stateID)
	return args.Error(0)
}

func (m *MockMembershipRepository) ListCollaborators(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]domain.Collaborator, error) {
	args := m.Called(ctx, farmID, activeStateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collaborator), args.Error(1)
}

// MockInvitationRepository mocks the InvitationRepository interface
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	if args.Error(0) == nil {
		inv.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) PendingExists(ctx context.Context, email string, farmID uuid.UUID, pendingStateID int) (bool, error) {
	args := m.Called(ctx, email, farmID, pendingStateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvitationRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	args := m.Called(ctx, id, stateID)
	return args.Error(0)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRespondedByInvitation(ctx context.Context, invitationID uuid.UUID, respondedStateID int) error {
	args := m.Called(ctx, invitationID, respondedStateID)
	return args.Error(0)
}

// MockPlotRepository mocks the PlotRepository interface
type MockPlotRepository struct {
	mock.Mock
}

func (m *MockPlotRepository) Create(ctx context.Context, plot *domain.Plot) error {
	args := m.Called(ctx, plot)
	return args.Error(0)
}

func (m *MockPlotRepository) ListByFarm(ctx context.Context, farmID uuid.UUID, activeStateID int) ([]domain.Plot, error) {
	args := m.Called(ctx, farmID, activeStateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

func (m *MockPlotRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Plot, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Plot), args.Error(1)
}

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	args := m.Called(ctx, id, stateID)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetCategory(ctx context.Context, id int) (*domain.TransactionCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionCategory), args.Error(1)
}

func (m *MockTransactionRepository) GetTypeName(ctx context.Context, typeID int) (string, error) {
	args := m.Called(ctx, typeID)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) ListEntries(ctx context.Context, plotIDs []uuid.UUID, from, to time.Time, activeStateID int) ([]domain.TransactionEntry, error) {
	args := m.Called(ctx, plotIDs, from, to, activeStateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionEntry), args.Error(1)
}
