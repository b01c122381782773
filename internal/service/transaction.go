package service

import (
	"context"
	"fmt"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
)

// TransactionService records income and expense entries against plots
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	plotRepo        domain.PlotRepository
	authz           *Authorizer
	registry        *domain.StateRegistry
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	plotRepo domain.PlotRepository,
	authz *Authorizer,
	registry *domain.StateRegistry,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		plotRepo:        plotRepo,
		authz:           authz,
		registry:        registry,
	}
}

// Create records a transaction on a plot. Authorization runs against the
// farm the plot belongs to.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, input domain.TransactionCreate) (*domain.Transaction, error) {
	plot, err := s.plot(ctx, input.PlotID)
	if err != nil {
		return nil, err
	}

	if _, err := s.authz.Authorize(ctx, userID, plot.FarmID, domain.PermAddTransaction); err != nil {
		return nil, err
	}

	category, err := s.transactionRepo.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, domain.ErrUnknownTransaction
	}

	// A category pointing at an unseeded or unrecognized type would
	// poison every report aggregation that touches the row.
	typeName, err := s.transactionRepo.GetTypeName(ctx, category.TypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction type: %w", err)
	}
	if typeName != domain.TransactionTypeIncome && typeName != domain.TransactionTypeExpense {
		return nil, domain.ErrUnknownTransaction
	}

	stateID, err := s.registry.Resolve(domain.EntityTransaction, domain.StateActive)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		PlotID:      input.PlotID,
		Description: input.Description,
		Date:        input.Date,
		Value:       input.Value,
		CategoryID:  category.ID,
		CreatorID:   userID,
		StateID:     stateID,
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return transaction, nil
}

// Delete soft-deletes a transaction: the state flips to Deleted and
// reports stop counting the row.
func (s *TransactionService) Delete(ctx context.Context, userID, transactionID uuid.UUID) error {
	transaction, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if transaction == nil {
		return domain.ErrTransactionNotFound
	}

	deletedID, err := s.registry.Resolve(domain.EntityTransaction, domain.StateDeleted)
	if err != nil {
		return err
	}
	if transaction.StateID == deletedID {
		return domain.ErrTransactionNotFound
	}

	plot, err := s.plot(ctx, transaction.PlotID)
	if err != nil {
		return err
	}

	if _, err := s.authz.Authorize(ctx, userID, plot.FarmID, domain.PermDeleteTransaction); err != nil {
		return err
	}

	if err := s.transactionRepo.UpdateState(ctx, transactionID, deletedID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

func (s *TransactionService) plot(ctx context.Context, plotID uuid.UUID) (*domain.Plot, error) {
	plots, err := s.plotRepo.ListByIDs(ctx, []uuid.UUID{plotID})
	if err != nil {
		return nil, fmt.Errorf("failed to get plot: %w", err)
	}
	if len(plots) == 0 {
		return nil, domain.ErrPlotNotFound
	}
	return &plots[0], nil
}
