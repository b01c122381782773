package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction type names (reference data).
const (
	TransactionTypeIncome  = "Income"
	TransactionTypeExpense = "Expense"
)

// Transaction is a financial entry recorded against a plot.
// Deletion is soft: the state flips to Deleted and reports skip the row.
type Transaction struct {
	ID          uuid.UUID `json:"id"`
	PlotID      uuid.UUID `json:"plot_id"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Value       float64   `json:"value"`
	CategoryID  int       `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	StateID     int       `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionCategory groups transactions under a type (Income/Expense)
type TransactionCategory struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	TypeID int    `json:"type_id"`
}

// TransactionCreate represents transaction creation data
type TransactionCreate struct {
	PlotID      uuid.UUID `json:"plot_id" validate:"required"`
	Description string    `json:"description" validate:"max=255"`
	Date        time.Time `json:"date" validate:"required"`
	Value       float64   `json:"value" validate:"required,gt=0"`
	CategoryID  int       `json:"category_id" validate:"required"`
}

// TransactionEntry is a transaction joined with the names a report needs
type TransactionEntry struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	PlotID      uuid.UUID `json:"plot_id"`
	PlotName    string    `json:"plot_name"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	CreatorName string    `json:"creator_name"`
	Value       float64   `json:"value"`
}

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateState(ctx context.Context, id uuid.UUID, stateID int) error
	GetCategory(ctx context.Context, id int) (*TransactionCategory, error)
	GetTypeName(ctx context.Context, typeID int) (string, error)
	// ListEntries returns Active-state transactions on the given plots
	// within [from, to], joined with plot, category, type and creator.
	ListEntries(ctx context.Context, plotIDs []uuid.UUID, from, to time.Time, activeStateID int) ([]TransactionEntry, error)
}
