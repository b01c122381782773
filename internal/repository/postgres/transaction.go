package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository handles financial transaction data access
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, plot_id, description, date, value, category_id, creator_id, transaction_state_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	t.ID = uuid.New()
	t.CreatedAt = time.Now().UTC()

	_, err := r.db.conn(ctx).Exec(ctx, query,
		t.ID, t.PlotID, t.Description, t.Date, t.Value, t.CategoryID, t.CreatorID, t.StateID, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `
		SELECT id, plot_id, description, date, value, category_id, creator_id, transaction_state_id, created_at
		FROM transactions
		WHERE id = $1
	`

	var t domain.Transaction
	err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(
		&t.ID, &t.PlotID, &t.Description, &t.Date, &t.Value, &t.CategoryID, &t.CreatorID, &t.StateID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &t, nil
}

// UpdateState moves a transaction to a new state
func (r *TransactionRepository) UpdateState(ctx context.Context, id uuid.UUID, stateID int) error {
	query := `UPDATE transactions SET transaction_state_id = $1 WHERE id = $2`

	_, err := r.db.conn(ctx).Exec(ctx, query, stateID, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction state: %w", err)
	}

	return nil
}

// GetCategory retrieves a transaction category by ID
func (r *TransactionRepository) GetCategory(ctx context.Context, id int) (*domain.TransactionCategory, error) {
	query := `SELECT id, name, transaction_type_id FROM transaction_categories WHERE id = $1`

	var c domain.TransactionCategory
	err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.TypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction category: %w", err)
	}

	return &c, nil
}

// GetTypeName retrieves the name of a transaction type
func (r *TransactionRepository) GetTypeName(ctx context.Context, typeID int) (string, error) {
	query := `SELECT name FROM transaction_types WHERE id = $1`

	var name string
	err := r.db.conn(ctx).QueryRow(ctx, query, typeID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get transaction type: %w", err)
	}

	return name, nil
}

// ListEntries returns active transactions on the given plots within the date range,
// joined with the names a financial report needs
func (r *TransactionRepository) ListEntries(ctx context.Context, plotIDs []uuid.UUID, from, to time.Time, activeStateID int) ([]domain.TransactionEntry, error) {
	query := `
		SELECT t.id, t.date, t.plot_id, p.name, tt.name, tc.name, u.name, t.value
		FROM transactions t
		INNER JOIN plots p ON t.plot_id = p.id
		INNER JOIN transaction_categories tc ON t.category_id = tc.id
		INNER JOIN transaction_types tt ON tc.transaction_type_id = tt.id
		INNER JOIN users u ON t.creator_id = u.id
		WHERE t.plot_id = ANY($1)
		  AND t.date >= $2 AND t.date <= $3
		  AND t.transaction_state_id = $4
		ORDER BY t.date, t.created_at
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, plotIDs, from, to, activeStateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.TransactionEntry
	for rows.Next() {
		var e domain.TransactionEntry
		err := rows.Scan(&e.ID, &e.Date, &e.PlotID, &e.PlotName, &e.Type, &e.Category, &e.CreatorName, &e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
