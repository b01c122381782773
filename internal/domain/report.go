package domain

import (
	"time"

	"github.com/google/uuid"
)

// FinancialReportRequest selects plots and a date range to aggregate.
// All plots must belong to the same farm.
type FinancialReportRequest struct {
	PlotIDs         []uuid.UUID `json:"plot_ids" validate:"required,min=1"`
	From            time.Time   `json:"from" validate:"required"`
	To              time.Time   `json:"to" validate:"required"`
	IncludeHistory  bool        `json:"include_history"`
	IncludeAnalysis bool        `json:"include_analysis"`
}

// CategoryTotal is an amount grouped under a category name
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// PlotFinancials aggregates one plot's income and expenses
type PlotFinancials struct {
	PlotID            uuid.UUID       `json:"plot_id"`
	PlotName          string          `json:"plot_name"`
	Income            float64         `json:"income"`
	Expenses          float64         `json:"expenses"`
	Balance           float64         `json:"balance"`
	IncomeByCategory  []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
}

// FarmFinancials aggregates the whole selection
type FarmFinancials struct {
	TotalIncome       float64         `json:"total_income"`
	TotalExpenses     float64         `json:"total_expenses"`
	Balance           float64         `json:"balance"`
	IncomeByCategory  []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
}

// FinancialReport is the full report response
type FinancialReport struct {
	FarmName string             `json:"farm_name"`
	Plots    []string           `json:"plots"`
	Period   string             `json:"period"`
	PerPlot  []PlotFinancials   `json:"per_plot"`
	Summary  FarmFinancials     `json:"summary"`
	Analysis string             `json:"analysis,omitempty"`
	History  []TransactionEntry `json:"history,omitempty"`
}
